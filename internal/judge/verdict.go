package judge

// Verdict classifies the outcome of one test case.
type Verdict string

const (
	Pass              Verdict = "PASS"
	WrongAnswer       Verdict = "WRONG_ANSWER"
	RuntimeError      Verdict = "RUNTIME_ERROR"
	TimeLimitExceeded Verdict = "TIME_LIMIT_EXCEEDED"
	CompileError      Verdict = "COMPILE_ERROR"
	Cancelled         Verdict = "CANCELLED"
)

// Label returns the short judge code, e.g. "AC" or "TLE".
func (v Verdict) Label() string {
	switch v {
	case Pass:
		return "AC"
	case WrongAnswer:
		return "WA"
	case RuntimeError:
		return "RE"
	case TimeLimitExceeded:
		return "TLE"
	case CompileError:
		return "CE"
	case Cancelled:
		return "CXL"
	}
	return string(v)
}

// Outcome is the verdict of a whole problem.
type Outcome string

const (
	OutcomePass         Outcome = "PASS"
	OutcomeFail         Outcome = "FAIL"
	OutcomeCompileError Outcome = "COMPILE_ERROR"
	OutcomeNoCases      Outcome = "NO_CASES"
)

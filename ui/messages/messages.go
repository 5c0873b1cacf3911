package messages

import "time"

// Msg is a marker interface for all message types
type Msg any

// CompileMsg is sent before the compiler starts
type CompileMsg struct {
	Problem string
	Args    []string
}

// ResolveCompileMsg is sent when compilation finishes or is skipped
type ResolveCompileMsg struct {
	Problem string
	OK      bool
	Skipped bool // interpreted language, nothing to build
	Output  string
}

// StartCaseMsg is sent when a case begins execution
type StartCaseMsg struct {
	Index int
	Total int
	ID    string
}

// ResolveCaseMsg is sent when a case has a verdict
type ResolveCaseMsg struct {
	Index    int
	Total    int
	ID       string
	Verdict  string
	Stdin    string
	Stdout   string
	Stderr   string
	Expected string
	ExitCode int
	Duration time.Duration
	// Truncated is set when the captured output hit the size cap.
	Truncated bool
}

// DoneMsg is sent once the problem report is complete
type DoneMsg struct {
	Problem string
	Outcome string
	Total   int
	Passed  int
}

// Package judge runs a solution against the sample cases of a problem and
// decides a verdict per case and for the problem as a whole.
package judge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chibuka/atc-cli/internal/casestore"
	"github.com/chibuka/atc-cli/internal/runner"
	"github.com/chibuka/atc-cli/ui/messages"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrSourceNotFound is returned when the solution file does not exist.
var ErrSourceNotFound = errors.New("solution source not found")

// Request names the problem to judge and how to build it.
type Request struct {
	Problem      string
	Root         string // contest directory
	Build        runner.BuildConfig
	TimeLimit    time.Duration // per case; runner.DefaultTimeLimit when zero
	BuildTimeout time.Duration // zero leaves the compiler unbounded
}

// CaseResult is the verdict of one case together with what produced it.
type CaseResult struct {
	ID       string
	Verdict  Verdict
	Result   *runner.ExecutionResult // nil when the case never ran
	Input    []byte
	Expected []byte
}

// Report is the aggregate result of one problem run. Cases are ordered by
// case identifier, never by completion order.
type Report struct {
	Problem       string
	Outcome       Outcome
	Cases         []CaseResult
	CompileOutput string
}

// OK reports whether every case passed and at least one case ran.
func (r *Report) OK() bool {
	return r.Outcome == OutcomePass
}

// Passed counts the cases judged Pass.
func (r *Report) Passed() int {
	n := 0
	for _, c := range r.Cases {
		if c.Verdict == Pass {
			n++
		}
	}
	return n
}

// Judge drives compile, execution and comparison for a problem.
type Judge struct {
	Process runner.Process
	// Notify receives progress messages. It is never called concurrently.
	Notify func(messages.Msg)
	// Parallel bounds concurrently running cases; values below 2 run them
	// one at a time.
	Parallel int
	Logger   *zap.Logger

	mu sync.Mutex
}

// Run judges one problem. Errors are returned only for run-level faults:
// an unreadable or unpaired case directory, a missing solution, or a
// compiler that cannot be started. A rejected compile is reported as
// OutcomeCompileError with no cases executed.
func (j *Judge) Run(ctx context.Context, req Request) (*Report, error) {
	log := j.logger().With(zap.String("problem", req.Problem), zap.String("run_id", uuid.NewString()))
	report := &Report{Problem: req.Problem}

	source := req.Build.SourceFile(req.Problem)
	if _, err := os.Stat(filepath.Join(req.Root, source)); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, filepath.Join(req.Root, source))
		}
		return nil, fmt.Errorf("checking solution source: %w", err)
	}

	cases, err := casestore.Load(req.Root, req.Problem)
	if err != nil {
		return nil, fmt.Errorf("loading cases: %w", err)
	}
	log.Debug("cases loaded", zap.Int("count", len(cases)))
	if len(cases) == 0 {
		report.Outcome = OutcomeNoCases
		j.done(report)
		return report, nil
	}

	if err := j.compile(ctx, req, source, report, log); err != nil {
		return nil, err
	}
	if report.Outcome == OutcomeCompileError {
		j.done(report)
		return report, nil
	}

	report.Cases = make([]CaseResult, len(cases))
	for i, tc := range cases {
		report.Cases[i] = CaseResult{ID: tc.ID, Verdict: Cancelled, Input: tc.Input, Expected: tc.Expected}
	}

	resolved := make([]bool, len(cases))
	var g errgroup.Group
	g.SetLimit(max(1, j.Parallel))
	for i, tc := range cases {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			report.Cases[i], resolved[i] = j.runCase(ctx, req, source, i, len(cases), tc, log)
			return nil
		})
	}
	_ = g.Wait()

	// cases that never started still get their line
	for i, c := range report.Cases {
		if resolved[i] {
			continue
		}
		j.notify(messages.ResolveCaseMsg{
			Index:    i,
			Total:    len(cases),
			ID:       c.ID,
			Verdict:  string(c.Verdict),
			Stdin:    string(c.Input),
			Expected: string(c.Expected),
		})
	}

	report.Outcome = aggregate(report.Cases)
	log.Debug("problem judged", zap.String("outcome", string(report.Outcome)), zap.Int("passed", report.Passed()))
	j.done(report)
	return report, nil
}

func (j *Judge) compile(ctx context.Context, req Request, source string, report *Report, log *zap.Logger) error {
	if !req.Build.Compiling {
		j.notify(messages.ResolveCompileMsg{Problem: req.Problem, OK: true, Skipped: true})
		return nil
	}

	args, err := req.Build.CompileArgs(source)
	if err != nil {
		return err
	}
	j.notify(messages.CompileMsg{Problem: req.Problem, Args: args})

	start := time.Now()
	res, err := runner.Compile(ctx, j.Process, req.Build, req.Root, source, req.BuildTimeout)
	var cerr *runner.CompileError
	switch {
	case errors.As(err, &cerr):
		log.Debug("compile failed", zap.Int("exit_code", cerr.ExitCode), zap.Bool("timed_out", cerr.TimedOut))
		report.Outcome = OutcomeCompileError
		report.CompileOutput = cerr.Output
		j.notify(messages.ResolveCompileMsg{Problem: req.Problem, Output: cerr.Output})
		return nil
	case err != nil:
		return fmt.Errorf("compiling %s: %w", source, err)
	}

	log.Debug("compiled", zap.Duration("elapsed", time.Since(start)))
	j.notify(messages.ResolveCompileMsg{Problem: req.Problem, OK: true, Output: string(res.Stdout)})
	return nil
}

// runCase executes one case. The bool reports whether a ResolveCaseMsg was
// sent for it; a case skipped on cancellation is left to the caller.
func (j *Judge) runCase(ctx context.Context, req Request, source string, index, total int, tc casestore.TestCase, log *zap.Logger) (CaseResult, bool) {
	cr := CaseResult{ID: tc.ID, Input: tc.Input, Expected: tc.Expected}
	if ctx.Err() != nil {
		cr.Verdict = Cancelled
		return cr, false
	}
	j.notify(messages.StartCaseMsg{Index: index, Total: total, ID: tc.ID})

	res, err := runner.Execute(ctx, j.Process, req.Build, req.Root, source, tc.Input, req.TimeLimit)
	switch {
	case ctx.Err() != nil:
		cr.Verdict = Cancelled
		cr.Result = res
	case err != nil:
		log.Warn("case could not be executed", zap.String("case", tc.ID), zap.Error(err))
		cr.Verdict = RuntimeError
		cr.Result = &runner.ExecutionResult{ExitCode: -1, Stderr: []byte(err.Error())}
	default:
		cr.Verdict = Classify(res, tc.Expected)
		cr.Result = res
	}

	msg := messages.ResolveCaseMsg{
		Index:    index,
		Total:    total,
		ID:       tc.ID,
		Verdict:  string(cr.Verdict),
		Stdin:    string(tc.Input),
		Expected: string(tc.Expected),
	}
	if cr.Result != nil {
		msg.Stdout = string(cr.Result.Stdout)
		msg.Stderr = string(cr.Result.Stderr)
		msg.ExitCode = cr.Result.ExitCode
		msg.Duration = cr.Result.Duration
		msg.Truncated = cr.Result.Truncated
	}
	j.notify(msg)
	return cr, true
}

// Classify decides the verdict of an execution: a timeout first, then any
// non-zero exit regardless of output, then output comparison.
func Classify(res *runner.ExecutionResult, expected []byte) Verdict {
	switch {
	case res.TimedOut:
		return TimeLimitExceeded
	case res.ExitCode != 0:
		return RuntimeError
	case Compare(expected, res.Stdout):
		return Pass
	}
	return WrongAnswer
}

func aggregate(cases []CaseResult) Outcome {
	if len(cases) == 0 {
		return OutcomeNoCases
	}
	for _, c := range cases {
		if c.Verdict != Pass {
			return OutcomeFail
		}
	}
	return OutcomePass
}

func (j *Judge) done(r *Report) {
	j.notify(messages.DoneMsg{
		Problem: r.Problem,
		Outcome: string(r.Outcome),
		Total:   len(r.Cases),
		Passed:  r.Passed(),
	})
}

func (j *Judge) notify(msg messages.Msg) {
	if j.Notify == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Notify(msg)
}

func (j *Judge) logger() *zap.Logger {
	if j.Logger == nil {
		return zap.NewNop()
	}
	return j.Logger
}

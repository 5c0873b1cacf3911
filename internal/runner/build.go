package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/shlex"
)

// BuildConfig says how to turn a solution source into something runnable.
type BuildConfig struct {
	Extension      string // e.g. ".cpp"
	Compiling      bool   // false for interpreted languages
	CompileCommand string // e.g. "g++"
	CompileFlags   string // e.g. "-std=c++17 -O2"
	ExecuteCommand string // e.g. "./a.out" or "python3 a.py"
}

// SourceFile returns the solution file name for a problem.
func (b BuildConfig) SourceFile(problem string) string {
	return problem + b.Extension
}

// CompileArgs returns the argv that compiles source.
func (b BuildConfig) CompileArgs(source string) ([]string, error) {
	cmd, err := shlex.Split(b.CompileCommand)
	if err != nil {
		return nil, fmt.Errorf("parsing compile command: %w", err)
	}
	if len(cmd) == 0 {
		return nil, fmt.Errorf("compile command is empty")
	}
	flags, err := shlex.Split(b.CompileFlags)
	if err != nil {
		return nil, fmt.Errorf("parsing compile flags: %w", err)
	}
	args := append(cmd, flags...)
	return append(args, source), nil
}

// ExecuteArgs returns the argv that runs the built solution. A "{source}"
// placeholder is replaced with the source file name.
func (b BuildConfig) ExecuteArgs(source string) ([]string, error) {
	expanded := strings.ReplaceAll(b.ExecuteCommand, "{source}", source)
	args, err := shlex.Split(expanded)
	if err != nil {
		return nil, fmt.Errorf("parsing execute command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("execute command is empty")
	}
	return args, nil
}

// CompileError reports a compiler that exited non-zero or ran out of time.
type CompileError struct {
	Output   string
	ExitCode int
	TimedOut bool
}

func (e *CompileError) Error() string {
	if e.TimedOut {
		return "compilation timed out"
	}
	return fmt.Sprintf("compilation failed (exit status %d)", e.ExitCode)
}

// Compile builds source inside dir. It returns a *CompileError when the
// compiler rejects the source and a plain error when the compiler could not
// be run at all. When build.Compiling is false it does nothing. A zero
// timeout leaves the compiler unbounded.
func Compile(ctx context.Context, proc Process, build BuildConfig, dir, source string, timeout time.Duration) (*ExecutionResult, error) {
	if !build.Compiling {
		return nil, nil
	}
	args, err := build.CompileArgs(source)
	if err != nil {
		return nil, err
	}

	res, err := proc.Spawn(ctx, Command{Args: args, Dir: dir, MergeStderr: true}, timeout)
	if err != nil {
		return nil, err
	}
	if res.TimedOut || res.ExitCode != 0 {
		return res, &CompileError{
			Output:   string(res.Stdout) + string(res.Stderr),
			ExitCode: res.ExitCode,
			TimedOut: res.TimedOut,
		}
	}
	return res, nil
}

// Execute runs the built solution once, feeding input on stdin.
func Execute(ctx context.Context, proc Process, build BuildConfig, dir, source string, input []byte, timeout time.Duration) (*ExecutionResult, error) {
	args, err := build.ExecuteArgs(source)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeLimit
	}
	return proc.Spawn(ctx, Command{Args: args, Dir: dir, Stdin: input}, timeout)
}

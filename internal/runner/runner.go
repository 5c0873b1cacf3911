// Package runner compiles solutions and runs them against test input as
// child processes.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const (
	// DefaultTimeLimit bounds a single execution when no limit is configured.
	DefaultTimeLimit = 2 * time.Second
	// DefaultMaxOutput caps captured stdout and stderr, each.
	DefaultMaxOutput = 64 << 20

	// waitDelay bounds how long Wait keeps draining pipes after a kill.
	waitDelay = 500 * time.Millisecond
)

// Command describes one child process.
type Command struct {
	Args  []string
	Dir   string
	Stdin []byte
	// MergeStderr sends stderr into the stdout buffer, in write order.
	MergeStderr bool
}

// ExecutionResult is the outcome of one child process.
type ExecutionResult struct {
	Stdout    []byte
	Stderr    []byte
	ExitCode  int
	TimedOut  bool
	Truncated bool
	Duration  time.Duration
}

// Process spawns child processes. A non-zero exit or a timeout is reported
// in the result; the error return is reserved for failures of the tool
// itself, such as a missing binary.
type Process interface {
	Spawn(ctx context.Context, c Command, timeout time.Duration) (*ExecutionResult, error)
}

// OSProcess runs commands on the host. Each child gets its own process
// group so that a timeout kills everything it started.
type OSProcess struct {
	MaxOutput int // bytes, per stream
}

func (p *OSProcess) Spawn(ctx context.Context, c Command, timeout time.Duration) (*ExecutionResult, error) {
	if len(c.Args) == 0 {
		return nil, fmt.Errorf("command is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	maxOutput := p.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	execCmd := exec.CommandContext(runCtx, c.Args[0], c.Args[1:]...)
	execCmd.Dir = c.Dir
	execCmd.Stdin = bytes.NewReader(c.Stdin)
	execCmd.SysProcAttr = sysProcAttr()
	execCmd.Cancel = func() error {
		return killProcess(execCmd.Process.Pid)
	}
	execCmd.WaitDelay = waitDelay

	var stdoutBuffer, stderrBuffer bytes.Buffer
	stdout := &limitWriter{buf: &stdoutBuffer, limit: maxOutput}
	stderr := stdout
	if !c.MergeStderr {
		stderr = &limitWriter{buf: &stderrBuffer, limit: maxOutput}
	}
	execCmd.Stdout = stdout
	execCmd.Stderr = stderr

	start := time.Now()
	err := execCmd.Run()
	elapsed := time.Since(start)
	if execCmd.Process != nil {
		// anything the solution left running in its group dies with it
		reapGroup(execCmd.Process.Pid)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result := &ExecutionResult{
		Stdout:    stdoutBuffer.Bytes(),
		Stderr:    stderrBuffer.Bytes(),
		Truncated: stdout.truncated || stderr.truncated,
		Duration:  elapsed,
	}

	if timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		return result, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
		case errors.Is(err, exec.ErrWaitDelay):
			// the program exited cleanly but left a descendant holding its pipes
		default:
			return nil, fmt.Errorf("executing %s: %w", c.Args[0], err)
		}
	}
	return result, nil
}

// limitWriter writes up to limit bytes to buf, then discards the rest and
// records that it did.
type limitWriter struct {
	buf       *bytes.Buffer
	limit     int
	truncated bool
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if len(p) > remaining {
		w.truncated = true
		if remaining > 0 {
			w.buf.Write(p[:remaining])
		}
		return len(p), nil
	}
	return w.buf.Write(p)
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Attach runs the built solution with the given streams wired straight to
// the child, for manual runs from a terminal. It returns the exit code.
func Attach(ctx context.Context, build BuildConfig, dir, source string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	args, err := build.ExecuteArgs(source)
	if err != nil {
		return -1, err
	}

	execCmd := exec.CommandContext(ctx, args[0], args[1:]...)
	execCmd.Dir = dir
	execCmd.Stdin = stdin
	execCmd.Stdout = stdout
	execCmd.Stderr = stderr
	// Stays in the foreground process group: a separate group would be
	// stopped by SIGTTIN on its first read from the terminal.
	execCmd.WaitDelay = waitDelay

	err = execCmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("executing %s: %w", args[0], err)
}

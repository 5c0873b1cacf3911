package runner

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

type fakeProcess struct {
	calls  []Command
	result *ExecutionResult
	err    error
}

func (f *fakeProcess) Spawn(_ context.Context, c Command, _ time.Duration) (*ExecutionResult, error) {
	f.calls = append(f.calls, c)
	return f.result, f.err
}

var cpp = BuildConfig{
	Extension:      ".cpp",
	Compiling:      true,
	CompileCommand: "g++",
	CompileFlags:   `-std=c++17 -O2 -DLOCAL="1"`,
	ExecuteCommand: "./a.out",
}

func TestCompileArgs(t *testing.T) {
	args, err := cpp.CompileArgs("a.cpp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"g++", "-std=c++17", "-O2", "-DLOCAL=1", "a.cpp"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("CompileArgs = %q, want %q", args, want)
	}
}

func TestCompileArgs_Empty(t *testing.T) {
	b := cpp
	b.CompileCommand = "  "
	if _, err := b.CompileArgs("a.cpp"); err == nil {
		t.Fatal("expected error for empty compile command")
	}
}

func TestExecuteArgs_SourcePlaceholder(t *testing.T) {
	b := BuildConfig{Extension: ".py", ExecuteCommand: "python3 {source}"}
	args, err := b.ExecuteArgs(b.SourceFile("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"python3", "a.py"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("ExecuteArgs = %q, want %q", args, want)
	}
}

func TestCompile_Success(t *testing.T) {
	proc := &fakeProcess{result: &ExecutionResult{}}
	if _, err := Compile(context.Background(), proc, cpp, "/contest", "a.cpp", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proc.calls) != 1 {
		t.Fatalf("Spawn called %d times, want 1", len(proc.calls))
	}
	c := proc.calls[0]
	if c.Dir != "/contest" || !c.MergeStderr {
		t.Errorf("command = %+v, want Dir=/contest and merged stderr", c)
	}
}

func TestCompile_Failure(t *testing.T) {
	proc := &fakeProcess{result: &ExecutionResult{ExitCode: 1, Stdout: []byte("a.cpp:1: error")}}
	_, err := Compile(context.Background(), proc, cpp, "", "a.cpp", 0)
	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want *CompileError", err)
	}
	if cerr.Output != "a.cpp:1: error" || cerr.ExitCode != 1 {
		t.Errorf("CompileError = %+v", cerr)
	}
}

func TestCompile_Timeout(t *testing.T) {
	proc := &fakeProcess{result: &ExecutionResult{TimedOut: true, ExitCode: -1}}
	_, err := Compile(context.Background(), proc, cpp, "", "a.cpp", time.Second)
	var cerr *CompileError
	if !errors.As(err, &cerr) || !cerr.TimedOut {
		t.Fatalf("err = %v, want timed out *CompileError", err)
	}
}

func TestCompile_ToolError(t *testing.T) {
	proc := &fakeProcess{err: errors.New("executing g++: not found")}
	_, err := Compile(context.Background(), proc, cpp, "", "a.cpp", 0)
	var cerr *CompileError
	if err == nil || errors.As(err, &cerr) {
		t.Fatalf("err = %v, want plain error", err)
	}
}

func TestCompile_Interpreted(t *testing.T) {
	proc := &fakeProcess{}
	b := BuildConfig{Extension: ".py", ExecuteCommand: "python3 {source}"}
	if _, err := Compile(context.Background(), proc, b, "", "a.py", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proc.calls) != 0 {
		t.Errorf("Spawn called %d times, want 0", len(proc.calls))
	}
}

func TestExecute_DefaultTimeLimit(t *testing.T) {
	var got time.Duration
	proc := processFunc(func(_ context.Context, c Command, timeout time.Duration) (*ExecutionResult, error) {
		got = timeout
		if !bytes.Equal(c.Stdin, []byte("3\n")) {
			t.Errorf("Stdin = %q, want %q", c.Stdin, "3\n")
		}
		return &ExecutionResult{}, nil
	})
	if _, err := Execute(context.Background(), proc, cpp, "", "a.cpp", []byte("3\n"), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultTimeLimit {
		t.Errorf("timeout = %v, want %v", got, DefaultTimeLimit)
	}
}

type processFunc func(ctx context.Context, c Command, timeout time.Duration) (*ExecutionResult, error)

func (f processFunc) Spawn(ctx context.Context, c Command, timeout time.Duration) (*ExecutionResult, error) {
	return f(ctx, c, timeout)
}

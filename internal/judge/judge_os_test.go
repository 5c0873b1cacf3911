//go:build !windows

package judge

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/chibuka/atc-cli/internal/casestore"
	"github.com/chibuka/atc-cli/internal/runner"
)

var shell = runner.BuildConfig{Extension: ".sh", ExecuteCommand: "sh {source}"}

func shellContest(t *testing.T, script string, cases map[string][2]string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.sh"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(casestore.ProblemDir(root, "a"), 0o755); err != nil {
		t.Fatal(err)
	}
	for id, pair := range cases {
		if err := os.WriteFile(casestore.InputPath(root, "a", id), []byte(pair[0]), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(casestore.OutputPath(root, "a", id), []byte(pair[1]), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRunOS_DoublingSolution(t *testing.T) {
	root := shellContest(t, "read n\necho $((n * 2))\n", map[string][2]string{
		"1": {"3\n", "6\n"},
		"2": {"5\n", "11\n"},
	})
	report, err := (&Judge{Process: &runner.OSProcess{}}).Run(context.Background(), Request{Problem: "a", Root: root, Build: shell})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []verdictPair{{"1", Pass}, {"2", WrongAnswer}}
	if got := verdicts(report); !reflect.DeepEqual(got, want) {
		t.Errorf("verdicts = %v, want %v", got, want)
	}
}

func TestRunOS_TimeLimit(t *testing.T) {
	root := shellContest(t, "read n\nif [ \"$n\" = 0 ]; then sleep 30; fi\necho $((n * 2))\n", map[string][2]string{
		"1": {"0\n", "0\n"},
		"2": {"2\n", "4\n"},
	})
	start := time.Now()
	report, err := (&Judge{Process: &runner.OSProcess{}}).Run(context.Background(), Request{
		Problem:   "a",
		Root:      root,
		Build:     shell,
		TimeLimit: 300 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("run took %v, the sleeping case was not killed", elapsed)
	}
	want := []verdictPair{{"1", TimeLimitExceeded}, {"2", Pass}}
	if got := verdicts(report); !reflect.DeepEqual(got, want) {
		t.Errorf("verdicts = %v, want %v", got, want)
	}
}

func TestRunOS_CompileError(t *testing.T) {
	root := shellContest(t, "echo 1\n", map[string][2]string{"1": {"", "1\n"}})
	build := shell
	build.Compiling = true
	build.CompileCommand = "sh -c"
	build.CompileFlags = `"echo broken >&2; exit 1"`

	report, err := (&Judge{Process: &runner.OSProcess{}}).Run(context.Background(), Request{Problem: "a", Root: root, Build: build})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Outcome != OutcomeCompileError || len(report.Cases) != 0 {
		t.Errorf("Outcome = %s with %d cases, want COMPILE_ERROR with none", report.Outcome, len(report.Cases))
	}
	if report.CompileOutput != "broken\n" {
		t.Errorf("CompileOutput = %q", report.CompileOutput)
	}
}

package cmd

import (
	"context"
	"io"
	"time"

	"github.com/chibuka/atc-cli/internal/judge"
	"github.com/chibuka/atc-cli/internal/runner"
	"github.com/chibuka/atc-cli/ui"
)

// judgeProblem compiles and runs problem against its sample cases, rendering
// progress to w. A zero timeLimit falls back to the configured one.
func judgeProblem(ctx context.Context, e *env, problem string, w io.Writer, timeLimit time.Duration, parallel int) (*judge.Report, error) {
	if timeLimit <= 0 {
		timeLimit = e.cfg.Language.TimeLimit
	}

	renderer := ui.NewRenderer(w)
	j := &judge.Judge{
		Process:  &runner.OSProcess{},
		Notify:   renderer.Handle,
		Parallel: parallel,
		Logger:   e.logger,
	}
	return j.Run(ctx, judge.Request{
		Problem:      problem,
		Root:         e.root,
		Build:        e.cfg.Build(),
		TimeLimit:    timeLimit,
		BuildTimeout: e.cfg.Language.BuildTimeout,
	})
}

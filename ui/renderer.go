package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chibuka/atc-cli/internal/judge"
	"github.com/chibuka/atc-cli/ui/messages"
)

var (
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	gray   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

const indent = "     "

// maxShownLines caps how much of a failing case's input and output is printed.
const maxShownLines = 20

// Renderer prints judge progress as it happens. Handle is meant to be used
// as judge.Judge.Notify.
type Renderer struct {
	w        io.Writer
	resolved int
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Handle renders one progress message
func (r *Renderer) Handle(msg messages.Msg) {
	switch msg := msg.(type) {
	case messages.CompileMsg:
		fmt.Fprintln(r.w, cyan.Render("● ")+"Problem "+msg.Problem)
		fmt.Fprintln(r.w, indent+gray.Render("$ "+strings.Join(msg.Args, " ")))

	case messages.ResolveCompileMsg:
		switch {
		case msg.Skipped:
			fmt.Fprintln(r.w, cyan.Render("● ")+"Problem "+msg.Problem)
		case !msg.OK:
			fmt.Fprintln(r.w, indent+red.Render("CE")+" compilation failed")
			r.block(red, msg.Output)
		case msg.Output != "" && !isBuildNoise(msg.Output):
			// warnings from a successful build
			r.block(gray, msg.Output)
		}
		r.resolved = 0

	case messages.ResolveCaseMsg:
		r.resolved++
		r.displayCase(msg, r.resolved == msg.Total)

	case messages.DoneMsg:
		r.summary(msg)
	}
}

// isBuildNoise checks if output contains only build chatter (not warnings or errors)
func isBuildNoise(output string) bool {
	buildPatterns := []string{
		"Finished",
		"Compiling",
		"Running",
		"Build succeeded",
		"Build complete",
	}

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		isBuild := false
		for _, pattern := range buildPatterns {
			if strings.Contains(trimmed, pattern) {
				isBuild = true
				break
			}
		}
		if !isBuild {
			return false
		}
	}
	return true
}

// displayCase prints a completed case; details only for failures
func (r *Renderer) displayCase(msg messages.ResolveCaseMsg, isLast bool) {
	connector := "├─"
	if isLast {
		connector = "└─"
	}

	v := judge.Verdict(msg.Verdict)
	style := red
	switch v {
	case judge.Pass:
		style = green
	case judge.TimeLimitExceeded, judge.RuntimeError, judge.Cancelled:
		style = yellow
	}

	icon := red.Render("✗")
	if v == judge.Pass {
		icon = green.Render("✓")
	}
	fmt.Fprintf(r.w, "  %s %s %s %s %s\n", connector, icon, style.Render(fmt.Sprintf("%-3s", v.Label())),
		msg.ID, gray.Render(formatDuration(msg.Duration)))

	switch v {
	case judge.Pass, judge.Cancelled:
		return
	case judge.WrongAnswer:
		if line, want, got, ok := judge.Diff([]byte(msg.Expected), []byte(msg.Stdout)); ok {
			fmt.Fprintf(r.w, "%s%s\n", indent, gray.Render(fmt.Sprintf("first difference at line %d: want %q, got %q", line, want, got)))
		}
	case judge.RuntimeError:
		fmt.Fprintf(r.w, "%s%s\n", indent, gray.Render(fmt.Sprintf("exit status %d", msg.ExitCode)))
	}
	if msg.Truncated {
		fmt.Fprintln(r.w, indent+yellow.Render("output truncated at the capture limit; the rest was discarded"))
	}

	fmt.Fprintln(r.w)
	r.section("input", msg.Stdin)
	r.section("expected", msg.Expected)
	r.section("output", msg.Stdout)
	if strings.TrimSpace(msg.Stderr) != "" {
		fmt.Fprintln(r.w, indent+red.Render("stderr:"))
		r.block(red, msg.Stderr)
	}
}

func (r *Renderer) section(title, body string) {
	fmt.Fprintln(r.w, indent+cyan.Render(title+":"))
	if strings.TrimSpace(body) == "" {
		fmt.Fprintln(r.w, indent+gray.Render("  (empty)"))
		return
	}
	r.block(gray, body)
}

func (r *Renderer) block(style lipgloss.Style, body string) {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i, line := range lines {
		if i == maxShownLines {
			fmt.Fprintln(r.w, indent+style.Render(fmt.Sprintf("  ... %d more lines", len(lines)-maxShownLines)))
			break
		}
		fmt.Fprintln(r.w, indent+style.Render("  "+line))
	}
}

func (r *Renderer) summary(msg messages.DoneMsg) {
	fmt.Fprintln(r.w)
	switch judge.Outcome(msg.Outcome) {
	case judge.OutcomePass:
		fmt.Fprintln(r.w, green.Render(fmt.Sprintf("✓ All %d cases passed!", msg.Total)))
	case judge.OutcomeNoCases:
		fmt.Fprintln(r.w, yellow.Render(fmt.Sprintf("✗ No test cases found for problem %s", msg.Problem)))
	case judge.OutcomeCompileError:
		fmt.Fprintln(r.w, red.Render("✗ Compile error, no cases were run"))
	default:
		fmt.Fprintln(r.w, red.Render(fmt.Sprintf("✗ %d/%d cases passed", msg.Passed, msg.Total)))
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return fmt.Sprintf("(%dms)", d.Milliseconds())
}

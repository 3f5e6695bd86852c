package remote

import (
	"context"
	"fmt"
	"strings"
)

// Executor runs a single backend command
type Executor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// Step is the result of one executed script line
type Step struct {
	Line    int    `json:"line"`
	Command string `json:"command"`
	Output  string `json:"output"`
}

// CommandError reports the script line whose command failed
type CommandError struct {
	Line    int
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Runner executes console scripts one command at a time
type Runner struct {
	exec     Executor
	maxLines int
}

// NewRunner creates a runner. maxLines caps the number of commands per
// script; 0 means no limit.
func NewRunner(exec Executor, maxLines int) *Runner {
	return &Runner{exec: exec, maxLines: maxLines}
}

// Commands returns the executable lines of script: trimmed, without blanks
// and "#" comments, paired with their 1-based line numbers.
func Commands(script string) []Step {
	var steps []Step
	for i, raw := range strings.Split(script, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		steps = append(steps, Step{Line: i + 1, Command: line})
	}
	return steps
}

// Run executes every command of script in order and returns the
// concatenated output, each non-empty output followed by a newline. The
// first failure aborts the run. onStep, when non-nil, is called after every
// successful command.
func (r *Runner) Run(ctx context.Context, script string, onStep func(Step)) (string, error) {
	steps := Commands(script)
	if len(steps) == 0 {
		return "", ErrEmptyScript
	}
	if r.maxLines > 0 && len(steps) > r.maxLines {
		return "", fmt.Errorf("%w: %d, limit is %d", ErrScriptTooLong, len(steps), r.maxLines)
	}

	var out strings.Builder
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		output, err := r.exec.Execute(ctx, step.Command)
		if err != nil {
			return "", &CommandError{Line: step.Line, Command: step.Command, Err: err}
		}
		if output != "" {
			out.WriteString(output)
			out.WriteByte('\n')
		}

		if onStep != nil {
			step.Output = output
			onStep(step)
		}
	}
	return out.String(), nil
}

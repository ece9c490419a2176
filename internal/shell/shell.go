// Package shell runs the --execute command template once per listed file.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Placeholder is replaced by the quoted file path.
const Placeholder = "{}"

const promptSuffix = " (y[es],n[o],a[ll],q[uit])? "

// ErrQuit is returned when the user answers "q" at a prompt. It ends the run
// without error.
var ErrQuit = errors.New("quit requested")

// CommandError reports a command that ran but failed.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed: %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Runner runs one shell script.
type Runner interface {
	Run(ctx context.Context, script string) error
}

// ShellRunner runs scripts with sh -c on the given streams.
type ShellRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes script and waits for it.
func (r *ShellRunner) Run(ctx context.Context, script string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", script)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Command is a parsed --execute template.
type Command struct {
	template string
	prompt   bool

	in     *bufio.Reader
	out    io.Writer
	runner Runner
}

// Parse validates text. A leading '+' turns prompting off.
func Parse(text string) (*Command, error) {
	prompt := true
	if strings.HasPrefix(text, "+") {
		prompt = false
		text = text[1:]
	}
	if !strings.Contains(text, Placeholder) {
		return nil, fmt.Errorf("COMMAND must contain '%s' placeholder string", Placeholder)
	}
	return &Command{template: text, prompt: prompt}, nil
}

// Bind attaches the prompt streams and runner. It must be called before
// Execute.
func (c *Command) Bind(in io.Reader, out io.Writer, runner Runner) *Command {
	c.in = bufio.NewReader(in)
	c.out = out
	c.runner = runner
	return c
}

// Prompting reports whether the user is still asked before each run.
func (c *Command) Prompting() bool {
	return c.prompt
}

// Expand substitutes the quoted path into the template.
func (c *Command) Expand(path string) string {
	return strings.ReplaceAll(c.template, Placeholder, Quote(path))
}

// Execute runs the command for path, prompting first when enabled.
// Answering "a" runs this and every later command without asking.
func (c *Command) Execute(ctx context.Context, path string) error {
	script := c.Expand(path)
	if c.prompt {
		run, err := c.ask(ctx, script)
		if err != nil || !run {
			return err
		}
	} else {
		fmt.Fprintln(c.out, script)
	}
	if err := c.runner.Run(ctx, script); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &CommandError{Command: script, Err: err}
	}
	return nil
}

func (c *Command) ask(ctx context.Context, script string) (bool, error) {
	fmt.Fprint(c.out, script+promptSuffix)
	line, err := c.readLine(ctx)
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return false, ErrQuit
		}
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		answer = "n"
	}
	switch answer[0] {
	case 'n':
		return false, nil
	case 'q':
		return false, ErrQuit
	case 'a':
		c.prompt = false
	}
	return true, nil
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one answer, giving up when ctx is done. An abandoned read
// keeps its goroutine until the input yields a line or closes.
func (c *Command) readLine(ctx context.Context) (string, error) {
	done := make(chan lineResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		done <- lineResult{line: line, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.line, r.err
	}
}

// Quote wraps s in single quotes for sh, escaping embedded quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ErrCancelled is returned when the user interrupts a prompt (end of input or
// a cancelled context).
var ErrCancelled = errors.New("prompt cancelled")

// Option is one entry of a Select menu.
type Option struct {
	Label string // shown to the user, may contain colour codes
	Value string // returned when chosen
}

// Input describes a free-text question.
type Input struct {
	Message  string
	Default  string
	Validate func(string) error // nil accepts anything
}

// Prompter is the question/answer collaborator of the scaffold flow.
type Prompter interface {
	Input(ctx context.Context, q Input) (string, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
	Select(ctx context.Context, message string, options []Option) (string, error)
}

var (
	questionMark = color.New(color.FgCyan).Sprint("?")
	errorMark    = color.New(color.FgRed).Sprint("✖")
)

type lineResult struct {
	text string
	err  error
}

// Terminal implements Prompter over a reader and a writer. Input is read a
// byte at a time, and only while a question is waiting for an answer, so
// nothing past the last answer is consumed and the reader can be handed to a
// child process once prompting is over.
type Terminal struct {
	out       io.Writer
	in        io.Reader
	req       chan struct{}
	res       chan lineResult
	done      chan struct{}
	start     sync.Once
	closeOnce sync.Once
}

// NewTerminal returns a Terminal reading answers from r and writing questions to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{
		out:  w,
		in:   r,
		req:  make(chan struct{}),
		res:  make(chan lineResult, 1),
		done: make(chan struct{}),
	}
}

// Close stops the reader goroutine. Questions asked afterwards return
// ErrCancelled. Close is safe to call more than once.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() { close(t.done) })
	return nil
}

// Input asks a free-text question. An empty answer selects the default. A
// validation failure is printed and the question is asked again.
func (t *Terminal) Input(ctx context.Context, q Input) (string, error) {
	for {
		if q.Default != "" {
			fmt.Fprintf(t.out, "%s %s (%s): ", questionMark, q.Message, q.Default)
		} else {
			fmt.Fprintf(t.out, "%s %s: ", questionMark, q.Message)
		}

		answer, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = q.Default
		}
		if q.Validate != nil {
			if verr := q.Validate(answer); verr != nil {
				fmt.Fprintf(t.out, "  %s %v\n", errorMark, verr)
				continue
			}
		}
		return answer, nil
	}
}

// Confirm asks a yes/no question. An empty answer selects def.
func (t *Terminal) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(t.out, "%s %s (%s) ", questionMark, message, hint)

		answer, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintf(t.out, "  %s please answer y or n\n", errorMark)
	}
}

// Select presents a numbered menu and returns the chosen option's Value.
// An empty answer selects the first option.
func (t *Terminal) Select(ctx context.Context, message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("select %q: no options", message)
	}
	for {
		fmt.Fprintf(t.out, "%s %s\n", questionMark, message)
		for i, o := range options {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, o.Label)
		}
		fmt.Fprintf(t.out, "Enter number [1-%d] (1): ", len(options))

		answer, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return options[0].Value, nil
		}
		num, err := strconv.Atoi(answer)
		if err == nil && num >= 1 && num <= len(options) {
			return options[num-1].Value, nil
		}
		fmt.Fprintf(t.out, "  %s invalid selection %q: choose 1-%d\n", errorMark, answer, len(options))
	}
}

// readLine returns the next trimmed line. End of input and context
// cancellation both surface as ErrCancelled.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		return "", ErrCancelled
	default:
	}
	t.start.Do(func() { go t.pump() })

	select {
	case t.req <- struct{}{}:
	case <-t.done:
		return "", ErrCancelled
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return "", ErrCancelled
	}

	select {
	case r := <-t.res:
		if r.err != nil && (r.err != io.EOF || r.text == "") {
			fmt.Fprintln(t.out)
			if r.err == io.EOF {
				return "", ErrCancelled
			}
			return "", fmt.Errorf("reading answer: %w", r.err)
		}
		return strings.TrimSpace(r.text), nil
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return "", ErrCancelled
	}
}

func (t *Terminal) pump() {
	for {
		select {
		case <-t.req:
		case <-t.done:
			return
		}
		text, err := t.line()
		select {
		case t.res <- lineResult{text: text, err: err}:
		case <-t.done:
			return
		}
	}
}

// line reads up to and including the next newline without reading ahead.
func (t *Terminal) line() (string, error) {
	var (
		b   strings.Builder
		buf [1]byte
	)
	for {
		n, err := t.in.Read(buf[:])
		if n > 0 {
			b.WriteByte(buf[0])
			if buf[0] == '\n' {
				return b.String(), nil
			}
		}
		if err != nil {
			return b.String(), err
		}
	}
}

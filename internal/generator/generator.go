package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"text/template"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
)

// Request is one generator invocation.
type Request struct {
	Dir      string // working directory; the project is created beneath it
	Name     string // project directory name as given by the user
	Template string // catalog template id
}

// Generator produces the base project for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) error
}

// ExitError reports a generator that ran but exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("generator %q exited with code %d", e.Command, e.ExitCode)
}

// Exec runs a command line rendered from a text/template. The template sees
// the Request fields and a quote function for shell-safe arguments, e.g.
//
//	npm create vite@latest {{quote .Name}} -- --template {{quote .Template}}
type Exec struct {
	Command string

	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Log zerolog.Logger
}

var funcs = template.FuncMap{
	"quote": func(s string) string { return shellquote.Join(s) },
}

// Argv renders the command template for req and splits it into arguments.
func (e *Exec) Argv(req Request) ([]string, error) {
	tmpl, err := template.New("generator").Funcs(funcs).Option("missingkey=error").Parse(e.Command)
	if err != nil {
		return nil, fmt.Errorf("parsing generator command: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return nil, fmt.Errorf("rendering generator command: %w", err)
	}
	argv, err := shellquote.Split(buf.String())
	if err != nil {
		return nil, fmt.Errorf("splitting generator command %q: %w", buf.String(), err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("generator command is empty")
	}
	return argv, nil
}

// Generate runs the generator and waits for it to exit.
func (e *Exec) Generate(ctx context.Context, req Request) error {
	argv, err := e.Argv(req)
	if err != nil {
		return err
	}

	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("generator %q not found: %w", argv[0], err)
	}

	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Dir = req.Dir
	cmd.Stdin = orDefault[io.Reader](e.Stdin, os.Stdin)
	cmd.Stdout = orDefault[io.Writer](e.Stdout, os.Stdout)
	cmd.Stderr = orDefault[io.Writer](e.Stderr, os.Stderr)

	line := strings.Join(argv, " ")
	e.Log.Debug().Str("command", line).Str("dir", req.Dir).Msg("Running generator")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: line, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("running generator %q: %w", line, err)
	}
	return nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

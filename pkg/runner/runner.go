// Package runner executes an assembled script. POSIX shell output runs
// in-process through the mvdan.cc/sh interpreter; batchfile output is
// written to a temp file and handed to the operating system. Execution is
// entirely outside the engine: the compiler and assembler never depend on
// this package.
package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/arthur-debert/scrub/pkg/assembler"
	"github.com/arthur-debert/scrub/pkg/collection"
	"github.com/arthur-debert/scrub/pkg/logging"
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// Runner executes assembled scripts.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Runner wired to the process's standard streams.
func New() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Validate parses script as POSIX shell and reports syntax errors without
// executing anything. Batchfile payloads are opaque and always pass.
func Validate(script string, scripting collection.ScriptingDefinition) error {
	if scripting.Language == "batchfile" {
		return nil
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), "script"); err != nil {
		return scruberr.Wrap(err, scruberr.ErrExec, "assembled script has a syntax error")
	}
	return nil
}

// Run executes the script and returns its exit status.
func (r *Runner) Run(ctx context.Context, script string, scripting collection.ScriptingDefinition) (int, error) {
	if scripting.Language == "batchfile" {
		return r.runExternal(ctx, script, scripting)
	}
	return r.runShell(ctx, script)
}

// runShell executes a POSIX script with the embedded interpreter.
func (r *Runner) runShell(ctx context.Context, script string) (int, error) {
	log := logging.GetLogger("runner")

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return 1, scruberr.Wrap(err, scruberr.ErrExec, "failed to parse assembled script")
	}

	shell, err := interp.New(
		interp.StdIO(r.Stdin, r.Stdout, r.Stderr),
	)
	if err != nil {
		return 1, scruberr.Wrap(err, scruberr.ErrExec, "failed to create shell interpreter")
	}

	log.Info().Int("bytes", len(script)).Msg("Executing script with embedded shell")
	if err := shell.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return int(exitStatus), nil
		}
		return 1, scruberr.Wrap(err, scruberr.ErrExec, "script execution failed")
	}
	return 0, nil
}

// runExternal writes the script to a temp file and spawns it, for script
// languages the embedded interpreter cannot run.
func (r *Runner) runExternal(ctx context.Context, script string, scripting collection.ScriptingDefinition) (int, error) {
	log := logging.GetLogger("runner")

	path := filepath.Join(os.TempDir(), assembler.Filename("scrub", scripting))

	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		return 1, scruberr.Wrapf(err, scruberr.ErrExec, "failed to write script file %s", path)
	}
	defer func() { _ = os.Remove(path) }()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", path)
	} else {
		cmd = exec.CommandContext(ctx, path)
	}
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	log.Info().Str("path", path).Msg("Executing script file")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, scruberr.Wrap(err, scruberr.ErrExec, "script execution failed")
	}
	return 0, nil
}

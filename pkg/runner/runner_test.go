// Test Type: Unit Test
// Description: Tests for the runner package - script validation and
// in-process shell execution

package runner_test

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scrub/pkg/collection"
	"github.com/arthur-debert/scrub/pkg/runner"
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

var shellScripting = collection.ScriptingDefinition{Language: "shellscript"}

func newRunner() (*runner.Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	r := &runner.Runner{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return r, &stdout, &stderr
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr bool
	}{
		{
			name:   "valid_script",
			script: "echo hello\nexit 0\n",
		},
		{
			name:    "unterminated_if",
			script:  "if true; then\necho broken\n",
			wantErr: true,
		},
		{
			name:    "unbalanced_quote",
			script:  "echo \"oops\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runner.Validate(tt.script, shellScripting)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, scruberr.IsCode(err, scruberr.ErrExec))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_BatchfileIsOpaque(t *testing.T) {
	batch := collection.ScriptingDefinition{Language: "batchfile"}

	// Batch syntax is not shell syntax; it always passes validation.
	err := runner.Validate("if exist x (\n", batch)
	assert.NoError(t, err)
}

func TestRun_CapturesOutput(t *testing.T) {
	r, stdout, _ := newRunner()

	code, err := r.Run(context.Background(), "echo --- Clear history\necho done\n", shellScripting)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "--- Clear history\ndone\n", stdout.String())
}

func TestRun_PropagatesExitStatus(t *testing.T) {
	r, _, _ := newRunner()

	code, err := r.Run(context.Background(), "exit 3\n", shellScripting)
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestRun_ExternalScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("spawns the script through a shebang")
	}

	batch := collection.ScriptingDefinition{Language: "batchfile", FileExtension: "bat"}
	r, stdout, _ := newRunner()

	// Batchfile payloads are spawned from a temp file named after the
	// collection's extension rather than run in-process.
	code, err := r.Run(context.Background(), "#!/bin/sh\necho external\nexit 4\n", batch)
	require.NoError(t, err)
	assert.Equal(t, 4, code)
	assert.Equal(t, "external\n", stdout.String())
}

func TestRun_SyntaxErrorFails(t *testing.T) {
	r, _, _ := newRunner()

	_, err := r.Run(context.Background(), "if true; then\n", shellScripting)
	require.Error(t, err)
	assert.True(t, scruberr.IsCode(err, scruberr.ErrExec))
}

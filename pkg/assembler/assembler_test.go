// Test Type: Unit Test
// Description: Tests for the assembler package - script framing, line
// endings, and global variable substitution

package assembler_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scrub/pkg/assembler"
	"github.com/arthur-debert/scrub/pkg/collection"
	"github.com/arthur-debert/scrub/pkg/compiler"
)

var shellScripting = collection.ScriptingDefinition{
	Language:  "shellscript",
	StartCode: "#!/usr/bin/env bash",
	EndCode:   "exit 0",
}

func TestAssemble_ShellScript(t *testing.T) {
	fragments := []compiler.Fragment{
		{ScriptName: "Clear history", Body: "rm -f ~/.bash_history"},
		{ScriptName: "Flush DNS", Body: "resolvectl flush-caches"},
	}

	script := assembler.Assemble(fragments, shellScripting, assembler.Options{})

	lines := strings.Split(script, "\n")
	assert.Equal(t, "#!/usr/bin/env bash", lines[0])
	assert.True(t, strings.HasSuffix(script, "exit 0\n"))
	assert.NotContains(t, script, "\r\n")

	// Fragments keep compiler order and each is framed with an echo marker.
	assert.Contains(t, script, "echo --- Clear history")
	assert.Contains(t, script, "echo --- Flush DNS")
	assert.Less(t,
		strings.Index(script, "rm -f ~/.bash_history"),
		strings.Index(script, "resolvectl flush-caches"))
}

func TestAssemble_BannerFraming(t *testing.T) {
	fragments := []compiler.Fragment{{ScriptName: "Flush DNS", Body: "flush"}}

	script := assembler.Assemble(fragments, shellScripting, assembler.Options{})

	rule := "# " + strings.Repeat("-", 60)
	assert.Contains(t, script, rule)

	// The title line is centered within the rule width.
	var title string
	for _, line := range strings.Split(script, "\n") {
		if strings.Contains(line, "Flush DNS") && strings.HasPrefix(line, "# -") {
			title = line
			break
		}
	}
	require.NotEmpty(t, title)
	assert.Len(t, title, len(rule))
}

func TestAssemble_BannerWidthWithNonASCIIName(t *testing.T) {
	fragments := []compiler.Fragment{{ScriptName: "ترقية über café", Body: "x"}}

	script := assembler.Assemble(fragments, shellScripting, assembler.Options{})

	// Banner width is counted in runes, so multi-byte names still line up
	// with the dashed rules.
	ruleWidth := utf8.RuneCountInString("# " + strings.Repeat("-", 60))
	for _, line := range strings.Split(script, "\n") {
		if strings.Contains(line, "café") && strings.HasPrefix(line, "# -") {
			assert.Equal(t, ruleWidth, utf8.RuneCountInString(line))
			return
		}
	}
	t.Fatal("banner title line not found")
}

func TestAssemble_BatchfileUsesCRLFAndDoubleColon(t *testing.T) {
	batch := collection.ScriptingDefinition{
		Language:  "batchfile",
		StartCode: "@echo off",
		EndCode:   "exit /b 0",
	}
	fragments := []compiler.Fragment{{ScriptName: "Clear temp", Body: "del /q %TEMP%"}}

	script := assembler.Assemble(fragments, batch, assembler.Options{})

	assert.True(t, strings.HasPrefix(script, "@echo off\r\n"))
	assert.Contains(t, script, ":: ")
	assert.NotContains(t, script, "\n#")
	assert.NotRegexp(t, `[^\r]\n`, script)
}

func TestAssemble_RevertSuffix(t *testing.T) {
	fragments := []compiler.Fragment{{ScriptName: "Disable tracking", Body: "undo"}}

	script := assembler.Assemble(fragments, shellScripting, assembler.Options{Revert: true})

	assert.Contains(t, script, "Disable tracking (revert)")
	assert.Contains(t, script, "echo --- Disable tracking (revert)")
}

func TestAssemble_GlobalSubstitution(t *testing.T) {
	scripting := collection.ScriptingDefinition{
		Language:  "shellscript",
		StartCode: "# {{ $homepage }} -- {{ $date }} (v{{ $version }})",
		EndCode:   "echo done",
	}
	date := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	script := assembler.Assemble(nil, scripting, assembler.Options{
		Metadata: assembler.Metadata{
			Homepage: "https://example.com",
			Version:  "1.2.3",
			Date:     date,
		},
	})

	assert.Contains(t, script, "https://example.com")
	assert.Contains(t, script, "(v1.2.3)")
	assert.Contains(t, script, date.Format(time.RFC1123Z))
	assert.NotContains(t, script, "{{ $")
}

func TestAssemble_FragmentBodyIsNeverAltered(t *testing.T) {
	// Payload text that happens to contain global markers stays literal.
	fragments := []compiler.Fragment{
		{ScriptName: "s", Body: `echo "{{ $homepage }}"`},
	}

	script := assembler.Assemble(fragments, shellScripting, assembler.Options{
		Metadata: assembler.Metadata{Homepage: "https://example.com"},
	})

	assert.Contains(t, script, `echo "{{ $homepage }}"`)
}

func TestFilename(t *testing.T) {
	withExt := collection.ScriptingDefinition{FileExtension: "sh"}
	assert.Equal(t, "scrub.sh", assembler.Filename("scrub", withExt))

	noExt := collection.ScriptingDefinition{}
	assert.Equal(t, "scrub", assembler.Filename("scrub", noExt))
}

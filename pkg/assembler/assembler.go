// Package assembler joins compiled fragments into the final executable
// script text. Formatting concerns (the header and footer from the
// collection's scripting definition, comment banners, and line endings)
// are applied uniformly at this boundary; a fragment's own text is never
// altered.
package assembler

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arthur-debert/scrub/pkg/collection"
	"github.com/arthur-debert/scrub/pkg/compiler"
)

const bannerWidth = 60

// Metadata supplies the global variables substituted into the scripting
// definition's start and end code.
type Metadata struct {
	Homepage string
	Version  string
	// Date is pinned per compilation so a single run is deterministic.
	Date time.Time
}

// Options control assembly of one script.
type Options struct {
	// Revert marks fragment banners with a "(revert)" suffix.
	Revert bool
	// Metadata fills {{ $homepage }}, {{ $version }} and {{ $date }} in
	// the start and end code.
	Metadata Metadata
}

// Assemble concatenates resolved fragments in compiler-yielded order,
// framed by the collection's start and end code. Batchfile collections get
// CRLF line endings and "::" comment banners; everything else gets LF and
// "#".
func Assemble(fragments []compiler.Fragment, scripting collection.ScriptingDefinition, opts Options) string {
	batch := scripting.Language == "batchfile"

	leader := "#"
	if batch {
		leader = "::"
	}

	blocks := make([]string, 0, len(fragments)+2)
	if header := substituteGlobals(scripting.StartCode, opts.Metadata); header != "" {
		blocks = append(blocks, header)
	}
	for _, fragment := range fragments {
		blocks = append(blocks, frame(fragment, leader, opts.Revert))
	}
	if footer := substituteGlobals(scripting.EndCode, opts.Metadata); footer != "" {
		blocks = append(blocks, footer)
	}

	script := strings.Join(blocks, "\n\n") + "\n"
	if batch {
		script = strings.ReplaceAll(script, "\n", "\r\n")
	}
	return script
}

// frame wraps a fragment's body in comment banners naming the script and
// an echo marker, so generated scripts narrate their progress when run.
func frame(fragment compiler.Fragment, leader string, revert bool) string {
	name := fragment.ScriptName
	if revert {
		name += " (revert)"
	}

	rule := leader + " " + center("", bannerWidth)
	title := leader + " " + center(name, bannerWidth)

	return strings.Join([]string{
		rule,
		title,
		rule,
		"echo --- " + name,
		fragment.Body,
		rule,
	}, "\n")
}

// center pads s with dashes on both sides to the given width, counted in
// runes so non-ASCII names line up. Longer names are left as-is.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat("-", left) + s + strings.Repeat("-", right)
}

// substituteGlobals fills the global variables supported in start and end
// code. Unknown markers are left untouched: the header is opaque payload
// text like any other.
func substituteGlobals(code string, meta Metadata) string {
	date := meta.Date
	if date.IsZero() {
		date = time.Now()
	}
	code = strings.ReplaceAll(code, "{{ $date }}", date.Format(time.RFC1123Z))
	code = strings.ReplaceAll(code, "{{ $homepage }}", meta.Homepage)
	code = strings.ReplaceAll(code, "{{ $version }}", meta.Version)
	return code
}

// Filename suggests a file name for an assembled script, honoring the
// collection's declared extension.
func Filename(base string, scripting collection.ScriptingDefinition) string {
	if scripting.FileExtension == "" {
		return base
	}
	return fmt.Sprintf("%s.%s", base, scripting.FileExtension)
}

package collection

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// Pipes transform substituted argument text. They exist for collections
// whose payloads embed one scripting language inside another, e.g. a
// PowerShell block inlined into a single batchfile line.

var (
	psCommentRe  = regexp.MustCompile(`<#\s*(.*?)#>|#\s*(.*)`)
	psHereDocRe  = regexp.MustCompile(`@(['"])\s*(?:\r\n|\r|\n)((?s:.+?))(?:\r\n|\r|\n)['"]@`)
	psBacktickRe = regexp.MustCompile(" +`\\s*(?:\r\n|\r|\n)\\s*")
	newlineRe    = regexp.MustCompile(`\r\n|\r|\n`)
)

// applyPipe applies the named pipe to text. Unknown pipe names are an
// UNKNOWN_PIPE error rather than a pass-through, so a typo in a document
// cannot silently emit untransformed code.
func applyPipe(name, text string) (string, error) {
	switch name {
	case "escapeDoubleQuotes":
		return strings.ReplaceAll(text, `"`, `"^""`), nil
	case "inlinePowerShell":
		return inlinePowerShell(text), nil
	default:
		return "", scruberr.Newf(scruberr.ErrUnknownPipe, "unknown pipe %q", name).
			WithDetail("pipe", name)
	}
}

// inlinePowerShell flattens a multi-line PowerShell block into a single
// line: block comments are preserved, line comments dropped, here-strings
// are converted to quoted single-line strings, backtick continuations are
// merged, and the remaining lines are joined with "; ".
func inlinePowerShell(text string) string {
	// Comments: keep <# block #> comments inline, drop line comments.
	t := psCommentRe.ReplaceAllStringFunc(text, func(match string) string {
		groups := psCommentRe.FindStringSubmatch(match)
		if strings.HasPrefix(match, "<#") {
			return "<# " + strings.TrimSpace(groups[1]) + " #>"
		}
		return ""
	})

	// Here-strings: @'...'@ and @"..."@ become single-line quoted strings.
	t = psHereDocRe.ReplaceAllStringFunc(t, func(match string) string {
		groups := psHereDocRe.FindStringSubmatch(match)
		quote, body := groups[1], groups[2]

		escaped, separator := "''", `'+"`+"`"+`r`+"`"+`n"+'`
		if quote == `"` {
			escaped, separator = "`\"", "`r`n"
		}

		lines := newlineRe.Split(strings.ReplaceAll(body, quote, escaped), -1)
		return quote + strings.Join(lines, separator) + quote
	})

	// Merge lines continued with a trailing backtick.
	t = psBacktickRe.ReplaceAllString(t, " ")

	// Merge the remaining lines.
	var lines []string
	for _, line := range newlineRe.Split(t, -1) {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "; ")
}

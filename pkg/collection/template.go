package collection

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// Template expressions recognized in function bodies and call arguments:
//
//	{{ $name }}          substitute the bound argument text verbatim
//	{{ $name | pipe }}   substitute after applying a named pipe
//	{{ with $name }}...{{ end }}
//	                     include the enclosed text only when the argument
//	                     is non-empty; {{ . }} inside the block substitutes
//	                     the value
//
// Substitution is single-pass: the scanner walks the body left to right
// and substituted text is never re-scanned, so an argument containing
// template markers stays literal in the output.

var (
	withRe = regexp.MustCompile(`\{\{\s*with\s+\$([A-Za-z0-9]+)\s*\}\}((?s:.*?))\{\{\s*end\s*\}\}`)
	exprRe = regexp.MustCompile(`\{\{\s*\$([A-Za-z0-9]+)\s*(?:\|\s*([A-Za-z0-9]+)\s*)?\}\}`)
	dotRe  = regexp.MustCompile(`\{\{\s*\.\s*\}\}`)
)

// substitute expands every template expression in body using env as the
// argument environment. A reference to a name absent from env fails with
// UNKNOWN_PARAMETER; an unrecognized pipe fails with UNKNOWN_PIPE. Text
// without template markers is returned unchanged.
func substitute(body string, env map[string]string) (string, error) {
	if !strings.Contains(body, "{{") {
		return body, nil
	}

	var out strings.Builder
	rest := body
	for {
		withLoc := withRe.FindStringSubmatchIndex(rest)
		exprLoc := exprRe.FindStringSubmatchIndex(rest)

		// With-blocks win ties: a with marker also matches nothing in
		// exprRe, so the earliest match decides which token comes first.
		switch {
		case withLoc == nil && exprLoc == nil:
			out.WriteString(rest)
			return out.String(), nil

		case exprLoc == nil || (withLoc != nil && withLoc[0] <= exprLoc[0]):
			out.WriteString(rest[:withLoc[0]])
			name := rest[withLoc[2]:withLoc[3]]
			inner := rest[withLoc[4]:withLoc[5]]
			value, ok := env[name]
			if !ok {
				return "", unknownParameter(name)
			}
			if value != "" {
				expanded, err := substituteBlock(inner, env, value)
				if err != nil {
					return "", err
				}
				out.WriteString(expanded)
			}
			rest = rest[withLoc[1]:]

		default:
			out.WriteString(rest[:exprLoc[0]])
			expanded, err := expandExpr(rest, exprLoc, env)
			if err != nil {
				return "", err
			}
			out.WriteString(expanded)
			rest = rest[exprLoc[1]:]
		}
	}
}

// substituteBlock expands the inside of a with-block: {{ . }} markers take
// the block's value, plain expressions resolve against the same
// environment. Nested with-blocks are not supported.
func substituteBlock(inner string, env map[string]string, value string) (string, error) {
	var out strings.Builder
	rest := inner
	for {
		dotLoc := dotRe.FindStringIndex(rest)
		exprLoc := exprRe.FindStringSubmatchIndex(rest)

		switch {
		case dotLoc == nil && exprLoc == nil:
			out.WriteString(rest)
			return out.String(), nil

		case exprLoc == nil || (dotLoc != nil && dotLoc[0] <= exprLoc[0]):
			out.WriteString(rest[:dotLoc[0]])
			out.WriteString(value)
			rest = rest[dotLoc[1]:]

		default:
			out.WriteString(rest[:exprLoc[0]])
			expanded, err := expandExpr(rest, exprLoc, env)
			if err != nil {
				return "", err
			}
			out.WriteString(expanded)
			rest = rest[exprLoc[1]:]
		}
	}
}

// expandExpr resolves one {{ $name }} or {{ $name | pipe }} expression
// matched at loc.
func expandExpr(s string, loc []int, env map[string]string) (string, error) {
	name := s[loc[2]:loc[3]]
	value, ok := env[name]
	if !ok {
		return "", unknownParameter(name)
	}
	if loc[4] < 0 {
		return value, nil
	}
	return applyPipe(s[loc[4]:loc[5]], value)
}

// templateNames returns the parameter names referenced by body's template
// expressions, in order of appearance.
func templateNames(body string) []string {
	var names []string
	for _, m := range withRe.FindAllStringSubmatch(body, -1) {
		names = append(names, m[1])
	}
	for _, m := range exprRe.FindAllStringSubmatch(body, -1) {
		names = append(names, m[1])
	}
	return names
}

// referencesParameters reports whether body contains any template
// expression. Used to reject argument text that references parameters in a
// scope that has none.
func referencesParameters(body string) bool {
	return withRe.MatchString(body) || exprRe.MatchString(body)
}

func unknownParameter(name string) error {
	return scruberr.Newf(scruberr.ErrUnknownParameter,
		"body references undeclared parameter %q", name).
		WithDetail("parameter", name)
}

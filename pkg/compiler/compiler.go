// Package compiler turns a collection and a selection into an ordered list
// of resolved script fragments. It walks the category tree depth-first in
// declaration order, filters by name and recommendation level, resolves
// function calls through the collection resolver, and de-duplicates
// identical resolved text across the whole output.
package compiler

import (
	"sort"

	"github.com/arthur-debert/scrub/pkg/collection"
	"github.com/arthur-debert/scrub/pkg/logging"
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// Fragment is one script's fully resolved, ready-to-emit text block.
type Fragment struct {
	// ScriptName identifies the script the fragment came from.
	ScriptName string
	// Body is the resolved text for the requested direction.
	Body string
}

// Compile resolves every script matched by the selection and returns the
// fragments in traversal order. Any resolution error aborts the whole
// compilation: a partially resolved privacy script is worse than none.
func Compile(coll *collection.Collection, sel Selection) ([]Fragment, error) {
	logger := logging.GetLogger("compiler")

	if err := sel.validate(coll); err != nil {
		return nil, err
	}

	resolver := collection.NewResolver(coll)
	names := sel.nameSet()

	var fragments []Fragment
	emitted := make(map[string]struct{})

	err := coll.WalkScripts(func(script *collection.Script) error {
		if names != nil {
			if _, wanted := names[script.Name]; !wanted {
				return nil
			}
		}
		if !sel.matchesLevel(script) {
			return nil
		}

		resolved, err := resolver.ResolveScript(script)
		if err != nil {
			return scruberr.Wrapf(err, scruberr.ErrCompile,
				"failed to compile script %q", script.Name).
				WithDetail("script", script.Name)
		}

		body := resolved.Code
		if sel.Direction == Revert {
			// Not every tweak is revertible; a script without revert code
			// is absent from revert output, not an error.
			if resolved.RevertCode == "" {
				logger.Debug().Str("script", script.Name).Msg("Skipping script without revert code")
				return nil
			}
			body = resolved.RevertCode
		}

		// A body already emitted once is not repeated; repeated literal
		// commands across unrelated scripts must execute only once.
		if _, seen := emitted[body]; seen {
			logger.Debug().Str("script", script.Name).Msg("Skipping duplicate fragment")
			return nil
		}
		emitted[body] = struct{}{}

		fragments = append(fragments, Fragment{ScriptName: script.Name, Body: body})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("fragments", len(fragments)).
		Str("direction", sel.Direction.String()).
		Msg("Compilation finished")
	return fragments, nil
}

// validate rejects selections naming scripts the collection does not
// define, deterministically reporting the first unknown name.
func (s Selection) validate(coll *collection.Collection) error {
	if len(s.Names) == 0 {
		return nil
	}
	unknown := make([]string, 0)
	for name := range s.nameSet() {
		if _, ok := coll.Script(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return scruberr.Newf(scruberr.ErrScriptNotFound,
		"no script named %q in collection", unknown[0]).
		WithDetail("script", unknown[0])
}

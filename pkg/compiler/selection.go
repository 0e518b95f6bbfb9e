package compiler

import (
	"github.com/arthur-debert/scrub/pkg/collection"
)

// Direction chooses between forward and revert compilation.
type Direction int

const (
	// Forward compiles each script's forward body.
	Forward Direction = iota
	// Revert compiles each script's revert body, silently skipping
	// scripts that have none.
	Revert
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	if d == Revert {
		return "revert"
	}
	return "forward"
}

// Level filters scripts by recommendation tier. The tiers form a superset
// ordering: standard includes unleveled scripts, strict includes both.
type Level int

const (
	// LevelAll applies no recommendation filter.
	LevelAll Level = iota
	// LevelStandard selects unleveled and standard scripts.
	LevelStandard
	// LevelStrict selects unleveled, standard, and strict scripts.
	LevelStrict
)

// ParseLevel converts a CLI/document spelling into a Level. The empty
// string means no filter.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "":
		return LevelAll, true
	case "standard":
		return LevelStandard, true
	case "strict":
		return LevelStrict, true
	default:
		return LevelAll, false
	}
}

// Selection is the caller-specified filter determining which scripts are
// compiled, and in which direction.
type Selection struct {
	// Names restricts compilation to these script names; empty means all.
	Names []string
	// Level restricts compilation by recommendation tier.
	Level Level
	// Direction selects forward or revert bodies.
	Direction Direction
}

// nameSet returns the requested names as a set, or nil when the selection
// does not restrict by name.
func (s Selection) nameSet() map[string]struct{} {
	if len(s.Names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(s.Names))
	for _, name := range s.Names {
		set[name] = struct{}{}
	}
	return set
}

// matchesLevel reports whether the script's recommendation tier passes the
// selection's level filter. Unleveled scripts pass at every level.
func (s Selection) matchesLevel(script *collection.Script) bool {
	switch s.Level {
	case LevelStandard:
		return script.Recommend != collection.RecommendStrict
	default:
		return true
	}
}

package collection

// Typed, validated document model. Instances are built once by Build and
// are immutable afterwards; the compiler only reads them.

// Recommend is a script's recommendation tier.
type Recommend int

// Recommendation tiers, ordered by strictness.
const (
	// RecommendNone marks a script that carries no recommendation tier.
	RecommendNone Recommend = iota
	// RecommendStandard marks non-breaking scripts that do not limit OS
	// functionality.
	RecommendStandard
	// RecommendStrict marks scripts that may break certain functionality
	// in favor of privacy and security.
	RecommendStrict
)

// String returns the document-format spelling of the tier.
func (r Recommend) String() string {
	switch r {
	case RecommendStandard:
		return "standard"
	case RecommendStrict:
		return "strict"
	default:
		return ""
	}
}

// Node is the sealed interface for entries in a category tree. Only
// Category and Script implement it; the unexported method prevents
// external implementations.
type Node interface {
	isNode()
	Label() string
}

// Collection is the full OS-specific set of categories, scripts, and
// functions loaded from one declarative document.
type Collection struct {
	OS         string
	Scripting  ScriptingDefinition
	Categories []*Category
	Functions  []*Function

	functionsByName map[string]*Function
	scriptsByName   map[string]*Script
}

// ScriptingDefinition holds the global scripting properties for a
// collection: language, optional file extension, and the code inserted at
// the top and bottom of every assembled script.
type ScriptingDefinition struct {
	Language      string
	FileExtension string
	StartCode     string
	EndCode       string
}

// Category is a named grouping of scripts and nested categories. Children
// preserves declaration order with scripts and subcategories interleaved.
type Category struct {
	Name     string
	Docs     []string
	Children []Node
}

// Script is a leaf unit of work: either inline code or one or more
// function calls, with an optional revert counterpart.
type Script struct {
	Name       string
	Code       string
	RevertCode string
	Calls      []FunctionCall
	Docs       []string
	Recommend  Recommend
}

// Function is a named, reusable template: inline code with parameter
// placeholders, or a sequence of calls to other functions.
type Function struct {
	Name       string
	Parameters []Parameter
	Code       string
	RevertCode string
	Calls      []FunctionCall
}

// Parameter is a declared function parameter. HasDefault distinguishes an
// explicit default (possibly empty) from no default at all.
type Parameter struct {
	Name       string
	Default    string
	HasDefault bool
	Optional   bool
}

// FunctionCall is an invocation site: the target function name and the
// argument text per parameter name.
type FunctionCall struct {
	Function  string
	Arguments map[string]string
}

func (c *Category) isNode() {}
func (s *Script) isNode()   {}

// Label returns the category name.
func (c *Category) Label() string { return c.Name }

// Label returns the script name.
func (s *Script) Label() string { return s.Name }

// IsInline reports whether the script carries inline code rather than
// function calls.
func (s *Script) IsInline() bool { return len(s.Calls) == 0 }

// IsInline reports whether the function carries inline code rather than
// calls to other functions.
func (f *Function) IsInline() bool { return len(f.Calls) == 0 }

// Parameter returns the declared parameter with the given name.
func (f *Function) Parameter(name string) (Parameter, bool) {
	for _, p := range f.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Function looks up a function definition by name.
func (c *Collection) Function(name string) (*Function, bool) {
	f, ok := c.functionsByName[name]
	return f, ok
}

// Script looks up a script by name.
func (c *Collection) Script(name string) (*Script, bool) {
	s, ok := c.scriptsByName[name]
	return s, ok
}

// Category looks up a category by name anywhere in the tree.
func (c *Collection) Category(name string) (*Category, bool) {
	var found *Category
	var search func(cat *Category)
	search = func(cat *Category) {
		if found != nil {
			return
		}
		if cat.Name == name {
			found = cat
			return
		}
		for _, child := range cat.Children {
			if sub, ok := child.(*Category); ok {
				search(sub)
			}
		}
	}
	for _, cat := range c.Categories {
		search(cat)
	}
	return found, found != nil
}

// WalkScripts visits every script depth-first in declaration order. The
// walk stops when visit returns an error, which is propagated.
func (c *Collection) WalkScripts(visit func(*Script) error) error {
	for _, cat := range c.Categories {
		if err := walkCategory(cat, visit); err != nil {
			return err
		}
	}
	return nil
}

func walkCategory(cat *Category, visit func(*Script) error) error {
	for _, child := range cat.Children {
		switch n := child.(type) {
		case *Script:
			if err := visit(n); err != nil {
				return err
			}
		case *Category:
			if err := walkCategory(n, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

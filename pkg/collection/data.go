package collection

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Raw data structures mirroring the YAML document format. These are the
// first phase of loading: a loose decode with no validation beyond shape.
// Build converts them into the typed model in a single validating pass.
//
// Field names follow the collection file format: a collection defines an
// `os`, a `scripting` block, a tree of `actions` (categories), and optional
// shared `functions`.

// CollectionData is the root of a decoded collection document.
type CollectionData struct {
	OS        string         `yaml:"os"`
	Scripting ScriptingData  `yaml:"scripting"`
	Actions   []CategoryData `yaml:"actions"`
	Functions []FunctionData `yaml:"functions"`
}

// ScriptingData defines global scripting properties for the collection:
// the language, an optional file extension for generated scripts, and code
// inserted at the top and bottom of every assembled script.
type ScriptingData struct {
	Language      string `yaml:"language"`
	FileExtension string `yaml:"fileExtension"`
	StartCode     string `yaml:"startCode"`
	EndCode       string `yaml:"endCode"`
}

// CategoryData is a named grouping of scripts and nested categories.
type CategoryData struct {
	Category string     `yaml:"category"`
	Docs     DocsData   `yaml:"docs"`
	Children []NodeData `yaml:"children"`
}

// NodeData is a child of a category: either a nested category (`category`
// plus `children`) or a script (`name` plus `code` or `call`). Which one it
// is gets decided during Build; carrying both shapes here keeps the decode
// phase free of structural decisions.
type NodeData struct {
	// Category form
	Category string     `yaml:"category"`
	Children []NodeData `yaml:"children"`

	// Script form
	Name       string    `yaml:"name"`
	Code       string    `yaml:"code"`
	RevertCode string    `yaml:"revertCode"`
	Call       CallsData `yaml:"call"`
	Recommend  string    `yaml:"recommend"`

	Docs DocsData `yaml:"docs"`
}

// FunctionData is a reusable, parameterized template. Exactly one of Code
// or Call must be set; validation happens in Build.
type FunctionData struct {
	Name       string          `yaml:"name"`
	Parameters []ParameterData `yaml:"parameters"`
	Code       string          `yaml:"code"`
	RevertCode string          `yaml:"revertCode"`
	Call       CallsData       `yaml:"call"`
}

// ParameterData declares a function parameter. A parameter with a default
// resolves to that default when the caller omits it; an optional parameter
// without a default resolves to the empty string.
type ParameterData struct {
	Name     string  `yaml:"name"`
	Default  *string `yaml:"default"`
	Optional bool    `yaml:"optional"`
}

// CallData is a single invocation of a function with argument values keyed
// by parameter name.
type CallData struct {
	Function   string              `yaml:"function"`
	Parameters map[string]ArgValue `yaml:"parameters"`
}

// CallsData accepts both the single-call mapping form and the list form:
//
//	call:
//	  function: doThing
//
//	call:
//	  - function: doThing
//	  - function: doOther
type CallsData []CallData

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CallsData) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var single CallData
		if err := value.Decode(&single); err != nil {
			return err
		}
		*c = CallsData{single}
		return nil
	case yaml.SequenceNode:
		var many []CallData
		if err := value.Decode(&many); err != nil {
			return err
		}
		*c = CallsData(many)
		return nil
	default:
		return fmt.Errorf("line %d: call must be a mapping or a sequence", value.Line)
	}
}

// DocsData accepts both a single documentation URL and a list of URLs.
type DocsData []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DocsData) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*d = DocsData{value.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*d = DocsData(many)
		return nil
	default:
		return fmt.Errorf("line %d: docs must be a string or a list of strings", value.Line)
	}
}

// ArgValue is an argument value in a function call. YAML scalars of any
// type (string, number, bool) are accepted and carried as their literal
// text, since the engine substitutes argument text verbatim.
type ArgValue string

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *ArgValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: parameter values must be scalars", value.Line)
	}
	*a = ArgValue(value.Value)
	return nil
}

// Decode parses raw YAML bytes into the loose document representation.
// Structural validation is deferred to Build.
func Decode(data []byte) (*CollectionData, error) {
	var doc CollectionData
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

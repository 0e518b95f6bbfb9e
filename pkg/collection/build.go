package collection

import (
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// Build converts a decoded document into the typed model, surfacing every
// structural violation as a DOCUMENT_INVALID error before any resolution
// logic runs. The returned Collection is immutable.
func Build(doc *CollectionData) (*Collection, error) {
	if doc.OS == "" {
		return nil, invalid("missing required field", "os")
	}
	if doc.Scripting.Language == "" {
		return nil, invalid("missing required field", "scripting.language")
	}
	if doc.Scripting.StartCode == "" {
		return nil, invalid("missing required field", "scripting.startCode")
	}
	if doc.Scripting.EndCode == "" {
		return nil, invalid("missing required field", "scripting.endCode")
	}
	if len(doc.Actions) == 0 {
		return nil, invalid("collection must have at least one category", "actions")
	}

	b := &builder{
		collection: &Collection{
			OS: doc.OS,
			Scripting: ScriptingDefinition{
				Language:      doc.Scripting.Language,
				FileExtension: doc.Scripting.FileExtension,
				StartCode:     doc.Scripting.StartCode,
				EndCode:       doc.Scripting.EndCode,
			},
			functionsByName: make(map[string]*Function),
			scriptsByName:   make(map[string]*Script),
		},
		categoryNames: make(map[string]struct{}),
	}

	for _, fn := range doc.Functions {
		if err := b.addFunction(fn); err != nil {
			return nil, err
		}
	}

	for _, cat := range doc.Actions {
		built, err := b.buildCategory(cat)
		if err != nil {
			return nil, err
		}
		b.collection.Categories = append(b.collection.Categories, built)
	}

	return b.collection, nil
}

type builder struct {
	collection    *Collection
	categoryNames map[string]struct{}
}

func (b *builder) addFunction(data FunctionData) error {
	if data.Name == "" {
		return invalid("function is missing a name", "functions")
	}
	if _, exists := b.collection.functionsByName[data.Name]; exists {
		return invalid("duplicate function name", data.Name)
	}
	if data.Code == "" && len(data.Call) == 0 {
		return invalid("function must define either code or call", data.Name)
	}
	if data.Code != "" && len(data.Call) > 0 {
		return invalid("function cannot define both code and call", data.Name)
	}
	if data.RevertCode != "" && data.Code == "" {
		return invalid("function revertCode requires code", data.Name)
	}

	fn := &Function{
		Name:       data.Name,
		Code:       data.Code,
		RevertCode: data.RevertCode,
	}

	seen := make(map[string]struct{}, len(data.Parameters))
	for _, p := range data.Parameters {
		if p.Name == "" {
			return invalid("parameter is missing a name", data.Name)
		}
		if !isAlphanumeric(p.Name) {
			return invalid("parameter names must be alphanumeric", data.Name+"."+p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return invalid("duplicate parameter name", data.Name+"."+p.Name)
		}
		seen[p.Name] = struct{}{}

		param := Parameter{Name: p.Name, Optional: p.Optional}
		if p.Default != nil {
			param.Default = *p.Default
			param.HasDefault = true
		}
		fn.Parameters = append(fn.Parameters, param)
	}

	// Body placeholders must name declared parameters; an undeclared
	// reference is a definition error, caught before any resolution.
	for _, name := range templateNames(fn.Code + "\n" + fn.RevertCode) {
		if _, declared := seen[name]; !declared {
			return invalid("body references undeclared parameter "+name, data.Name)
		}
	}

	for _, call := range data.Call {
		built, err := buildCall(call, "function "+data.Name)
		if err != nil {
			return err
		}
		fn.Calls = append(fn.Calls, built)
	}

	b.collection.functionsByName[fn.Name] = fn
	b.collection.Functions = append(b.collection.Functions, fn)
	return nil
}

func (b *builder) buildCategory(data CategoryData) (*Category, error) {
	if data.Category == "" {
		return nil, invalid("category is missing a name", "actions")
	}
	if _, exists := b.categoryNames[data.Category]; exists {
		return nil, invalid("duplicate category name", data.Category)
	}
	b.categoryNames[data.Category] = struct{}{}

	if len(data.Children) == 0 {
		return nil, invalid("category must have at least one child", data.Category)
	}

	cat := &Category{
		Name: data.Category,
		Docs: []string(data.Docs),
	}

	for _, child := range data.Children {
		node, err := b.buildNode(child, data.Category)
		if err != nil {
			return nil, err
		}
		cat.Children = append(cat.Children, node)
	}

	return cat, nil
}

func (b *builder) buildNode(data NodeData, parent string) (Node, error) {
	isCategory := data.Category != ""
	isScript := data.Name != ""

	switch {
	case isCategory && isScript:
		return nil, invalid("child cannot be both a category and a script", parent)
	case isCategory:
		return b.buildCategory(CategoryData{
			Category: data.Category,
			Docs:     data.Docs,
			Children: data.Children,
		})
	case isScript:
		return b.buildScript(data)
	default:
		return nil, invalid("child must be a category or a script", parent)
	}
}

func (b *builder) buildScript(data NodeData) (*Script, error) {
	if _, exists := b.collection.scriptsByName[data.Name]; exists {
		return nil, invalid("duplicate script name", data.Name)
	}
	if len(data.Children) > 0 {
		return nil, invalid("script cannot have children", data.Name)
	}
	if data.Code == "" && len(data.Call) == 0 {
		return nil, invalid("script must define either code or call", data.Name)
	}
	if data.Code != "" && len(data.Call) > 0 {
		return nil, invalid("script cannot define both code and call", data.Name)
	}
	if data.RevertCode != "" && data.Code == "" {
		return nil, invalid("script revertCode requires code", data.Name)
	}

	recommend := RecommendNone
	switch data.Recommend {
	case "":
	case "standard":
		recommend = RecommendStandard
	case "strict":
		recommend = RecommendStrict
	default:
		return nil, invalid("recommend must be standard or strict", data.Name)
	}

	script := &Script{
		Name:       data.Name,
		Code:       data.Code,
		RevertCode: data.RevertCode,
		Docs:       []string(data.Docs),
		Recommend:  recommend,
	}

	for _, call := range data.Call {
		built, err := buildCall(call, "script "+data.Name)
		if err != nil {
			return nil, err
		}
		script.Calls = append(script.Calls, built)
	}

	b.collection.scriptsByName[script.Name] = script
	return script, nil
}

func buildCall(data CallData, owner string) (FunctionCall, error) {
	if data.Function == "" {
		return FunctionCall{}, invalid("call is missing a function name", owner)
	}
	call := FunctionCall{Function: data.Function}
	if len(data.Parameters) > 0 {
		call.Arguments = make(map[string]string, len(data.Parameters))
		for name, value := range data.Parameters {
			call.Arguments[name] = string(value)
		}
	}
	return call, nil
}

func invalid(reason, field string) error {
	return scruberr.Newf(scruberr.ErrDocumentInvalid, "%s: %s", reason, field).
		WithDetail("field", field)
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return len(s) > 0
}

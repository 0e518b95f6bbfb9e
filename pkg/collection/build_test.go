// Test Type: Unit Test
// Description: Tests for the collection package - document decoding and
// structural validation

package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scrub/pkg/collection"
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// buildFromYAML decodes and builds a collection, failing the test on any
// error. Used by tests that need a valid collection to work against.
func buildFromYAML(t *testing.T, doc string) *collection.Collection {
	t.Helper()
	data, err := collection.Decode([]byte(doc))
	require.NoError(t, err)
	coll, err := collection.Build(data)
	require.NoError(t, err)
	return coll
}

const minimalDoc = `
os: linux
scripting:
  language: shellscript
  startCode: "#!/usr/bin/env bash"
  endCode: "exit 0"
actions:
  - category: Privacy
    children:
      - name: Clear history
        code: rm -f ~/.bash_history
`

func TestBuild_MinimalDocument(t *testing.T) {
	coll := buildFromYAML(t, minimalDoc)

	assert.Equal(t, "linux", coll.OS)
	assert.Equal(t, "shellscript", coll.Scripting.Language)
	require.Len(t, coll.Categories, 1)
	assert.Equal(t, "Privacy", coll.Categories[0].Name)

	script, ok := coll.Script("Clear history")
	require.True(t, ok)
	assert.True(t, script.IsInline())
	assert.Equal(t, "rm -f ~/.bash_history", script.Code)
	assert.Equal(t, collection.RecommendNone, script.Recommend)
}

func TestBuild_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing_os",
			doc: `
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: C
    children:
      - name: s
        code: true
`,
		},
		{
			name: "missing_language",
			doc: `
os: linux
scripting:
  startCode: start
  endCode: end
actions:
  - category: C
    children:
      - name: s
        code: true
`,
		},
		{
			name: "missing_start_code",
			doc: `
os: linux
scripting:
  language: shellscript
  endCode: end
actions:
  - category: C
    children:
      - name: s
        code: true
`,
		},
		{
			name: "no_actions",
			doc: `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := collection.Decode([]byte(tt.doc))
			require.NoError(t, err)

			_, err = collection.Build(data)
			require.Error(t, err)
			assert.True(t, scruberr.IsCode(err, scruberr.ErrDocumentInvalid))
		})
	}
}

func TestBuild_ScriptShapeViolations(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{
			name: "neither_code_nor_call",
			script: `
      - name: empty script
`,
		},
		{
			name: "both_code_and_call",
			script: `
      - name: conflicted
        code: echo hi
        call:
          function: f
`,
		},
		{
			name: "revert_without_code",
			script: `
      - name: orphan revert
        revertCode: echo back
        call:
          function: f
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: C
    children:` + tt.script + `
functions:
  - name: f
    code: echo f
`
			data, err := collection.Decode([]byte(doc))
			require.NoError(t, err)

			_, err = collection.Build(data)
			require.Error(t, err)
			assert.True(t, scruberr.IsCode(err, scruberr.ErrDocumentInvalid))
		})
	}
}

func TestBuild_DuplicateNames(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "duplicate_scripts",
			doc: `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: A
    children:
      - name: same
        code: one
  - category: B
    children:
      - name: same
        code: two
`,
		},
		{
			name: "duplicate_functions",
			doc: `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: A
    children:
      - name: s
        code: x
functions:
  - name: f
    code: one
  - name: f
    code: two
`,
		},
		{
			name: "duplicate_parameters",
			doc: `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: A
    children:
      - name: s
        code: x
functions:
  - name: f
    parameters:
      - name: p
      - name: p
    code: "{{ $p }}"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := collection.Decode([]byte(tt.doc))
			require.NoError(t, err)

			_, err = collection.Build(data)
			require.Error(t, err)
			assert.True(t, scruberr.IsCode(err, scruberr.ErrDocumentInvalid))
		})
	}
}

func TestBuild_InvalidRecommend(t *testing.T) {
	doc := `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: C
    children:
      - name: s
        recommend: aggressive
        code: echo hi
`
	data, err := collection.Decode([]byte(doc))
	require.NoError(t, err)

	_, err = collection.Build(data)
	require.Error(t, err)
	assert.True(t, scruberr.IsCode(err, scruberr.ErrDocumentInvalid))
	assert.Contains(t, err.Error(), "recommend")
}

func TestBuild_NonAlphanumericParameter(t *testing.T) {
	doc := `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: C
    children:
      - name: s
        code: x
functions:
  - name: f
    parameters:
      - name: bad-name
    code: "{{ $p }}"
`
	data, err := collection.Decode([]byte(doc))
	require.NoError(t, err)

	_, err = collection.Build(data)
	require.Error(t, err)
	assert.True(t, scruberr.IsCode(err, scruberr.ErrDocumentInvalid))
}

func TestBuild_UndeclaredBodyParameter(t *testing.T) {
	doc := `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: C
    children:
      - name: s
        code: x
functions:
  - name: f
    parameters:
      - name: declared
    code: "echo {{ $declared }} {{ $undeclared }}"
`
	data, err := collection.Decode([]byte(doc))
	require.NoError(t, err)

	_, err = collection.Build(data)
	require.Error(t, err)
	assert.True(t, scruberr.IsCode(err, scruberr.ErrDocumentInvalid))
	assert.Contains(t, err.Error(), "undeclared")
}

func TestBuild_NestedCategoriesAndWalkOrder(t *testing.T) {
	doc := `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: Outer
    children:
      - name: first
        code: "1"
      - category: Inner
        children:
          - name: second
            code: "2"
      - name: third
        code: "3"
  - category: Last
    children:
      - name: fourth
        code: "4"
`
	coll := buildFromYAML(t, doc)

	var order []string
	err := coll.WalkScripts(func(s *collection.Script) error {
		order = append(order, s.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, order)

	inner, ok := coll.Category("Inner")
	require.True(t, ok)
	assert.Equal(t, "Inner", inner.Name)
}

func TestDecode_CallForms(t *testing.T) {
	doc := `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: C
    children:
      - name: single
        call:
          function: f
          parameters:
            v: one
      - name: list
        call:
          - function: f
            parameters:
              v: 1
          - function: f
            parameters:
              v: true
functions:
  - name: f
    parameters:
      - name: v
    code: "echo {{ $v }}"
`
	coll := buildFromYAML(t, doc)

	single, ok := coll.Script("single")
	require.True(t, ok)
	require.Len(t, single.Calls, 1)
	assert.Equal(t, "one", single.Calls[0].Arguments["v"])

	list, ok := coll.Script("list")
	require.True(t, ok)
	require.Len(t, list.Calls, 2)
	// Non-string scalars carry their literal text.
	assert.Equal(t, "1", list.Calls[0].Arguments["v"])
	assert.Equal(t, "true", list.Calls[1].Arguments["v"])
}

func TestDecode_DocsForms(t *testing.T) {
	doc := `
os: linux
scripting:
  language: shellscript
  startCode: start
  endCode: end
actions:
  - category: C
    docs: https://example.com/one
    children:
      - name: s
        docs:
          - https://example.com/a
          - https://example.com/b
        code: x
`
	coll := buildFromYAML(t, doc)

	assert.Equal(t, []string{"https://example.com/one"}, coll.Categories[0].Docs)

	script, ok := coll.Script("s")
	require.True(t, ok)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, script.Docs)
}

func TestDecode_InvalidYAML(t *testing.T) {
	_, err := collection.Decode([]byte("os: [unclosed"))
	assert.Error(t, err)
}

package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shape interface{ sides() int }

type circle struct {
	Radius float64 `json:"radius"`
}

type square struct {
	Side  int     `json:"side" validate:"gt=0"`
	Label *string `json:"label,omitempty"`
}

type labelled struct {
	Kind string   `json:"kind"`
	Text string   `json:"text" validate:"required"`
	Tags []string `json:"tags,omitempty"`
	Pos  point    `json:"pos"`
}

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (circle) sides() int   { return 0 }
func (square) sides() int   { return 4 }
func (labelled) sides() int { return -1 }

var shapes = Bind[shape](Union[shape]("kind",
	Case("circle", func(v circle) shape { return v }),
	Case("square", func(v square) shape { return v }),
	Case("label", func(v labelled) shape { return v }),
))

func TestUnionValidate(t *testing.T) {
	label := "big"
	tests := []struct {
		name  string
		input any
		want  shape
	}{
		{"circle", map[string]any{"kind": "circle", "radius": 1.5}, circle{Radius: 1.5}},
		{"square from int", map[string]any{"kind": "square", "side": 3}, square{Side: 3}},
		{"square from whole float", map[string]any{"kind": "square", "side": 3.0}, square{Side: 3}},
		{"optional pointer", map[string]any{"kind": "square", "side": 2, "label": "big"}, square{Side: 2, Label: &label}},
		{"optional null", map[string]any{"kind": "square", "side": 2, "label": nil}, square{Side: 2}},
		{"raw json", json.RawMessage(`{"kind":"circle","radius":2}`), circle{Radius: 2}},
		{"string map", map[string]string{"kind": "label", "text": "hi"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := shapes.Validate(tt.input)
			if tt.want == nil {
				// map[string]string cannot carry the nested pos object
				require.False(t, res.OK())
				assert.True(t, res.Err.Has(CodeMissingField))
				return
			}
			require.True(t, res.OK(), "unexpected error: %v", res.Err)
			assert.Equal(t, tt.want, res.Value)
		})
	}
}

func TestUnionDiscriminatorFailures(t *testing.T) {
	tests := []struct {
		name  string
		input any
		code  Code
	}{
		{"missing discriminator", map[string]any{"radius": 1}, CodeMissingField},
		{"discriminator not string", map[string]any{"kind": 7}, CodeInvalidType},
		{"unknown tag", map[string]any{"kind": "hexagon"}, CodeUnrecognizedVariant},
		{"not an object", "circle", CodeInvalidType},
		{"nil", nil, CodeInvalidType},
		{"array", []any{"circle"}, CodeInvalidType},
		{"bad json", []byte(`{"kind":`), CodeInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shapes.Parse(tt.input)
			require.Error(t, err)
			verr, ok := AsValidationError(err)
			require.True(t, ok)
			require.Len(t, verr.Issues, 1)
			assert.Equal(t, tt.code, verr.Issues[0].Code)
		})
	}
}

func TestUnrecognizedVariantNamesAllowedTags(t *testing.T) {
	res := shapes.Validate(map[string]any{"kind": "hexagon"})
	require.False(t, res.OK())
	issue := res.Err.Issues[0]
	assert.Equal(t, []string{"kind"}, issue.Path)
	assert.Equal(t, "{circle, square, label}", issue.Expected)
	assert.Contains(t, issue.Message, `"hexagon"`)
}

func TestFieldFailures(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		code  Code
		path  []string
	}{
		{"missing required", map[string]any{"kind": "circle"}, CodeMissingField, []string{"radius"}},
		{"string for number", map[string]any{"kind": "circle", "radius": "1"}, CodeInvalidType, []string{"radius"}},
		{"fractional int", map[string]any{"kind": "square", "side": 1.5}, CodeInvalidType, []string{"side"}},
		{"null required", map[string]any{"kind": "circle", "radius": nil}, CodeInvalidType, []string{"radius"}},
		{"rule", map[string]any{"kind": "square", "side": 0}, CodeInvalidValue, []string{"side"}},
		{"nested mismatch", map[string]any{"kind": "label", "text": "a", "pos": map[string]any{"x": 1, "y": "2"}}, CodeInvalidType, []string{"pos", "y"}},
		{"slice element", map[string]any{"kind": "label", "text": "a", "tags": []any{"ok", 3}, "pos": map[string]any{"x": 1, "y": 2}}, CodeInvalidType, []string{"tags", "1"}},
		{"empty required string", map[string]any{"kind": "label", "text": "", "pos": map[string]any{"x": 1, "y": 2}}, CodeInvalidValue, []string{"text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := shapes.Validate(tt.input)
			require.False(t, res.OK())
			require.Len(t, res.Err.Issues, 1, "issues: %v", res.Err.Issues)
			assert.Equal(t, tt.code, res.Err.Issues[0].Code)
			assert.Equal(t, tt.path, res.Err.Issues[0].Path)
		})
	}
}

func TestMissingFieldMessageNamesVariant(t *testing.T) {
	res := shapes.Validate(map[string]any{"kind": "circle"})
	require.False(t, res.OK())
	assert.Equal(t, `field "radius" is required when "kind" = circle`, res.Err.Issues[0].Message)
}

func TestIssuesSortedByPath(t *testing.T) {
	res := shapes.Validate(map[string]any{"kind": "label", "text": 1})
	require.False(t, res.OK())
	require.Len(t, res.Err.Issues, 2)
	assert.Equal(t, "pos", res.Err.Issues[0].PathString())
	assert.Equal(t, "text", res.Err.Issues[1].PathString())
}

func TestUnknownFieldPolicy(t *testing.T) {
	input := map[string]any{"kind": "circle", "radius": 1, "color": "red"}

	res := shapes.Validate(input)
	require.True(t, res.OK())
	assert.Equal(t, circle{Radius: 1}, res.Value)

	strict := shapes.Strict()
	assert.True(t, strict.IsStrict())
	assert.False(t, shapes.IsStrict())

	res = strict.Validate(input)
	require.False(t, res.OK())
	require.Len(t, res.Err.Issues, 1)
	assert.Equal(t, CodeUnrecognizedField, res.Err.Issues[0].Code)
	assert.Equal(t, []string{"color"}, res.Err.Issues[0].Path)

	nested := map[string]any{"kind": "label", "text": "a", "pos": map[string]any{"x": 1, "y": 2, "z": 3}}
	assert.True(t, shapes.Validate(nested).OK())
	res = strict.Validate(nested)
	require.False(t, res.OK())
	assert.Equal(t, []string{"pos", "z"}, res.Err.Issues[0].Path)
}

func TestDiscriminatorFieldIsFilled(t *testing.T) {
	res := shapes.Validate(map[string]any{"kind": "label", "text": "a", "pos": map[string]any{"x": 0, "y": 0}})
	require.True(t, res.OK(), "%v", res.Err)
	got, ok := res.Value.(labelled)
	require.True(t, ok)
	assert.Equal(t, "label", got.Kind)
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"circle", "square", "label"}, shapes.Tags())
	assert.Equal(t, "kind", shapes.Discriminator())
}

func TestUnionPanicsOnBadDeclaration(t *testing.T) {
	assert.Panics(t, func() {
		Union[shape]("kind",
			Case("circle", func(v circle) shape { return v }),
			Case("circle", func(v circle) shape { return v }),
		)
	})
	assert.Panics(t, func() {
		Union[shape]("kind", Case("", func(v circle) shape { return v }))
	})
	assert.Panics(t, func() {
		Union[shape]("", Case("circle", func(v circle) shape { return v }))
	})
	assert.Panics(t, func() {
		Case("n", func(v int) shape { return circle{} })
	})
}

func TestResultUnwrap(t *testing.T) {
	v, err := Result[int]{Value: 3}.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = Result[int]{Value: 3, Err: &ValidationError{Issues: []Issue{{Code: CodeInvalidValue}}}}.Unwrap()
	require.Error(t, err)
}

func TestValidationErrorHelpers(t *testing.T) {
	a := &ValidationError{Issues: []Issue{{Code: CodeMissingField, Path: []string{"b"}, Message: "missing"}}}
	b := &ValidationError{Issues: []Issue{{Code: CodeInvalidType, Path: []string{"a"}, Message: "bad"}}}

	merged := Merge(a, nil, b)
	require.Len(t, merged.Issues, 2)
	assert.Equal(t, "a", merged.Issues[0].PathString())
	assert.Nil(t, Merge(nil, nil))

	prefixed := a.Prefix("tool_choice")
	assert.Equal(t, []string{"tool_choice", "b"}, prefixed.Issues[0].Path)
	assert.Equal(t, []string{"b"}, a.Issues[0].Path)

	assert.Equal(t, "validation failed: b: missing", a.Error())
	assert.Equal(t, "(root)", Issue{}.PathString())
}

func TestRules(t *testing.T) {
	type tool struct {
		Name string `json:"name" validate:"required"`
	}
	type doc struct {
		Name  string `json:"name" validate:"required"`
		Tools []tool `json:"tools" validate:"unique=Name,dive"`
	}

	assert.Nil(t, Rules(doc{Name: "a", Tools: []tool{{Name: "x"}, {Name: "y"}}}))

	err := Rules(doc{Tools: []tool{{Name: "x"}, {Name: ""}}})
	require.NotNil(t, err)
	paths := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		assert.Equal(t, CodeInvalidValue, issue.Code)
		paths = append(paths, issue.PathString())
	}
	assert.ElementsMatch(t, []string{"name", "tools.1.name"}, paths)

	err = Rules(doc{Name: "a", Tools: []tool{{Name: "x"}, {Name: "x"}}})
	require.NotNil(t, err)
	assert.Equal(t, "tools", err.Issues[0].PathString())

	err = Rules(42)
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidType, err.Issues[0].Code)
}

func TestNamespacePath(t *testing.T) {
	assert.Equal(t, []string{"tools", "1", "name"}, namespacePath("Prompt.tools[1].name"))
	assert.Equal(t, []string{"props", "key"}, namespacePath("Doc.props[key]"))
	assert.Nil(t, namespacePath("Doc"))
}

func TestJSONSchemaExport(t *testing.T) {
	doc := shapes.Describe("Shape", "a shape").JSONSchema()
	assert.Equal(t, "Shape", doc.Title)
	require.Len(t, doc.OneOf, 3)

	sq := doc.OneOf[1]
	assert.Equal(t, "square", sq.Title)
	assert.Equal(t, []string{"kind", "side"}, sq.Required)
	kind, ok := sq.Properties.Get("kind")
	require.True(t, ok)
	assert.Equal(t, "square", kind.Const)
	assert.Nil(t, sq.AdditionalProperties)

	strictDoc := shapes.Strict().JSONSchema()
	assert.NotNil(t, strictDoc.OneOf[0].AdditionalProperties)

	_, err := json.Marshal(doc)
	require.NoError(t, err)
}

func TestRawJSONRejectsTrailingData(t *testing.T) {
	for _, input := range []string{
		`{"kind":"circle","radius":2} {"kind":"nope"}`,
		`{"kind":"circle","radius":2}xyz`,
		`{"kind":"circle","radius":2}]`,
	} {
		t.Run(input, func(t *testing.T) {
			res := shapes.Validate(json.RawMessage(input))
			require.False(t, res.OK())
			require.Len(t, res.Err.Issues, 1)
			issue := res.Err.Issues[0]
			assert.Equal(t, CodeInvalidType, issue.Code)
			assert.Equal(t, "unexpected data after JSON value", issue.Message)
			assert.Empty(t, issue.Path)
		})
	}

	res := shapes.Validate([]byte("{\"kind\":\"circle\",\"radius\":2}\n\t "))
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
}

func TestLargeIntegersKeepPrecision(t *testing.T) {
	res := shapes.Validate(json.RawMessage(`{"kind":"square","side":9007199254740993}`))
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Equal(t, square{Side: 9007199254740993}, res.Value)

	res = shapes.Validate(json.RawMessage(`{"kind":"square","side":1e3}`))
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Equal(t, square{Side: 1000}, res.Value)

	res = shapes.Validate(json.RawMessage(`{"kind":"square","side":99999999999999999999}`))
	require.False(t, res.OK())
	assert.True(t, res.Err.Has(CodeInvalidType))
}

func TestUnsignedFields(t *testing.T) {
	type counter struct {
		Kind string `json:"kind"`
		N    uint64 `json:"n"`
	}
	counters := Union[counter]("kind", Case("count", func(v counter) counter { return v }))

	res := counters.Validate(json.RawMessage(`{"kind":"count","n":18446744073709551615}`))
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Equal(t, uint64(18446744073709551615), res.Value.N)

	for _, input := range []string{`{"kind":"count","n":-1}`, `{"kind":"count","n":0.5}`} {
		res = counters.Validate(json.RawMessage(input))
		require.False(t, res.OK(), input)
		assert.Equal(t, []string{"n"}, res.Err.Issues[0].Path, input)
	}
}

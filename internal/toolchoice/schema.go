package toolchoice

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/isaacphi/promptcheck/internal/schema"
)

// Schema validates untrusted tool-choice values. Unknown fields are dropped.
var Schema = schema.Bind[ToolChoice](
	schema.Union[ToolChoice]("type", Each[schema.Variant[ToolChoice]](variants{})...).
		Describe("PromptToolChoice", "How a prompt constrains the model's tool calls"),
)

// StrictSchema is Schema but rejects fields no variant declares.
var StrictSchema = Schema.Strict()

// variants supplies the contract's variant table. It must implement Visitor,
// so a new variant cannot be added without a schema case.
type variants struct{}

var _ Visitor[schema.Variant[ToolChoice]] = variants{}

func (variants) None(None) schema.Variant[ToolChoice] {
	return schema.Case(string(TypeNone), func(v None) ToolChoice { return v })
}

func (variants) ZeroOrMore(ZeroOrMore) schema.Variant[ToolChoice] {
	return schema.Case(string(TypeZeroOrMore), func(v ZeroOrMore) ToolChoice { return v })
}

func (variants) OneOrMore(OneOrMore) schema.Variant[ToolChoice] {
	return schema.Case(string(TypeOneOrMore), func(v OneOrMore) ToolChoice { return v })
}

func (variants) SpecificFunction(SpecificFunction) schema.Variant[ToolChoice] {
	return schema.Case(string(TypeSpecificFunction), func(v SpecificFunction) ToolChoice { return v })
}

// Contract picks the lenient or strict schema.
func Contract(strict bool) schema.Schema[ToolChoice] {
	if strict {
		return StrictSchema
	}
	return Schema
}

// JSONSchema documents the lenient or strict contract.
func JSONSchema(strict bool) *jsonschema.Schema {
	if strict {
		return StrictSchema.JSONSchema()
	}
	return Schema.JSONSchema()
}

// Parse validates input with the lenient contract.
func Parse(input any) (ToolChoice, error) {
	return Schema.Parse(input)
}

// ParseJSON validates a JSON document with the lenient contract.
func ParseJSON(data []byte) (ToolChoice, error) {
	return Schema.Parse(json.RawMessage(data))
}

// Marshal encodes c in its wire form.
func Marshal(c ToolChoice) ([]byte, error) {
	return json.Marshal(c)
}

// OrDefault validates input and falls back to fallback when it is invalid. The
// validation error is still returned so the caller can report it.
func OrDefault(input any, fallback ToolChoice) (ToolChoice, error) {
	res := Schema.Validate(input)
	if !res.OK() {
		return fallback, res.Err
	}
	return res.Value, nil
}

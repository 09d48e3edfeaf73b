package schema

import (
	"github.com/invopop/jsonschema"
)

// JSONSchema exports the union as a oneOf document with a const discriminator
// per variant. Strict unions forbid additional properties.
func (u *UnionSchema[T]) JSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: !u.strict,
	}

	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       u.title,
		Description: u.description,
	}
	for _, v := range u.variants {
		s := r.ReflectFromType(v.typ)
		s.Version = ""
		s.ID = ""
		s.Title = v.tag
		if s.Properties == nil {
			s.Properties = jsonschema.NewProperties()
		}
		s.Properties.Set(u.discriminator, &jsonschema.Schema{Type: "string", Const: v.tag})

		required := []string{u.discriminator}
		for _, f := range v.fields {
			if f.required {
				required = append(required, f.name)
			}
		}
		s.Required = required
		root.OneOf = append(root.OneOf, s)
	}
	return root
}

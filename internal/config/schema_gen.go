package config

import "github.com/invopop/jsonschema"

// GenerateJSONSchema generates a JSON schema for the configuration
func GenerateJSONSchema() (*jsonschema.Schema, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := r.Reflect(&ConfigSchema{})

	schema.Title = "promptcheck configuration"
	schema.Description = "Configuration files read from $XDG_CONFIG_HOME/promptcheck and ./.promptcheck"

	return schema, nil
}

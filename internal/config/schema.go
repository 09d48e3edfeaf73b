package config

type Log struct {
	LogLevel string `mapstructure:"level" json:"level,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN ERROR" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR,description=Minimum level written to the log"`
	LogFile  string `mapstructure:"file" json:"file,omitempty" jsonschema:"description=Log file path; stderr when empty"`
}

type Contract struct {
	Strict    bool   `mapstructure:"strict" json:"strict" jsonschema:"description=Reject tool-choice fields no variant declares,default=false"`
	OnInvalid string `mapstructure:"onInvalid" json:"onInvalid" validate:"oneof=reject default" jsonschema:"enum=reject,enum=default,default=reject,description=What loading a stored prompt does when its tool choice is invalid"`
}

type Render struct {
	Mode  string `mapstructure:"mode" json:"mode" validate:"oneof=markdown text" jsonschema:"enum=markdown,enum=text,default=markdown,description=How prompt templates are displayed"`
	Width int    `mapstructure:"width" json:"width" validate:"gte=20,lte=400" jsonschema:"minimum=20,maximum=400,default=80,description=Word wrap width for markdown output"`
}

type ConfigSchema struct {
	DBPath   string   `mapstructure:"dbPath" json:"dbPath" validate:"required" jsonschema:"description=SQLite database holding prompt versions"`
	Log      Log      `mapstructure:"log" json:"log"`
	Contract Contract `mapstructure:"contract" json:"contract"`
	Render   Render   `mapstructure:"render" json:"render"`

	// Internal fields for printing
	sources map[string][]configSource
}

package config

// RuntimeOverrides holds configuration values that can be overridden at runtime
// via CLI flags or other means
type RuntimeOverrides struct {
	LogLevel *string
	LogFile  *string
	DBPath   *string
	Strict   *bool
}

func (o *RuntimeOverrides) apply(cfg *ConfigSchema) {
	if o == nil {
		return
	}
	if o.LogLevel != nil {
		cfg.Log.LogLevel = *o.LogLevel
		cfg.track("log.level", *o.LogLevel, "command line")
	}
	if o.LogFile != nil {
		cfg.Log.LogFile = *o.LogFile
		cfg.track("log.file", *o.LogFile, "command line")
	}
	if o.DBPath != nil {
		cfg.DBPath = *o.DBPath
		cfg.track("dbpath", *o.DBPath, "command line")
	}
	if o.Strict != nil {
		cfg.Contract.Strict = *o.Strict
		cfg.track("contract.strict", *o.Strict, "command line")
	}
}

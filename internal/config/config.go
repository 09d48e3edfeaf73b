package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

/*
Config System Design:
Configuration is layered with the following precedence (highest to lowest priority):

1. Command line overrides (RuntimeOverrides)
2. Environment variables (PROMPTCHECK_DBPATH, PROMPTCHECK_CONTRACT_STRICT, ...),
   optionally loaded from ./.env or ~/.promptcheck.env
3. Local project config (.promptcheck/*.promptcheck.{yaml,json})
4. Global user config ($XDG_CONFIG_HOME/promptcheck/*.promptcheck.{yaml,json})
5. Default values (embedded defaults.promptcheck.yaml)

Files in a directory are merged alphabetically. Maps merge deeply and scalars
override. Keys that do not exist in ConfigSchema are rejected so that typos
such as "contract.onInvaild" fail loudly instead of being ignored.
*/

const (
	appName    = "promptcheck"
	envPrefix  = "PROMPTCHECK"
	fileSuffix = "." + appName
	localDir   = "." + appName
)

//go:embed defaults.promptcheck.yaml
var defaultsYAML []byte

type configSource struct {
	value  interface{}
	source string
}

// New loads the layered configuration and applies overrides.
func New(overrides *RuntimeOverrides) (*ConfigSchema, error) {
	globalDir, err := globalConfigDir()
	if err != nil {
		return nil, err
	}
	loadEnv()
	return newWithDirs(overrides, globalDir, localDir)
}

func globalConfigDir() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not locate home directory: %w", err)
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, appName), nil
}

// findConfigFiles returns all *.promptcheck.{yaml,json} files in a directory
func findConfigFiles(dir string) ([]string, error) {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, fileSuffix+".yaml") ||
			strings.HasSuffix(name, fileSuffix+".yml") ||
			strings.HasSuffix(name, fileSuffix+".json") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func newWithDirs(overrides *RuntimeOverrides, dirs ...string) (*ConfigSchema, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return nil, fmt.Errorf("could not read defaults: %w", err)
	}
	defaults := v.AllSettings()

	known := GetKnownKeys()
	sources := make(map[string][]configSource)
	merged := make(map[string]interface{})

	for _, dir := range dirs {
		files, err := findConfigFiles(dir)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}

		for _, f := range files {
			fv := viper.New()
			fv.SetConfigFile(f)
			if err := fv.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", f, err)
			}

			settings := fv.AllSettings()
			for _, key := range flattenKeys("", settings) {
				if !IsKnownKey(known, key) {
					return nil, fmt.Errorf("unknown config key %q in %s", key, f)
				}
			}
			trackSources(sources, "", settings, f)
			merged = mergeMapRecursive(merged, settings)
		}
	}

	// MergeConfigMap keeps file values below environment variables.
	if err := v.MergeConfigMap(merged); err != nil {
		return nil, fmt.Errorf("error merging config: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range flattenKeys("", defaults) {
		envVar := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if val, ok := os.LookupEnv(envVar); ok {
			sources[key] = append(sources[key], configSource{
				value:  val,
				source: fmt.Sprintf("%s environment variable", envVar),
			})
		}
	}

	var cfg ConfigSchema
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.sources = sources

	overrides.apply(&cfg)
	cfg.Log.LogLevel = strings.ToUpper(cfg.Log.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func mergeMapRecursive(existing, new map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	// Copy existing map
	for k, v := range existing {
		result[k] = v
	}

	// Merge new map
	for k, v := range new {
		existingVal, ok := existing[k].(map[string]interface{})
		if !ok {
			result[k] = v
			continue
		}
		if newVal, ok := v.(map[string]interface{}); ok {
			result[k] = mergeMapRecursive(existingVal, newVal)
		} else {
			result[k] = v
		}
	}

	return result
}

// flattenKeys lists the dotted leaf keys of a nested settings map.
func flattenKeys(prefix string, settings map[string]interface{}) []string {
	var keys []string
	for k, v := range settings {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok && len(nested) > 0 {
			keys = append(keys, flattenKeys(key, nested)...)
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func trackSources(sources map[string][]configSource, prefix string, settings map[string]interface{}, filename string) {
	for k, value := range settings {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := value.(map[string]interface{}); ok {
			trackSources(sources, key, nested, filename)
			continue
		}
		sources[key] = append(sources[key], configSource{
			value:  value,
			source: filename,
		})
	}
}

func (s *ConfigSchema) track(key string, value interface{}, source string) {
	if s.sources == nil {
		s.sources = make(map[string][]configSource)
	}
	s.sources[key] = append(s.sources[key], configSource{value: value, source: source})
}

// Validate validates the configuration against the schema
func (s *ConfigSchema) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}

package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

// GetKnownKeys returns all valid configuration keys based on the schema
func GetKnownKeys() map[string]bool {
	known := make(map[string]bool)
	addKnownKeys("", reflect.TypeOf(ConfigSchema{}), known)
	return known
}

// addKnownKeys recursively adds the mapstructure keys of struct type t
func addKnownKeys(prefix string, t reflect.Type, known map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Convert the key to lowercase since viper lowercases all keys
		key = strings.ToLower(key)
		known[key] = true

		if field.Type.Kind() == reflect.Struct {
			addKnownKeys(key, field.Type, known)
		}
	}
}

// IsKnownKey checks if a key is known
func IsKnownKey(known map[string]bool, key string) bool {
	return known[strings.ToLower(key)]
}

// PrintConfig prints the configuration in YAML form with optional sources.
// A non-empty prefix limits output to keys under that dotted path.
func (s *ConfigSchema) PrintConfig(w io.Writer, includeSources bool, prefix string) {
	s.printValue(w, reflect.ValueOf(*s), "", "", includeSources, strings.ToLower(prefix), 0)
}

func underPrefix(path, prefix string) bool {
	return prefix == "" || path == prefix || strings.HasPrefix(path, prefix+".")
}

// leadsTo reports whether path is on the way to, or under, prefix.
func leadsTo(path, prefix string) bool {
	return prefix == "" || underPrefix(path, prefix) || strings.HasPrefix(prefix, path+".")
}

func (s *ConfigSchema) printValue(w io.Writer, v reflect.Value, key, path string, includeSources bool, prefix string, indent int) {
	t := v.Type()

	switch v.Kind() {
	case reflect.Struct:
		if key != "" {
			fmt.Fprintf(w, "%s%s:\n", strings.Repeat("  ", indent), key)
			indent++
		}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			tag := field.Tag.Get("mapstructure")
			if !field.IsExported() || tag == "" {
				continue
			}
			fieldPath := strings.ToLower(tag)
			if path != "" {
				fieldPath = path + "." + fieldPath
			}
			if !leadsTo(fieldPath, prefix) {
				continue
			}
			s.printValue(w, v.Field(i), tag, fieldPath, includeSources, prefix, indent)
		}

	default:
		if isSecretKey(key) {
			fmt.Fprintf(w, "%s%s: [REDACTED]", strings.Repeat("  ", indent), key)
		} else if v.Kind() == reflect.String {
			fmt.Fprintf(w, "%s%s: %q", strings.Repeat("  ", indent), key, v.String())
		} else {
			fmt.Fprintf(w, "%s%s: %v", strings.Repeat("  ", indent), key, v.Interface())
		}
		s.printSourceInfo(w, path, includeSources)
		fmt.Fprintln(w)
	}
}

func (s *ConfigSchema) printSourceInfo(w io.Writer, path string, includeSources bool) {
	if !includeSources {
		return
	}

	if sources, ok := s.sources[path]; ok && len(sources) > 0 {
		fmt.Fprintf(w, " # (%s)", sources[len(sources)-1].source)
		return
	}
	fmt.Fprintf(w, " # (default)")
}

func isSecretKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "key") ||
		strings.Contains(strings.ToLower(key), "secret") ||
		strings.Contains(strings.ToLower(key), "password")
}

// Package prompt reads prompt files, validates them and stores them as
// versioned records whose tool choice is re-checked on every load.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/isaacphi/promptcheck/internal/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf infers a prompt file's format from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported prompt file %q: expected .json, .yaml or .yml", path)
}

// Decode parses a prompt document. The tool choice is left undecoded for the
// contract to check. Top-level keys Prompt does not declare are kept in
// Unknown so strict validation can report them.
func Decode(data []byte, format Format) (domain.Prompt, error) {
	var (
		p    domain.Prompt
		keys map[string]any
	)
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var doc json.RawMessage
		if err := dec.Decode(&doc); err != nil {
			return domain.Prompt{}, errors.Wrap(err, "invalid JSON prompt")
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return domain.Prompt{}, errors.New("invalid JSON prompt: unexpected data after JSON value")
		}
		if err := decodeJSON(doc, &p); err != nil {
			return domain.Prompt{}, errors.Wrap(err, "invalid JSON prompt")
		}
		// doc already decoded into a struct, so this only fails for non-objects
		_ = json.Unmarshal(doc, &keys)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return p, nil
			}
			return domain.Prompt{}, errors.Wrap(err, "invalid YAML prompt")
		}
		if err := dec.Decode(&yaml.Node{}); err != io.EOF {
			return domain.Prompt{}, errors.New("invalid YAML prompt: expected a single document")
		}
		if err := doc.Decode(&p); err != nil {
			return domain.Prompt{}, errors.Wrap(err, "invalid YAML prompt")
		}
		_ = doc.Decode(&keys)
	default:
		return domain.Prompt{}, fmt.Errorf("unknown prompt format %q", format)
	}
	p.Unknown = unknownKeys(keys)
	return p, nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// promptKeys are the top-level keys a prompt file may carry.
var promptKeys = func() map[string]bool {
	keys := map[string]bool{}
	t := reflect.TypeOf(domain.Prompt{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}()

func unknownKeys(doc map[string]any) []string {
	var unknown []string
	for k := range doc {
		if !promptKeys[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// ReadFile reads and decodes the prompt file at path.
func ReadFile(path string) (domain.Prompt, error) {
	format, err := FormatOf(path)
	if err != nil {
		return domain.Prompt{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Prompt{}, errors.Wrapf(err, "failed to read %s", path)
	}
	p, err := Decode(data, format)
	if err != nil {
		return domain.Prompt{}, errors.Wrap(err, path)
	}
	return p, nil
}

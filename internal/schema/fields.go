package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// field is one decodable struct field of a variant.
type field struct {
	name     string
	index    []int
	typ      reflect.Type
	required bool
}

// fieldsOf lists the json-tagged fields of struct type t, skipping skip.
// Pointer fields and fields tagged omitempty are optional.
func fieldsOf(t reflect.Type, skip string) []field {
	var out []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts := parseTag(sf)
		if name == "-" || name == skip {
			continue
		}
		out = append(out, field{
			name:     name,
			index:    sf.Index,
			typ:      sf.Type,
			required: sf.Type.Kind() != reflect.Pointer && !strings.Contains(opts, "omitempty"),
		})
	}
	return out
}

func parseTag(sf reflect.StructField) (name, opts string) {
	tag := sf.Tag.Get("json")
	name, opts, _ = strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	return name, opts
}

// discriminatorIndex finds a string field tagged with the discriminator name.
func discriminatorIndex(t reflect.Type, discriminator string) []int {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Type.Kind() != reflect.String {
			continue
		}
		if name, _ := parseTag(sf); name == discriminator {
			return sf.Index
		}
	}
	return nil
}

// object normalizes input into a JSON-like object.
func object(input any) (map[string]any, *Issue) {
	switch v := input.(type) {
	case map[string]any:
		return v, nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, nil
	case json.RawMessage:
		return objectFromJSON(v)
	case []byte:
		return objectFromJSON(v)
	}

	rv := reflect.ValueOf(input)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	}
	return nil, &Issue{
		Code:     CodeInvalidType,
		Message:  fmt.Sprintf("expected object, received %s", kindOf(input)),
		Expected: "object",
		Received: kindOf(input),
	}
}

func objectFromJSON(data []byte) (map[string]any, *Issue) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &Issue{
			Code:     CodeInvalidType,
			Message:  fmt.Sprintf("input is not valid JSON: %v", err),
			Expected: "object",
			Received: "invalid JSON",
		}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, &Issue{
			Code:     CodeInvalidType,
			Message:  "unexpected data after JSON value",
			Expected: "object",
			Received: "trailing data",
		}
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return object(v)
}

// kindOf names the JSON kind of a decoded value.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}

// kindName names the JSON kind expected for a Go type.
func kindName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return kindName(t.Elem())
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Interface:
		return "any"
	}
	return t.String()
}

// decoder assigns raw decoded values onto Go values, collecting issues.
type decoder struct {
	strict bool
	issues []Issue
}

func (d *decoder) fail(path []string, code Code, expected, received, format string, args ...any) {
	d.issues = append(d.issues, Issue{
		Code:     code,
		Path:     append([]string(nil), path...),
		Message:  fmt.Sprintf(format, args...),
		Expected: expected,
		Received: received,
	})
}

func (d *decoder) mismatch(path []string, t reflect.Type, raw any) {
	expected, received := kindName(t), kindOf(raw)
	d.fail(path, CodeInvalidType, expected, received, "expected %s, received %s", expected, received)
}

// fields decodes obj into the struct dst.
func (d *decoder) fields(dst reflect.Value, obj map[string]any, specs []field, path []string, skip string, when string) {
	known := make(map[string]bool, len(specs)+1)
	if skip != "" {
		known[skip] = true
	}
	for _, spec := range specs {
		known[spec.name] = true
		fieldPath := append(path, spec.name)
		raw, present := obj[spec.name]
		if !present {
			if spec.required {
				d.fail(fieldPath, CodeMissingField, kindName(spec.typ), "undefined",
					"field %q is required%s", spec.name, when)
			}
			continue
		}
		if raw == nil && !spec.required {
			continue
		}
		d.assign(dst.FieldByIndex(spec.index), raw, fieldPath)
	}

	if !d.strict {
		return
	}
	var unknown []string
	for key := range obj {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		d.fail(append(path, key), CodeUnrecognizedField, "", kindOf(obj[key]),
			"unrecognized field %q", key)
	}
}

func (d *decoder) assign(dst reflect.Value, raw any, path []string) {
	t := dst.Type()
	switch t.Kind() {
	case reflect.Pointer:
		if raw == nil {
			return
		}
		elem := reflect.New(t.Elem())
		before := len(d.issues)
		d.assign(elem.Elem(), raw, path)
		if len(d.issues) == before {
			dst.Set(elem)
		}

	case reflect.Interface:
		if raw != nil && !reflect.TypeOf(raw).AssignableTo(t) {
			d.mismatch(path, t, raw)
			return
		}
		if raw != nil {
			dst.Set(reflect.ValueOf(raw))
		}

	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			d.mismatch(path, t, raw)
			return
		}
		dst.SetString(s)

	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			d.mismatch(path, t, raw)
			return
		}
		dst.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := integer(raw)
		if !ok || dst.OverflowInt(n) {
			d.mismatch(path, t, raw)
			return
		}
		dst.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := unsigned(raw)
		if !ok || dst.OverflowUint(n) {
			d.mismatch(path, t, raw)
			return
		}
		dst.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, ok := number(raw)
		if !ok || dst.OverflowFloat(f) {
			d.mismatch(path, t, raw)
			return
		}
		dst.SetFloat(f)

	case reflect.Slice:
		items, ok := raw.([]any)
		if !ok {
			d.mismatch(path, t, raw)
			return
		}
		out := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			d.assign(out.Index(i), item, append(path, strconv.Itoa(i)))
		}
		dst.Set(out)

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			d.mismatch(path, t, raw)
			return
		}
		obj, issue := object(raw)
		if issue != nil || raw == nil {
			d.mismatch(path, t, raw)
			return
		}
		out := reflect.MakeMapWithSize(t, len(obj))
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			elem := reflect.New(t.Elem()).Elem()
			d.assign(elem, obj[k], append(path, k))
			out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), elem)
		}
		dst.Set(out)

	case reflect.Struct:
		obj, issue := object(raw)
		if issue != nil || raw == nil {
			d.mismatch(path, t, raw)
			return
		}
		d.fields(dst, obj, fieldsOf(t, ""), path, "", "")

	default:
		d.fail(path, CodeInvalidType, t.String(), kindOf(raw), "unsupported field type %s", t)
	}
}

func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// integer reads raw as an exact int64. Integral floats are accepted,
// but json.Number goes through Int64 first so large values keep every digit.
func integer(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integralInt(f)
	case float64:
		return integralInt(v)
	case float32:
		return integralInt(float64(v))
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint, uint8, uint16, uint32, uint64:
		n, ok := unsigned(v)
		if !ok || n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// unsigned reads raw as an exact uint64.
func unsigned(raw any) (uint64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integralUint(f)
	case float64:
		return integralUint(v)
	case float32:
		return integralUint(float64(v))
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case int, int8, int16, int32, int64:
		n, _ := integer(v)
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	}
	return 0, false
}

func integralInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}

func integralUint(f float64) (uint64, bool) {
	if f != math.Trunc(f) || f < 0 || f >= 1<<64 {
		return 0, false
	}
	return uint64(f), true
}

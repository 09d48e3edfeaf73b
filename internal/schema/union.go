package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Variant is one tagged shape of a union producing T.
type Variant[T any] struct {
	tag    string
	typ    reflect.Type
	fields []field
	lift   func(reflect.Value) T
}

// Tag returns the discriminator value selecting this variant.
func (v Variant[T]) Tag() string {
	return v.tag
}

// Case declares the variant selected by tag. V must be a struct whose json-tagged
// fields describe the variant's payload; lift converts it into the union type and
// only compiles when V is assignable to T.
func Case[T, V any](tag string, lift func(V) T) Variant[T] {
	vt := reflect.TypeOf((*V)(nil)).Elem()
	if vt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("schema: variant %q must be a struct, got %s", tag, vt))
	}
	return Variant[T]{
		tag: tag,
		typ: vt,
		lift: func(rv reflect.Value) T {
			return lift(rv.Interface().(V))
		},
	}
}

// UnionSchema validates a discriminated union of object variants.
// It is immutable and safe for concurrent use.
type UnionSchema[T any] struct {
	discriminator string
	variants      []Variant[T]
	byTag         map[string]int
	strict        bool
	title         string
	description   string
}

// Union builds a union keyed on the discriminator field. It panics on an empty
// or duplicated tag, which can only happen while declaring a contract.
func Union[T any](discriminator string, variants ...Variant[T]) *UnionSchema[T] {
	if discriminator == "" {
		panic("schema: union discriminator must not be empty")
	}
	u := &UnionSchema[T]{
		discriminator: discriminator,
		variants:      make([]Variant[T], len(variants)),
		byTag:         make(map[string]int, len(variants)),
	}
	for i, v := range variants {
		if v.tag == "" {
			panic("schema: variant tag must not be empty")
		}
		if _, dup := u.byTag[v.tag]; dup {
			panic(fmt.Sprintf("schema: duplicate variant tag %q", v.tag))
		}
		v.fields = fieldsOf(v.typ, discriminator)
		u.variants[i] = v
		u.byTag[v.tag] = i
	}
	return u
}

// Strict returns a copy of u that rejects fields no variant declares.
// By default unknown fields are dropped from the result.
func (u *UnionSchema[T]) Strict() *UnionSchema[T] {
	c := *u
	c.strict = true
	return &c
}

// Describe returns a copy of u carrying a title and description for export.
func (u *UnionSchema[T]) Describe(title, description string) *UnionSchema[T] {
	c := *u
	c.title = title
	c.description = description
	return &c
}

func (u *UnionSchema[T]) IsStrict() bool        { return u.strict }
func (u *UnionSchema[T]) Discriminator() string { return u.discriminator }

// Tags lists the variant tags in declaration order.
func (u *UnionSchema[T]) Tags() []string {
	tags := make([]string, len(u.variants))
	for i, v := range u.variants {
		tags[i] = v.tag
	}
	return tags
}

func (u *UnionSchema[T]) allowed() string {
	return "{" + strings.Join(u.Tags(), ", ") + "}"
}

// Validate matches input against exactly one variant.
func (u *UnionSchema[T]) Validate(input any) Result[T] {
	obj, issue := object(input)
	if issue != nil {
		return Result[T]{Err: newError([]Issue{*issue})}
	}

	path := []string{u.discriminator}
	raw, ok := obj[u.discriminator]
	if !ok {
		return Result[T]{Err: newError([]Issue{{
			Code:     CodeMissingField,
			Path:     path,
			Message:  fmt.Sprintf("field %q is required and must be one of %s", u.discriminator, u.allowed()),
			Expected: u.allowed(),
			Received: "undefined",
		}})}
	}
	tag, ok := raw.(string)
	if !ok {
		return Result[T]{Err: newError([]Issue{{
			Code:     CodeInvalidType,
			Path:     path,
			Message:  fmt.Sprintf("field %q must be a string, received %s", u.discriminator, kindOf(raw)),
			Expected: "string",
			Received: kindOf(raw),
		}})}
	}
	i, ok := u.byTag[tag]
	if !ok {
		return Result[T]{Err: newError([]Issue{{
			Code:     CodeUnrecognizedVariant,
			Path:     path,
			Message:  fmt.Sprintf("field %q must be one of %s, received %q", u.discriminator, u.allowed(), tag),
			Expected: u.allowed(),
			Received: tag,
		}})}
	}

	v := u.variants[i]
	dst := reflect.New(v.typ).Elem()
	if idx := discriminatorIndex(v.typ, u.discriminator); idx != nil {
		dst.FieldByIndex(idx).SetString(v.tag)
	}

	d := &decoder{strict: u.strict}
	d.fields(dst, obj, v.fields, nil, u.discriminator, fmt.Sprintf(" when %q = %s", u.discriminator, v.tag))
	if len(d.issues) > 0 {
		return Result[T]{Err: newError(d.issues)}
	}
	if issues := checkRules(dst.Interface()); len(issues) > 0 {
		return Result[T]{Err: newError(issues)}
	}
	return Result[T]{Value: v.lift(dst)}
}

// Parse is Validate in (value, error) form. The error is a *ValidationError.
func (u *UnionSchema[T]) Parse(input any) (T, error) {
	return u.Validate(input).Unwrap()
}

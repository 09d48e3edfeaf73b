// Package schema binds runtime validators to declared Go types.
//
// A contract is declared once per domain type:
//
//	var Schema = schema.Bind[Shape](schema.Union[Shape]("type",
//		schema.Case("circle", func(v Circle) Shape { return v }),
//		schema.Case("square", func(v Square) Shape { return v }),
//	))
//
// Bind only compiles when the schema produces exactly Shape, and each Case only
// compiles when its variant struct is assignable to Shape. Validation never
// panics on input: it returns the typed value or a *ValidationError.
package schema

// Schema validates untrusted input into a T.
type Schema[T any] interface {
	Validate(input any) Result[T]
	Parse(input any) (T, error)
}

// Result is the outcome of a Validate call. Exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Value T
	Err   *ValidationError
}

// OK reports whether validation succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Unwrap converts the result into Go's (value, error) convention.
func (r Result[T]) Unwrap() (T, error) {
	if r.Err != nil {
		var zero T
		return zero, r.Err
	}
	return r.Value, nil
}

// Bind ties a schema to the declared type T. It performs no work at runtime and
// returns s unchanged; it fails to compile when s does not produce T.
func Bind[T any, S Schema[T]](s S) S {
	return s
}

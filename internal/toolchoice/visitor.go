package toolchoice

import "fmt"

// Visitor handles every tool-choice variant. Adding a variant adds a method
// here, which breaks the build of every visitor until it handles the new case,
// including the one that declares the runtime contract.
type Visitor[R any] interface {
	None(None) R
	ZeroOrMore(ZeroOrMore) R
	OneOrMore(OneOrMore) R
	SpecificFunction(SpecificFunction) R
}

// Visit dispatches c to the matching method of v.
func Visit[R any](c ToolChoice, v Visitor[R]) R {
	switch c := c.(type) {
	case None:
		return v.None(c)
	case ZeroOrMore:
		return v.ZeroOrMore(c)
	case OneOrMore:
		return v.OneOrMore(c)
	case SpecificFunction:
		return v.SpecificFunction(c)
	}
	panic(fmt.Sprintf("toolchoice: unhandled variant %T", c))
}

// Each calls every method of v once with the zero value of its variant, in
// declaration order.
func Each[R any](v Visitor[R]) []R {
	return []R{
		v.None(None{}),
		v.ZeroOrMore(ZeroOrMore{}),
		v.OneOrMore(OneOrMore{}),
		v.SpecificFunction(SpecificFunction{}),
	}
}

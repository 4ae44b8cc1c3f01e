package unify

import "fmt"

const (
	TOP_STR = "**top**"
)

type Kind byte

const (
	TOP Kind = iota
	ATOM
	REF
)

// Value is a flat feature value: an unconstrained Top, a concrete Atom, or
// a Ref into an Env variable store. Refs appear only in rule templates and
// in structures still attached to a live Env; exported structures never
// contain them.
type Value struct {
	Kind Kind
	Atom string
	Ref  int
}

var Top = Value{Kind: TOP}

func Atom(value string) Value {
	return Value{Kind: ATOM, Atom: value}
}

func Ref(slot int) Value {
	if slot < 0 {
		panic("Negative variable slot")
	}
	return Value{Kind: REF, Ref: slot}
}

func (v Value) IsTop() bool {
	return v.Kind == TOP
}

func (v Value) IsAtom() bool {
	return v.Kind == ATOM
}

func (v Value) IsRef() bool {
	return v.Kind == REF
}

func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ATOM:
		return v.Atom == other.Atom
	case REF:
		return v.Ref == other.Ref
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.Kind {
	case ATOM:
		return v.Atom
	case REF:
		return fmt.Sprintf("#%d", v.Ref)
	default:
		return TOP_STR
	}
}

// Conflict is the unification failure: some attribute required two
// different concrete atoms at once. It aborts only the candidate rule
// application that produced it.
type Conflict struct {
	Attr string
	A, B string
}

func (c *Conflict) Error() string {
	if c.Attr == "" {
		return fmt.Sprintf("unification failure: %s & %s", c.A, c.B)
	}
	return fmt.Sprintf("unification failure: %s: %s & %s", c.Attr, c.A, c.B)
}

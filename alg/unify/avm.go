package unify

import "strings"

// AVM is a flat attribute-value matrix: an ordered mapping from attribute
// names to Values. Insertion order is kept for display and iteration but
// carries no meaning. AVMs placed on chart edges are treated as immutable;
// unification builds new ones instead of editing shared ones.
type AVM struct {
	names  []string
	values map[string]Value
}

func NewAVM() *AVM {
	return &AVM{values: make(map[string]Value)}
}

func (a *AVM) Set(name string, value Value) {
	if _, exists := a.values[name]; !exists {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

func (a *AVM) Get(name string) (Value, bool) {
	value, exists := a.values[name]
	return value, exists
}

func (a *AVM) Has(name string) bool {
	_, exists := a.values[name]
	return exists
}

func (a *AVM) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

// Attrs returns the attribute names in insertion order; callers must not
// modify the returned slice.
func (a *AVM) Attrs() []string {
	if a == nil {
		return nil
	}
	return a.names
}

func (a *AVM) Copy() *AVM {
	out := NewAVM()
	for _, name := range a.Attrs() {
		out.Set(name, a.values[name])
	}
	return out
}

func (a *AVM) Equal(other *AVM) bool {
	if a.Len() != other.Len() {
		return false
	}
	for _, name := range a.Attrs() {
		otherValue, exists := other.Get(name)
		if !exists || !a.values[name].Equal(otherValue) {
			return false
		}
	}
	return true
}

// String renders the matrix with Top-valued attributes stripped, the same
// way serialized results drop **top** before display. Refs render as #N.
func (a *AVM) String() string {
	attrStrs := make([]string, 0, a.Len())
	for _, name := range a.Attrs() {
		value := a.values[name]
		if value.IsTop() {
			continue
		}
		attrStrs = append(attrStrs, name+": "+value.String())
	}
	return "[" + strings.Join(attrStrs, ", ") + "]"
}

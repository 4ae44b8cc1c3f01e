package unify

import "fmt"

type cell struct {
	parent int
	atom   string
	bound  bool
}

// Env is the variable store of one rule instantiation: one cell per
// distinct tag of the rule, merged union-find style as unification
// proceeds. Environments are never shared between instantiations, so tags
// of different rule applications can never alias.
type Env struct {
	cells []cell
}

func NewEnv(numVars int) *Env {
	cells := make([]cell, numVars)
	for i := range cells {
		cells[i].parent = -1
	}
	return &Env{cells}
}

func (e *Env) Fresh() int {
	e.cells = append(e.cells, cell{parent: -1})
	return len(e.cells) - 1
}

func (e *Env) Len() int {
	return len(e.cells)
}

// find returns the class root of a cell, compressing the path behind it.
func (e *Env) find(slot int) int {
	if slot < 0 || slot >= len(e.cells) {
		panic(fmt.Sprintf("Variable #%d outside environment of %d cells", slot, len(e.cells)))
	}
	root := slot
	for e.cells[root].parent >= 0 {
		root = e.cells[root].parent
	}
	for e.cells[slot].parent >= 0 {
		next := e.cells[slot].parent
		e.cells[slot].parent = root
		slot = next
	}
	return root
}

// Resolve dereferences a Ref to its current binding: the bound Atom, or
// Top for a class never constrained. Atoms and Top resolve to themselves;
// the result is never a Ref.
func (e *Env) Resolve(v Value) Value {
	if !v.IsRef() {
		return v
	}
	root := e.find(v.Ref)
	if e.cells[root].bound {
		return Atom(e.cells[root].atom)
	}
	return Top
}

// UnifyValues merges two values under the environment. Top yields the
// other side, equal atoms keep, unequal atoms conflict; a Ref binds or
// unions its class. The returned Conflict has no attribute name; AVM
// unification fills it in.
func (e *Env) UnifyValues(a, b Value) (Value, error) {
	switch {
	case a.IsTop():
		return b, nil
	case b.IsTop():
		return a, nil
	case a.IsAtom() && b.IsAtom():
		if a.Atom == b.Atom {
			return a, nil
		}
		return Value{}, &Conflict{A: a.Atom, B: b.Atom}
	case a.IsRef() && b.IsAtom():
		if err := e.bind(a.Ref, b.Atom); err != nil {
			return Value{}, err
		}
		return a, nil
	case a.IsAtom() && b.IsRef():
		if err := e.bind(b.Ref, a.Atom); err != nil {
			return Value{}, err
		}
		return b, nil
	default:
		return e.union(a, b)
	}
}

func (e *Env) bind(slot int, atom string) error {
	root := e.find(slot)
	if e.cells[root].bound {
		if e.cells[root].atom != atom {
			return &Conflict{A: e.cells[root].atom, B: atom}
		}
		return nil
	}
	e.cells[root].atom = atom
	e.cells[root].bound = true
	return nil
}

func (e *Env) union(a, b Value) (Value, error) {
	rootA, rootB := e.find(a.Ref), e.find(b.Ref)
	if rootA == rootB {
		return a, nil
	}
	boundA, boundB := e.cells[rootA].bound, e.cells[rootB].bound
	if boundA && boundB && e.cells[rootA].atom != e.cells[rootB].atom {
		return Value{}, &Conflict{A: e.cells[rootA].atom, B: e.cells[rootB].atom}
	}
	e.cells[rootA].parent = rootB
	if boundA && !boundB {
		e.cells[rootB].atom = e.cells[rootA].atom
		e.cells[rootB].bound = true
	}
	return b, nil
}

// Unify merges two AVMs attribute-wise under the environment. Attributes
// present on both sides merge by UnifyValues; one-sided attributes are
// copied through. The first conflicting attribute aborts the whole merge.
// A fresh AVM is returned; the inputs are never modified.
func (e *Env) Unify(a, b *AVM) (*AVM, error) {
	merged := NewAVM()
	for _, name := range a.Attrs() {
		aValue, _ := a.Get(name)
		bValue, exists := b.Get(name)
		if !exists {
			merged.Set(name, aValue)
			continue
		}
		value, err := e.UnifyValues(aValue, bValue)
		if err != nil {
			conflict := err.(*Conflict)
			conflict.Attr = name
			return nil, conflict
		}
		merged.Set(name, value)
	}
	for _, name := range b.Attrs() {
		if a.Has(name) {
			continue
		}
		bValue, _ := b.Get(name)
		merged.Set(name, bValue)
	}
	return merged, nil
}

// Export returns a concrete copy of the AVM with every value resolved
// against the environment. Unconstrained tags surface as Top; the result
// contains no Refs and is safe to place on a chart edge.
func (e *Env) Export(a *AVM) *AVM {
	out := NewAVM()
	for _, name := range a.Attrs() {
		value, _ := a.Get(name)
		out.Set(name, e.Resolve(value))
	}
	return out
}

// Unify merges two concrete AVMs outside any environment. Refs are a
// programmer error here and panic via the empty environment's bounds
// check.
func Unify(a, b *AVM) (*AVM, error) {
	return NewEnv(0).Unify(a, b)
}

package unify

import (
	"testing"
)

func TestUnifyTopIdentity(t *testing.T) {
	a := NewAVM()
	a.Set("num", Top)
	b := NewAVM()
	b.Set("num", Atom("sg"))

	merged, err := Unify(a, b)
	if err != nil {
		t.Error(err.Error())
	}
	value, _ := merged.Get("num")
	if !value.Equal(Atom("sg")) {
		t.Error("Top should yield the other side, got " + value.String())
	}

	merged, err = Unify(b, a)
	if err != nil {
		t.Error(err.Error())
	}
	value, _ = merged.Get("num")
	if !value.Equal(Atom("sg")) {
		t.Error("Top should yield the other side, got " + value.String())
	}
}

func TestUnifyDisjointAttrs(t *testing.T) {
	a := NewAVM()
	a.Set("case", Atom("nom"))
	b := NewAVM()
	b.Set("num", Atom("sg"))

	merged, err := Unify(a, b)
	if err != nil {
		t.Error(err.Error())
	}
	if merged.Len() != 2 {
		t.Error("Expected both attributes in merge result")
	}
	if value, exists := merged.Get("case"); !exists || !value.Equal(Atom("nom")) {
		t.Error("One-sided attribute case not copied through")
	}
	if value, exists := merged.Get("num"); !exists || !value.Equal(Atom("sg")) {
		t.Error("One-sided attribute num not copied through")
	}
}

func TestUnifyEqualAtoms(t *testing.T) {
	a := NewAVM()
	a.Set("num", Atom("sg"))
	b := NewAVM()
	b.Set("num", Atom("sg"))

	merged, err := Unify(a, b)
	if err != nil {
		t.Error(err.Error())
	}
	if value, _ := merged.Get("num"); !value.Equal(Atom("sg")) {
		t.Error("Equal atoms should merge to themselves")
	}
}

func TestUnifyConflict(t *testing.T) {
	a := NewAVM()
	a.Set("num", Atom("sg"))
	b := NewAVM()
	b.Set("num", Atom("pl"))

	merged, err := Unify(a, b)
	if err == nil {
		t.Error("Expected conflict unifying sg with pl")
	}
	if merged != nil {
		t.Error("Failed unification should not return a structure")
	}
	conflict, ok := err.(*Conflict)
	if !ok {
		t.Error("Expected a *Conflict error")
		return
	}
	if conflict.Attr != "num" {
		t.Error("Conflict should name the attribute, got " + conflict.Attr)
	}
	if conflict.Error() != "unification failure: num: sg & pl" {
		t.Error("Unexpected conflict message: " + conflict.Error())
	}
}

func TestUnifyCommutative(t *testing.T) {
	a := NewAVM()
	a.Set("case", Atom("nom"))
	a.Set("num", Top)
	b := NewAVM()
	b.Set("num", Atom("sg"))
	b.Set("pron", Atom("he"))

	ab, err := Unify(a, b)
	if err != nil {
		t.Error(err.Error())
	}
	ba, err := Unify(b, a)
	if err != nil {
		t.Error(err.Error())
	}
	if !ab.Equal(ba) {
		t.Error("Unification not commutative: " + ab.String() + " vs " + ba.String())
	}
}

func TestUnifyAssociative(t *testing.T) {
	a := NewAVM()
	a.Set("case", Atom("nom"))
	b := NewAVM()
	b.Set("case", Top)
	b.Set("num", Atom("sg"))
	c := NewAVM()
	c.Set("num", Top)
	c.Set("pron", Atom("she"))

	ab, err := Unify(a, b)
	if err != nil {
		t.Error(err.Error())
	}
	left, err := Unify(ab, c)
	if err != nil {
		t.Error(err.Error())
	}
	bc, err := Unify(b, c)
	if err != nil {
		t.Error(err.Error())
	}
	right, err := Unify(a, bc)
	if err != nil {
		t.Error(err.Error())
	}
	if !left.Equal(right) {
		t.Error("Unification not associative: " + left.String() + " vs " + right.String())
	}
}

func TestUnifyIdempotent(t *testing.T) {
	a := NewAVM()
	a.Set("case", Atom("acc"))
	a.Set("num", Top)

	merged, err := Unify(a, a)
	if err != nil {
		t.Error(err.Error())
	}
	if !merged.Equal(a) {
		t.Error("Unifying a structure with itself should be a no-op")
	}
}

func TestUnifyInputsUntouched(t *testing.T) {
	a := NewAVM()
	a.Set("num", Atom("sg"))
	b := NewAVM()
	b.Set("num", Top)
	b.Set("case", Atom("nom"))
	aBefore, bBefore := a.Copy(), b.Copy()

	if _, err := Unify(a, b); err != nil {
		t.Error(err.Error())
	}
	if !a.Equal(aBefore) || !b.Equal(bBefore) {
		t.Error("Successful unification modified an input")
	}

	c := NewAVM()
	c.Set("num", Atom("pl"))
	cBefore := c.Copy()
	if _, err := Unify(a, c); err == nil {
		t.Error("Expected conflict")
	}
	if !a.Equal(aBefore) || !c.Equal(cBefore) {
		t.Error("Failed unification modified an input")
	}
}

func TestAVMStringStripsTop(t *testing.T) {
	a := NewAVM()
	a.Set("num", Atom("sg"))
	a.Set("needs_pron", Top)
	a.Set("case", Atom("acc"))

	if a.String() != "[num: sg, case: acc]" {
		t.Error("Unexpected rendering: " + a.String())
	}

	empty := NewAVM()
	empty.Set("x", Top)
	if empty.String() != "[]" {
		t.Error("All-Top structure should render empty, got " + empty.String())
	}
}

func TestAVMEqualIgnoresOrder(t *testing.T) {
	a := NewAVM()
	a.Set("case", Atom("nom"))
	a.Set("num", Atom("sg"))
	b := NewAVM()
	b.Set("num", Atom("sg"))
	b.Set("case", Atom("nom"))

	if !a.Equal(b) {
		t.Error("Attribute order should not affect equality")
	}

	b.Set("pron", Atom("he"))
	if a.Equal(b) {
		t.Error("Structures with different attributes compared equal")
	}
}

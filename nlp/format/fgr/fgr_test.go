package fgr

import (
	"bytes"
	"strings"
	"testing"

	"ugp/alg/unify"
)

func TestReadRule(t *testing.T) {
	rules, err := Read(strings.NewReader("S[num: #1] -> N[num: #1] V[num: #1] ;"))
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(rules))
	}
	rule := rules[0]
	if rule.Head != "S" {
		t.Error("Expected head S, got " + rule.Head)
	}
	if rule.Arity() != 2 {
		t.Errorf("Expected arity 2, got %d", rule.Arity())
	}
	if rule.NumVars != 1 {
		t.Errorf("Expected 1 variable, got %d", rule.NumVars)
	}
	headNum, _ := rule.HeadTemplate.Get("num")
	bodyNum, _ := rule.Body[1].Template.Get("num")
	if !headNum.IsRef() || !bodyNum.IsRef() || headNum.Ref != bodyNum.Ref {
		t.Error("Same tag label should map to the same slot")
	}
}

func TestReadTopValue(t *testing.T) {
	rules, err := Read(strings.NewReader("N[case: **top**, pron: she] -> mary ;"))
	if err != nil {
		t.Fatal(err.Error())
	}
	value, exists := rules[0].HeadTemplate.Get("case")
	if !exists || !value.IsTop() {
		t.Error("**top** should parse to the Top value")
	}
	if pron, _ := rules[0].HeadTemplate.Get("pron"); !pron.Equal(unify.Atom("she")) {
		t.Error("Atom value not parsed")
	}
}

func TestReadCommentsAndLayout(t *testing.T) {
	input := `
// reflexives demo
S[num: #1] ->
	N[num: #1]      // subject
	V[num: #1] ;

V[num: sg] -> sleeps ;
`
	rules, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(rules))
	}
	if rules[1].Head != "V" {
		t.Error("Second rule head should be V, got " + rules[1].Head)
	}
}

func TestTagRenumbering(t *testing.T) {
	rules, err := Read(strings.NewReader("S[a: #7, b: #3, c: #7] -> x ;"))
	if err != nil {
		t.Fatal(err.Error())
	}
	rule := rules[0]
	if rule.NumVars != 2 {
		t.Errorf("Expected 2 variables, got %d", rule.NumVars)
	}
	a, _ := rule.HeadTemplate.Get("a")
	b, _ := rule.HeadTemplate.Get("b")
	c, _ := rule.HeadTemplate.Get("c")
	if a.Ref != 0 || b.Ref != 1 || c.Ref != 0 {
		t.Errorf("Labels not renumbered by first occurrence: got %d %d %d", a.Ref, b.Ref, c.Ref)
	}
}

func TestTagWithInlineConstraint(t *testing.T) {
	rules, err := Read(strings.NewReader("N[case: #1 acc, pron: #2] -> him ;"))
	if err != nil {
		t.Fatal(err.Error())
	}
	rule := rules[0]
	if len(rule.Bindings) != 1 {
		t.Fatalf("Expected 1 tag binding, got %d", len(rule.Bindings))
	}
	if rule.Bindings[0].Slot != 0 || rule.Bindings[0].Atom != "acc" {
		t.Errorf("Unexpected binding %v", rule.Bindings[0])
	}
	if value, _ := rule.HeadTemplate.Get("case"); !value.IsRef() {
		t.Error("Constrained tag should still parse to a Ref")
	}
}

func TestEmptyFeatureList(t *testing.T) {
	rules, err := Read(strings.NewReader("Comp[] -> that ;"))
	if err != nil {
		t.Fatal(err.Error())
	}
	if rules[0].HeadTemplate.Len() != 0 {
		t.Error("Empty feature list should give an empty template")
	}
}

func TestUnspacedArrow(t *testing.T) {
	rules, err := Read(strings.NewReader("S->N V ;"))
	if err != nil {
		t.Fatal(err.Error())
	}
	if rules[0].Head != "S" || rules[0].Body[0].Symbol != "N" {
		t.Error("Unspaced arrow mis-parsed: " + rules[0].String())
	}
}

func TestMissingTerminator(t *testing.T) {
	_, err := Read(strings.NewReader("S -> N V"))
	if err == nil {
		t.Fatal("Expected error for missing terminator")
	}
	if !strings.Contains(err.Error(), "At line") {
		t.Error("Error should carry line context: " + err.Error())
	}
}

func TestDuplicateAttribute(t *testing.T) {
	_, err := Read(strings.NewReader("N[num: sg, num: pl] -> he ;"))
	if err == nil {
		t.Fatal("Expected error for duplicate attribute")
	}
	if !strings.Contains(err.Error(), "duplicate attribute num") {
		t.Error("Unexpected error: " + err.Error())
	}
}

func TestBadFeatureList(t *testing.T) {
	_, err := Read(strings.NewReader("N[num sg] -> he ;"))
	if err == nil {
		t.Error("Expected error for missing colon")
	}
	_, err = Read(strings.NewReader("N[num: sg -> he ;"))
	if err == nil {
		t.Error("Expected error for unclosed feature list")
	}
}

func TestRoundTrip(t *testing.T) {
	input := `S[pron: #1, num: #2] -> N[case: nom, pron: #1, num: #2] IV[num: #2] ;
N[case: #1 nom, pron: he, num: sg] -> he ;
Comp -> that ;
`
	rules, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err.Error())
	}
	var buf bytes.Buffer
	if err = Write(&buf, rules); err != nil {
		t.Fatal(err.Error())
	}
	again, err := Read(&buf)
	if err != nil {
		t.Fatal("Re-reading written grammar: " + err.Error())
	}
	if len(again) != len(rules) {
		t.Fatalf("Round trip changed rule count: %d vs %d", len(rules), len(again))
	}
	for i := range rules {
		if rules[i].String() != again[i].String() {
			t.Error("Round trip changed rule: " + rules[i].String() + " vs " + again[i].String())
		}
	}
}

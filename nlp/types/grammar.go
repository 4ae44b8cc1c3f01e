package types

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"ugp/alg/unify"
	"ugp/util"
)

// ModelError is a fatal defect of the grammar itself, found at load time.
// It is never produced during parsing; rejected sentences are a normal
// parse outcome, not an error.
type ModelError struct {
	Reason string
	Rule   string
}

func (m *ModelError) Error() string {
	if m.Rule == "" {
		return "grammar model: " + m.Reason
	}
	return fmt.Sprintf("grammar model: %s in rule { %s }", m.Reason, m.Rule)
}

// TagBinding records a tag written with an inline constraint, e.g.
// [case: #1 nom]: slot #1 must carry the atom in every instantiation.
type TagBinding struct {
	Slot int
	Atom string
}

type RuleItem struct {
	Symbol   string
	Terminal bool
	Template *unify.AVM
}

// Rule is one grammar production. Templates may hold Atom, Top and Ref
// values; Refs are slot indexes 0..NumVars-1, assigned per rule when the
// grammar text is read. Terminal flags are set during grammar
// construction, when it is known which symbols head rules.
type Rule struct {
	ID           int
	Head         string
	HeadTemplate *unify.AVM
	Body         []RuleItem
	NumVars      int
	Bindings     []TagBinding
}

func (r *Rule) Arity() int {
	return len(r.Body)
}

func (r *Rule) Lexical() bool {
	return len(r.Body) == 1 && r.Body[0].Terminal
}

// Instantiate allocates the rule's variable store for one application and
// applies the rule's inline tag constraints. Contradictory constraints are
// rejected at grammar load, so failure here is a programmer error.
func (r *Rule) Instantiate() *unify.Env {
	env := unify.NewEnv(r.NumVars)
	for _, binding := range r.Bindings {
		if _, err := env.UnifyValues(unify.Ref(binding.Slot), unify.Atom(binding.Atom)); err != nil {
			panic("Contradictory tag bindings in rule { " + r.String() + " }")
		}
	}
	return env
}

func (r *Rule) binding(slot int) (string, bool) {
	for _, b := range r.Bindings {
		if b.Slot == slot {
			return b.Atom, true
		}
	}
	return "", false
}

func (r *Rule) templateString(avm *unify.AVM) string {
	if avm.Len() == 0 {
		return ""
	}
	attrStrs := make([]string, 0, avm.Len())
	for _, name := range avm.Attrs() {
		value, _ := avm.Get(name)
		valueStr := value.String()
		if value.IsRef() {
			if atom, constrained := r.binding(value.Ref); constrained {
				valueStr += " " + atom
			}
		}
		attrStrs = append(attrStrs, name+": "+valueStr)
	}
	return "[" + strings.Join(attrStrs, ", ") + "]"
}

// String re-renders the rule in grammar syntax; tag labels come out as the
// rule's dense slot numbers.
func (r *Rule) String() string {
	parts := make([]string, 0, len(r.Body)+2)
	parts = append(parts, r.Head+r.templateString(r.HeadTemplate), "->")
	for _, item := range r.Body {
		parts = append(parts, item.Symbol+r.templateString(item.Template))
	}
	return strings.Join(parts, " ") + " ;"
}

// LexicalEntry is a word's ready-made edge seed: the head nonterminal and
// a concrete feature structure with no variables left (unconstrained tags
// have surfaced as Top).
type LexicalEntry struct {
	Head string
	AVM  *unify.AVM
	Rule *Rule
}

// Grammar is the immutable rule base handed to parsers. The start symbol
// is the first rule's head. Nonterminals are interned in ENonTerm so the
// chart can address cells by enum instead of by string.
type Grammar struct {
	Start    string
	Rules    []*Rule
	ENonTerm *util.EnumSet

	rulesFor map[string][]*Rule
	unaryFor map[string][]*Rule
	internal []*Rule
	lexicon  map[string][]LexicalEntry
	maxArity int
}

// NewGrammar validates the rules and builds the derived indexes. It takes
// ownership of the rule slice: IDs and terminal flags are filled in here.
// A symbol is a nonterminal when some rule heads it; a bare non-headed
// symbol is a terminal word unless it is capitalized, which is taken for a
// misspelled nonterminal.
func NewGrammar(rules []*Rule) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, &ModelError{Reason: "grammar has no rules"}
	}
	headed := make(map[string]bool, len(rules))
	for _, rule := range rules {
		headed[rule.Head] = true
	}
	g := &Grammar{
		Start:    rules[0].Head,
		Rules:    rules,
		ENonTerm: util.NewEnumSet(len(rules)),
		rulesFor: make(map[string][]*Rule, len(rules)),
		unaryFor: make(map[string][]*Rule),
		lexicon:  make(map[string][]LexicalEntry),
	}
	for _, rule := range rules {
		g.ENonTerm.Add(rule.Head)
	}
	for id, rule := range rules {
		rule.ID = id
		if len(rule.Body) == 0 {
			return nil, &ModelError{"empty right-hand side", rule.String()}
		}
		if err := checkBindings(rule); err != nil {
			return nil, err
		}
		for i := range rule.Body {
			item := &rule.Body[i]
			if headed[item.Symbol] {
				item.Terminal = false
				g.ENonTerm.Add(item.Symbol)
				continue
			}
			if startsUpper(item.Symbol) {
				return nil, &ModelError{"unknown nonterminal " + item.Symbol, rule.String()}
			}
			item.Terminal = true
			if item.Template.Len() > 0 {
				return nil, &ModelError{"feature structures are not allowed on terminal " + item.Symbol, rule.String()}
			}
		}
		g.rulesFor[rule.Head] = append(g.rulesFor[rule.Head], rule)
		g.maxArity = util.Max(g.maxArity, rule.Arity())
		switch {
		case rule.Lexical():
			word := rule.Body[0].Symbol
			env := rule.Instantiate()
			g.lexicon[word] = append(g.lexicon[word], LexicalEntry{
				Head: rule.Head,
				AVM:  env.Export(rule.HeadTemplate),
				Rule: rule,
			})
		case rule.Arity() == 1:
			g.unaryFor[rule.Body[0].Symbol] = append(g.unaryFor[rule.Body[0].Symbol], rule)
		default:
			g.internal = append(g.internal, rule)
		}
	}
	g.ENonTerm.Frozen = true
	return g, nil
}

func checkBindings(rule *Rule) error {
	var seen map[int]string
	for _, binding := range rule.Bindings {
		if binding.Slot < 0 || binding.Slot >= rule.NumVars {
			return &ModelError{fmt.Sprintf("tag binding slot #%d out of range", binding.Slot), rule.String()}
		}
		if seen == nil {
			seen = make(map[int]string, len(rule.Bindings))
		}
		if prev, exists := seen[binding.Slot]; exists && prev != binding.Atom {
			return &ModelError{
				fmt.Sprintf("contradictory constraints %s and %s on tag #%d", prev, binding.Atom, binding.Slot),
				rule.String(),
			}
		}
		seen[binding.Slot] = binding.Atom
	}
	return nil
}

func startsUpper(symbol string) bool {
	first, _ := utf8.DecodeRuneInString(symbol)
	return unicode.IsUpper(first)
}

// RulesFor returns every rule headed by the nonterminal, in load order.
func (g *Grammar) RulesFor(head string) []*Rule {
	return g.rulesFor[head]
}

// UnaryFor returns the arity-1 nonterminal rules whose body is the given
// symbol.
func (g *Grammar) UnaryFor(symbol string) []*Rule {
	return g.unaryFor[symbol]
}

// Internal returns the rules of arity 2 and up.
func (g *Grammar) Internal() []*Rule {
	return g.internal
}

// Lexicon returns the edge seeds for a word; nil when the word is unknown.
func (g *Grammar) Lexicon(word string) []LexicalEntry {
	return g.lexicon[word]
}

func (g *Grammar) LexiconSize() int {
	return len(g.lexicon)
}

func (g *Grammar) MaxArity() int {
	return g.maxArity
}

func (g *Grammar) NonTerminals() []string {
	retval := make([]string, g.ENonTerm.Len())
	for i := range retval {
		retval[i] = g.ENonTerm.ValueOf(i).(string)
	}
	return retval
}

func (g *Grammar) String() string {
	return fmt.Sprintf("grammar start %s; %d nonterminals, %d rules, %d lexicon words",
		g.Start, g.ENonTerm.Len(), len(g.Rules), len(g.lexicon))
}

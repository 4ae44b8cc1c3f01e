package chart

import (
	"log"
	"strings"

	"ugp/alg/unify"
	nlp "ugp/nlp/types"
)

var AllOut bool = false

// Parser runs bottom-up chart parsing over a grammar: lexical entries seed
// the length-1 spans, then every longer span tries every rule under every
// partition of the span into contiguous non-empty parts, one per body
// item. Rule application happens under a fresh variable environment per
// candidate, so a unification conflict prunes just that candidate.
//
// The parser keeps no per-parse state; one instance may serve concurrent
// Parse calls.
type Parser struct {
	grammar *nlp.Grammar
}

func NewParser(grammar *nlp.Grammar) *Parser {
	if grammar == nil {
		panic("Parser requires a grammar")
	}
	return &Parser{grammar}
}

func (p *Parser) Grammar() *nlp.Grammar {
	return p.grammar
}

func (p *Parser) Parse(sent nlp.Sentence) *Result {
	return p.ParseTokens(sent.Tokens())
}

func (p *Parser) ParseTokens(tokens []string) *Result {
	if AllOut {
		log.Println("Parsing:", strings.Join(tokens, " "))
	}
	numTokens := len(tokens)
	chart := NewChart(numTokens, p.grammar.ENonTerm)
	for i, word := range tokens {
		for _, entry := range p.grammar.Lexicon(word) {
			added := chart.Add(&Edge{
				Start:  i,
				End:    i + 1,
				Symbol: entry.Head,
				AVM:    entry.AVM,
				Rule:   entry.Rule,
				Word:   word,
			})
			if added && AllOut {
				log.Println("Seeded", entry.Head, "over", word)
			}
		}
		p.closeUnary(chart, i, i+1)
	}
	for length := 2; length <= numTokens; length++ {
		for start := 0; start+length <= numTokens; start++ {
			for _, rule := range p.grammar.Internal() {
				if rule.Arity() > length {
					continue
				}
				p.applyRule(chart, tokens, rule, start, start+length)
			}
			p.closeUnary(chart, start, start+length)
		}
	}
	result := &Result{Tokens: tokens, chart: chart}
	if numTokens > 0 {
		parses := chart.EdgesFor(0, numTokens, p.grammar.Start)
		result.Parses = append(result.Parses, parses...)
		result.Accepted = len(result.Parses) > 0
	}
	if AllOut {
		log.Println(result.String())
	}
	return result
}

// applyRule enumerates every partition of the span into one part per body
// item by walking the split points left to right.
func (p *Parser) applyRule(chart *Chart, tokens []string, rule *nlp.Rule, start, end int) {
	arity := rule.Arity()
	bounds := make([]int, arity+1)
	bounds[0], bounds[arity] = start, end
	p.splitFrom(chart, tokens, rule, bounds, 1)
}

func (p *Parser) splitFrom(chart *Chart, tokens []string, rule *nlp.Rule, bounds []int, part int) {
	arity := rule.Arity()
	if part == arity {
		p.combine(chart, tokens, rule, bounds, make([]*Edge, 0, arity))
		return
	}
	// later parts each still need at least one token
	for split := bounds[part-1] + 1; split <= bounds[arity]-(arity-part); split++ {
		bounds[part] = split
		p.splitFrom(chart, tokens, rule, bounds, part+1)
	}
}

// combine picks a child for every body item over the current partition:
// terminal items must cover exactly their word, nonterminal items draw
// from the chart.
func (p *Parser) combine(chart *Chart, tokens []string, rule *nlp.Rule, bounds []int, children []*Edge) {
	pos := len(children)
	if pos == rule.Arity() {
		p.finish(chart, rule, bounds, children)
		return
	}
	item := &rule.Body[pos]
	start, end := bounds[pos], bounds[pos+1]
	if item.Terminal {
		if end-start != 1 || tokens[start] != item.Symbol {
			return
		}
		leaf := &Edge{Start: start, End: end, Word: tokens[start], AVM: unify.NewAVM()}
		p.combine(chart, tokens, rule, bounds, append(children, leaf))
		return
	}
	for _, child := range chart.EdgesFor(start, end, item.Symbol) {
		p.combine(chart, tokens, rule, bounds, append(children, child))
	}
}

// finish instantiates the rule for one full child combination: body
// templates unify against the child structures, and on success the head
// template is exported into a new edge.
func (p *Parser) finish(chart *Chart, rule *nlp.Rule, bounds []int, children []*Edge) {
	env := rule.Instantiate()
	for i, child := range children {
		item := &rule.Body[i]
		if item.Terminal {
			continue
		}
		if _, err := env.Unify(item.Template, child.AVM); err != nil {
			if AllOut {
				log.Println("Pruned", rule.Head, "over", Span{bounds[0], bounds[len(bounds)-1]}, ":", err.Error())
			}
			return
		}
	}
	tree := make([]*Edge, len(children))
	copy(tree, children)
	edge := &Edge{
		Start:    bounds[0],
		End:      bounds[len(bounds)-1],
		Symbol:   rule.Head,
		AVM:      env.Export(rule.HeadTemplate),
		Rule:     rule,
		Children: tree,
	}
	if chart.Add(edge) && AllOut {
		log.Println("Added", edge.String())
	}
}

// closeUnary applies arity-1 nonterminal rules over the span until no new
// edge appears; insert-time dedup bounds the loop.
func (p *Parser) closeUnary(chart *Chart, start, end int) {
	queue := append([]*Edge(nil), chart.Edges(start, end)...)
	for len(queue) > 0 {
		edge := queue[0]
		queue = queue[1:]
		for _, rule := range p.grammar.UnaryFor(edge.Symbol) {
			env := rule.Instantiate()
			if _, err := env.Unify(rule.Body[0].Template, edge.AVM); err != nil {
				continue
			}
			derived := &Edge{
				Start:    start,
				End:      end,
				Symbol:   rule.Head,
				AVM:      env.Export(rule.HeadTemplate),
				Rule:     rule,
				Children: []*Edge{edge},
			}
			if chart.Add(derived) {
				if AllOut {
					log.Println("Added", derived.String())
				}
				queue = append(queue, derived)
			}
		}
	}
}

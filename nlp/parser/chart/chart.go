package chart

import (
	"bytes"
	"fmt"
	"strings"

	"ugp/alg/unify"
	"ugp/nlp/types"
	"ugp/util"
)

type Span struct {
	Start, End int
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Edge is one derived constituent: a nonterminal over a span with its
// concrete feature structure and provenance. Lexical seeds carry the Word
// they cover; terminal words inside larger rules appear as leaves with an
// empty Symbol.
type Edge struct {
	Start    int
	End      int
	Symbol   string
	AVM      *unify.AVM
	Rule     *types.Rule
	Children []*Edge
	Word     string
}

func (e *Edge) Leaf() bool {
	return len(e.Children) == 0
}

func (e *Edge) String() string {
	switch {
	case e.Symbol == "":
		return fmt.Sprintf("%d..%d: %q", e.Start, e.End, e.Word)
	case e.Word != "":
		return fmt.Sprintf("%d..%d: %s %s %s", e.Start, e.End, e.Symbol, e.Word, e.AVM.String())
	default:
		return fmt.Sprintf("%d..%d: %s %s", e.Start, e.End, e.Symbol, e.AVM.String())
	}
}

// Tree renders the whole derivation, one constituent per line, children
// indented under their parent.
func (e *Edge) Tree() string {
	var buf bytes.Buffer
	e.writeTree(&buf, 0)
	return buf.String()
}

func (e *Edge) writeTree(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString(e.String())
	for _, child := range e.Children {
		buf.WriteByte('\n')
		child.writeTree(buf, depth+1)
	}
}

type chartCell struct {
	edges []*Edge
	bySym [][]*Edge
}

// Chart holds the edges derived so far, addressed by span and by interned
// nonterminal. Equal feature structures for the same span and symbol are
// collapsed on insert, keeping the first derivation; distinct ones are all
// kept.
type Chart struct {
	numTokens int
	eSym      *util.EnumSet
	cells     [][]chartCell
}

func NewChart(numTokens int, eSym *util.EnumSet) *Chart {
	cells := make([][]chartCell, numTokens)
	for start := range cells {
		cells[start] = make([]chartCell, numTokens-start)
	}
	return &Chart{numTokens: numTokens, eSym: eSym, cells: cells}
}

func (c *Chart) NumTokens() int {
	return c.numTokens
}

func (c *Chart) at(start, end int) *chartCell {
	if start < 0 || end > c.numTokens || start >= end {
		panic(fmt.Sprintf("Span %d..%d outside chart of %d tokens", start, end, c.numTokens))
	}
	return &c.cells[start][end-start-1]
}

// Add inserts an edge unless an equal-featured edge for the same span and
// symbol exists; it reports whether the edge was kept.
func (c *Chart) Add(edge *Edge) bool {
	id, exists := c.eSym.IndexOf(edge.Symbol)
	if !exists {
		panic("Unknown nonterminal " + edge.Symbol)
	}
	cell := c.at(edge.Start, edge.End)
	if cell.bySym == nil {
		cell.bySym = make([][]*Edge, c.eSym.Len())
	}
	for _, existing := range cell.bySym[id] {
		if existing.AVM.Equal(edge.AVM) {
			return false
		}
	}
	cell.bySym[id] = append(cell.bySym[id], edge)
	cell.edges = append(cell.edges, edge)
	return true
}

func (c *Chart) Edges(start, end int) []*Edge {
	return c.at(start, end).edges
}

func (c *Chart) EdgesFor(start, end int, symbol string) []*Edge {
	id, exists := c.eSym.IndexOf(symbol)
	if !exists {
		return nil
	}
	cell := c.at(start, end)
	if cell.bySym == nil {
		return nil
	}
	return cell.bySym[id]
}

func (c *Chart) Covered(start, end int) bool {
	return len(c.at(start, end).edges) > 0
}

// Uncovered lists every span no nonterminal was derived over, smallest
// spans first; rejections use it as the diagnostic.
func (c *Chart) Uncovered() []Span {
	var spans []Span
	for length := 1; length <= c.numTokens; length++ {
		for start := 0; start+length <= c.numTokens; start++ {
			if !c.Covered(start, start+length) {
				spans = append(spans, Span{start, start + length})
			}
		}
	}
	return spans
}

func (c *Chart) String() string {
	var lines []string
	for length := 1; length <= c.numTokens; length++ {
		for start := 0; start+length <= c.numTokens; start++ {
			for _, edge := range c.at(start, start+length).edges {
				lines = append(lines, edge.String())
			}
		}
	}
	return strings.Join(lines, "\n")
}

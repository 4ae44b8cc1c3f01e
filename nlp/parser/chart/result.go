package chart

import (
	"fmt"
	"strings"
)

// Result is the outcome of one parse. Rejection is a normal outcome: the
// chart stays available so callers can report which spans never derived a
// nonterminal.
type Result struct {
	Tokens   []string
	Accepted bool
	Parses   []*Edge
	chart    *Chart
}

// First returns an accepted start-symbol edge over the whole input, nil
// when the sentence was rejected. Further readings, if any, are in Parses.
func (r *Result) First() *Edge {
	if len(r.Parses) == 0 {
		return nil
	}
	return r.Parses[0]
}

func (r *Result) Chart() *Chart {
	return r.chart
}

func (r *Result) Uncovered() []Span {
	if r.chart == nil {
		return nil
	}
	return r.chart.Uncovered()
}

func (r *Result) String() string {
	sentence := strings.Join(r.Tokens, " ")
	if !r.Accepted {
		return "REJECT: " + sentence
	}
	if len(r.Parses) > 1 {
		return fmt.Sprintf("ACCEPT (%d readings): %s", len(r.Parses), sentence)
	}
	return "ACCEPT: " + sentence
}

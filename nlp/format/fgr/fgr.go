package fgr

// Package FGR reads feature grammar rule files

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"ugp/alg/unify"
	"ugp/nlp/types"
	"ugp/util"
)

const (
	COMMENT_MARKER  = "//"
	ARROW           = "->"
	RULE_TERMINATOR = ';'
	EXCERPT_LEN     = 16
)

// Read parses grammar rules from free-form text: rules end with ';' and
// may span lines, '//' comments run to end of line. Only syntax is checked
// here; model validation happens in types.NewGrammar.
func Read(r io.Reader) ([]*types.Rule, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := &scanner{input: string(data), line: 1}
	var rules []*types.Rule
	for {
		s.skip()
		if s.eof() {
			break
		}
		rule, err := parseRule(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func Write(writer io.Writer, rules []*types.Rule) error {
	for _, rule := range rules {
		writer.Write(append([]byte(rule.String()), '\n'))
	}
	return nil
}

func ReadFile(filename string) ([]*types.Rule, error) {
	file, err := os.Open(filename)
	defer file.Close()
	if err != nil {
		return nil, err
	}

	return Read(file)
}

func WriteFile(filename string, rules []*types.Rule) error {
	file, err := os.Create(filename)
	defer file.Close()
	if err != nil {
		return err
	}
	return Write(file, rules)
}

type scanner struct {
	input string
	pos   int
	line  int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

// skip consumes whitespace and comments, counting lines.
func (s *scanner) skip() {
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++
		case c == ' ' || c == '\t' || c == '\r':
			s.pos++
		case strings.HasPrefix(s.input[s.pos:], COMMENT_MARKER):
			for s.pos < len(s.input) && s.input[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	rest := s.input[util.Min(s.pos, len(s.input)):]
	if len(rest) == 0 {
		return errors.New(fmt.Sprintf("At line %d: %s at end of input", s.line, msg))
	}
	return errors.New(fmt.Sprintf("At line %d: %s near %q", s.line, msg, util.Prefix(rest, EXCERPT_LEN)))
}

func nameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '-'
}

func nameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func atomStart(c byte) bool {
	return nameStart(c) || c >= '0' && c <= '9'
}

// name scans a symbol or attribute name. A '-' directly followed by '>' is
// left alone so unspaced arrows still parse.
func (s *scanner) name() (string, error) {
	s.skip()
	if s.eof() || !nameStart(s.peek()) {
		return "", s.errorf("expected name")
	}
	start := s.pos
	for s.pos < len(s.input) && nameChar(s.input[s.pos]) {
		if s.input[s.pos] == '-' && s.pos+1 < len(s.input) && s.input[s.pos+1] == '>' {
			break
		}
		s.pos++
	}
	return s.input[start:s.pos], nil
}

// atom scans a feature value atom; unlike symbol names these may start
// with a digit.
func (s *scanner) atom() (string, error) {
	s.skip()
	if s.eof() || !atomStart(s.peek()) {
		return "", s.errorf("expected value")
	}
	start := s.pos
	for s.pos < len(s.input) && nameChar(s.input[s.pos]) {
		if s.input[s.pos] == '-' && s.pos+1 < len(s.input) && s.input[s.pos+1] == '>' {
			break
		}
		s.pos++
	}
	return s.input[start:s.pos], nil
}

func (s *scanner) expect(c byte) error {
	s.skip()
	if s.peek() != c {
		return s.errorf("expected %q", string(c))
	}
	s.pos++
	return nil
}

func (s *scanner) expectArrow() error {
	s.skip()
	if s.pos+1 >= len(s.input) || s.input[s.pos:s.pos+2] != ARROW {
		return s.errorf("expected %s", ARROW)
	}
	s.pos += 2
	return nil
}

func (s *scanner) tagLabel() (int, error) {
	if err := s.expect('#'); err != nil {
		return 0, err
	}
	start := s.pos
	for s.pos < len(s.input) && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return 0, s.errorf("expected tag number after #")
	}
	label, err := strconv.Atoi(s.input[start:s.pos])
	if err != nil {
		return 0, s.errorf("bad tag number: %s", err.Error())
	}
	return label, nil
}

// ruleBuilder renumbers a rule's tag labels into dense variable slots and
// collects inline tag constraints.
type ruleBuilder struct {
	slots    map[int]int
	numVars  int
	bindings []types.TagBinding
}

func (rb *ruleBuilder) slot(label int) int {
	if slot, exists := rb.slots[label]; exists {
		return slot
	}
	slot := rb.numVars
	rb.slots[label] = slot
	rb.numVars++
	return slot
}

func parseRule(s *scanner) (*types.Rule, error) {
	rb := &ruleBuilder{slots: make(map[int]int)}
	head, err := s.name()
	if err != nil {
		return nil, err
	}
	headTemplate, err := parseTemplate(s, rb)
	if err != nil {
		return nil, err
	}
	if err = s.expectArrow(); err != nil {
		return nil, err
	}
	var body []types.RuleItem
	for {
		s.skip()
		if s.peek() == RULE_TERMINATOR {
			s.pos++
			break
		}
		if s.eof() {
			return nil, s.errorf("expected %q terminating rule for %s", string(RULE_TERMINATOR), head)
		}
		symbol, err := s.name()
		if err != nil {
			return nil, err
		}
		template, err := parseTemplate(s, rb)
		if err != nil {
			return nil, err
		}
		body = append(body, types.RuleItem{Symbol: symbol, Template: template})
	}
	return &types.Rule{
		Head:         head,
		HeadTemplate: headTemplate,
		Body:         body,
		NumVars:      rb.numVars,
		Bindings:     rb.bindings,
	}, nil
}

// parseTemplate parses an optional feature list; a symbol without one gets
// an empty template.
func parseTemplate(s *scanner, rb *ruleBuilder) (*unify.AVM, error) {
	avm := unify.NewAVM()
	s.skip()
	if s.peek() != '[' {
		return avm, nil
	}
	s.pos++
	s.skip()
	if s.peek() == ']' {
		s.pos++
		return avm, nil
	}
	for {
		name, err := s.name()
		if err != nil {
			return nil, err
		}
		if avm.Has(name) {
			return nil, s.errorf("duplicate attribute %s", name)
		}
		if err = s.expect(':'); err != nil {
			return nil, err
		}
		value, err := parseValue(s, rb)
		if err != nil {
			return nil, err
		}
		avm.Set(name, value)
		s.skip()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return avm, nil
		default:
			return nil, s.errorf("expected ',' or ']' in feature list")
		}
	}
}

// parseValue parses an atom, **top**, a tag, or a tag with an inline
// constraint ("#1 nom").
func parseValue(s *scanner, rb *ruleBuilder) (unify.Value, error) {
	s.skip()
	switch {
	case s.peek() == '#':
		label, err := s.tagLabel()
		if err != nil {
			return unify.Value{}, err
		}
		slot := rb.slot(label)
		s.skip()
		if atomStart(s.peek()) {
			atom, err := s.atom()
			if err != nil {
				return unify.Value{}, err
			}
			rb.bindings = append(rb.bindings, types.TagBinding{Slot: slot, Atom: atom})
		}
		return unify.Ref(slot), nil
	case s.peek() == '*':
		if s.pos+len(unify.TOP_STR) > len(s.input) || s.input[s.pos:s.pos+len(unify.TOP_STR)] != unify.TOP_STR {
			return unify.Value{}, s.errorf("expected %s", unify.TOP_STR)
		}
		s.pos += len(unify.TOP_STR)
		return unify.Top, nil
	default:
		atom, err := s.atom()
		if err != nil {
			return unify.Value{}, err
		}
		return unify.Atom(atom), nil
	}
}

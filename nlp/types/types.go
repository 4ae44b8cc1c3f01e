package types

import (
	"reflect"
	"strings"

	"ugp/util"
)

type Token string

func (t Token) Equal(other util.Equaler) bool {
	return t == other.(Token)
}

type Sentence interface {
	util.Equaler
	Tokens() []string
}

type BasicSentence []Token

func NewBasicSentence(tokens []string) BasicSentence {
	retval := make(BasicSentence, len(tokens))
	for i, val := range tokens {
		retval[i] = Token(val)
	}
	return retval
}

func (b BasicSentence) Tokens() []string {
	retval := make([]string, len(b))
	for i, val := range b {
		retval[i] = string(val)
	}
	return retval
}

func (b BasicSentence) Equal(otherEq util.Equaler) bool {
	asBasic := otherEq.(BasicSentence)
	return reflect.DeepEqual(b, asBasic)
}

func (b BasicSentence) String() string {
	return strings.Join(b.Tokens(), " ")
}

var _ Sentence = BasicSentence{}

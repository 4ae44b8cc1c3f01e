package raw

import (
	"bytes"
	"strings"
	"testing"

	nlp "ugp/nlp/types"
)

func TestRead(t *testing.T) {
	input := "He likes himself\n\nthey like themselves\n"
	sentences, err := Read(strings.NewReader(input), 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(sentences))
	}
	if sentences[0].String() != "he likes himself" {
		t.Error("Tokens should be lowercased by default, got " + sentences[0].String())
	}
	if len(sentences[1]) != 3 {
		t.Errorf("Expected 3 tokens, got %d", len(sentences[1]))
	}
}

func TestReadLimit(t *testing.T) {
	input := "a b\nc d\ne f\n"
	sentences, err := Read(strings.NewReader(input), 2)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(sentences) != 2 {
		t.Errorf("Limit not applied, got %d sentences", len(sentences))
	}
}

func TestTokenizeKeepCase(t *testing.T) {
	Lowercase = false
	defer func() { Lowercase = true }()
	sent := Tokenize("Mary likes Sue")
	if sent.String() != "Mary likes Sue" {
		t.Error("Case should be kept when Lowercase is off, got " + sent.String())
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if Tokenize("   \t ") != nil {
		t.Error("Blank line should tokenize to nil")
	}
}

func TestWriteRoundtrip(t *testing.T) {
	sentences := []nlp.BasicSentence{
		nlp.NewBasicSentence([]string{"he", "likes", "himself"}),
		nlp.NewBasicSentence([]string{"she", "sleeps"}),
	}
	var buf bytes.Buffer
	Write(&buf, sentences)
	if buf.String() != "he likes himself\nshe sleeps\n" {
		t.Error("Unexpected output: " + buf.String())
	}
	read, err := Read(&buf, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(read) != 2 || !read[0].Equal(sentences[0]) {
		t.Error("Written sentences should read back unchanged")
	}
}

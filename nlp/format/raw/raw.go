package raw

// Package raw reads raw sentence files
// raw files contain a whitespace-tokenized sentence per line
// empty lines are skipped

import (
	nlp "ugp/nlp/types"

	"bufio"
	"io"
	"strings"
	// "log"
	"os"
)

var (
	// Lowercase folds input tokens to lower case so they match lexicon
	// terminals; parse commands expose it as a flag.
	Lowercase = true
)

func Read(reader io.Reader, limit int) ([]nlp.BasicSentence, error) {
	var sentences []nlp.BasicSentence
	bufReader := bufio.NewReader(reader)

	for curLine, isPrefix, err := bufReader.ReadLine(); err == nil; curLine, isPrefix, err = bufReader.ReadLine() {
		if isPrefix {
			panic("Buffer not large enough, fix me :(")
		}
		sent := Tokenize(string(curLine))
		if len(sent) == 0 {
			continue
		}
		sentences = append(sentences, sent)
		if limit > 0 && len(sentences) >= limit {
			break
		}
	}
	return sentences, nil
}

// Tokenize splits one line into a sentence, folding case when Lowercase
// is set.
func Tokenize(line string) nlp.BasicSentence {
	if Lowercase {
		line = strings.ToLower(line)
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return nlp.NewBasicSentence(fields)
}

func ReadFile(filename string, limit int) ([]nlp.BasicSentence, error) {
	file, err := os.Open(filename)
	defer file.Close()
	if err != nil {
		return nil, err
	}

	return Read(file, limit)
}

func Write(writer io.Writer, sents []nlp.BasicSentence) {
	for _, sent := range sents {
		writer.Write([]byte(sent.String()))
		writer.Write([]byte{'\n'})
	}
}

func WriteFile(filename string, sents []nlp.BasicSentence) error {
	file, err := os.Create(filename)
	defer file.Close()
	if err != nil {
		return err
	}
	Write(file, sents)
	return nil
}

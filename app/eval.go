package app

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ugp/eval"
	"ugp/nlp/format/raw"
	"ugp/nlp/parser/chart"
	nlp "ugp/nlp/types"
	"ugp/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var listErrors bool

type goldSentence struct {
	accept bool
	sent   nlp.BasicSentence
}

type misjudgment struct {
	sentence string
	gold     bool
}

func (m misjudgment) String() string {
	return m.sentence
}

func (m misjudgment) Class() string {
	if m.gold {
		return "false reject"
	}
	return "false accept"
}

// readGold reads an annotated sentence file: one sentence per line,
// prefixed by + (accept) or - (reject).
func readGold(filename string, limit int) ([]goldSentence, error) {
	file, err := os.Open(filename)
	defer file.Close()
	if err != nil {
		return nil, err
	}
	var gold []goldSentence
	reader := bufio.NewScanner(file)
	var line int
	for reader.Scan() {
		line++
		fields := strings.Fields(reader.Text())
		if len(fields) == 0 {
			continue
		}
		var accept bool
		switch fields[0] {
		case "+":
			accept = true
		case "-":
			accept = false
		default:
			return nil, errors.New(fmt.Sprintf("At line %d: expected + or - marker, got %q", line, fields[0]))
		}
		if len(fields) == 1 {
			return nil, errors.New(fmt.Sprintf("At line %d: missing sentence after marker", line))
		}
		gold = append(gold, goldSentence{accept, raw.Tokenize(strings.Join(fields[1:], " "))})
		if limit > 0 && len(gold) >= limit {
			break
		}
	}
	return gold, reader.Err()
}

func EvalConfigOut() {
	log.Println("Configuration")
	log.Printf("Grammar:\t%s", grammarFile)
	if !VerifyExists(grammarFile) {
		return
	}
	log.Printf("Keep Case:\t%v", keepCase)
	log.Printf("Limit:\t%v", limit)
	log.Println("Data")
	log.Printf("Input File:\t%s", input)
	if !VerifyExists(input) {
		return
	}
}

func Eval(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"g", "i"}

	VerifyFlags(cmd, REQUIRED_FLAGS)

	EvalConfigOut()

	raw.Lowercase = !keepCase

	md5sum, err := util.MD5File(grammarFile)
	if err != nil {
		return err
	}
	log.Println("Grammar MD5:", md5sum)

	grammar, err := loadGrammar()
	if err != nil {
		log.Println(err)
		return err
	}
	parser := chart.NewParser(grammar)

	gold, err := readGold(input, limit)
	if err != nil {
		log.Println(err)
		return err
	}
	log.Println("Read", len(gold), "annotated sentences from", input)

	startTime := time.Now()
	result := new(eval.Result)
	for _, annotated := range gold {
		parsed := parser.Parse(annotated.sent)
		result.Judge(annotated.accept, parsed.Accepted, misjudgment{annotated.sent.String(), annotated.accept})
	}
	if allOut {
		evalTime := time.Since(startTime)
		log.Println("EVAL Total Time:", evalTime)
	}

	log.Println("Judged", result.All(), "sentences,", result.Correct(), "correct")
	log.Printf("Accuracy:\t%.4f", result.Accuracy())
	log.Printf("Precision:\t%.4f", result.Precision())
	log.Printf("Recall:\t%.4f", result.Recall())
	log.Printf("F1:\t%.4f", result.F1())
	for class, count := range result.Errors.ByType() {
		log.Println(class+":", count)
	}
	if listErrors {
		for _, e := range result.Errors {
			fmt.Println(e.Class() + ": " + e.String())
		}
	}
	return nil
}

func EvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Eval,
		UsageLine: "eval <file options> [arguments]",
		Short:     "scores grammar judgments against annotated sentences",
		Long: `
scores grammar accept/reject judgments against an annotated sentence file

	$ ./ugp eval -g <grammar file> -i <annotated file> [-list]

annotated files contain one sentence per line prefixed by + (accept) or
- (reject)

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&grammarFile, "g", "", "Grammar File (.fgr)")
	cmd.Flag.StringVar(&input, "i", "", "Annotated Input File")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit # of sentences read")
	cmd.Flag.BoolVar(&listErrors, "list", false, "Print every misjudged sentence")
	cmd.Flag.BoolVar(&keepCase, "keepcase", false, "Don't lowercase input tokens")
	return cmd
}

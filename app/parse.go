package app

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ugp/nlp/format/fgr"
	"ugp/nlp/format/raw"
	"ugp/nlp/parser/chart"
	"ugp/nlp/types"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var (
	showChart bool
	noFS      bool
	keepCase  bool
)

func ParseConfigOut() {
	log.Println("Configuration")
	log.Printf("Grammar:\t%s", grammarFile)
	if !VerifyExists(grammarFile) {
		return
	}
	log.Printf("Keep Case:\t%v", keepCase)
	log.Printf("Limit:\t%v", limit)
	log.Println("Data")
	if len(input) > 0 {
		log.Printf("Input File:\t%s", input)
		if !VerifyExists(input) {
			return
		}
	} else {
		log.Printf("Input File:\tstandard input")
	}
	if len(output) > 0 {
		log.Printf("Output File:\t%s", output)
	} else {
		log.Printf("Output File:\tstandard output")
	}
}

func loadGrammar() (*types.Grammar, error) {
	rules, err := fgr.ReadFile(grammarFile)
	if err != nil {
		return nil, err
	}
	log.Println("Read", len(rules), "rules from", grammarFile)
	grammar, err := types.NewGrammar(rules)
	if err != nil {
		return nil, err
	}
	log.Println("Built", grammar.String())
	return grammar, nil
}

func writeResult(out *bufio.Writer, result *chart.Result) {
	fmt.Fprintln(out, result.String())
	if result.Accepted {
		for _, parse := range result.Parses {
			if !noFS {
				fmt.Fprintln(out, parse.AVM.String())
			}
			fmt.Fprintln(out, parse.Tree())
		}
	} else if uncovered := result.Uncovered(); len(uncovered) > 0 {
		// only the shortest holes are informative, longer spans fail
		// because these do
		minLen := uncovered[0].End - uncovered[0].Start
		for _, span := range uncovered {
			if span.End-span.Start > minLen {
				break
			}
			words := strings.Join(result.Tokens[span.Start:span.End], " ")
			fmt.Fprintf(out, "no derivation over %s: %q\n", span.String(), words)
		}
	}
	if showChart {
		fmt.Fprintln(out, result.Chart().String())
	}
	fmt.Fprintln(out)
}

func Parse(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"g"}

	VerifyFlags(cmd, REQUIRED_FLAGS)

	ParseConfigOut()

	raw.Lowercase = !keepCase

	grammar, err := loadGrammar()
	if err != nil {
		log.Println(err)
		return err
	}
	parser := chart.NewParser(grammar)

	var out *bufio.Writer
	if len(output) > 0 {
		file, err := os.Create(output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = bufio.NewWriter(file)
	} else {
		out = bufio.NewWriter(os.Stdout)
	}
	defer out.Flush()

	startTime := time.Now()
	numParsed, numAccepted := 0, 0
	if len(input) > 0 {
		sents, err := raw.ReadFile(input, limit)
		if err != nil {
			panic(fmt.Sprintf("Failed reading raw file - %v", err))
		}
		log.Println("Read", len(sents), "raw sentences from", input)
		for _, sent := range sents {
			result := parser.Parse(sent)
			writeResult(out, result)
			numParsed++
			if result.Accepted {
				numAccepted++
			}
		}
	} else {
		reader := bufio.NewScanner(os.Stdin)
		for {
			out.Flush()
			fmt.Print("> ")
			if !reader.Scan() {
				break
			}
			sent := raw.Tokenize(reader.Text())
			if len(sent) == 0 {
				continue
			}
			result := parser.Parse(sent)
			writeResult(out, result)
			numParsed++
			if result.Accepted {
				numAccepted++
			}
			if limit > 0 && numParsed >= limit {
				break
			}
		}
		fmt.Println()
	}
	if allOut {
		parseTime := time.Since(startTime)
		log.Println("Parsed", numParsed, "sentences,", numAccepted, "accepted")
		log.Println("PARSE Total Time:", parseTime)
	}
	return nil
}

func ParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Parse,
		UsageLine: "parse <file options> [arguments]",
		Short:     "parses raw sentences with a feature grammar",
		Long: `
parses raw sentences with a unification feature grammar

	$ ./ugp parse -g <grammar file> [-i <input file>] [-o <output file>] [options]

reads sentences from standard input when no input file is given

`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&grammarFile, "g", "", "Grammar File (.fgr)")
	cmd.Flag.StringVar(&input, "i", "", "Input File (one sentence per line)")
	cmd.Flag.StringVar(&output, "o", "", "Output File")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit # of sentences read")
	cmd.Flag.BoolVar(&showChart, "c", false, "Show the chart for every sentence")
	cmd.Flag.BoolVar(&noFS, "nofs", false, "Don't show feature structures of accepted sentences")
	cmd.Flag.BoolVar(&keepCase, "keepcase", false, "Don't lowercase input tokens")
	cmd.Flag.BoolVar(&chart.AllOut, "verbose", false, "Log chart edges during parsing")
	return cmd
}

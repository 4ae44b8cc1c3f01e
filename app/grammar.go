package app

import (
	"fmt"
	"log"
	"strings"

	"ugp/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

var showRules bool

func GrammarConfigOut() {
	log.Println("Configuration")
	log.Printf("Grammar:\t%s", grammarFile)
	if !VerifyExists(grammarFile) {
		return
	}
}

func Grammar(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"g"}

	VerifyFlags(cmd, REQUIRED_FLAGS)

	GrammarConfigOut()

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
	log.Println("Start symbol:", grammar.Start)
	log.Println("Nonterminals:", strings.Join(grammar.NonTerminals(), " "))
	log.Println("Lexicon words:", grammar.LexiconSize())
	log.Println("Max arity:", grammar.MaxArity())
	if showRules {
		for _, rule := range grammar.Rules {
			fmt.Println(rule.String())
		}
	}
	return nil
}

func GrammarCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Grammar,
		UsageLine: "grammar <file options> [arguments]",
		Short:     "validates a feature grammar file",
		Long: `
validates a feature grammar file and prints a summary

	$ ./ugp grammar -g <grammar file> [-rules]

`,
		Flag: *flag.NewFlagSet("grammar", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&grammarFile, "g", "", "Grammar File (.fgr)")
	cmd.Flag.BoolVar(&showRules, "rules", false, "Print all rules after validation")
	return cmd
}

package main

import (
	"errors"
	"flag"
	"io/ioutil"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/xmlminus/lex"
	"github.com/npillmayer/xmlminus/parser"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'xmlminus.cli'.
func tracer() tracing.Trace {
	return tracing.Select("xmlminus.cli")
}

// main() drives the two stages of the XML-minus front end. Given a file
// argument, the file is checked as one document and the process exits with a
// code reflecting the outcome. Without arguments an interactive CLI starts,
// where every entered line is checked as one document.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	//
	if flag.NArg() > 0 {
		document, err := ioutil.ReadFile(flag.Arg(0))
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		if err := check(string(document)); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(exitCode(err))
		}
		pterm.Info.Println("document parsed successfully")
		return
	}
	//
	// set up REPL
	pterm.Info.Println("Welcome to XMM") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")  // inform user how to stop the CLI
	repl, err := readline.New("xmm> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(1)
	}
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err := check(line); err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Info.Println("document parsed successfully")
	}
	println("Good bye!")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// check runs one document through both stages, streaming the leftmost
// derivation to stdout while the parse walks.
func check(document string) error {
	tokens, err := lex.Tokenize(document)
	if err != nil {
		return err
	}
	tracer().Debugf("token sequence digest %s", tokens.Digest())
	p := parser.NewParser(parser.DerivationWriter(os.Stdout))
	return p.Parse(tokens)
}

// exitCode decides the process exit signal for a failed run. This is the one
// boundary where errors terminate the process.
func exitCode(err error) int {
	var perr *parser.Error
	if errors.As(err, &perr) {
		switch perr.Code {
		case parser.TagMismatch:
			return 2
		case parser.DuplicateAttribute:
			return 3
		}
	}
	return 1
}

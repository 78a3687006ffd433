package xmlminus

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xmlminus'.
func tracer() tracing.Trace {
	return tracing.Select("xmlminus")
}

// --- Tokens of the XML-minus language ---------------------------------------

// TokenType is the category of a Token. The token set of XML-minus is closed;
// every token a scanner may produce is listed here.
type TokenType int

// All token types of XML-minus. EOF is an explicit in-band terminal which the
// tokenizer appends at the end of every successfully scanned document.
// Epsilon is never produced by a tokenizer: parsers synthesize it as the
// lookahead once the token sequence is exhausted.
const (
	Name   TokenType = iota + 1 // tag or attribute name
	Text                        // quoted attribute value ("…" or '…')
	Data                        // character data between tags
	Open                        // <
	Close                       // >
	OpenEnd                     // </
	CloseEmpty                  // />
	Assign                      // =
	EOF                         // end-of-input terminal
	Epsilon                     // exhausted-lookahead sentinel
)

func (t TokenType) String() string {
	switch t {
	case Name:
		return "NAME"
	case Text:
		return "STRING"
	case Data:
		return "DATA"
	case Open:
		return "<"
	case Close:
		return ">"
	case OpenEnd:
		return "</"
	case CloseEmpty:
		return "/>"
	case Assign:
		return "="
	case EOF:
		return "EOF"
	case Epsilon:
		return "EPSILON"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a classified lexical unit together with the exact source text it
// was matched from. Tokens are immutable values.
type Token struct {
	Kind   TokenType
	Lexeme string
}

func (t Token) String() string {
	switch t.Kind {
	case Open, Close, OpenEnd, CloseEmpty, Assign, EOF, Epsilon:
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
}

// --- Token sequences --------------------------------------------------------

// Sequence is an ordered, finite run of tokens. A sequence produced by a
// complete scan ends with exactly one EOF token; a sequence without the EOF
// terminal is truncated and will be rejected by the parser.
type Sequence []Token

// Terminated reports whether the sequence ends with the EOF terminal.
func (seq Sequence) Terminated() bool {
	return len(seq) > 0 && seq[len(seq)-1].Kind == EOF
}

// Digest returns a stable structural fingerprint of the sequence. Scanning
// the same document twice yields sequences with equal digests. On a hashing
// failure the digest is empty; empty digests never compare as equal
// fingerprints.
func (seq Sequence) Digest() string {
	h, err := structhash.Hash(struct {
		Tokens Sequence
	}{seq}, 1)
	if err != nil {
		tracer().Errorf("sequence digest failed: %v", err)
		return ""
	}
	return h
}

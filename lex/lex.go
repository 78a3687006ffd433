/*
Package lex implements the tokenizer for XML-minus documents.

The tokenizer scans a document left to right. At each scan position an
ordered list of matchers is tried, first match wins; the priority order of
the rules is fixed and significant (a tag NAME and character DATA, for
instance, are only told apart by their surrounding context). Comments and
whitespace runs are recognized but never emitted as tokens. On a complete
scan the resulting token sequence is terminated by one EOF token. If no rule
matches at some position, scanning stops and the tokens recognized so far
are returned without the EOF terminal; the parser rejects such a truncated
sequence.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lex

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/xmlminus"
)

// tracer traces with key 'xmlminus.lex'.
func tracer() tracing.Trace {
	return tracing.Select("xmlminus.lex")
}

// --- Lexical errors ---------------------------------------------------------

// ErrorCode discriminates the lexical error conditions.
type ErrorCode int

const (
	EmptyInput        ErrorCode = iota + 1 // the document contains no text at all
	IllegalCharacter                       // a name contains a character from the invalid set
	IllegalAmpersand                       // '&' not part of an entity or character reference
	MalformedEndTag                        // surplus forward slashes after '</'
	MalformedEmptyTag                      // surplus forward slashes before '/>'
)

// Error is a lexical error. Scanning does not attempt recovery: the first
// Error terminates the run.
type Error struct {
	Code ErrorCode
	Text string // the offending lexeme, if there is one
}

func (e *Error) Error() string {
	switch e.Code {
	case EmptyInput:
		return "cannot scan an empty document"
	case IllegalCharacter:
		return fmt.Sprintf("illegal character in token '%s'", e.Text)
	case IllegalAmpersand:
		return "illegal usage of special symbol '&'"
	case MalformedEndTag:
		return "too many forward slashes in end tag"
	case MalformedEmptyTag:
		return "too many forward slashes in empty tag"
	}
	return fmt.Sprintf("lexical error (%d)", int(e.Code))
}

// --- Scanning ---------------------------------------------------------------

// eofLexeme is the in-band text of the EOF terminal.
const eofLexeme = "&$"

type scanner struct {
	input  string
	length int // input length, in runes
	pos    int // current scan position, in runes
	tokens xmlminus.Sequence
}

// Tokenize scans a whole XML-minus document and returns the resulting token
// sequence, terminated by one EOF token. Comments and whitespace are skipped.
// Tokenize fails with a *lex.Error for empty input and for the lexical error
// conditions of the rule set; it never recovers or returns partial results
// for these. See the package documentation for the behavior on input no rule
// can match.
func Tokenize(document string) (xmlminus.Sequence, error) {
	if document == "" {
		return nil, &Error{Code: EmptyInput}
	}
	s := &scanner{
		input:  document,
		length: len([]rune(document)),
	}
	for s.pos < s.length {
		r, m := s.matchAtPos()
		if m == nil {
			tracer().Infof("no lexical rule matches at position %d, scan stops", s.pos)
			return s.tokens, nil
		}
		lexeme := m.String()
		tracer().Debugf("rule %-10s matched %q at %d", r.name, lexeme, s.pos)
		s.pos += m.Length
		if r.action != nil {
			if err := r.action(s, lexeme); err != nil {
				tracer().Errorf("scanner error: %v", err)
				return nil, err
			}
		}
	}
	s.emit(xmlminus.EOF, eofLexeme)
	tracer().Debugf("scanned %d tokens", len(s.tokens))
	return s.tokens, nil
}

// matchAtPos tries every rule, in priority order, anchored at the current
// scan position.
func (s *scanner) matchAtPos() (*rule, *match) {
	for _, r := range rules {
		m, err := r.pattern.FindStringMatchStartingAt(s.input, s.pos)
		if err != nil {
			tracer().Errorf("rule %s: %v", r.name, err)
			continue
		}
		if m == nil || m.Index != s.pos {
			continue // rule matches later or not at all: not our turn
		}
		return r, &match{Length: m.Length, text: m.String()}
	}
	return nil, nil
}

// match is the part of a pattern match the rule actions care about.
type match struct {
	Length int // length of the matched text, in runes
	text   string
}

func (m *match) String() string {
	return m.text
}

func (s *scanner) emit(kind xmlminus.TokenType, lexeme string) {
	s.tokens = append(s.tokens, xmlminus.Token{Kind: kind, Lexeme: lexeme})
}

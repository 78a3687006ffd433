/*
Package parser implements a predictive recursive-descent parser for XML-minus.

The parser walks an LL(1) grammar over a token sequence, one method per
non-terminal, choosing every alternative from a single token of lookahead.
Each production applied emits exactly one derivation line, in application
order, which yields the leftmost derivation of the input. Two pieces of
auxiliary state enforce what the grammar cannot: a stack of open tag names
(end tags must match their start tag, case-sensitively) and a per-tag set of
attribute names (no duplicates within one tag).

The grammar:

	document      ::= element EOF
	element       ::= < elementPrefix
	elementPrefix ::= NAME attribute elementSuffix
	attribute     ::= NAME = STRING attribute
	attribute     ::= EPSILON
	elementSuffix ::= > elementOrData endTag
	elementSuffix ::= />
	elementOrData ::= element elementOrData
	elementOrData ::= DATA elementOrData
	elementOrData ::= EPSILON
	endTag        ::= </ NAME >

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/xmlminus"
)

// tracer traces with key 'xmlminus.parser'.
func tracer() tracing.Trace {
	return tracing.Select("xmlminus.parser")
}

// --- Parse errors -----------------------------------------------------------

// ErrorCode discriminates the failure conditions of a parse.
type ErrorCode int

const (
	Syntax             ErrorCode = iota + 1 // lookahead fits no grammar alternative
	TagMismatch                             // end tag name differs from start tag name
	DuplicateAttribute                      // two attributes of one tag share a name
	TrailingInput                           // tokens remain after the document completed
	Exhausted                               // read past the end of the token sequence
)

// Error is a parse error. Every error terminates the run; there is no
// recovery and no partial success.
type Error struct {
	Code     ErrorCode
	Expected string // expected terminal or tag name, if known
	Found    string // the unexpected symbol or name
}

func (e *Error) Error() string {
	switch e.Code {
	case Syntax:
		if e.Expected != "" {
			return fmt.Sprintf("syntax error: expected %s but found unexpected symbol %s",
				e.Expected, e.Found)
		}
		return fmt.Sprintf("syntax error: unexpected symbol %s", e.Found)
	case TagMismatch:
		return fmt.Sprintf("end tag mismatch: expected '%s' but found '%s'", e.Expected, e.Found)
	case DuplicateAttribute:
		return fmt.Sprintf("duplicate attribute name '%s' within current tag", e.Found)
	case TrailingInput:
		return fmt.Sprintf("unexpected symbol %s encountered at end of document", e.Found)
	case Exhausted:
		return "token sequence exhausted in mid-parse"
	}
	return fmt.Sprintf("parse error (%d)", int(e.Code))
}

// --- Parser -----------------------------------------------------------------

// Parser is a predictive parser for XML-minus token sequences. Create and
// initialize one with parser.NewParser(...). A Parser may be reused for
// subsequent documents; every call to Parse starts from a clean state.
type Parser struct {
	tokens         xmlminus.Sequence // input, owned by the parser during a run
	cursor         int               // index of the lookahead token
	lookahead      xmlminus.Token
	tagNames       *arraystack.Stack // names of open, not yet closed tags
	attributeNames *hashset.Set      // attribute names of the tag being parsed
	derivation     []string          // production lines emitted so far
	sink           io.Writer         // optional streaming sink for the lines
}

// Option configures a Parser.
type Option func(p *Parser)

// DerivationWriter lets the parser stream every derivation line to w as it
// is produced, one line per production applied.
func DerivationWriter(w io.Writer) Option {
	return func(p *Parser) {
		p.sink = w
	}
}

// NewParser creates an XML-minus parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		tagNames:       arraystack.New(),
		attributeNames: hashset.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse checks a token sequence against the XML-minus grammar, emitting the
// leftmost derivation while it walks. It returns nil if the sequence forms a
// well-formed document, otherwise the first *parser.Error encountered.
//
// The sequence is expected to be terminated by an EOF token, as produced by
// a complete scan; a truncated sequence is rejected.
func (p *Parser) Parse(tokens xmlminus.Sequence) error {
	p.tokens = tokens
	p.cursor = 0
	p.tagNames.Clear()
	p.attributeNames.Clear()
	p.derivation = nil
	if len(tokens) == 0 {
		tracer().Errorf("refusing to parse an empty token sequence")
		return &Error{Code: Exhausted}
	}
	p.lookahead = tokens[0]
	if err := p.document(); err != nil {
		return err
	}
	if !p.predict(xmlminus.Epsilon) {
		return &Error{Code: TrailingInput, Found: p.lookahead.String()}
	}
	tracer().Infof("document parsed successfully, %d productions", len(p.derivation))
	return nil
}

// Derivation returns the production lines emitted during the last parse, in
// application order.
func (p *Parser) Derivation() []string {
	return p.derivation
}

// --- One method per non-terminal --------------------------------------------

// document ::= element EOF
func (p *Parser) document() error {
	p.produce("document ::= element EOF")
	if err := p.element(); err != nil {
		return err
	}
	return p.match(xmlminus.EOF)
}

// element ::= < elementPrefix
func (p *Parser) element() error {
	p.produce("element ::= < elementPrefix")
	if !p.predict(xmlminus.Open) {
		return &Error{Code: Syntax, Expected: xmlminus.Open.String(), Found: p.lookahead.String()}
	}
	if err := p.match(xmlminus.Open); err != nil {
		return err
	}
	return p.elementPrefix()
}

// elementPrefix ::= NAME attribute elementSuffix
//
// The tag name is pushed before it is consumed, for a possible later match
// against an end tag.
func (p *Parser) elementPrefix() error {
	p.produce("elementPrefix ::= NAME attribute elementSuffix")
	if err := p.cacheTagName(p.lookahead); err != nil {
		return err
	}
	if err := p.match(xmlminus.Name); err != nil {
		return err
	}
	if err := p.attribute(); err != nil {
		return err
	}
	return p.elementSuffix()
}

// attribute ::= NAME = STRING attribute | EPSILON
//
// Attributes recurse rather than loop, mirroring the grammar. Leaving via
// the EPSILON alternative resets the attribute-name set for the next tag.
func (p *Parser) attribute() error {
	if p.predict(xmlminus.Name) {
		if err := p.checkDuplicateName(p.lookahead); err != nil {
			return err
		}
		p.produce("attribute ::= NAME = STRING attribute")
		if err := p.match(xmlminus.Name); err != nil {
			return err
		}
		if err := p.match(xmlminus.Assign); err != nil {
			return err
		}
		if err := p.match(xmlminus.Text); err != nil {
			return err
		}
		return p.attribute()
	}
	p.attributeNames.Clear()
	p.produce("attribute ::= EPSILON")
	return nil
}

// elementSuffix ::= > elementOrData endTag | />
//
// The '/>' alternative means the current tag is an empty tag: the most
// recently pushed tag name is discarded without a match.
func (p *Parser) elementSuffix() error {
	if p.predict(xmlminus.Close) {
		p.produce("elementSuffix ::= > elementOrData endTag")
		if err := p.match(xmlminus.Close); err != nil {
			return err
		}
		if err := p.elementOrData(); err != nil {
			return err
		}
		return p.endTag()
	}
	if p.predict(xmlminus.CloseEmpty) {
		p.produce("elementSuffix ::= />")
		p.tagNames.Pop()
		return p.match(xmlminus.CloseEmpty)
	}
	return &Error{Code: Syntax, Found: p.lookahead.String()}
}

// elementOrData ::= element elementOrData | DATA elementOrData | EPSILON
func (p *Parser) elementOrData() error {
	if p.predict(xmlminus.Open) {
		p.produce("elementOrData ::= element elementOrData")
		if err := p.element(); err != nil {
			return err
		}
		return p.elementOrData()
	}
	if p.predict(xmlminus.Data) {
		p.produce("elementOrData ::= DATA elementOrData")
		if err := p.match(xmlminus.Data); err != nil {
			return err
		}
		return p.elementOrData()
	}
	p.produce("elementOrData ::= EPSILON")
	return nil
}

// endTag ::= </ NAME >
//
// The name following '</' is inspected before anything is consumed and
// matched against the top of the tag-name stack.
func (p *Parser) endTag() error {
	if err := p.matchNoAdvance(xmlminus.OpenEnd); err != nil {
		return err
	}
	p.produce("endTag ::= </ NAME >")
	name, err := p.peekAt(1)
	if err != nil {
		return err
	}
	if err := p.matchTagName(name); err != nil {
		return err
	}
	if err := p.match(xmlminus.OpenEnd); err != nil {
		return err
	}
	if err := p.match(xmlminus.Name); err != nil {
		return err
	}
	return p.match(xmlminus.Close)
}

// --- Helpers ----------------------------------------------------------------

// produce emits one derivation line.
func (p *Parser) produce(line string) {
	tracer().Debugf("apply %s", line)
	p.derivation = append(p.derivation, line)
	if p.sink != nil {
		fmt.Fprintln(p.sink, line)
	}
}

// advance moves the cursor by one token. Once the sequence is exhausted the
// lookahead becomes the EPSILON sentinel.
func (p *Parser) advance() {
	p.cursor++
	if p.cursor >= len(p.tokens) {
		p.lookahead = xmlminus.Token{Kind: xmlminus.Epsilon}
		return
	}
	p.lookahead = p.tokens[p.cursor]
}

// predict examines the lookahead to deduce the production expanding a
// non-terminal.
func (p *Parser) predict(kind xmlminus.TokenType) bool {
	return p.lookahead.Kind == kind
}

// match consumes the current token, verifying it is of the expected kind,
// and advances to the next one.
func (p *Parser) match(kind xmlminus.TokenType) error {
	if err := p.matchNoAdvance(kind); err != nil {
		return err
	}
	p.advance()
	return nil
}

// matchNoAdvance verifies the lookahead without consuming it.
func (p *Parser) matchNoAdvance(kind xmlminus.TokenType) error {
	if !p.predict(kind) {
		return &Error{Code: Syntax, Expected: kind.String(), Found: p.lookahead.String()}
	}
	return nil
}

// peekAt returns the token offset positions behind the lookahead, without
// consuming anything. Running off the end of the sequence here means the
// sequence was truncated before it reached the parser.
func (p *Parser) peekAt(offset int) (xmlminus.Token, error) {
	if p.cursor+offset >= len(p.tokens) {
		return xmlminus.Token{}, &Error{Code: Exhausted}
	}
	return p.tokens[p.cursor+offset], nil
}

// cacheTagName pushes the current tag name for a possible future match with
// an end tag name.
func (p *Parser) cacheTagName(name xmlminus.Token) error {
	if err := p.matchNoAdvance(xmlminus.Name); err != nil {
		return err
	}
	p.tagNames.Push(name.Lexeme)
	return nil
}

// matchTagName verifies that a start tag and its end tag carry identical
// names. Case sensitivity counts.
func (p *Parser) matchTagName(endName xmlminus.Token) error {
	top, ok := p.tagNames.Pop()
	if !ok {
		return &Error{Code: Syntax, Found: endName.String()}
	}
	openName := top.(string)
	if openName != endName.Lexeme {
		tracer().Errorf("end tag mismatch: '%s' closed by '%s'", openName, endName.Lexeme)
		return &Error{Code: TagMismatch, Expected: openName, Found: endName.Lexeme}
	}
	return nil
}

// checkDuplicateName verifies that no two attributes of the current tag
// share a name. The same name on attributes of different tags is fine.
func (p *Parser) checkDuplicateName(name xmlminus.Token) error {
	if p.attributeNames.Contains(name.Lexeme) {
		tracer().Errorf("duplicate attribute name '%s'", name.Lexeme)
		return &Error{Code: DuplicateAttribute, Found: name.Lexeme}
	}
	p.attributeNames.Add(name.Lexeme)
	return nil
}

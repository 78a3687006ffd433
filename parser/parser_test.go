package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xmlminus"
	"github.com/npillmayer/xmlminus/lex"
)

func scan(t *testing.T, input string) xmlminus.Sequence {
	t.Helper()
	tokens, err := lex.Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected scanner error: %v", err)
	}
	return tokens
}

func TestParseDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	p := NewParser()
	if err := p.Parse(scan(t, "<a></a>")); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	expected := []string{
		"document ::= element EOF",
		"element ::= < elementPrefix",
		"elementPrefix ::= NAME attribute elementSuffix",
		"attribute ::= EPSILON",
		"elementSuffix ::= > elementOrData endTag",
		"elementOrData ::= EPSILON",
		"endTag ::= </ NAME >",
	}
	derivation := p.Derivation()
	if len(derivation) != len(expected) {
		t.Fatalf("expected %d productions, got %d: %v", len(expected), len(derivation), derivation)
	}
	for i, line := range derivation {
		if line != expected[i] {
			t.Errorf("production #%d: expected %q, got %q", i, expected[i], line)
		}
	}
}

func TestParseEmptyTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	// An empty tag is a complete document and pushes no end-tag obligation.
	p := NewParser()
	if err := p.Parse(scan(t, "<a/>")); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	for _, line := range p.Derivation() {
		if strings.HasPrefix(line, "endTag") {
			t.Errorf("expected no endTag production, got %v", p.Derivation())
		}
	}
	if p.Derivation()[len(p.Derivation())-1] != "elementSuffix ::= />" {
		t.Errorf("expected the derivation to end in the empty-tag production, got %v", p.Derivation())
	}
}

func TestParseStreamsDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	var sink strings.Builder
	p := NewParser(DerivationWriter(&sink))
	if err := p.Parse(scan(t, "<a/>")); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	streamed := strings.TrimRight(sink.String(), "\n")
	if streamed != strings.Join(p.Derivation(), "\n") {
		t.Errorf("expected the sink to receive the derivation, got %q", sink.String())
	}
}

func TestParseNested(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	input := `<doc version="1.0">
	    <entry key="a">v &amp; w</entry>
	    <entry key="a"/>
	    plain data
	</doc>`
	p := NewParser()
	if err := p.Parse(scan(t, input)); err != nil {
		t.Errorf("unexpected parse error: %v", err)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	input := "<a><b x='1'/>data</a>"
	p := NewParser()
	if err := p.Parse(scan(t, input)); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	first := append([]string(nil), p.Derivation()...)
	if err := p.Parse(scan(t, input)); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(first) != len(p.Derivation()) {
		t.Fatalf("expected identical derivations for identical input")
	}
	for i, line := range p.Derivation() {
		if line != first[i] {
			t.Errorf("production #%d differs between runs: %q vs %q", i, first[i], line)
		}
	}
}

func TestParseTagMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	err := NewParser().Parse(scan(t, "<a></b>"))
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != TagMismatch {
		t.Fatalf("expected a tag-mismatch error, got %v", err)
	}
	if !strings.Contains(perr.Error(), "expected 'a' but found 'b'") {
		t.Errorf("expected the diagnostic to name both tags, got %q", perr.Error())
	}
}

func TestParseTagMatchingIsCaseSensitive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	err := NewParser().Parse(scan(t, "<a></A>"))
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != TagMismatch {
		t.Fatalf("expected a tag-mismatch error, got %v", err)
	}
}

func TestParseDuplicateAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	err := NewParser().Parse(scan(t, `<a x="1" x="2"/>`))
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != DuplicateAttribute {
		t.Fatalf("expected a duplicate-attribute error, got %v", err)
	}
}

func TestParseAttributeSetIsPerTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	// The same attribute name on different tags is fine.
	if err := NewParser().Parse(scan(t, `<a x="1"><b x="2"/></a>`)); err != nil {
		t.Errorf("unexpected parse error: %v", err)
	}
}

func TestParseTruncatedDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	err := NewParser().Parse(scan(t, "<a>"))
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected a parse error, got %v", err)
	}
	if perr.Code != Syntax && perr.Code != Exhausted {
		t.Errorf("expected a syntax or exhaustion error, got %v", perr)
	}
}

func TestParseExhaustedSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	// A sequence which breaks off right after '</' forces the parser to
	// inspect a tag name that is not there.
	tokens := xmlminus.Sequence{
		{Kind: xmlminus.Open, Lexeme: "<"},
		{Kind: xmlminus.Name, Lexeme: "a"},
		{Kind: xmlminus.Close, Lexeme: ">"},
		{Kind: xmlminus.OpenEnd, Lexeme: "</"},
	}
	err := NewParser().Parse(tokens)
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != Exhausted {
		t.Fatalf("expected an exhaustion error, got %v", err)
	}
}

func TestParseEmptySequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	err := NewParser().Parse(nil)
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != Exhausted {
		t.Fatalf("expected an exhaustion error, got %v", err)
	}
}

func TestParseTrailingInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	// Tokens behind the EOF terminal cannot come from a scan; a sequence
	// carrying them is rejected after the document completes.
	tokens := xmlminus.Sequence{
		{Kind: xmlminus.Open, Lexeme: "<"},
		{Kind: xmlminus.Name, Lexeme: "a"},
		{Kind: xmlminus.CloseEmpty, Lexeme: "/>"},
		{Kind: xmlminus.EOF, Lexeme: "&$"},
		{Kind: xmlminus.Open, Lexeme: "<"},
	}
	err := NewParser().Parse(tokens)
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != TrailingInput {
		t.Fatalf("expected a trailing-input error, got %v", err)
	}
}

func TestParseRejectsDataOutsideContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus.parser")
	defer teardown()
	//
	// '==' scans as DATA; the grammar has no place for DATA inside a tag, so
	// the error surfaces here as a syntax violation.
	err := NewParser().Parse(scan(t, `<a x=="1"/>`))
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != Syntax {
		t.Fatalf("expected a syntax error for '==', got %v", err)
	}
}

package xmlminus

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSequenceDigest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus")
	defer teardown()
	//
	seq := Sequence{
		{Kind: Open, Lexeme: "<"},
		{Kind: Name, Lexeme: "a"},
		{Kind: CloseEmpty, Lexeme: "/>"},
		{Kind: EOF, Lexeme: "&$"},
	}
	digest := seq.Digest()
	if digest == "" {
		t.Fatalf("expected a non-empty digest for a well-formed sequence")
	}
	if digest != seq.Digest() {
		t.Errorf("expected the digest of a sequence to be stable")
	}
	other := Sequence{
		{Kind: Open, Lexeme: "<"},
		{Kind: Name, Lexeme: "b"},
		{Kind: CloseEmpty, Lexeme: "/>"},
		{Kind: EOF, Lexeme: "&$"},
	}
	if digest == other.Digest() {
		t.Errorf("expected different sequences to have different digests")
	}
}

func TestSequenceTerminated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlminus")
	defer teardown()
	//
	seq := Sequence{
		{Kind: Open, Lexeme: "<"},
		{Kind: Name, Lexeme: "a"},
	}
	if seq.Terminated() {
		t.Errorf("expected a sequence without the EOF terminal to count as truncated")
	}
	seq = append(seq, Token{Kind: CloseEmpty, Lexeme: "/>"}, Token{Kind: EOF, Lexeme: "&$"})
	if !seq.Terminated() {
		t.Errorf("expected an EOF-terminated sequence to count as complete")
	}
}

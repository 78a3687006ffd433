package lex

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/npillmayer/xmlminus"
)

// Character classes of the XML-minus rule set. 'invalid' is accepted by the
// name pattern on purpose, so that a name carrying such a character can be
// rejected with a precise diagnostic instead of stopping the scan.
const (
	initial    = `[a-zA-Z]|_|:`
	invalid    = "\\*|\\+|\\[|\\]|\\(|\\)|\\{|\\}|\\$|@|#|;|\\?|,|!|%|\\^|`|\\||~"
	ordinary   = `[^<>"'&]`
	entity     = `&lt;|&gt;|&quot;|&apos;|&amp;`
	charref    = `&#[0-9]+;|&#x([0-9]|[a-fA-F])+;`
	whitespace = `[ \t\n\r]`
)

// invalidChars are the characters of the 'invalid' class, for containment
// checks on a matched name.
const invalidChars = "*+[](){}$@#;?,!%^`|~"

var (
	nameChar    = "(" + initial + "|[0-9]|-|\\.|" + invalid + ")"
	contentChar = "(" + ordinary + "|" + entity + "|" + charref + ")"
)

// rule is one prioritized lexical rule: a pattern anchored at the scan
// position plus an action to run on its match. A nil action skips the match.
type rule struct {
	name    string
	pattern *regexp2.Regexp
	action  func(s *scanner, lexeme string) error
}

func newRule(name, pattern string, action func(*scanner, string) error) *rule {
	return &rule{
		name:    name,
		pattern: regexp2.MustCompile(pattern, regexp2.None),
		action:  action,
	}
}

// rules in priority order. First match at the scan position wins, so the
// order is part of the language definition. The NAME and DATA conditions on
// a preceding '>' look through whitespace, since whitespace runs are skipped
// before either rule gets tried.
var rules = []*rule{
	newRule("COMMENT", `<!--.*?-->`, nil),
	newRule("WS", whitespace+"+", nil),
	newRule("NAME", "(?<!>"+whitespace+"*)"+nameChar+"+", emitName),
	newRule("STRING", `("(`+contentChar+`|')*")|('(`+contentChar+`|")*')`, emitString),
	newRule("DATA", "(?<=>"+whitespace+"*)"+contentChar+"+(?<!=)", emitData),
	newRule("OPEN", `</?(?!!)`, emitOpen),
	newRule("CLOSE", `/?(?<!-)>`, emitClose),
	newRule("ASSIGN", `(?<!=)=(?=["'`+"\t\n\r ])", emitAssign),
	newRule("AMPERSAND", `(&)+`, failAmpersand),
	newRule("ENDSLASHES", `(?<=</)(.?)*[/]+`, failEndTagSlashes),
	newRule("EMPTYSLASHES", `[/]+(?=(.*?)/>)`, failEmptyTagSlashes),
	newRule("ASSIGNRUN", `(=)+`, emitAssignRun),
}

// --- Rule actions -----------------------------------------------------------

func emitName(s *scanner, lexeme string) error {
	if strings.ContainsAny(lexeme, invalidChars) {
		return &Error{Code: IllegalCharacter, Text: lexeme}
	}
	s.emit(xmlminus.Name, lexeme)
	return nil
}

func emitString(s *scanner, lexeme string) error {
	s.emit(xmlminus.Text, lexeme)
	return nil
}

// emitData splits character data on internal whitespace and emits one DATA
// token per non-empty fragment. Intra-text whitespace is never significant.
func emitData(s *scanner, lexeme string) error {
	for _, fragment := range strings.Fields(lexeme) {
		s.emit(xmlminus.Data, fragment)
	}
	return nil
}

func emitOpen(s *scanner, lexeme string) error {
	if lexeme == "</" {
		s.emit(xmlminus.OpenEnd, lexeme)
	} else {
		s.emit(xmlminus.Open, lexeme)
	}
	return nil
}

func emitClose(s *scanner, lexeme string) error {
	if lexeme == "/>" {
		s.emit(xmlminus.CloseEmpty, lexeme)
	} else {
		s.emit(xmlminus.Close, lexeme)
	}
	return nil
}

func emitAssign(s *scanner, lexeme string) error {
	s.emit(xmlminus.Assign, lexeme)
	return nil
}

// emitAssignRun re-emits a run of '=' which is not a legal assignment as a
// DATA token. The grammar has no place for DATA there, so the parser will
// surface the error as a syntax violation.
func emitAssignRun(s *scanner, lexeme string) error {
	s.emit(xmlminus.Data, lexeme)
	return nil
}

func failAmpersand(s *scanner, lexeme string) error {
	return &Error{Code: IllegalAmpersand, Text: lexeme}
}

func failEndTagSlashes(s *scanner, lexeme string) error {
	return &Error{Code: MalformedEndTag, Text: lexeme}
}

func failEmptyTagSlashes(s *scanner, lexeme string) error {
	return &Error{Code: MalformedEmptyTag, Text: lexeme}
}

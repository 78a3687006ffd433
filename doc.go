/*
Package xmlminus recognizes documents of a small markup language, XML-minus.

XML-minus is a fixed subset of XML: elements with attributes, nested elements
and character data, empty tags, comments, entity and character references.
The module is a two-stage front end. A tokenizer turns a document into a
finite sequence of typed tokens, and a predictive LL(1) parser walks the
grammar over that sequence, printing the leftmost derivation one production
per line. Package structure is as follows:

■ lex: Package lex implements the tokenizer, an ordered list of prioritized
pattern matchers tried at each scan position.

■ parser: Package parser implements the recursive-descent parser, including
the well-formedness checks the grammar cannot express (tag-name matching,
attribute-name uniqueness).

The base package contains the token data types which are used by both stages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package xmlminus

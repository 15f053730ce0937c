/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

/*
TokenKind is the closed set of terminal and structural token kinds the
lexer can produce. The order and membership match enum tokenType in the
original halcyon-c tokenizer exactly.
*/
type TokenKind int

/*
Token kinds, in priority-match order: the two-byte comparison operators
first, then the single-byte terminals, then the three structural kinds
that are not literal terminals.
*/
const (
	NotEquiv TokenKind = iota
	Equiv
	LessEq
	GreaterEq

	LSquareBrack
	RSquareBrack
	At
	LAngle
	RAngle
	Colon
	LParen
	RParen
	Dot
	SpeakerSign
	Space
	Newline
	CarriageReturn
	Tab
	Exclamation
	Equals
	LBrace
	RBrace
	Hashtag
	Plus
	Minus
	Comma
	Semicolon
	Ampersand
	DoubleQuote
	Quote

	Label
	StoryText
	Comment
)

var tokenKindNames = map[TokenKind]string{
	NotEquiv:       "NOT_EQUIV",
	Equiv:          "EQUIV",
	LessEq:         "LESS_EQ",
	GreaterEq:      "GREATER_EQ",
	LSquareBrack:   "L_SQBRACK",
	RSquareBrack:   "R_SQBRACK",
	At:             "AT",
	LAngle:         "L_ANGLE",
	RAngle:         "R_ANGLE",
	Colon:          "COLON",
	LParen:         "L_PAREN",
	RParen:         "R_PAREN",
	Dot:            "DOT",
	SpeakerSign:    "SPEAKERSIGN",
	Space:          "SPACE",
	Newline:        "NEWLINE",
	CarriageReturn: "CARRIAGE_RETURN",
	Tab:            "TAB",
	Exclamation:    "EXCLAMATION",
	Equals:         "EQUALS",
	LBrace:         "L_BRACE",
	RBrace:         "R_BRACE",
	Hashtag:        "HASHTAG",
	Plus:           "PLUS",
	Minus:          "MINUS",
	Comma:          "COMMA",
	Semicolon:      "SEMICOLON",
	Ampersand:      "AMPERSAND",
	DoubleQuote:    "DOUBLE_QUOTE",
	Quote:          "QUOTE",
	Label:          "LABEL",
	StoryText:      "STORY_TEXT",
	Comment:        "COMMENT",
}

/*
String returns the debug name of this token kind, matching
tok_id_to_string in the original tokenizer.
*/
func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return "UNKNOWN_TOKEN_KIND"
}

/*
terminals lists every literal terminal in priority-match order: longer
operators must be tried before any prefix of them is matched as a
shorter terminal (e.g. "!=" before "!"). This mirrors the Terminals[]
table in the original tokenizer.c.
*/
var terminals = []struct {
	text string
	kind TokenKind
}{
	{"!=", NotEquiv},
	{"==", Equiv},
	{"<=", LessEq},
	{">=", GreaterEq},
	{"[", LSquareBrack},
	{"]", RSquareBrack},
	{"@", At},
	{"<", LAngle},
	{">", RAngle},
	{":", Colon},
	{"(", LParen},
	{")", RParen},
	{".", Dot},
	{"$", SpeakerSign},
	{" ", Space},
	{"\n", Newline},
	{"\r", CarriageReturn},
	{"\t", Tab},
	{"!", Exclamation},
	{"=", Equals},
	{"{", LBrace},
	{"}", RBrace},
	{"#", Hashtag},
	{"+", Plus},
	{"-", Minus},
	{",", Comma},
	{";", Semicolon},
	{"&", Ampersand},
	{"\"", DoubleQuote},
	{"'", Quote},
}

/*
Token is a single lexed unit of halc source: its kind, the exact source
bytes it spans, and the 1-based source line it starts on.
*/
type Token struct {
	Kind TokenKind
	View string
	Line int
}

/*
TokenStream is the lexer's full output for one source file: the
normalized source it was produced from, the token sequence, and a
parallel slice of byte offsets (into Source) used only by diagnostics to
place a caret under a token - kept out of Token itself so Token stays at
exactly the three fields the data model specifies.
*/
type TokenStream struct {
	Source  []byte
	Tokens  []Token
	offsets []int
}

/*
offsetOf returns the byte offset of the i-th token's View within Source.
*/
func (ts *TokenStream) offsetOf(i int) int {
	if i < 0 || i >= len(ts.offsets) {
		return -1
	}
	return ts.offsets[i]
}

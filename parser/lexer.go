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

import (
	"fmt"

	"devt.de/krotik/common/datautil"

	"github.com/peterino2/halcyon/util"
)

/*
isAlphaNumeric reports whether b can be part of a LABEL: ASCII letters,
digits, or underscore.
*/
func isAlphaNumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

/*
lexer holds the scratch state for one call to Lex: the read position, the
current line, the directive paren-depth gate, and a short ring of
recently emitted tokens used only to annotate error messages, matching
the original tokenizer's habit of printing the last token parsed
alongside a lex error.
*/
type lexer struct {
	src  []byte
	name string
	pos  int
	line int

	directiveParenCount int

	recent *datautil.RingBuffer

	ts *TokenStream
}

/*
Lex scans normalized source bytes into a TokenStream. src must already
have been produced by Normalize - the lexer assumes leading indentation
is expressed purely as TAB bytes and every line ending is a bare "\n".
*/
func Lex(src []byte, name string) (*TokenStream, error) {
	l := &lexer{
		src:    src,
		name:   name,
		line:   1,
		recent: datautil.NewRingBuffer(3),
		ts: &TokenStream{
			Source: src,
		},
	}

	for l.pos < len(l.src) {
		if err := l.advance(); err != nil {
			return nil, err
		}
	}

	return l.ts, nil
}

/*
push appends a token at the current offset and records it in the recent
ring for error context.
*/
func (l *lexer) push(kind TokenKind, view string, line int, offset int) {
	tok := Token{Kind: kind, View: view, Line: line}
	l.ts.Tokens = append(l.ts.Tokens, tok)
	l.ts.offsets = append(l.ts.offsets, offset)
	l.recent.Add(tok)
}

/*
lastTokenContext renders the most recently pushed token for an error
message, mirroring "Last token parsed: ..." in the original tokenizer.
*/
func (l *lexer) lastTokenContext() string {
	sl := l.recent.Slice()
	if len(sl) == 0 {
		return "no tokens parsed yet"
	}
	last := sl[len(sl)-1].(Token)
	return fmt.Sprintf("last token parsed: %s %q", last.Kind, last.View)
}

/*
advance scans exactly one token (or a lex error) starting at l.pos,
following the original tokenizer_advance's priority order: comment,
then story-line head, then terminals, then label, then failure.
*/
func (l *lexer) advance() error {
	start := l.pos
	c := l.src[start]

	// comment clause: '#' to end of line, not including the newline
	if c == '#' {
		j := start
		for j < len(l.src) && l.src[j] != '\n' {
			j++
		}
		l.push(Comment, string(l.src[start:j]), l.line, start)
		l.pos = j
		return nil
	}

	// story-line head clause: ':' or '>' outside any directive parens
	// introduces a sigil terminal followed by a trimmed STORY_TEXT run
	if (c == ':' || c == '>') && l.directiveParenCount == 0 {
		kind := Colon
		if c == '>' {
			kind = RAngle
		}
		l.push(kind, string(l.src[start:start+1]), l.line, start)

		r := start + 1
		for r < len(l.src) && l.src[r] == ' ' {
			r++
		}

		end := r
		for end < len(l.src) && l.src[end] != '\n' && l.src[end] != '#' {
			end++
		}
		for end > r && l.src[end-1] == ' ' {
			end--
		}

		if end > len(l.src) {
			return util.NewCompileError(l.name, util.ErrTokenizerPointerOverflow,
				l.lastTokenContext(), l.line, r-start)
		}

		l.push(StoryText, string(l.src[r:end]), l.line, r)
		l.pos = end
		return nil
	}

	// terminals clause: try every literal terminal, longest-first within
	// equal priority (the two-byte comparison operators are listed before
	// any single-byte terminal they could otherwise be mistaken for)
	for _, term := range terminals {
		n := len(term.text)
		if start+n <= len(l.src) && string(l.src[start:start+n]) == term.text {
			l.push(term.kind, term.text, l.line, start)
			l.pos = start + n

			switch term.kind {
			case Newline:
				l.directiveParenCount = 0
				l.line++
			case LParen:
				l.directiveParenCount++
			case RParen:
				l.directiveParenCount--
			}

			return nil
		}
	}

	// label fallback: maximal munch of alphanumeric/underscore bytes
	if isAlphaNumeric(c) {
		j := start
		for j < len(l.src) && isAlphaNumeric(l.src[j]) {
			j++
		}
		l.push(Label, string(l.src[start:j]), l.line, start)
		l.pos = j
		return nil
	}

	return util.NewCompileError(l.name, util.ErrUnrecognizedToken,
		fmt.Sprintf("unrecognized byte %q (%s)", c, l.lastTokenContext()), l.line, start)
}

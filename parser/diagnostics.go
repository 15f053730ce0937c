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
	"io"
	"strings"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/common/stringutil"

	"github.com/peterino2/halcyon/util"
)

/*
Severity classifies a diagnostic for color selection, matching the
RED/YELLOW/GREEN choice the original error printer makes by call site.
*/
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiCyan   = "\x1b[36m"
	ansiReset  = "\x1b[0m"
)

var severityColor = map[Severity]string{
	SeverityError:   ansiRed,
	SeverityWarning: ansiYellow,
	SeverityInfo:    ansiGreen,
}

/*
Diagnostics is the compiler's diagnostic sink: it renders a CompileError
against the token stream it came from, with the same caret-underline
presentation as ts_print_token_inner in the original tokenizer, gated by
a process-wide suppression flag and a first-emission marker that prints
one leading blank line before the first diagnostic of a run (mirroring
setupErrorContext's gErrorFirst).
*/
type Diagnostics struct {
	Out        io.Writer
	Color      bool
	Suppressed bool

	first   bool
	History *datautil.RingBuffer
}

/*
NewDiagnostics creates a diagnostic sink writing to out, with a rolling
history of the last historySize emitted messages.
*/
func NewDiagnostics(out io.Writer, historySize int) *Diagnostics {
	if historySize < 1 {
		historySize = 32
	}
	return &Diagnostics{
		Out:     out,
		Color:   true,
		first:   true,
		History: datautil.NewRingBuffer(historySize),
	}
}

/*
ResetRun clears the first-emission marker, to be called once per
independent compile so each file's first diagnostic gets its leading
blank line.
*/
func (d *Diagnostics) ResetRun() {
	d.first = true
}

/*
Emit renders a compile error. tokenIndex identifies which token in ts the
error is about; pass -1 if the error has no associated token (e.g. a
normalization error, which happens before any token exists).
*/
func (d *Diagnostics) Emit(sev Severity, ce *util.CompileError, ts *TokenStream, tokenIndex int) {
	d.History.Add(ce.Error())

	if d.Suppressed {
		return
	}

	if d.first {
		fmt.Fprintln(d.Out)
		d.first = false
	}

	if ts == nil || tokenIndex < 0 {
		fmt.Fprintln(d.Out, d.colorize(sev, ce.Error()))
		return
	}

	rendered, err := d.renderTokenContext(sev, ts, tokenIndex)
	if err != nil {
		fmt.Fprintln(d.Out, d.colorize(sev, ce.Error()))
		return
	}

	fmt.Fprintln(d.Out, ce.Error())
	fmt.Fprint(d.Out, rendered)
}

/*
colorize wraps s in the ANSI code for sev, unless coloring is off.
*/
func (d *Diagnostics) colorize(sev Severity, s string) string {
	if !d.Color {
		return s
	}
	return severityColor[sev] + s + ansiReset
}

/*
sourceLineFor locates the full source line a token sits on and the
[start,end] column range (inclusive) to underline, replicating
tok_get_sourceline's special case for a token whose view is the newline
byte itself: that case reports the *previous* line, since a NEWLINE
token has nothing of its own to show.
*/
func sourceLineFor(ts *TokenStream, tokenIndex int) (line string, tokStart, tokEnd int, err error) {
	if tokenIndex < 0 || tokenIndex >= len(ts.Tokens) {
		return "", 0, 0, fmt.Errorf("token index %d out of range", tokenIndex)
	}

	tok := ts.Tokens[tokenIndex]
	offset := ts.offsetOf(tokenIndex)
	src := ts.Source

	if offset < 0 || offset > len(src) {
		return "", 0, 0, fmt.Errorf("token out of range")
	}

	if len(tok.View) > 0 && tok.View[0] == '\n' {
		l := offset - 1
		for l > 0 && src[l] != '\n' {
			l--
		}
		if l >= 0 && l < len(src) && src[l] == '\n' {
			l++
		}
		if l < 0 {
			l = 0
		}
		lineStart := l
		tokStart = offset - lineStart
		tokEnd = tokStart + 1
		return string(src[lineStart:offset]), tokStart, tokEnd, nil
	}

	l := offset
	for l > 0 && src[l] != '\n' {
		l--
	}
	if src[l] == '\n' {
		l++
	}
	lineStart := l
	tokStart = offset - lineStart
	tokEnd = tokStart + len(tok.View) - 1
	if tokEnd < tokStart {
		tokEnd = tokStart
	}

	e := offset + len(tok.View) - 1
	if e < 0 {
		e = 0
	}
	for e < len(src) && src[e] != '\n' {
		e++
	}
	lineEnd := e

	return string(src[lineStart:lineEnd]), tokStart, tokEnd, nil
}

/*
renderTokenContext builds the filename/line/source-excerpt/caret block
for one token, in the same layout as ts_print_token_inner: tabs in the
source line render as "-->|" and get a triple caret "^^^", every other
column gets a single "^".
*/
func (d *Diagnostics) renderTokenContext(sev Severity, ts *TokenStream, tokenIndex int) (string, error) {
	lineText, tokStart, tokEnd, err := sourceLineFor(ts, tokenIndex)
	if err != nil {
		return "", err
	}

	tok := ts.Tokens[tokenIndex]

	var b strings.Builder

	fmt.Fprintf(&b, "line %6d: ", tok.Line)
	for _, ch := range []byte(lineText) {
		if ch == '\t' {
			b.WriteString("-->|")
		} else {
			b.WriteByte(ch)
		}
	}
	b.WriteByte('\n')

	b.WriteString(stringutil.GenerateRollingString(" ", 13))
	for i := 0; i < tokStart && i < len(lineText); i++ {
		if lineText[i] == '\t' {
			b.WriteString("   ")
		}
		b.WriteByte(' ')
	}

	caret := strings.Builder{}
	for i := tokStart; i <= tokEnd && i < len(lineText); i++ {
		if lineText[i] == '\t' {
			caret.WriteString("^^^")
		}
		caret.WriteByte('^')
	}
	b.WriteString(d.colorize(sev, caret.String()))

	fmt.Fprintf(&b, "%s(%d)\n", tok.Kind.String(), int(tok.Kind))

	return b.String(), nil
}

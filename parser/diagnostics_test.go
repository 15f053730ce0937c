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
	"strings"
	"testing"

	"github.com/peterino2/halcyon/util"
)

func TestDiagnosticsEmitPrintsSourceExcerpt(t *testing.T) {
	ts, err := Lex([]byte("[intro\n"), "test")
	if err != nil {
		t.Fatal("Unexpected lex error:", err)
	}

	var out strings.Builder
	d := NewDiagnostics(&out, 8)
	d.Color = false

	ce := util.NewCompileError("test", util.ErrUnexpectedToken, "expected ]", 1, 0)
	d.Emit(SeverityError, ce, ts, 1)

	rendered := out.String()
	if !strings.Contains(rendered, "intro") {
		t.Error("Expected rendered excerpt to contain source text, got:", rendered)
	}
	if !strings.Contains(rendered, "^") {
		t.Error("Expected a caret underline, got:", rendered)
	}
}

func TestDiagnosticsSuppressedSkipsOutputButKeepsHistory(t *testing.T) {
	var out strings.Builder
	d := NewDiagnostics(&out, 8)
	d.Suppressed = true

	ce := util.NewCompileError("test", util.ErrUnexpectedToken, "boom", 1, 0)
	d.Emit(SeverityError, ce, nil, -1)

	if out.Len() != 0 {
		t.Error("Expected no output while suppressed, got:", out.String())
	}

	hist := d.History.Slice()
	if len(hist) != 1 {
		t.Error("Expected the diagnostic to still land in history, got:", hist)
	}
}

func TestDiagnosticsFirstEmissionGetsLeadingBlankLine(t *testing.T) {
	var out strings.Builder
	d := NewDiagnostics(&out, 8)
	d.Color = false

	ce1 := util.NewCompileError("test", util.ErrUnexpectedToken, "first", 1, 0)
	ce2 := util.NewCompileError("test", util.ErrUnexpectedToken, "second", 2, 0)
	d.Emit(SeverityError, ce1, nil, -1)
	d.Emit(SeverityError, ce2, nil, -1)

	lines := strings.Split(out.String(), "\n")
	if lines[0] != "" {
		t.Error("Expected a leading blank line before the first diagnostic, got:", lines)
	}

	count := strings.Count(out.String(), "\n\n")
	if count != 0 {
		t.Error("Expected only the first diagnostic to get a leading blank line, got:", out.String())
	}
}

func TestDiagnosticsResetRunRearmsLeadingBlankLine(t *testing.T) {
	var out strings.Builder
	d := NewDiagnostics(&out, 8)
	d.Color = false

	ce := util.NewCompileError("test", util.ErrUnexpectedToken, "boom", 1, 0)
	d.Emit(SeverityError, ce, nil, -1)
	d.ResetRun()
	out.Reset()
	d.Emit(SeverityError, ce, nil, -1)

	lines := strings.Split(out.String(), "\n")
	if lines[0] != "" {
		t.Error("Expected ResetRun to rearm the leading blank line, got:", lines)
	}
}

func TestSourceLineForNewlineTokenReportsPreviousLine(t *testing.T) {
	ts, err := Lex([]byte("[a]\n[b]\n"), "test")
	if err != nil {
		t.Fatal("Unexpected lex error:", err)
	}

	// Tokens: [ a ] NEWLINE [ b ] NEWLINE - index 3 is the first NEWLINE.
	line, tokStart, tokEnd, err := sourceLineFor(ts, 3)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if line != "[a]" {
		t.Errorf("Expected the previous line, got %q", line)
	}
	if tokStart != 3 || tokEnd != 4 {
		t.Errorf("Unexpected caret range: %d..%d", tokStart, tokEnd)
	}
}

func TestSourceLineForLabelTokenUnderlinesItself(t *testing.T) {
	ts, err := Lex([]byte("[intro]\n"), "test")
	if err != nil {
		t.Fatal("Unexpected lex error:", err)
	}

	// Tokens: [ intro ] NEWLINE - index 1 is the LABEL "intro".
	line, tokStart, tokEnd, err := sourceLineFor(ts, 1)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if line != "[intro]" {
		t.Errorf("Expected the full line, got %q", line)
	}
	if tokStart != 1 || tokEnd != 5 {
		t.Errorf("Unexpected caret range: %d..%d", tokStart, tokEnd)
	}
}

func TestRenderTokenContextRendersTabsAsArrows(t *testing.T) {
	ts, err := Lex([]byte("\tgoto intro\n"), "test")
	if err != nil {
		t.Fatal("Unexpected lex error:", err)
	}

	var out strings.Builder
	d := NewDiagnostics(&out, 8)
	d.Color = false

	rendered, err := d.renderTokenContext(SeverityError, ts, 0)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if !strings.Contains(rendered, "-->|") {
		t.Error("Expected a tab to render as an arrow, got:", rendered)
	}
	if !strings.Contains(rendered, "^^^") {
		t.Error("Expected a tab column to get a triple caret, got:", rendered)
	}
}

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
)

func TestPrettyPrintSegmentLabel(t *testing.T) {
	g := compileSource(t, "[intro] # the start\n")

	out, err := PrettyPrint(g)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if strings.TrimRight(out, "\n") != "[intro] # the start" {
		t.Errorf("Unexpected rendering: %q", out)
	}
}

func TestPrettyPrintSpeechAndSelection(t *testing.T) {
	g := compileSource(t, "$: Does that make sense?\n> No, can you repeat that?\n")

	out, err := PrettyPrint(g)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Unexpected line count: %v", lines)
	}
	if lines[0] != "$: Does that make sense?" {
		t.Errorf("Unexpected first line: %q", lines[0])
	}
	if lines[1] != "> No, can you repeat that?" {
		t.Errorf("Unexpected second line: %q", lines[1])
	}
}

func TestPrettyPrintExtensionIndentsUnderItsHost(t *testing.T) {
	g := compileSource(t, "$: Does that make sense?\n\t: and another line\n")

	out, err := PrettyPrint(g)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Unexpected line count: %v", lines)
	}
	if lines[1] != "\t: and another line" {
		t.Errorf("Unexpected extension line: %q", lines[1])
	}
}

func TestPrettyPrintGotoReconstructsDottedTarget(t *testing.T) {
	g := compileSource(t, "@goto dresden.steward.intro\n")

	out, err := PrettyPrint(g)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if strings.TrimRight(out, "\n") != "@goto dresden.steward.intro" {
		t.Errorf("Unexpected rendering: %q", out)
	}
}

func TestPrettyPrintDirectiveReconstructsNestedParens(t *testing.T) {
	g := compileSource(t, "@if(condition(a b))\n")

	out, err := PrettyPrint(g)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if strings.TrimRight(out, "\n") != "@if(condition(a b))" {
		t.Errorf("Unexpected rendering: %q", out)
	}
}

func TestPrettyPrintEnd(t *testing.T) {
	g := compileSource(t, "@end\n")

	out, err := PrettyPrint(g)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if strings.TrimRight(out, "\n") != "@end" {
		t.Errorf("Unexpected rendering: %q", out)
	}
}

func TestPrettyPrintWorkedFourLevelExampleRoundTripsStructure(t *testing.T) {
	src := "$: Does that make sense?\n" +
		"\t> No, can you repeat that?\n" +
		"\t\t@goto main_menu_dialogue\n" +
		"@end\n"

	g := compileSource(t, src)
	out, err := PrettyPrint(g)
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}

	want := "$: Does that make sense?\n" +
		"\t> No, can you repeat that?\n" +
		"\t\t@goto main_menu_dialogue\n" +
		"@end"
	if strings.TrimRight(out, "\n") != want {
		t.Errorf("Unexpected rendering:\n%q\nwant:\n%q", out, want)
	}
}

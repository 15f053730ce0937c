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

func TestCompileEndToEnd(t *testing.T) {
	src := "[intro]\n$: Hello there.\n\t> Hi!\n@end\n"

	g, err := Compile([]byte(src), "test")
	if err != nil {
		t.Fatal("Unexpected compile error:", err)
	}

	root := g.Arena.Get(g.Root)
	kinds := childKinds(g, root.Children)
	want := []NodeKind{SegmentLabel, Speech, Selection, End}
	if len(kinds) != len(want) {
		t.Fatalf("Unexpected top-level shape: %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Top-level node %d: want %v got %v", i, want[i], kinds[i])
		}
	}
}

func TestCompileRecoversMalformedLineAndRecordsDiagnostic(t *testing.T) {
	SetParserNoPrint(false)
	defer SetParserNoPrint(true)

	g, err := Compile([]byte("[broken label\n[next]\n"), "test")
	if err != nil {
		t.Fatal("Unexpected compile error:", err)
	}

	root := g.Arena.Get(g.Root)
	kinds := childKinds(g, root.Children)

	found := false
	for _, k := range kinds {
		if k == SegmentLabel {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected the following segment label to still be recognized: %v", kinds)
	}

	if len(Diag().History.Slice()) == 0 {
		t.Error("Expected the malformed line to be recorded in the diagnostic history")
	}
}

func TestCompileTrackedReportsNoOutstandingAllocations(t *testing.T) {
	EnableAllocationTracking(true)
	defer EnableAllocationTracking(false)

	g, stats, err := CompileTracked([]byte("[intro]\n@end\n"), "test")
	if err != nil {
		t.Fatal("Unexpected compile error:", err)
	}
	if g == nil {
		t.Fatal("Expected a non-nil graph")
	}
	if stats.Allocations != 0 {
		t.Errorf("Expected zero outstanding allocations after a successful compile, got: %+v", stats)
	}
}

func TestCompileTrackedIsANoopWhenDisabled(t *testing.T) {
	EnableAllocationTracking(false)

	_, stats, err := CompileTracked([]byte("[intro]\n"), "test")
	if err != nil {
		t.Fatal("Unexpected compile error:", err)
	}
	if stats.Allocations != 0 || stats.AllocatedSize != 0 {
		t.Errorf("Expected a zero-value Stats when tracking is disabled, got: %+v", stats)
	}
}

func TestSuppressErrorsSuppressesOutputButKeepsHistory(t *testing.T) {
	SuppressErrors(true)
	defer SuppressErrors(false)

	before := len(Diag().History.Slice())
	if _, err := Compile([]byte("[broken label\n[next]\n"), "test"); err != nil {
		t.Fatal("Unexpected compile error:", err)
	}

	after := Diag().History.Slice()
	if len(after) <= before {
		t.Error("Expected a new diagnostic to be recorded even while suppressed")
	}
}

func TestSetParserVerboseIsJustAToggle(t *testing.T) {
	SetParserVerbose(true)
	defer SetParserVerbose(false)

	if _, err := Compile([]byte("[intro]\n"), "test"); err != nil {
		t.Fatal("Unexpected compile error:", err)
	}
}

func TestCompileNormalizeFailureIsFatal(t *testing.T) {
	// Three leading spaces is not a multiple of four; normalize rejects
	// this outright, well before the parser ever runs.
	_, err := Compile([]byte("   [intro]\n"), "test")
	if err == nil {
		t.Fatal("Expected a normalize error")
	}
	if !strings.Contains(err.Error(), "whitespace") {
		t.Errorf("Expected a leading-whitespace error, got: %v", err)
	}
}

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
	"testing"

	"github.com/peterino2/halcyon/alloc"
)

func TestArenaRootIsSelfParentedGraph(t *testing.T) {
	a := NewArena()

	if a.Len() != 1 {
		t.Error("Unexpected arena length:", a.Len())
		return
	}

	root := a.Get(0)
	if root.Kind != GraphNode || root.Parent != 0 || root.Index != 0 {
		t.Error("Unexpected root node:", root)
		return
	}
}

func TestArenaNewAppendsSequentially(t *testing.T) {
	a := NewArena()

	idx1 := a.New(SegmentLabel, 0)
	idx2 := a.New(Speech, idx1)

	if idx1 != 1 || idx2 != 2 {
		t.Error("Unexpected indices:", idx1, idx2)
		return
	}

	if a.Get(idx2).Parent != idx1 {
		t.Error("Unexpected parent:", a.Get(idx2).Parent)
		return
	}

	if a.Len() != 3 {
		t.Error("Unexpected arena length:", a.Len())
		return
	}
}

func TestArenaGrowsPastInitialCapacity(t *testing.T) {
	a := NewArena()

	for i := 0; i < 1000; i++ {
		a.New(Terminal, 0)
	}

	if a.Len() != 1001 {
		t.Error("Unexpected arena length:", a.Len())
		return
	}
}

/*
TestArenaTrackedReportsGrowthAsAReleasableAllocation exercises the
lower-level tracked constructors directly, for a caller that owns a
Graph's storage outside of a Parser and wants to account for its
release explicitly (mirroring graph_free releasing an arena's storage
in the original allocator).
*/
func TestArenaTrackedReportsGrowthAsAReleasableAllocation(t *testing.T) {
	tracker := alloc.NewCountingTracker()
	tracker.Enable()
	tracker.Track("arena-owner")

	a := NewArenaTracked(tracker)
	for i := 0; i < 500; i++ {
		a.New(Terminal, 0)
	}

	stats, err := tracker.Untrack()
	if err == nil {
		t.Error("Expected outstanding growth to be reported as unreleased")
	}
	if stats.AllocatedSize <= 0 {
		t.Error("Expected positive outstanding size, got:", stats)
	}
}

func TestIndexListWindowRoundTrip(t *testing.T) {
	il := NewIndexList(8)

	il.Open()
	il.Push(3)
	il.Push(1)
	il.Push(4)
	w := il.Close()

	if w.Offset != 0 || w.Count != 3 {
		t.Error("Unexpected window:", w)
		return
	}

	got := il.Slice(w)
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 4 {
		t.Error("Unexpected slice:", got)
		return
	}
}

func TestIndexListTrackedReportsGrowthAsAReleasableAllocation(t *testing.T) {
	tracker := alloc.NewCountingTracker()
	tracker.Enable()
	tracker.Track("index-owner")

	il := NewIndexListTracked(1, tracker)
	il.Open()
	for i := int32(0); i < 500; i++ {
		il.Push(i)
	}
	il.Close()

	stats, err := tracker.Untrack()
	if err == nil {
		t.Error("Expected outstanding growth to be reported as unreleased")
	}
	if stats.AllocatedSize <= 0 {
		t.Error("Expected positive outstanding size, got:", stats)
	}
}

func TestIndexListWindowsDoNotOverlap(t *testing.T) {
	il := NewIndexList(8)

	il.Open()
	il.Push(1)
	il.Push(2)
	w1 := il.Close()

	il.Open()
	il.Push(3)
	w2 := il.Close()

	if w1.Offset+w1.Count != w2.Offset {
		t.Error("Unexpected windows:", w1, w2)
		return
	}
}

func TestIndexListOpenWithoutCloseAsserts(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected a panic from the double-open assertion")
		}
	}()

	il := NewIndexList(8)
	il.Open()
	il.Open()
}

func TestNodeKindString(t *testing.T) {
	if SegmentLabel.String() != "SEGMENT_LABEL" {
		t.Error("Unexpected result:", SegmentLabel.String())
		return
	}
	if NodeKind(999).String() != "UNKNOWN_NODE_KIND" {
		t.Error("Unexpected result:", NodeKind(999).String())
		return
	}
}

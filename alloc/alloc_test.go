/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package alloc

import "testing"

func TestCountingTrackerDisabledIsNoop(t *testing.T) {
	c := NewCountingTracker()
	c.Track("arena-growth")
	c.Record(128)

	stats, err := c.Untrack()
	if err != nil {
		t.Error("Unexpected error:", err)
		return
	}
	if stats.Allocations != 0 {
		t.Error("Unexpected stats:", stats)
		return
	}
}

func TestCountingTrackerBalancedIsNotALeak(t *testing.T) {
	c := NewCountingTracker()
	c.Enable()

	c.Track("parser-scratch")
	c.Record(64)
	c.Record(128)
	c.Release(64)
	c.Release(128)

	stats, err := c.Untrack()
	if err != nil {
		t.Error("Unexpected error:", err)
		return
	}
	if stats.Allocations != 0 || stats.AllocatedSize != 0 || stats.PeakAllocatedSize != 192 {
		t.Error("Unexpected stats:", stats)
		return
	}
}

func TestCountingTrackerReportsLeak(t *testing.T) {
	c := NewCountingTracker()
	c.Enable()

	c.Track("parser-scratch")
	c.Record(64)
	c.Record(128)
	c.Release(64)

	stats, err := c.Untrack()
	if err == nil {
		t.Error("Expected a leak error")
		return
	}
	if stats.Allocations != 1 || stats.AllocatedSize != 128 {
		t.Error("Unexpected stats:", stats)
		return
	}

	if _, ok := err.(*LeakError); !ok {
		t.Error("Expected a *LeakError, got:", err)
		return
	}
}

func TestCountingTrackerUntrackClearsState(t *testing.T) {
	c := NewCountingTracker()
	c.Enable()

	c.Track("first")
	c.Record(10)
	c.Release(10)
	if _, err := c.Untrack(); err != nil {
		t.Error("Unexpected error:", err)
		return
	}

	stats, err := c.Untrack()
	if err != nil {
		t.Error("Unexpected error:", err)
		return
	}
	if stats.Allocations != 0 {
		t.Error("Expected cleared stats, got:", stats)
		return
	}
}

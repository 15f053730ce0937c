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
	"devt.de/krotik/common/errorutil"

	"github.com/peterino2/halcyon/alloc"
)

/*
NodeKind is the closed set of AST node kinds, matching ANodeType in the
original parser header. Terminal covers any token shifted onto the
working stack before a reduce rule absorbs it into something richer.
Invalid is never produced by the parser: terminals evicted by
line-eviction recovery keep Kind Terminal and are re-parented to the
root.
*/
type NodeKind int

const (
	Terminal NodeKind = iota
	SegmentLabel
	Speech
	Selection
	Extension
	Directive
	Goto
	End
	GraphNode
	Invalid
)

var nodeKindNames = map[NodeKind]string{
	Terminal:     "TERMINAL",
	SegmentLabel: "SEGMENT_LABEL",
	Speech:       "SPEECH",
	Selection:    "SELECTION",
	Extension:    "EXTENSION",
	Directive:    "DIRECTIVE",
	Goto:         "GOTO",
	End:          "END",
	GraphNode:    "GRAPH",
	Invalid:      "INVALID",
}

/*
String returns the debug name of this node kind, matching
node_id_to_string in the original parser.
*/
func (k NodeKind) String() string {
	if s, ok := nodeKindNames[k]; ok {
		return s
	}
	return "UNKNOWN_NODE_KIND"
}

/*
Window is a (offset, count) view into a shared IndexList. Windows are
opened, filled, and closed immediately by whatever reduce rule produces
them; they are never reopened or extended afterward.
*/
type Window struct {
	Offset int32
	Count  int32
}

/*
Empty reports whether this window spans no entries.
*/
func (w Window) Empty() bool {
	return w.Count == 0
}

/*
Node is every AST node kind flattened into one struct, the same way
ecal's ASTNode carries fields for every construct the language can
produce. Which fields are meaningful is determined entirely by Kind:

  - Terminal:     Token
  - SegmentLabel: Label, Comment, TabCount
  - Speech:       Speaker, StoryText, Comment, TabCount, Children (Extension nodes)
  - Selection:    StoryText, Comment, TabCount, Children (Extension nodes)
  - Extension:    Label, TabCount
  - Directive:    CommandLabel, InnerTokens, TabCount
  - Goto:         Label (dotted target text), InnerTokens (LABEL/DOT chain), TabCount
  - End:          TabCount
  - GraphNode:    Children (top-level node indices)
  - Invalid:      none
*/
type Node struct {
	Index  int32
	Parent int32
	Kind   NodeKind

	TabCount int

	Token Token

	Label     string
	Comment   string
	Speaker   string
	StoryText string

	CommandLabel string
	InnerTokens  Window

	Children Window
}

/*
Arena is the append-only AST node store. Node 0 always exists, is
self-parented, and has Kind GraphNode - the root of the compiled graph.
Growth is geometric, delegated to Go's own slice growth (Go's append
already doubles small slices the way the original arena's manual
ast_cap *= 2 did by hand; reimplementing that by hand here would just be
redoing what the runtime already guarantees).
*/
type Arena struct {
	nodes   []Node
	tracker alloc.Tracker
}

/*
NewArena creates an arena with its root Graph node already in place.
*/
func NewArena() *Arena {
	a := &Arena{nodes: make([]Node, 0, 256)}
	a.nodes = append(a.nodes, Node{Index: 0, Parent: 0, Kind: GraphNode})
	return a
}

/*
NewArenaTracked is like NewArena but reports every node allocation to the
given Tracker, the hook arena growth uses to exercise the alloc package.
*/
func NewArenaTracked(tracker alloc.Tracker) *Arena {
	a := NewArena()
	a.tracker = tracker
	return a
}

/*
New appends a new node of the given kind, parented under parent, and
returns its index.
*/
func (a *Arena) New(kind NodeKind, parent int32) int32 {
	idx := int32(len(a.nodes))

	before := cap(a.nodes)
	a.nodes = append(a.nodes, Node{Index: idx, Parent: parent, Kind: kind})
	if a.tracker != nil && cap(a.nodes) != before {
		a.tracker.Record(int64(cap(a.nodes)-before) * nodeSize)
	}

	return idx
}

/*
Get returns a pointer to the node at index i, allowing in-place mutation
of a node's fields as a reduce rule fills it in.
*/
func (a *Arena) Get(i int32) *Node {
	return &a.nodes[i]
}

/*
Len returns the number of nodes currently in the arena, including the
root.
*/
func (a *Arena) Len() int32 {
	return int32(len(a.nodes))
}

/*
nodeSize is a nominal per-node byte size used only to give the alloc
tracker something proportionate to report; the arena does not actually
allocate in fixed-size units the way the original malloc-backed one did.
*/
const nodeSize = 64

/*
IndexList is the single shared append-only bump-pool backing every
variable-length child list in the arena (a Graph's children, a
Directive's inner token references, a Speech's or Selection's
extensions). A window is opened, filled with Push, and closed
immediately; windows must never be left open across an unrelated Push.
*/
type IndexList struct {
	data    []int32
	open    bool
	opening int32
	tracker alloc.Tracker
}

/*
NewIndexList creates an index list, reserving capacityHint entries
up front (the original sized this to the token count, since no window
can ever hold more indices than there are tokens).
*/
func NewIndexList(capacityHint int) *IndexList {
	if capacityHint < 1 {
		capacityHint = 256
	}
	return &IndexList{data: make([]int32, 0, capacityHint)}
}

/*
NewIndexListTracked is like NewIndexList but reports growth to tracker.
*/
func NewIndexListTracked(capacityHint int, tracker alloc.Tracker) *IndexList {
	il := NewIndexList(capacityHint)
	il.tracker = tracker
	return il
}

/*
Open begins a new window. It is an assertion failure to open a window
while one is already open.
*/
func (il *IndexList) Open() {
	errorutil.AssertTrue(!il.open, "IndexList: window already open")
	il.open = true
	il.opening = int32(len(il.data))
}

/*
Push appends an index to the currently open window.
*/
func (il *IndexList) Push(v int32) {
	errorutil.AssertTrue(il.open, "IndexList: push with no open window")

	before := cap(il.data)
	il.data = append(il.data, v)
	if il.tracker != nil && cap(il.data) != before {
		il.tracker.Record(int64(cap(il.data)-before) * 4)
	}
}

/*
Close finalizes the currently open window and returns it. The window
must not be reopened or appended to afterward.
*/
func (il *IndexList) Close() Window {
	errorutil.AssertTrue(il.open, "IndexList: close with no open window")

	w := Window{Offset: il.opening, Count: int32(len(il.data)) - il.opening}
	il.open = false
	return w
}

/*
Slice returns the indices spanned by a closed window.
*/
func (il *IndexList) Slice(w Window) []int32 {
	return il.data[w.Offset : w.Offset+w.Count]
}

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
	"github.com/peterino2/halcyon/util"
)

/*
Graph is the parser's full output bundle: the node arena, the shared
index pool, the token stream and source buffer it was built from, and
the index of the root node (always 0). The caller walks it read-only;
nothing in this package mutates a Graph once Parse returns it.
*/
type Graph struct {
	Arena  *Arena
	Index  *IndexList
	Tokens *TokenStream
	Root   int32
}

/*
Parser is the bounded-stack shift-reduce engine of §4.3. It owns the
arena and index list it builds into (created by NewParser and handed
over in the returned Graph), and a working stack of node indices
representing the shift-reduce frontier (stack[0] is always the root
Graph node and is never popped).
*/
type Parser struct {
	source string
	ts     *TokenStream
	arena  *Arena
	index  *IndexList
	diag   *Diagnostics

	stack []int32

	indent     int
	parenDepth int

	graphChildren []int32

	extensionHost     int32
	extensionChildren []int32

	lastEvicted bool

	Verbose bool

	tracker alloc.Tracker
}

/*
tokenSize is a nominal per-token byte size used only to give the alloc
tracker something proportionate to report for the raw token buffer the
lexer produced; see stackSize below for the same reasoning applied to
the working stack.
*/
const tokenSize = 32

/*
stackSize is the nominal per-entry byte size of the parser's working
stack, used the same way as tokenSize.
*/
const stackSize = 4

/*
NewParser creates a parser over an already-lexed token stream. diag may
be nil, in which case diagnostics are discarded (useful for tests that
only care about the resulting AST shape).
*/
func NewParser(ts *TokenStream, source string, diag *Diagnostics) *Parser {
	return &Parser{
		source:        source,
		ts:            ts,
		arena:         NewArena(),
		index:         NewIndexList(len(ts.Tokens)),
		diag:          diag,
		stack:         make([]int32, 1, 64),
		extensionHost: -1,
	}
}

/*
NewParserTracked is like NewParser but routes the parser's scratch
state - its working stack and the raw token buffer handed to it by the
lexer, not the arena/IndexList storage that persists into the returned
Graph - through tracker, so a compile can assert no scratch allocations
are outstanding afterward (§8 invariant 8). See the alloc package's doc
comment for why the arena and index list are excluded.
*/
func NewParserTracked(ts *TokenStream, source string, diag *Diagnostics, tracker alloc.Tracker) *Parser {
	p := NewParser(ts, source, diag)
	p.tracker = tracker
	p.tracker.Record(int64(len(ts.Tokens)) * tokenSize)
	p.tracker.Record(int64(cap(p.stack)) * stackSize)
	return p
}

/*
Parse runs the full shift/forward-match/reduce loop over every token in
ts and returns the resulting Graph. Malformed lines are recovered via
line-eviction and reported through diag; only a fatal condition (an
UNEXPECTED_TOKEN inside a segment-label reduction) returns an error.
*/
func Parse(ts *TokenStream, source string, diag *Diagnostics) (*Graph, error) {
	p := NewParser(ts, source, diag)
	return p.Run()
}

/*
Run executes the parse loop described in §4.3: for every token, shift,
attempt one forward-match rule, then reduce to fixpoint.
*/
func (p *Parser) Run() (*Graph, error) {
	errorutil.AssertTrue(len(p.stack) == 1 && p.stack[0] == 0,
		"Parser: working stack must start as [Graph]")

	for i := range p.ts.Tokens {
		p.shift(int32(i))

		if err := p.forwardMatch(); err != nil {
			return nil, err
		}
		if err := p.reduceToFixpoint(); err != nil {
			return nil, err
		}
	}

	return p.finish(), nil
}

/*
finish closes out the Graph's children window (accumulated across the
whole parse, unlike every other node's window which closes the instant
its owning node is created) and returns the bundled Graph.
*/
func (p *Parser) finish() *Graph {
	p.closeExtensionHost()

	if p.tracker != nil {
		p.tracker.Release(int64(cap(p.stack)) * stackSize)
		p.tracker.Release(int64(len(p.ts.Tokens)) * tokenSize)
	}

	p.index.Open()
	for _, c := range p.graphChildren {
		p.index.Push(c)
	}
	root := p.arena.Get(0)
	root.Children = p.index.Close()

	return &Graph{
		Arena:  p.arena,
		Index:  p.index,
		Tokens: p.ts,
		Root:   0,
	}
}

/*
shift wraps token i in a Terminal node and pushes it onto the working
stack. It also tracks directive paren depth the same way the lexer
tracks it for the ":"/">" ambiguity (see lexer.go's directiveParenCount):
a SPACE shifted while inside an open "(...)" must survive reduction so
matchDirective can see it in InnerTokens, so parenDepth is what gates
the Space-absorption rule in tryReduceOnce.
*/
func (p *Parser) shift(i int32) {
	idx := p.arena.New(Terminal, 0)
	n := p.arena.Get(idx)
	n.Token = p.ts.Tokens[i]

	switch n.Token.Kind {
	case LParen:
		p.parenDepth++
	case RParen:
		p.parenDepth--
	case Newline:
		p.parenDepth = 0
	}

	before := cap(p.stack)
	p.stack = append(p.stack, idx)
	if p.tracker != nil && cap(p.stack) != before {
		p.tracker.Release(int64(before) * stackSize)
		p.tracker.Record(int64(cap(p.stack)) * stackSize)
	}
}

/*
top returns the node index at the top of the working stack.
*/
func (p *Parser) top() int32 {
	return p.stack[len(p.stack)-1]
}

/*
kindAt returns the token kind of the Terminal node at stack position pos,
and whether that position holds an unreduced Terminal at all (position 0,
the Graph, and any already-reduced construct both report false).
*/
func (p *Parser) kindAt(pos int) (TokenKind, bool) {
	if pos < 1 || pos >= len(p.stack) {
		return 0, false
	}
	n := p.arena.Get(p.stack[pos])
	if n.Kind != Terminal {
		return 0, false
	}
	return n.Token.Kind, true
}

/*
view returns the source text spanned by the Terminal at stack position
pos, or "" if that position is not an unreduced Terminal.
*/
func (p *Parser) view(pos int) string {
	if pos < 1 || pos >= len(p.stack) {
		return ""
	}
	n := p.arena.Get(p.stack[pos])
	if n.Kind != Terminal {
		return ""
	}
	return n.Token.View
}

/*
popTo truncates the working stack down to length newLen, returning the
node indices that were removed, in bottom-to-top order.
*/
func (p *Parser) popTo(newLen int) []int32 {
	removed := append([]int32(nil), p.stack[newLen:]...)
	p.stack = p.stack[:newLen]
	return removed
}

/*
setParentAll assigns parent as the AST parent of every node index in
nodes, matching the parent-pointer discipline of §4.3: every reduction
sets parent on the tokens it absorbs.
*/
func (p *Parser) setParentAll(nodes []int32, parent int32) {
	for _, idx := range nodes {
		p.arena.Get(idx).Parent = parent
	}
}

/*
attachTopLevel records idx as a child of the root Graph node and closes
out any in-progress extension streak, since a new top-level construct
ends whatever speech/selection it might otherwise have extended.
*/
func (p *Parser) attachTopLevel(idx int32) {
	p.arena.Get(idx).Parent = 0
	p.graphChildren = append(p.graphChildren, idx)
	p.closeExtensionHost()
	p.indent = 0
}

/*
closeExtensionHost finalizes the children window of the current
extension host (a Speech or Selection), if one is active.
*/
func (p *Parser) closeExtensionHost() {
	if p.extensionHost == -1 {
		return
	}
	host := p.arena.Get(p.extensionHost)
	p.index.Open()
	for _, c := range p.extensionChildren {
		p.index.Push(c)
	}
	host.Children = p.index.Close()
	p.extensionHost = -1
	p.extensionChildren = nil
}

/*
openExtensionHost marks idx (a freshly produced Speech or Selection) as
the node subsequent Extension lines attach to.
*/
func (p *Parser) openExtensionHost(idx int32) {
	p.closeExtensionHost()
	p.extensionHost = idx
	p.extensionChildren = nil
}

/*
attachExtension records idx as a child of the active extension host. An
extension with no active host (a ":" continuation that doesn't follow
any speech or selection) is attached directly to the Graph instead - the
grammar doesn't forbid it and the original parser never implemented this
reduction to compare against, so this is a documented generalization
rather than a literal port.
*/
func (p *Parser) attachExtension(idx int32) {
	if p.extensionHost == -1 {
		p.attachTopLevel(idx)
		return
	}
	p.arena.Get(idx).Parent = p.extensionHost
	p.extensionChildren = append(p.extensionChildren, idx)
	p.indent = 0
}

/*
emit forwards a compile error to the diagnostic sink, if one is
attached, identifying the token at stack position pos for the caret.
*/
func (p *Parser) emit(sev Severity, kind util.ErrorKind, detail string, pos int) {
	if p.diag == nil {
		return
	}
	line := 0
	tokenIdx := -1
	if pos >= 0 && pos < len(p.stack) {
		n := p.arena.Get(p.stack[pos])
		if n.Kind == Terminal {
			line = n.Token.Line
			tokenIdx = tokenIndexForView(p.ts, n.Token)
		}
	}
	ce := util.NewCompileError(p.source, kind, detail, line, 0)
	p.diag.Emit(sev, ce, p.ts, tokenIdx)
}

/*
fatalAt builds a CompileError identifying the token at stack position pos,
for reductions where the error must abort the compilation unit rather
than go through the diagnostic sink as a recoverable entry (mirroring
raise(ERR_UNEXPECTED_TOKEN) in the original segment-label reduction,
which unwinds instead of continuing).
*/
func (p *Parser) fatalAt(kind util.ErrorKind, detail string, pos int) error {
	line := 0
	if pos >= 0 && pos < len(p.stack) {
		n := p.arena.Get(p.stack[pos])
		if n.Kind == Terminal {
			line = n.Token.Line
		}
	}
	return util.NewCompileError(p.source, kind, detail, line, 0)
}

/*
tokenIndexForView finds the token in ts matching tok by identity of its
view pointer semantics (Go strings compare by content, which is enough
here since a diagnostic only needs *a* source-line to render, not
necessarily the exact occurrence when content repeats).
*/
func tokenIndexForView(ts *TokenStream, tok Token) int {
	for i, t := range ts.Tokens {
		if t.Line == tok.Line && t.Kind == tok.Kind && t.View == tok.View {
			return i
		}
	}
	return -1
}

/*
forwardMatch attempts the forward-match rule table in priority order:
Goto, End, Directive, Speech, Extension, Selection, Newline-swallow. All
of them require the stack's top to be NEWLINE. At most one rule fires.
*/
func (p *Parser) forwardMatch() error {
	if k, ok := p.kindAt(len(p.stack) - 1); !ok || k != Newline {
		return nil
	}

	if p.matchGoto() {
		return nil
	}
	if p.matchEnd() {
		return nil
	}
	if p.matchDirective() {
		return nil
	}
	if p.matchSpeech() {
		return nil
	}
	if p.matchExtension() {
		return nil
	}
	if p.matchSelection() {
		return nil
	}
	p.matchNewlineSwallow()

	return nil
}

/*
commentCursor looks at the position just below the top-of-stack NEWLINE
for an optional COMMENT, returning the cursor position to continue
matching from (either just past the comment, or just past the newline).
*/
func (p *Parser) commentCursor() (cursor int, commentIdx int) {
	top := len(p.stack) - 1
	cursor = top - 1
	commentIdx = -1
	if k, ok := p.kindAt(cursor); ok && k == Comment {
		commentIdx = cursor
		cursor--
	}
	return cursor, commentIdx
}

/*
matchGoto matches "AT LABEL(="goto") { LABEL | DOT } [COMMENT] NEWLINE".
*/
func (p *Parser) matchGoto() bool {
	cursor, commentIdx := p.commentCursor()

	chainEnd := cursor
	i := cursor
	for {
		k, ok := p.kindAt(i)
		if !ok || (k != Label && k != Dot) {
			break
		}
		if k == Label && p.view(i) == "goto" {
			if ak, aok := p.kindAt(i - 1); aok && ak == At {
				break
			}
		}
		i--
	}
	chainStart := i + 1
	if chainStart > chainEnd {
		return false
	}

	gotoIdx := i
	k, ok := p.kindAt(gotoIdx)
	if !ok || k != Label || p.view(gotoIdx) != "goto" {
		return false
	}

	atIdx := gotoIdx - 1
	if k, ok := p.kindAt(atIdx); !ok || k != At {
		return false
	}

	var chain []int32
	for j := chainStart; j <= chainEnd; j++ {
		chain = append(chain, p.stack[j])
	}

	idx := p.arena.New(Goto, 0)
	n := p.arena.Get(idx)
	n.TabCount = p.indent
	p.index.Open()
	for _, c := range chain {
		p.index.Push(c)
		n.Label += p.arena.Get(c).Token.View
	}
	n.InnerTokens = p.index.Close()

	absorbed := append([]int32{p.stack[atIdx], p.stack[gotoIdx]}, chain...)
	if commentIdx != -1 {
		absorbed = append(absorbed, p.stack[commentIdx])
	}
	absorbed = append(absorbed, p.top())
	p.setParentAll(absorbed, idx)

	p.popTo(atIdx)
	p.stack = append(p.stack, idx)
	p.attachTopLevel(idx)
	return true
}

/*
matchEnd matches "AT LABEL(="end") [COMMENT] NEWLINE".
*/
func (p *Parser) matchEnd() bool {
	cursor, commentIdx := p.commentCursor()

	k, ok := p.kindAt(cursor)
	if !ok || k != Label || p.view(cursor) != "end" {
		return false
	}
	atIdx := cursor - 1
	if k, ok := p.kindAt(atIdx); !ok || k != At {
		return false
	}

	idx := p.arena.New(End, 0)
	p.arena.Get(idx).TabCount = p.indent

	absorbed := []int32{p.stack[atIdx], p.stack[cursor]}
	if commentIdx != -1 {
		absorbed = append(absorbed, p.stack[commentIdx])
	}
	absorbed = append(absorbed, p.top())
	p.setParentAll(absorbed, idx)

	p.popTo(atIdx)
	p.stack = append(p.stack, idx)
	p.attachTopLevel(idx)
	return true
}

/*
matchDirective matches "AT LABEL L_PAREN ... R_PAREN [COMMENT] NEWLINE",
finding the matching L_PAREN by depth counting so nested parens inside
the directive's argument list don't confuse the boundary.
*/
func (p *Parser) matchDirective() bool {
	cursor, commentIdx := p.commentCursor()

	if k, ok := p.kindAt(cursor); !ok || k != RParen {
		return false
	}
	rparenIdx := cursor

	depth := 1
	j := cursor - 1
	for j >= 1 {
		k, ok := p.kindAt(j)
		if !ok {
			return false
		}
		if k == RParen {
			depth++
		} else if k == LParen {
			depth--
			if depth == 0 {
				break
			}
		}
		j--
	}
	if depth != 0 {
		return false
	}
	lparenIdx := j

	labelIdx := lparenIdx - 1
	if k, ok := p.kindAt(labelIdx); !ok || k != Label {
		return false
	}
	atIdx := labelIdx - 1
	if k, ok := p.kindAt(atIdx); !ok || k != At {
		return false
	}

	var inner []int32
	for k := lparenIdx + 1; k < rparenIdx; k++ {
		inner = append(inner, p.stack[k])
	}

	idx := p.arena.New(Directive, 0)
	n := p.arena.Get(idx)
	n.TabCount = p.indent
	n.CommandLabel = p.view(labelIdx)
	p.index.Open()
	for _, c := range inner {
		p.index.Push(c)
	}
	n.InnerTokens = p.index.Close()

	absorbed := append([]int32{}, p.stack[atIdx:rparenIdx+1]...)
	if commentIdx != -1 {
		absorbed = append(absorbed, p.stack[commentIdx])
	}
	absorbed = append(absorbed, p.top())
	p.setParentAll(absorbed, idx)

	p.popTo(atIdx)
	p.stack = append(p.stack, idx)
	p.attachTopLevel(idx)
	return true
}

/*
matchSpeech matches "(SPEAKERSIGN | LABEL) COLON STORY_TEXT [COMMENT] NEWLINE".
*/
func (p *Parser) matchSpeech() bool {
	cursor, commentIdx := p.commentCursor()

	if k, ok := p.kindAt(cursor); !ok || k != StoryText {
		return false
	}
	storyIdx := cursor

	colonIdx := storyIdx - 1
	if k, ok := p.kindAt(colonIdx); !ok || k != Colon {
		return false
	}

	speakerIdx := colonIdx - 1
	k, ok := p.kindAt(speakerIdx)
	if !ok || (k != SpeakerSign && k != Label) {
		return false
	}

	idx := p.arena.New(Speech, 0)
	n := p.arena.Get(idx)
	n.TabCount = p.indent
	n.Speaker = p.view(speakerIdx)
	n.StoryText = p.view(storyIdx)
	if commentIdx != -1 {
		n.Comment = p.view(commentIdx)
	}
	n.Token = p.arena.Get(p.stack[storyIdx]).Token

	absorbed := []int32{p.stack[speakerIdx], p.stack[colonIdx], p.stack[storyIdx]}
	if commentIdx != -1 {
		absorbed = append(absorbed, p.stack[commentIdx])
	}
	absorbed = append(absorbed, p.top())
	p.setParentAll(absorbed, idx)

	p.popTo(speakerIdx)
	p.stack = append(p.stack, idx)
	p.attachTopLevel(idx)
	p.openExtensionHost(idx)
	return true
}

/*
matchExtension matches "COLON STORY_TEXT [COMMENT] NEWLINE" - a
continuation of a preceding speech or selection.
*/
func (p *Parser) matchExtension() bool {
	cursor, commentIdx := p.commentCursor()

	if k, ok := p.kindAt(cursor); !ok || k != StoryText {
		return false
	}
	storyIdx := cursor

	colonIdx := storyIdx - 1
	if k, ok := p.kindAt(colonIdx); !ok || k != Colon {
		return false
	}

	idx := p.arena.New(Extension, 0)
	n := p.arena.Get(idx)
	n.TabCount = p.indent
	n.Label = p.view(storyIdx)
	n.Token = p.arena.Get(p.stack[storyIdx]).Token

	absorbed := []int32{p.stack[colonIdx], p.stack[storyIdx]}
	if commentIdx != -1 {
		absorbed = append(absorbed, p.stack[commentIdx])
	}
	absorbed = append(absorbed, p.top())
	p.setParentAll(absorbed, idx)

	p.popTo(colonIdx)
	p.stack = append(p.stack, idx)
	p.attachExtension(idx)
	return true
}

/*
matchSelection matches "R_ANGLE STORY_TEXT [COMMENT] NEWLINE".
*/
func (p *Parser) matchSelection() bool {
	cursor, commentIdx := p.commentCursor()

	if k, ok := p.kindAt(cursor); !ok || k != StoryText {
		return false
	}
	storyIdx := cursor

	angleIdx := storyIdx - 1
	if k, ok := p.kindAt(angleIdx); !ok || k != RAngle {
		return false
	}

	idx := p.arena.New(Selection, 0)
	n := p.arena.Get(idx)
	n.TabCount = p.indent
	n.StoryText = p.view(storyIdx)
	if commentIdx != -1 {
		n.Comment = p.view(commentIdx)
	}
	n.Token = p.arena.Get(p.stack[storyIdx]).Token

	absorbed := []int32{p.stack[angleIdx], p.stack[storyIdx]}
	if commentIdx != -1 {
		absorbed = append(absorbed, p.stack[commentIdx])
	}
	absorbed = append(absorbed, p.top())
	p.setParentAll(absorbed, idx)

	p.popTo(angleIdx)
	p.stack = append(p.stack, idx)
	p.attachTopLevel(idx)
	p.openExtensionHost(idx)
	return true
}

/*
matchNewlineSwallow pops a stand-alone NEWLINE, or a COMMENT NEWLINE
pair, when nothing else matched - a blank or comment-only line.
*/
func (p *Parser) matchNewlineSwallow() bool {
	cursor, commentIdx := p.commentCursor()

	// "no reducible prefix" means nothing sits between the start of the
	// line and the newline (or its leading comment): the slot below it is
	// the Graph or an already-reduced node, never an unreduced terminal.
	// A terminal there is an unrecognized construct, left for
	// line-eviction recovery rather than silently discarded here.
	if _, ok := p.kindAt(cursor); ok {
		return false
	}

	top := len(p.stack) - 1
	if commentIdx != -1 {
		p.popTo(commentIdx)
	} else {
		p.popTo(top)
	}
	return true
}

/*
reduceToFixpoint scans for the reduce rules (SegmentLabel, Indent
absorption, Space absorption, Line-eviction recovery) and, on any
reduction, restarts from the top; it stops once a full pass makes no
further progress.

Line-eviction recovery is capped at one firing per call: it only ever
evicts down to and re-pushes the single most-recently-shifted terminal,
so once it has fired nothing about the stuck newline's position changes
until the next token is shifted - retrying it here would spin forever
reporting the same diagnostic without making any further progress.
*/
func (p *Parser) reduceToFixpoint() error {
	evicted := false
	for {
		changed, err := p.tryReduceOnce(evicted)
		if err != nil {
			return err
		}
		if p.lastEvicted {
			evicted = true
		}
		if !changed {
			return nil
		}
	}
}

/*
tryReduceOnce attempts each reduce rule once, highest priority first,
returning whether any of them fired. alreadyEvicted suppresses a second
line-eviction within the same reduceToFixpoint call (see its doc
comment).
*/
func (p *Parser) tryReduceOnce(alreadyEvicted bool) (bool, error) {
	p.lastEvicted = false

	if k, ok := p.kindAt(len(p.stack) - 1); ok && k == Tab {
		idx := p.popTo(len(p.stack) - 1)[0]
		p.arena.Get(idx).Parent = 0
		p.indent++
		return true, nil
	}

	if k, ok := p.kindAt(len(p.stack) - 1); ok && k == Space && p.parenDepth == 0 {
		p.popTo(len(p.stack) - 1)
		return true, nil
	}

	if reduced, err := p.reduceSegmentLabel(); err != nil {
		return false, err
	} else if reduced {
		return true, nil
	}

	if alreadyEvicted {
		return false, nil
	}

	if err := p.lineEvictionRecovery(); err != nil {
		return false, err
	} else if p.lastEvicted {
		return true, nil
	}

	return false, nil
}

/*
reduceSegmentLabel matches "L_SQBRACK LABEL R_SQBRACK [COMMENT] NEWLINE",
working back from the top-of-stack NEWLINE the same way every other
forward-match rule does. If the token immediately before [COMMENT]
NEWLINE isn't "]", this might still be a segment label with a stray
trailing token rather than not a segment label at all, so
checkStraySegmentLabelTail keeps looking further back before giving up;
see its doc comment.
*/
func (p *Parser) reduceSegmentLabel() (bool, error) {
	if k, ok := p.kindAt(len(p.stack) - 1); !ok || k != Newline {
		return false, nil
	}

	cursor, commentIdx := p.commentCursor()

	if k, ok := p.kindAt(cursor); !ok || k != RSquareBrack {
		return false, p.checkStraySegmentLabelTail(cursor)
	}
	rbrackIdx := cursor

	labelIdx := rbrackIdx - 1
	if k, ok := p.kindAt(labelIdx); !ok || k != Label {
		return false, nil
	}

	lbrackIdx := labelIdx - 1
	if k, ok := p.kindAt(lbrackIdx); !ok || k != LSquareBrack {
		return false, nil
	}

	idx := p.arena.New(SegmentLabel, 0)
	n := p.arena.Get(idx)
	n.TabCount = p.indent
	n.Label = p.view(labelIdx)
	if commentIdx != -1 {
		n.Comment = p.view(commentIdx)
	}
	n.Token = p.arena.Get(p.stack[labelIdx]).Token

	absorbed := []int32{p.stack[lbrackIdx], p.stack[labelIdx], p.stack[rbrackIdx]}
	if commentIdx != -1 {
		absorbed = append(absorbed, p.stack[commentIdx])
	}
	absorbed = append(absorbed, p.top())
	p.setParentAll(absorbed, idx)

	p.popTo(lbrackIdx)
	p.stack = append(p.stack, idx)
	p.attachTopLevel(idx)
	return true, nil
}

/*
checkStraySegmentLabelTail walks back from pos looking for a completed
"L_SQBRACK LABEL R_SQBRACK" on the stack, stopping at the first
non-Terminal entry (the previous line's already-reduced node, which
bounds how far back this line's tokens can go). Finding one means pos
held a stray token trailing an otherwise well-formed segment label - a
fatal UNEXPECTED_TOKEN, matching halc_parser.c's
match_reduce_segment_label, which raises ERR_UNEXPECTED_TOKEN here
rather than falling through to line-eviction. Finding nothing means this
line simply isn't a segment label, which is not an error at all.
*/
func (p *Parser) checkStraySegmentLabelTail(pos int) error {
	for i := pos; i >= 1; i-- {
		k, ok := p.kindAt(i)
		if !ok {
			return nil
		}
		if k != RSquareBrack {
			continue
		}
		if lk, ok := p.kindAt(i - 1); !ok || lk != Label {
			return nil
		}
		if bk, ok := p.kindAt(i - 2); !ok || bk != LSquareBrack {
			return nil
		}
		return p.fatalAt(util.ErrUnexpectedToken,
			"expected a comment or a newline after a segment label", pos)
	}
	return nil
}

/*
lineEvictionRecovery implements the malformed-line safety net: if the
stack holds a NEWLINE with further terminals shifted above it (meaning
no forward-match or SegmentLabel reduction ever consumed that newline
before the next line's tokens started piling up on top of it), the line
is unparseable. A diagnostic is emitted and the stuck newline together
with every terminal above it is evicted, except the most recently
shifted one, which is pushed back - this clears the dead line boundary
entirely and leaves exactly one live terminal to resume matching from,
so the next line gets a clean slate instead of tripping the same
recovery on every subsequent token. (A literal reading that leaves the newline on the stack would strand it
there permanently, since nothing else in the grammar ever consumes a
bare buried NEWLINE; evicting it here is a deliberate deviation, made
for that reason.)
*/
func (p *Parser) lineEvictionRecovery() error {
	p.lastEvicted = false

	stuck := -1
	for i := 1; i < len(p.stack)-1; i++ {
		if k, ok := p.kindAt(i); ok && k == Newline {
			stuck = i
		}
	}
	if stuck == -1 {
		return nil
	}

	p.emit(SeverityError, util.ErrUnableToParseLine, "unparseable line, recovering at the next line boundary", len(p.stack)-1)

	last := p.top()
	evicted := p.popTo(stuck)
	p.setParentAll(evicted, 0)
	p.stack = append(p.stack, last)

	p.lastEvicted = true
	return nil
}

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
	"os"

	"github.com/peterino2/halcyon/alloc"
)

/*
Debug knobs, matching the original compiler's global toggles
(set_parser_noprint, set_parser_verbose, suppress_errors,
enable_allocation_tracking). These are process-wide, same as the
diagnostic sink's own suppression state.
*/
var (
	parserNoPrint   bool
	parserVerbose   bool
	allocTracking   bool
	defaultDiagSink = NewDiagnostics(os.Stderr, 32)
)

/*
SetParserNoPrint suppresses all diagnostic output from Compile (the
diagnostics are still recorded in the sink's History ring).
*/
func SetParserNoPrint(v bool) {
	parserNoPrint = v
	defaultDiagSink.Suppressed = v
}

/*
SetParserVerbose sets the parser-verbosity toggle. The CLI sets it from
the ParserVerbose config key; the parser itself does not read it, and
no parse-progress logging is produced.
*/
func SetParserVerbose(v bool) {
	parserVerbose = v
}

/*
SuppressErrors is an alias for SetParserNoPrint, matching the original
compiler's suppress_errors name used by negative test cases that only
care about the returned ErrorKind, not the printed text.
*/
func SuppressErrors(v bool) {
	SetParserNoPrint(v)
}

/*
EnableAllocationTracking turns on scratch-allocation tracking for every
subsequent Compile call routed through CompileTracked.
*/
func EnableAllocationTracking(v bool) {
	allocTracking = v
}

/*
Diag returns the process-wide diagnostic sink Compile uses by
default, so a caller can inspect its History after a run.
*/
func Diag() *Diagnostics {
	return defaultDiagSink
}

/*
Compile runs the full normalize -> lex -> parse pipeline over source and
returns the resulting Graph. A normalization or lex failure is fatal and
returned as the error, as is a stray token after a segment label's "]"
(UNEXPECTED_TOKEN); other malformed lines are recovered in-place and
only reported through the diagnostic sink.
*/
func Compile(source []byte, filename string) (*Graph, error) {
	defaultDiagSink.ResetRun()

	normalized, err := Normalize(source, filename)
	if err != nil {
		return nil, err
	}

	ts, err := Lex(normalized, filename)
	if err != nil {
		return nil, err
	}

	return Parse(ts, filename, defaultDiagSink)
}

/*
CompileTracked is like Compile but routes the parser's scratch
allocations (its working stack and the lexer's token buffer) through a fresh CountingTracker
when allocation tracking is enabled, returning its stats alongside the
Graph so a caller can assert zero outstanding allocations (§8 invariant
8). The tracker tracks only the parser's working-stack-adjacent growth,
not the arena/IndexList storage that persists inside the returned Graph
- see the alloc package's doc comment for why.
*/
func CompileTracked(source []byte, filename string) (*Graph, alloc.Stats, error) {
	defaultDiagSink.ResetRun()

	tracker := alloc.NewCountingTracker()
	if allocTracking {
		tracker.Enable()
	}
	tracker.Track(filename)

	normalized, err := Normalize(source, filename)
	if err != nil {
		return nil, alloc.Stats{}, err
	}

	ts, err := Lex(normalized, filename)
	if err != nil {
		return nil, alloc.Stats{}, err
	}

	p := NewParserTracked(ts, filename, defaultDiagSink, tracker)
	g, err := p.Run()
	if err != nil {
		return nil, alloc.Stats{}, err
	}

	stats, _ := tracker.Untrack()
	return g, stats, nil
}

/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package util

import (
	"encoding/json"
	"fmt"
)

/*
ErrorKind classifies a compile error. The kind set mirrors the original
halcyon-c error codes (errc) grouped by the stage that can raise them.
*/
type ErrorKind int

/*
Known error kinds.
*/
const (
	// Resource errors

	ErrOutOfMemory ErrorKind = iota
	ErrBadReallocParameters
	ErrReallocShrunkWhenNotAllowed

	// I/O errors

	ErrUnableToOpenFile
	ErrFileSeekError

	// Normalization errors

	ErrInconsistentFileFormat

	// Lex errors

	ErrUnrecognizedToken
	ErrTokenizerPointerOverflow

	// Parse errors

	ErrUnexpectedToken
	ErrUnableToParseLine

	// Structural errors

	ErrUnexpectedReinitialization
	ErrAssertionFailed

	// Test-only errors

	ErrTestLeakedMemory
)

/*
kindNames holds the human readable description for each ErrorKind, matching
errcToString in the original tokenizer/parser source.
*/
var kindNames = map[ErrorKind]string{
	ErrOutOfMemory:                 "Out of memory",
	ErrBadReallocParameters:        "Bad reallocation parameters, new size must be equal or larger",
	ErrReallocShrunkWhenNotAllowed: "Reallocation shrunk a buffer that must not shrink",
	ErrUnableToOpenFile:            "Unable to open file",
	ErrFileSeekError:               "File seek error",
	ErrInconsistentFileFormat:      "Inconsistent file format: leading whitespace is not a multiple of four spaces",
	ErrUnrecognizedToken:           "Unrecognized token",
	ErrTokenizerPointerOverflow:    "Pointer ran off the end while tokenizing",
	ErrUnexpectedToken:             "Unexpected token",
	ErrUnableToParseLine:           "Unable to parse line",
	ErrUnexpectedReinitialization:  "Unexpected reinitialization",
	ErrAssertionFailed:             "Assertion failed",
	ErrTestLeakedMemory:            "Leaked memory detected",
}

/*
String returns a human readable description of this error kind.
*/
func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown error"
}

/*
TraceableCompileError can record and show a recovery trace - the sequence
of lines the parser evicted and resumed from while recovering from this
error.
*/
type TraceableCompileError interface {
	error

	/*
		AddTrace adds a recovered line to the trace.
	*/
	AddTrace(line int)

	/*
		GetTrace returns the current trace.
	*/
	GetTrace() []int
}

/*
CompileError is a compiler related error produced by the normalizer, the
lexer or the parser.
*/
type CompileError struct {
	Source string    // Name of the source which was given to the compiler
	Kind   ErrorKind // Error kind (to be used for equality checks)
	Detail string    // Details of this error
	Line   int       // Line of the error
	Pos    int       // Position of the error
	Trace  []int     // Lines evicted and re-parsed during recovery
}

/*
NewCompileError creates a new CompileError object.
*/
func NewCompileError(source string, kind ErrorKind, detail string, line int, pos int) *CompileError {
	return &CompileError{source, kind, detail, line, pos, nil}
}

/*
Error returns a human-readable string representation of this error.
*/
func (ce *CompileError) Error() string {
	ret := fmt.Sprintf("halcyon error in %s: %v (%v)", ce.Source, ce.Kind, ce.Detail)

	if ce.Line != 0 {
		ret = fmt.Sprintf("%s (Line:%d Pos:%d)", ret, ce.Line, ce.Pos)
	}

	return ret
}

/*
AddTrace adds a recovered line to the trace.
*/
func (ce *CompileError) AddTrace(line int) {
	ce.Trace = append(ce.Trace, line)
}

/*
GetTrace returns the current trace.
*/
func (ce *CompileError) GetTrace() []int {
	return ce.Trace
}

/*
ToJSONObject returns this CompileError as a JSON object.
*/
func (ce *CompileError) ToJSONObject() map[string]interface{} {
	return map[string]interface{}{
		"Source": ce.Source,
		"Kind":   ce.Kind.String(),
		"Detail": ce.Detail,
		"Line":   ce.Line,
		"Pos":    ce.Pos,
		"Trace":  ce.Trace,
	}
}

/*
MarshalJSON serializes this CompileError into a JSON string.
*/
func (ce *CompileError) MarshalJSON() ([]byte, error) {
	return json.Marshal(ce.ToJSONObject())
}

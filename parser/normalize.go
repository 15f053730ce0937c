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
	"github.com/peterino2/halcyon/util"
)

/*
Normalize rewrites raw source bytes into the canonical form the lexer
expects: every "\r" is stripped, and the leading run of spaces on every
line is collapsed into one "\t" byte per four spaces. A leading run whose
length is not a multiple of four is a file format error.

This is a direct, byte-for-byte port of hstr_normalize from the original
halcyon-c sources, including its one surprising wrinkle: a literal tab
byte encountered while still counting leading whitespace does not itself
get converted or counted - it passes through unchanged - and does not
end the leading-whitespace scan either. Only a non-space, non-tab byte
ends it.
*/
func Normalize(src []byte, source string) ([]byte, error) {
	out := make([]byte, 0, len(src))

	isNewLine := true
	spaceCount := 0
	line := 1

	for _, b := range src {
		if isNewLine && b != '\t' && b != ' ' {
			isNewLine = false

			if spaceCount%4 != 0 {
				return nil, util.NewCompileError(source, util.ErrInconsistentFileFormat,
					"leading whitespace is not a multiple of four spaces", line, spaceCount)
			}

			for spaceCount > 0 {
				out = append(out, '\t')
				spaceCount -= 4
			}
			spaceCount = 0
		}

		if b == '\n' {
			isNewLine = true
		}

		switch {
		case b == '\r':
			// stripped unconditionally

		case isNewLine:
			if b == ' ' {
				spaceCount++
			} else {
				out = append(out, b)
			}

		default:
			out = append(out, b)
		}

		if b == '\n' {
			line++
		}
	}

	return out, nil
}

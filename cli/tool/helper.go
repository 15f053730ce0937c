/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package tool

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"devt.de/krotik/common/stringutil"
)

/*
osArgs is a local copy of os.Args (used for unit tests).
*/
var osArgs = os.Args

/*
osStderr is a local copy of os.Stderr (used for unit tests).
*/
var osStderr io.Writer = os.Stderr

/*
matchesGlob checks if a given text matches a given glob expression, used
by the pack command to filter which files under a directory get bundled.
Returns true if an error occurs, so a malformed glob fails open rather
than silently excluding everything.
*/
func matchesGlob(text string, glob string) bool {
	re, err := stringutil.GlobToRegex(glob)
	if err != nil {
		fmt.Fprintln(osStderr, "Invalid glob expression:", err.Error())
		return true
	}

	res, err := regexp.MatchString(re, text)
	if err != nil {
		fmt.Fprintln(osStderr, "Invalid glob expression:", err.Error())
		return true
	}

	return res
}

/*
fillTableRow fills a table row of a display table, wrapping values
longer than 80 characters across multiple rows.
*/
func fillTableRow(tabData []string, key string, value string) []string {
	tabData = append(tabData, key)

	valSplit := stringutil.ChunkSplit(value, 80, true)
	tabData = append(tabData, strings.TrimSpace(valSplit[0]))
	for _, valPart := range valSplit[1:] {
		tabData = append(tabData, "")
		tabData = append(tabData, strings.TrimSpace(valPart))
	}

	return tabData
}

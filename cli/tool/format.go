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
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterino2/halcyon/parser"
)

/*
Format reformats every halc file under a directory tree in place, by
compiling it and writing back the pretty-printed reconstruction. Files
that fail to compile are reported but left untouched.
*/
func Format() error {
	wd, _ := os.Getwd()

	dir := flag.String("dir", wd, "Root directory for halc files")
	ext := flag.String("ext", ".halc", "Extension for halc files")
	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Usage of %s format [options]", osArgs[0]))
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "This tool will format all halc files in a directory structure.")
		fmt.Fprintln(flag.CommandLine.Output())
	}

	if len(osArgs) >= 2 {
		flag.CommandLine.Parse(osArgs[2:])

		if *showHelp {
			flag.Usage()
			return nil
		}
	}

	fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Formatting all %v files in %v", *ext, *dir))

	return filepath.Walk(*dir, func(path string, i os.FileInfo, err error) error {
		if err != nil || i.IsDir() || !strings.HasSuffix(path, *ext) {
			return err
		}

		data, err := ioutil.ReadFile(path)
		if err != nil {
			return err
		}

		before := len(parser.Diag().History.Slice())
		g, ferr := parser.Compile(data, path)

		if ferr == nil && len(parser.Diag().History.Slice()) > before {
			ferr = fmt.Errorf("file contains malformed lines, see diagnostics above")
		}

		if ferr == nil {
			var formatted string
			if formatted, ferr = parser.PrettyPrint(g); ferr == nil {
				ferr = ioutil.WriteFile(path, []byte(formatted), i.Mode())
			}
		}

		if ferr != nil {
			fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Could not format %v: %v", path, ferr))
		}

		return nil
	})
}

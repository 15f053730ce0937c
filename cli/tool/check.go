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

	"devt.de/krotik/common/stringutil"

	"github.com/peterino2/halcyon/config"
	"github.com/peterino2/halcyon/parser"
)

/*
Check compiles every halc file under a directory tree and reports a
pass/fail table, without writing anything back. This is the batch
equivalent of ecal's interactive debug console (NewECALDebugger): there
is no runtime execution here to attach breakpoints to, only diagnostics
to collect, so the telnet server and step-through machinery are gone
and only the "report what's wrong" half remains.
*/
func Check() error {
	wd, _ := os.Getwd()

	dir := flag.String("dir", wd, "Root directory for halc files")
	ext := flag.String("ext", ".halc", "Extension for halc files")
	verbose := flag.Bool("verbose", false, "Report every file, including ones with no diagnostics")
	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Usage of %s check [options]", osArgs[0]))
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "This tool compiles every halc file in a directory structure "+
			"and reports diagnostics without writing anything back.")
		fmt.Fprintln(flag.CommandLine.Output())
	}

	if len(osArgs) >= 2 {
		flag.CommandLine.Parse(osArgs[2:])

		if *showHelp {
			flag.Usage()
			return nil
		}
	}

	parser.Diag().Color = config.Bool(config.ColorDiagnostics)
	parser.SuppressErrors(config.Bool(config.SuppressErrors))
	parser.SetParserVerbose(config.Bool(config.ParserVerbose))
	parser.EnableAllocationTracking(config.Bool(config.TrackAllocations))

	tabData := []string{"File", "Result"}
	failed := 0

	err := filepath.Walk(*dir, func(path string, i os.FileInfo, err error) error {
		if err != nil || i.IsDir() || !strings.HasSuffix(path, *ext) {
			return err
		}

		data, rerr := ioutil.ReadFile(path)
		if rerr != nil {
			return rerr
		}

		before := len(parser.Diag().History.Slice())
		_, cerr := parser.Compile(data, path)
		malformed := cerr == nil && len(parser.Diag().History.Slice()) > before

		if cerr != nil || malformed {
			failed++
			tabData = fillTableRow(tabData, path, "FAILED")
		} else if *verbose {
			tabData = fillTableRow(tabData, path, "ok")
		}

		return nil
	})

	if err == nil && len(tabData) > 2 {
		fmt.Fprint(flag.CommandLine.Output(), stringutil.PrintGraphicStringTable(
			tabData, 2, 1, stringutil.SingleDoubleLineTable))
	}

	if err == nil && failed > 0 {
		err = fmt.Errorf("%v file(s) failed to compile", failed)
	}

	return err
}

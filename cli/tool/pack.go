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
	"archive/zip"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"sync"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/stringutil"

	"github.com/peterino2/halcyon/config"
	"github.com/peterino2/halcyon/parser"
)

/*
CLIPacker validates and bundles every halc file under a directory tree
into a single zip archive. This keeps ecal's CLIPacker directory-walk
and archive-writing half; the self-executing-binary half
(RunPackedBinary, the attached-zip-behind-a-marker trick, the embedded
interpreter that ran the bundled entry file) is gone, since halcyon
compiles halc sources and has no runtime to attach executable code to.
*/
type CLIPacker struct {
	Dir    *string
	Target *string
	Filter *string

	LogOut io.Writer
}

/*
NewCLIPacker creates a new commandline packer.
*/
func NewCLIPacker() *CLIPacker {
	return &CLIPacker{nil, nil, nil, os.Stdout}
}

/*
ParseArgs parses the command line arguments. Returns true if the program
should exit.
*/
func (p *CLIPacker) ParseArgs() bool {
	if p.Dir != nil {
		return false
	}

	wd, _ := os.Getwd()

	p.Dir = flag.String("dir", wd, "Root directory to bundle")
	p.Target = flag.String("target", "out.halcpack", "Filename for the bundled archive")
	p.Filter = flag.String("filter", "*", "Glob pattern (relative to -dir) for files to include")
	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Usage of %s pack [options]", osArgs[0]))
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "This tool validates every halc file under a directory tree "+
			"and bundles them into a single archive.")
		fmt.Fprintln(flag.CommandLine.Output())
	}

	if len(osArgs) >= 2 {
		flag.CommandLine.Parse(osArgs[2:])

		if *showHelp {
			flag.Usage()
		}
	}

	return *showHelp
}

/*
packResult is the outcome of validating a single collected file.
*/
type packResult struct {
	path string
	data []byte
	err  error
}

/*
Pack walks Dir, compiles every halc file concurrently (bounded by
config.PackWorkers) to validate it, and writes a zip archive of the
ones that passed. No archive is written if any file failed validation.
*/
func (p *CLIPacker) Pack() error {
	if p.ParseArgs() {
		return nil
	}

	var paths []string
	err := filepath.Walk(*p.Dir, func(fpath string, i os.FileInfo, werr error) error {
		if werr != nil || i.IsDir() || filepath.Ext(fpath) != ".halc" {
			return werr
		}

		rel, rerr := filepath.Rel(*p.Dir, fpath)
		if rerr != nil {
			return rerr
		}

		if matchesGlob(filepath.ToSlash(rel), *p.Filter) {
			paths = append(paths, fpath)
		}

		return nil
	})
	if err != nil {
		return err
	}

	results := p.validate(paths)

	tabData := []string{"File", "Result"}
	failed := 0
	byPath := make(map[string]packResult, len(results))

	for _, res := range results {
		byPath[res.path] = res

		status := "ok"
		if res.err != nil {
			status = fmt.Sprintf("FAILED: %v", res.err)
			failed++
		}
		tabData = fillTableRow(tabData, res.path, status)
	}

	if len(tabData) > 2 {
		fmt.Fprint(p.LogOut, stringutil.PrintGraphicStringTable(tabData, 2, 1, stringutil.SingleDoubleLineTable))
	}

	if failed > 0 {
		return fmt.Errorf("%v file(s) failed validation, archive not written", failed)
	}

	return p.writeArchive(paths, byPath)
}

/*
validate compiles every collected path concurrently, bounded by
config.PackWorkers workers, and returns one result per path in an
unspecified order.
*/
func (p *CLIPacker) validate(paths []string) []packResult {
	workers := config.Int(config.PackWorkers)
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(chan packResult)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for fpath := range jobs {
				results <- p.validateOne(fpath)
			}
		}()
	}

	go func() {
		for _, fpath := range paths {
			jobs <- fpath
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]packResult, 0, len(paths))
	for res := range results {
		collected = append(collected, res)
	}

	return collected
}

/*
packCompileMu serializes access to the parser package's shared
diagnostic sink, since parser.Compile is not safe to call concurrently -
workers beyond the first would otherwise race on the sink's History ring
and first-emission marker.
*/
var packCompileMu sync.Mutex

/*
validateOne reads and compiles a single file, treating a recovered
malformed-line diagnostic the same as a hard compile error.
*/
func (p *CLIPacker) validateOne(fpath string) packResult {
	data, err := ioutil.ReadFile(fpath)
	if err != nil {
		return packResult{fpath, nil, err}
	}

	packCompileMu.Lock()
	before := len(parser.Diag().History.Slice())
	_, err = parser.Compile(data, fpath)
	malformed := err == nil && len(parser.Diag().History.Slice()) > before
	packCompileMu.Unlock()

	if malformed {
		err = fmt.Errorf("file contains malformed lines")
	}

	return packResult{fpath, data, err}
}

/*
writeArchive writes every validated file into a zip archive rooted at
Target, preserving the directory's relative structure.
*/
func (p *CLIPacker) writeArchive(paths []string, byPath map[string]packResult) error {
	dest, err := os.Create(*p.Target)
	if err != nil {
		return err
	}
	defer dest.Close()

	w := zip.NewWriter(dest)
	defer w.Close()

	for _, fpath := range paths {
		rel, rerr := filepath.Rel(*p.Dir, fpath)
		errorutil.AssertOk(rerr)

		f, ferr := w.Create(path.Join(filepath.ToSlash(filepath.Dir(rel)), filepath.Base(rel)))
		if ferr != nil {
			return ferr
		}
		if _, ferr = f.Write(byPath[fpath].data); ferr != nil {
			return ferr
		}
	}

	fmt.Fprintln(p.LogOut, fmt.Sprintf("Wrote %v files to %v", len(paths), *p.Target))

	return nil
}

/*
Pack is the package-level entry point for the pack subcommand.
*/
func Pack() error {
	return NewCLIPacker().Pack()
}

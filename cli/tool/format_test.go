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
	"bytes"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
)

const formatTestDir = "formattest"

func setupFormatTestDir() {
	if res, _ := fileutil.PathExists(formatTestDir); res {
		os.RemoveAll(formatTestDir)
	}
	errorutil.AssertOk(os.Mkdir(formatTestDir, 0770))
}

func tearDownFormatTestDir() {
	os.RemoveAll(formatTestDir)
}

func TestFormatShowsHelp(t *testing.T) {
	out := bytes.Buffer{}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(&out)

	osArgs = []string{"halcc", "format", "-help"}

	if err := Format(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}
	if !strings.Contains(out.String(), "Root directory for halc files") {
		t.Error("Unexpected output:", out.String())
	}
}

func TestFormatRewritesFilesAndSkipsMalformedOnes(t *testing.T) {
	setupFormatTestDir()
	defer tearDownFormatTestDir()

	good := filepath.Join(formatTestDir, "intro.halc")
	other := filepath.Join(formatTestDir, "intro.txt")
	bad := filepath.Join(formatTestDir, "broken.halc")

	errorutil.AssertOk(ioutil.WriteFile(good, []byte("[intro]\n$: hi\n"), 0777))
	errorutil.AssertOk(ioutil.WriteFile(other, []byte("not halc"), 0777))
	errorutil.AssertOk(ioutil.WriteFile(bad, []byte("[intro] stray\n"), 0777))

	out := bytes.Buffer{}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(&out)

	osArgs = []string{"halcc", "format", "-dir", formatTestDir}

	if err := Format(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if !strings.Contains(out.String(), "Could not format") {
		t.Error("Expected the malformed file to be reported:", out.String())
	}

	goodContent, err := ioutil.ReadFile(good)
	errorutil.AssertOk(err)
	if string(goodContent) != "[intro]\n$: hi\n" {
		t.Error("Unexpected result:", string(goodContent))
	}

	otherContent, err := ioutil.ReadFile(other)
	errorutil.AssertOk(err)
	if string(otherContent) != "not halc" {
		t.Error("Expected the non-halc file to be left untouched:", string(otherContent))
	}
}

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
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"devt.de/krotik/common/fileutil"
)

/*
SourceLoader resolves a path to the raw bytes of a halc source file. This
is the file-loading collaborator the compiler depends on but does not
implement a specific transport for - callers can supply a loader backed
by disk, memory, or anything else that can produce bytes for a path.
*/
type SourceLoader interface {

	/*
		Load reads the raw (not yet normalized) bytes of the source file at
		the given path.
	*/
	Load(path string) ([]byte, error)
}

// SourceLoader implementations
// =============================

/*
MemorySourceLoader holds a given set of sources in memory.
*/
type MemorySourceLoader struct {
	Files map[string][]byte
}

/*
Load reads the raw bytes of the source file at the given path.
*/
func (sl *MemorySourceLoader) Load(path string) ([]byte, error) {
	res, ok := sl.Files[path]

	if !ok {
		return nil, fmt.Errorf("Could not find source path: %v", path)
	}

	return res, nil
}

/*
FileSourceLoader locates files on disk relative to a root directory.
*/
type FileSourceLoader struct {
	Root string // Relative root path
}

/*
Load reads the raw bytes of the source file at the given path.
*/
func (sl *FileSourceLoader) Load(path string) ([]byte, error) {
	var res []byte

	sourcePath := filepath.Clean(filepath.Join(sl.Root, path))

	ok, err := isSubpath(sl.Root, sourcePath)

	if err == nil && !ok {
		err = fmt.Errorf("Source path is outside of source root: %v", path)
	}

	if err == nil {
		if exists, _ := fileutil.PathExists(sourcePath); !exists {
			err = fmt.Errorf("Could not load path %v: %v", path, "file does not exist")
		}
	}

	if err == nil {
		if res, err = ioutil.ReadFile(sourcePath); err != nil {
			err = fmt.Errorf("Could not load path %v: %v", path, err)
		}
	}

	return res, err
}

/*
isSubpath checks if the given sub path is a child path of root.
*/
func isSubpath(root, sub string) (bool, error) {
	rel, err := filepath.Rel(root, sub)
	return err == nil &&
		!strings.HasPrefix(rel, fmt.Sprintf("..%v", string(os.PathSeparator))) &&
		rel != "..", err
}

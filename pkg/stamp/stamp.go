// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package stamp writes the generated files that carry a resolved version:
// the version header consumed by native code, and the pinned version file
// placed in release trees.
package stamp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteHeader overwrites the generated version header with a macro
// definition binding VERSION to the resolved version.  The header is only
// ever generated; it is never part of a source distribution.
func WriteHeader(filename, version string) error {
	content := "" +
		"// This file has been generated by distver.\n" +
		"// It is not included in source distributions.\n" +
		fmt.Sprintf("#define VERSION %q\n", version)
	return os.WriteFile(filename, []byte(content), 0o666)
}

// PinMarker replaces the saved version file inside the release tree at
// dirname with one containing the concrete resolved version, so that
// building from the source archive (where Git metadata is absent) does
// not degrade to "unknown".
//
// The staged file may be a hard link back into the source tree, so it is
// removed before writing; rewriting it in place would corrupt the
// original.  A missing file is tolerated, any other removal failure is
// not, since silently continuing could leave a stale version in the
// archive.
func PinMarker(dirname, markerFile, version string) error {
	filename := filepath.Join(dirname, markerFile)
	if err := os.Remove(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	content := "# This file has been generated by distver.\n" + version + "\n"
	return os.WriteFile(filename, []byte(content), 0o666)
}

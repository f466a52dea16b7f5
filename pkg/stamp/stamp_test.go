// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package stamp_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/distver/pkg/stamp"
	"github.com/datawire/distver/pkg/version"
)

func TestWriteHeader(t *testing.T) {
	t.Parallel()
	filename := filepath.Join(t.TempDir(), "version.hh")

	require.NoError(t, stamp.WriteHeader(filename, "1.0.dev3+g1a2b3c4.dirty"))
	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, ""+
		"// This file has been generated by distver.\n"+
		"// It is not included in source distributions.\n"+
		"#define VERSION \"1.0.dev3+g1a2b3c4.dirty\"\n",
		string(content))

	// Overwrites, never appends.
	require.NoError(t, stamp.WriteHeader(filename, "2.0"))
	content, err = os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, ""+
		"// This file has been generated by distver.\n"+
		"// It is not included in source distributions.\n"+
		"#define VERSION \"2.0\"\n",
		string(content))
}

func TestPinMarker(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version"),
		[]byte(version.Sentinel+"\n"), 0o666))

	require.NoError(t, stamp.PinMarker(dir, "version", "1.2"))
	marker, err := version.ReadMarker(filepath.Join(dir, "version"))
	require.NoError(t, err)
	assert.Equal(t, "1.2", marker)

	content, err := os.ReadFile(filepath.Join(dir, "version"))
	require.NoError(t, err)
	assert.Equal(t, "# This file has been generated by distver.\n1.2\n", string(content))

	// Idempotent: pinning an already-pinned tree changes nothing.
	require.NoError(t, stamp.PinMarker(dir, "version", "1.2"))
	again, err := os.ReadFile(filepath.Join(dir, "version"))
	require.NoError(t, err)
	assert.Equal(t, string(content), string(again))
}

func TestPinMarkerMissing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, stamp.PinMarker(dir, "version", "1.2"))
	marker, err := version.ReadMarker(filepath.Join(dir, "version"))
	require.NoError(t, err)
	assert.Equal(t, "1.2", marker)
}

func TestPinMarkerHardLink(t *testing.T) {
	t.Parallel()
	srcDir := t.TempDir()
	snapDir := t.TempDir()
	src := filepath.Join(srcDir, "version")
	require.NoError(t, os.WriteFile(src, []byte(version.Sentinel+"\n"), 0o666))
	require.NoError(t, os.Link(src, filepath.Join(snapDir, "version")))

	require.NoError(t, stamp.PinMarker(snapDir, "version", "1.2"))

	// The original must not have been rewritten through the link.
	content, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, version.Sentinel+"\n", string(content))
}

func TestPinMarkerRemoveError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	// A marker that can't be removed (a non-empty directory) must be an
	// error, not silently left stale.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "version", "sub"), 0o777))
	assert.Error(t, stamp.PinMarker(dir, "version", "1.2"))
}

// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package testutil has helpers for inspecting and comparing tarballs in
// tests.
package testutil

import (
	"archive/tar"
	"fmt"
	"io"
	"strings"
	"testing"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

// DumpTarListing renders an "ls -l"-ish listing of the tar stream read
// from r, one line per entry.
func DumpTarListing(r io.Reader) (string, error) {
	ret := new(strings.Builder)
	table := tabwriter.NewWriter(ret, 0, 1, 1, ' ', 0)
	tarReader := tar.NewReader(r)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if _, err := fmt.Fprintln(table, strings.Join([]string{
			"",
			header.FileInfo().Mode().String(),
			fmt.Sprintf("% 10d", header.Size),
			header.Name,
		}, "\t")); err != nil {
			return "", err
		}
		if _, err := io.ReadAll(tarReader); err != nil {
			return "", err
		}
	}
	if err := table.Flush(); err != nil {
		return "", err
	}
	return ret.String(), nil
}

// DumpTarFull renders every header and every byte of content of the tar
// stream read from r, for exhaustive comparisons.
func DumpTarFull(r io.Reader) (string, error) {
	spewConfig := spew.ConfigState{
		Indent:                  "  ",
		DisableMethods:          true,
		DisableCapacities:       true,
		DisablePointerAddresses: true,
		SortKeys:                true,
	}

	ret := new(strings.Builder)
	tarReader := tar.NewReader(r)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		fmt.Fprintf(ret, "tarHeader = %s", spewConfig.Sdump(header))
		content, err := io.ReadAll(tarReader)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(ret, "tarContent = %s", spewConfig.Sdump(content))
	}
	return ret.String(), nil
}

// AssertEqual compares two multi-line strings, reporting any mismatch as
// a unified diff.
func AssertEqual(t *testing.T, expected, actual string) bool {
	t.Helper()
	if expected == actual {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	t.Errorf("Diff:\n%s", diff)
	return false
}

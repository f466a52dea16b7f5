// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package version resolves the version of a source distribution, either
// from the saved version file or from Git.
package version

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dlog"
)

// Sentinel is the saved-version-file value that requests deriving the
// version dynamically from Git.
const Sentinel = "__use_git__"

// Unknown is the version used when the saved version file requests Git
// but Git cannot be queried.
const Unknown = "unknown"

// A Version is a version derived from "git describe".
type Version struct {
	// Release is the name of the nearest reachable tag, with any
	// leading "v" stripped.
	Release string

	// Dev is the number of commits since that tag.
	Dev int

	// Labels are the local version labels, in order: the abbreviated
	// commit ID (only when Dev is nonzero), then "dirty" or "confused".
	Labels []string
}

// String renders the version as "release[.devN][+label[.label...]]".
func (ver Version) String() string {
	ret := new(strings.Builder)
	ret.WriteString(ver.Release)
	if ver.Dev != 0 {
		fmt.Fprintf(ret, ".dev%d", ver.Dev)
	}
	if len(ver.Labels) > 0 {
		ret.WriteString("+")
		ret.WriteString(strings.Join(ver.Labels, "."))
	}
	return ret.String()
}

// Resolve returns the version string for the distribution rooted at
// distRoot.  The saved version file (versionFile, relative to distRoot)
// either contains the version literally, or contains Sentinel to request
// that the version be derived from Git.
//
// A missing or empty version file is an error; the distribution cannot be
// packaged without a version.  A failure to derive a version from Git is
// not: it degrades to Unknown, because source archives are routinely
// built outside of any Git checkout.
func Resolve(ctx context.Context, distRoot, versionFile string) (string, error) {
	marker, err := ReadMarker(filepath.Join(distRoot, versionFile))
	if err != nil {
		return "", err
	}
	if marker != Sentinel {
		return marker, nil
	}
	ver := FromGit(ctx, distRoot)
	if ver == nil {
		dlog.Warnf(ctx, "cannot derive a version from Git; falling back to %q", Unknown)
		return Unknown, nil
	}
	return ver.String(), nil
}

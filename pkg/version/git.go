// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/datawire/dlib/dexec"
)

// FromGit derives a Version from "git describe", for the Git checkout at
// distRoot.
//
// FromGit returns nil (rather than an error) whenever Git cannot supply a
// version: the git tool is missing, a query exits nonzero, or the
// top-level directory of the containing repository is not distRoot itself
// (as when the distribution is unpacked inside some other checkout, or is
// a submodule); in all of those cases the tags that "git describe" would
// find do not belong to this distribution.
func FromGit(ctx context.Context, distRoot string) *Version {
	toplevel, err := git(ctx, distRoot, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil
	}
	if !sameFile(strings.TrimSuffix(toplevel, "\n"), distRoot) {
		return nil
	}

	// "git describe --first-parent" does not take into account tags from
	// branches that were merged in; fall back to full ancestry when the
	// installed git is too old to know the flag.
	var description string
	for _, args := range [][]string{
		{"describe", "--long", "--first-parent"},
		{"describe", "--long"},
	} {
		description, err = git(ctx, distRoot, args...)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil
	}
	description = strings.TrimPrefix(strings.TrimSuffix(description, "\n"), "v")

	ver, ok := parseDescription(description)
	if !ok {
		return nil
	}

	dirty := dexec.CommandContext(ctx, "git", "diff", "--quiet")
	dirty.Dir = distRoot
	switch err := dirty.Run(); {
	case err == nil:
		// clean tree
	case exitCode(err) == 1:
		ver.Labels = append(ver.Labels, "dirty")
	case exitCode(err) < 0:
		// The check could not even run.  This should never happen,
		// since "git rev-parse" ran fine moments ago.
		ver.Labels = append(ver.Labels, "confused")
	}
	return ver
}

// parseDescription parses the output of "git describe --long" (with any
// leading "v" already stripped) into a Version.  The description always
// ends in "-<distance>-g<commit>"; a tag name that itself contains a dash
// is not supported.
func parseDescription(desc string) (*Version, bool) {
	i := strings.LastIndexByte(desc, '-')
	if i < 0 {
		return nil, false
	}
	commit := desc[i+1:]
	j := strings.LastIndexByte(desc[:i], '-')
	if j < 0 {
		return nil, false
	}
	distance, err := strconv.Atoi(desc[j+1 : i])
	if err != nil {
		return nil, false
	}
	ver := &Version{Release: desc[:j], Dev: distance}
	if distance != 0 {
		ver.Labels = append(ver.Labels, commit)
	}
	return ver, true
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := dexec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	return string(out), err
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func sameFile(a, b string) bool {
	aInfo, err := os.Stat(a)
	if err != nil {
		return false
	}
	bInfo, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(aInfo, bInfo)
}

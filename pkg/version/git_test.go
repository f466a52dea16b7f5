// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/distver/pkg/version"
)

func needGit(t *testing.T) {
	t.Helper()
	if _, err := dexec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
}

func runGit(ctx context.Context, t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := dexec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	require.NoError(t, cmd.Run())
}

func commitFile(ctx context.Context, t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o666))
	runGit(ctx, t, dir, "add", name)
	runGit(ctx, t, dir, "commit", "-q", "-m", "edit "+name)
}

// initRepo creates a repository with one commit, tagged v1.0.
func initRepo(ctx context.Context, t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(ctx, t, dir, "init", "-q")
	runGit(ctx, t, dir, "config", "user.name", "nobody")
	runGit(ctx, t, dir, "config", "user.email", "nobody@example.com")
	commitFile(ctx, t, dir, "README", "A thing.\n\nIt does things.\n")
	runGit(ctx, t, dir, "tag", "-a", "v1.0", "-m", "v1.0")
	return dir
}

func TestFromGitAtTag(t *testing.T) {
	t.Parallel()
	needGit(t)
	ctx := dlog.NewTestContext(t, true)
	dir := initRepo(ctx, t)

	ver := version.FromGit(ctx, dir)
	require.NotNil(t, ver)
	assert.Equal(t, "1.0", ver.String())
	assert.Equal(t, 0, ver.Dev)
	assert.Empty(t, ver.Labels)
}

func TestFromGitAhead(t *testing.T) {
	t.Parallel()
	needGit(t)
	ctx := dlog.NewTestContext(t, true)
	dir := initRepo(ctx, t)
	// Each commit must actually change the file, or there is nothing
	// for "git commit" to record.
	for i := 0; i < 3; i++ {
		commitFile(ctx, t, dir, "README",
			fmt.Sprintf("A thing.\n\nIt does %d more things.\n", i+1))
	}

	ver := version.FromGit(ctx, dir)
	require.NotNil(t, ver)
	assert.Regexp(t, regexp.MustCompile(`^1\.0\.dev3\+g[0-9a-f]+$`), ver.String())
	assert.Equal(t, 3, ver.Dev)
}

func TestFromGitDirtyAtTag(t *testing.T) {
	t.Parallel()
	needGit(t)
	ctx := dlog.NewTestContext(t, true)
	dir := initRepo(ctx, t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("edited\n"), 0o666))

	ver := version.FromGit(ctx, dir)
	require.NotNil(t, ver)
	assert.Equal(t, "1.0+dirty", ver.String())
}

func TestFromGitDirtyAhead(t *testing.T) {
	t.Parallel()
	needGit(t)
	ctx := dlog.NewTestContext(t, true)
	dir := initRepo(ctx, t)
	for i := 0; i < 3; i++ {
		commitFile(ctx, t, dir, "README",
			fmt.Sprintf("A thing.\n\nIt does %d more things.\n", i+1))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("edited\n"), 0o666))

	ver := version.FromGit(ctx, dir)
	require.NotNil(t, ver)
	// The commit-ID label comes before the dirty label.
	assert.Regexp(t, regexp.MustCompile(`^1\.0\.dev3\+g[0-9a-f]+\.dirty$`), ver.String())
}

func TestFromGitNested(t *testing.T) {
	t.Parallel()
	needGit(t)
	ctx := dlog.NewTestContext(t, true)
	dir := initRepo(ctx, t)
	subdir := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(subdir, 0o777))

	// The repository's top-level directory is not the distribution
	// root, so its tags must not be trusted.
	assert.Nil(t, version.FromGit(ctx, subdir))
}

func TestFromGitNoRepo(t *testing.T) {
	t.Parallel()
	needGit(t)
	ctx := dlog.NewTestContext(t, true)
	assert.Nil(t, version.FromGit(ctx, t.TempDir()))
}

func TestResolveLiteral(t *testing.T) {
	t.Parallel()
	needGit(t)
	ctx := dlog.NewTestContext(t, true)
	// Even inside a tagged repository, a literal marker wins.
	dir := initRepo(ctx, t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version"), []byte("9.9\n"), 0o666))

	ver, err := version.Resolve(ctx, dir, "version")
	require.NoError(t, err)
	assert.Equal(t, "9.9", ver)
}

func TestResolveFromGit(t *testing.T) {
	t.Parallel()
	needGit(t)
	ctx := dlog.NewTestContext(t, true)
	dir := initRepo(ctx, t)
	commitFile(ctx, t, dir, "version",
		"# Set to a literal version when releasing.\n"+version.Sentinel+"\n")
	runGit(ctx, t, dir, "tag", "-a", "v2.0", "-m", "v2.0")

	ver, err := version.Resolve(ctx, dir, "version")
	require.NoError(t, err)
	assert.Equal(t, "2.0", ver)
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()
	needGit(t)
	ctx := dlog.NewTestContext(t, true)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version"),
		[]byte(version.Sentinel+"\n"), 0o666))

	ver, err := version.Resolve(ctx, dir, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Unknown, ver)
}

func TestResolveMissingMarker(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	_, err := version.Resolve(ctx, t.TempDir(), "version")
	assert.Error(t, err)
}

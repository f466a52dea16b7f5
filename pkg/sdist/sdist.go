// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package sdist stages the release tree for a source distribution and
// archives it.
package sdist

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/datawire/dlib/dlog"
)

// Manifest lists the files that belong in the release tree, as
// slash-separated paths relative to root.  The ".git" and "dist"
// directories are always left out; exclude gives additional path.Match
// patterns to leave out (typically the generated version header).
func Manifest(root string, exclude []string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(filename string, info fs.FileInfo, e error) error {
		if e != nil {
			return e
		}
		rel, err := filepath.Rel(root, filename)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if info.IsDir() {
			if rel == ".git" || rel == "dist" {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		for _, pattern := range exclude {
			if ok, _ := path.Match(pattern, rel); ok {
				return nil
			}
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ReleaseTree stages the listed files from root into baseDir, replacing
// whatever was there.  Files are hard-linked when the filesystem allows
// it and copied otherwise, so callers must not rewrite staged files in
// place.
func ReleaseTree(ctx context.Context, baseDir, root string, files []string) error {
	dlog.Infof(ctx, "staging %d files in %s", len(files), baseDir)
	if err := os.RemoveAll(baseDir); err != nil {
		return err
	}
	if err := os.MkdirAll(baseDir, 0o777); err != nil {
		return err
	}
	for _, file := range files {
		src := filepath.Join(root, filepath.FromSlash(file))
		dst := filepath.Join(baseDir, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
			return err
		}
		if err := os.Link(src, dst); err != nil {
			if err := copyFile(src, dst); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	maybeSetErr := func(_err error) {
		if _err != nil && err == nil {
			err = _err
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		maybeSetErr(in.Close())
	}()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		maybeSetErr(out.Close())
	}()
	_, err = io.Copy(out, in)
	return err
}

// Archive writes baseDir as a gzipped tarball at outFile.  Entries are
// rooted at baseDir's basename, and timestamps later than clampTime are
// clamped to it so that repeated runs produce identical archives.
func Archive(baseDir, outFile string, clampTime time.Time) (err error) {
	maybeSetErr := func(_err error) {
		if _err != nil && err == nil {
			err = _err
		}
	}

	out, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer func() {
		maybeSetErr(out.Close())
	}()
	gzWriter := gzip.NewWriter(out)
	defer func() {
		maybeSetErr(gzWriter.Close())
	}()
	tarWriter := tar.NewWriter(gzWriter)
	defer func() {
		maybeSetErr(tarWriter.Close())
	}()

	topName := filepath.Base(baseDir)
	return filepath.Walk(baseDir, func(filename string, info fs.FileInfo, e error) error {
		if e != nil {
			return e
		}
		rel, err := filepath.Rel(baseDir, filename)
		if err != nil {
			return err
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = path.Join(topName, filepath.ToSlash(rel))
		if info.IsDir() {
			header.Name += "/"
		}
		if header.ModTime.After(clampTime) {
			header.ModTime = clampTime
		}
		if header.AccessTime.After(clampTime) {
			header.AccessTime = clampTime
		}
		if header.ChangeTime.After(clampTime) {
			header.ChangeTime = clampTime
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}
		if header.Typeflag == tar.TypeReg {
			reader, err := os.Open(filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(tarWriter, reader); err != nil {
				_ = reader.Close()
				return err
			}
			if err := reader.Close(); err != nil {
				return err
			}
		}
		return nil
	})
}

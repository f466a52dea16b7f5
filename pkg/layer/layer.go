// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package layer turns a staged release tree into an OCI layer, for
// distributions that ship their source tree into container images.
package layer

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"
)

// FromTree returns the contents of dirname as an uncompressed OCI layer.
// File names get prefix prepended (forward-slash separated, absolute but
// without the leading slash; pass "" for none); timestamps later than
// clampTime are clamped to it; files that are hard links of one another
// are stored as tar hard links.
func FromTree(
	dirname, prefix string,
	clampTime time.Time,
	opts ...ociv1tarball.LayerOption,
) (ociv1.Layer, error) {
	var byteWriter bytes.Buffer
	tarWriter := tar.NewWriter(&byteWriter)

	if prefix != "" {
		var dirs []string
		for dir := prefix; dir != "."; dir = path.Dir(dir) {
			dirs = append(dirs, dir)
		}
		for i := len(dirs) - 1; i >= 0; i-- {
			if err := tarWriter.WriteHeader(&tar.Header{
				Name:     dirs[i],
				Typeflag: tar.TypeDir,
				Mode:     0o755,
				ModTime:  clampTime,
			}); err != nil {
				return nil, err
			}
		}
	}

	type seenFile struct {
		name string
		info fs.FileInfo
	}
	var seen []seenFile

	err := filepath.Walk(dirname, func(filename string, info fs.FileInfo, e error) error {
		if e != nil {
			return e
		}
		rel, err := filepath.Rel(dirname, filename)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		name := filepath.ToSlash(rel)
		if prefix != "" {
			name = path.Join(prefix, name)
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = name
		for _, entry := range seen {
			if os.SameFile(entry.info, info) {
				header.Typeflag = tar.TypeLink
				header.Linkname = entry.name
				break
			}
		}
		seen = append(seen, seenFile{name: name, info: info})
		if header.Typeflag == tar.TypeSymlink {
			if header.Linkname, err = os.Readlink(filename); err != nil {
				return err
			}
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
	if err != nil {
		return nil, err
	}
	if err := tarWriter.Close(); err != nil {
		return nil, err
	}

	byteSlice := byteWriter.Bytes()
	return ociv1tarball.LayerFromOpener(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(byteSlice)), nil
	}, opts...)
}

// Write copies the layer's uncompressed tarball to dst.
func Write(layer ociv1.Layer, dst io.Writer) (err error) {
	layerReader, err := layer.Uncompressed()
	if err != nil {
		return err
	}
	defer func() {
		if _err := layerReader.Close(); _err != nil && err == nil {
			err = _err
		}
	}()
	_, err = io.Copy(dst, layerReader)
	return err
}

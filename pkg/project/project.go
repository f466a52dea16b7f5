// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package project loads the declarative metadata of a distribution from
// its "distver.yaml" file.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"sigs.k8s.io/yaml"
)

// ConfigFile is the name of the config file, relative to the distribution
// root.
const ConfigFile = "distver.yaml"

type Project struct {
	Name        string   `json:"name,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Author      string   `json:"author,omitempty"`
	AuthorEmail string   `json:"authorEmail,omitempty"`
	URL         string   `json:"url,omitempty"`
	License     string   `json:"license,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	Classifiers []string `json:"classifiers,omitempty"`

	// VersionFile is the saved version file, relative to the
	// distribution root.
	VersionFile string `json:"versionFile,omitempty"`

	// VersionHeader is the generated header that makes the version
	// visible to native code at compile time.  It is excluded from
	// source distributions.
	VersionHeader string `json:"versionHeader,omitempty"`

	// ReadmeFile is the file that the long description is extracted
	// from.
	ReadmeFile string `json:"readmeFile,omitempty"`

	// Exclude lists path patterns (relative to the distribution root)
	// to leave out of the release tree, in addition to VersionHeader.
	Exclude []string `json:"exclude,omitempty"`
}

// Default returns a Project with the conventional file locations filled
// in.
func Default() *Project {
	return &Project{
		VersionFile:   "version",
		VersionHeader: "src/version.hh",
		ReadmeFile:    "README",
	}
}

// Load reads the named config file.  A missing file is not an error; it
// yields Default(), since every field has a usable default or may be
// empty.
func Load(filename string) (*Project, error) {
	bs, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	proj := Default()
	if err := yaml.UnmarshalStrict(bs, proj); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return proj, nil
}

// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"io"
	"strings"
)

// WriteMetadata emits a core-metadata stanza (in the style of a PKG-INFO
// file) for the project, with the given resolved version and long
// description.
func (proj *Project) WriteMetadata(w io.Writer, version, description string) error {
	ret := new(strings.Builder)
	field := func(name, value string) {
		if value != "" {
			ret.WriteString(name)
			ret.WriteString(": ")
			ret.WriteString(value)
			ret.WriteString("\n")
		}
	}

	field("Metadata-Version", "1.2")
	field("Name", proj.Name)
	field("Version", version)
	field("Summary", proj.Summary)
	field("Home-page", proj.URL)
	field("Author", proj.Author)
	field("Author-email", proj.AuthorEmail)
	field("License", proj.License)
	for _, platform := range proj.Platforms {
		field("Platform", platform)
	}
	for _, classifier := range proj.Classifiers {
		field("Classifier", classifier)
	}
	if description != "" {
		// Continuation lines are indented, per the metadata format.
		field("Description", strings.ReplaceAll(description, "\n", "\n        "))
	}

	_, err := io.WriteString(w, ret.String())
	return err
}

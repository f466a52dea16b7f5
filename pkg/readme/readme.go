// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package readme extracts a distribution's long description from a
// README-style text file.
package readme

import (
	"bufio"
	"os"
	"strings"
)

// Description returns the first paragraph block of the named file: leading
// blank lines are skipped, then lines accumulate until the next blank line
// (or EOF).  The trailing newline of the final line is stripped; internal
// newlines are preserved verbatim.  A "blank line" is exactly "\n".
//
// Description never fails; if the file cannot be read it returns "".
func Description(filename string) string {
	file, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer func() {
		_ = file.Close()
	}()

	var text []string
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if line == "\n" {
			if len(text) > 0 {
				break
			}
		} else if line != "" {
			text = append(text, line)
		}
		if err != nil {
			break
		}
	}
	if len(text) == 0 {
		return ""
	}
	text[len(text)-1] = strings.TrimSuffix(text[len(text)-1], "\n")
	return strings.Join(text, "")
}

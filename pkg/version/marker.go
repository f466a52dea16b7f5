// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadMarker reads the saved version file and returns its significant
// line: the first line that is neither blank nor a "#" comment.  It is an
// error for the file to be missing or to contain no significant line.
func ReadMarker(filename string) (_ string, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer func() {
		if _err := file.Close(); _err != nil && err == nil {
			err = _err
		}
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
	if _err := scanner.Err(); _err != nil {
		return "", _err
	}
	return "", fmt.Errorf("version file %q does not contain a version", filename)
}

// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"strings"
)

// Wrap wraps the string `s` to a maximum width `w`.  Pass `w` == 0 to do
// no wrapping.
//
// In order to have some room for slop to avoid things like a short word
// being on a line by itself, most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// WrapIndent wraps the string `s` to a maximum width `w` with leading
// indent `i`.  The first line is not indented (this is assumed to be done
// by the caller).  Pass `w` == 0 to do no wrapping.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(indent, width int, str string) string {
	if width <= 0 {
		return str
	}
	limit := width - 5
	if limit <= indent {
		limit = width
	}
	if limit <= indent {
		// The indent alone overflows the width; give up on wrapping.
		return str
	}

	ret := new(strings.Builder)
	for lineNo, line := range strings.Split(str, "\n") {
		if lineNo > 0 {
			ret.WriteByte('\n')
		}
		col := indent
		for len(line) > 0 {
			if col+len(line) <= limit {
				ret.WriteString(line)
				break
			}
			// Break at the last space that fits; if none fits,
			// emit the over-long word whole.
			cut := strings.LastIndexByte(line[:limit-col], ' ')
			if cut <= 0 {
				cut = strings.IndexByte(line, ' ')
				if cut < 0 {
					ret.WriteString(line)
					break
				}
			}
			ret.WriteString(strings.TrimRight(line[:cut], " "))
			line = strings.TrimLeft(line[cut:], " ")
			ret.WriteByte('\n')
			ret.WriteString(strings.Repeat(" ", indent))
			col = indent
		}
	}
	return ret.String()
}

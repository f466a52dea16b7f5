// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package reproducible pins the timestamps that go into generated
// artifacts.
package reproducible

import (
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	once  sync.Once
	stamp time.Time
)

// Now returns the time that generated artifacts should be stamped with:
// SOURCE_DATE_EPOCH when it is set (per the reproducible-builds.org
// convention), and otherwise the wall-clock time of the first call.
func Now() time.Time {
	once.Do(func() {
		stamp = time.Now()
		if str := os.Getenv("SOURCE_DATE_EPOCH"); str != "" {
			if secs, err := strconv.ParseInt(str, 10, 64); err == nil {
				stamp = time.Unix(secs, 0).UTC()
			}
		}
	})
	return stamp
}

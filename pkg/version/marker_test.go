// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package version_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/distver/pkg/version"
)

func TestReadMarker(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input     string
		Expected  string
		ExpectErr bool
	}
	testcases := map[string]testcase{
		"literal": {
			Input:    "1.2.3\n",
			Expected: "1.2.3",
		},
		"sentinel": {
			Input:    version.Sentinel + "\n",
			Expected: "__use_git__",
		},
		"comments-and-blanks": {
			Input:    "# This file is the authoritative version.\n\n  2.0rc1  \n3.0\n",
			Expected: "2.0rc1",
		},
		"no-trailing-newline": {
			Input:    "1.0",
			Expected: "1.0",
		},
		"only-comments": {
			Input:     "# nothing here\n# still nothing\n",
			ExpectErr: true,
		},
		"empty": {
			Input:     "",
			ExpectErr: true,
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			filename := filepath.Join(t.TempDir(), "version")
			require.NoError(t, os.WriteFile(filename, []byte(tcData.Input), 0o666))
			actual, err := version.ReadMarker(filename)
			if tcData.ExpectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tcData.Expected, actual)
			}
		})
	}
}

func TestReadMarkerMissing(t *testing.T) {
	t.Parallel()
	_, err := version.ReadMarker(filepath.Join(t.TempDir(), "version"))
	assert.Error(t, err)
}

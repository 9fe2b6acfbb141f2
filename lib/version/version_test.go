// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfoClean(t *testing.T) {
	got := Info()
	if !strings.Contains(got, Version) {
		t.Errorf("Info() = %q, missing version %q", got, Version)
	}
	if !strings.Contains(got, GitCommit) {
		t.Errorf("Info() = %q, missing commit %q", got, GitCommit)
	}
	if strings.Contains(got, "-dirty") {
		t.Errorf("Info() = %q, unexpected dirty marker", got)
	}
}

func TestInfoDirty(t *testing.T) {
	saved := GitDirty
	GitDirty = "true"
	defer func() { GitDirty = saved }()

	if got := Info(); !strings.Contains(got, "-dirty") {
		t.Errorf("Info() = %q, missing dirty marker", got)
	}
}

func TestFull(t *testing.T) {
	got := Full()
	if !strings.Contains(got, "Go: ") {
		t.Errorf("Full() = %q, missing Go version", got)
	}
	if !strings.Contains(got, "Platform: ") {
		t.Errorf("Full() = %q, missing platform", got)
	}
}

func TestShort(t *testing.T) {
	if got := Short(); got != Version {
		t.Errorf("Short() = %q, want %q", got, Version)
	}
}

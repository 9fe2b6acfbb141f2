// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package sysfs

import (
	"context"

	"github.com/sysvitals/vitals/lib/metric"
)

// Collect reports no values: battery and fan bridging reads the
// kernel's /sys tree, which only exists on Linux.
func (prober *Prober) Collect(ctx context.Context) ([]metric.Value, error) {
	return nil, nil
}

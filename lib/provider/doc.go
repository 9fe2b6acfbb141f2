// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package provider defines the narrow interface between the dashboard
// and the measurement engine, mirroring the engine's
// create/poll/snapshot/destroy lifecycle.
//
// # Lifecycle
//
// Constructing a [Provider] corresponds to create. Each [Provider.Poll]
// asks the engine for a fresh snapshot and copies it into process-local
// [metric.Value] records; nothing of the engine's own snapshot is
// retained across calls except the counter baselines rate computation
// needs. [Provider.Close] corresponds to destroy: it is idempotent, and
// every Poll after it returns [ErrClosed].
//
// # Composition
//
// The system provider returned by [NewSystem] is assembled from
// [Collector] implementations, one per measurement source:
//
//   - provider/psutil bridges the gopsutil measurement engine (CPU,
//     memory, disk, network, temperatures, host identity).
//   - provider/sysfs copies battery and fan readings the engine does
//     not export out of the kernel's /sys tree on Linux.
//
// Collectors degrade instead of failing: missing hardware or an
// unreadable source yields fewer values, not an error. A Poll fails
// only when no collector produced anything at all.
package provider

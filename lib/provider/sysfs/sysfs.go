// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package sysfs copies battery and fan readings out of the kernel's
// /sys export on Linux. The measurement engine does not cover these
// two areas, so the prober performs the same bridging it does for the
// rest: copy kernel-exported values into metric records, with no
// measurement logic of its own.
//
//	battery.<bat>.percent   capacity from /sys/class/power_supply/BAT*
//	battery.<bat>.status    charge status ("Charging", "Discharging", ...)
//	fan.<chip>_<fan>        tachometer RPM from /sys/class/hwmon
//
// Missing hardware yields no values, not an error. Unreadable or
// malformed files are logged at debug level and skipped. Non-Linux
// builds report nothing.
package sysfs

import "log/slog"

// Prober reads battery and fan metrics from a sysfs tree.
type Prober struct {
	logger *slog.Logger
	root   string
}

// New returns a prober over the live /sys tree. A nil logger discards
// skip diagnostics.
func New(logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Prober{logger: logger, root: "/sys"}
}

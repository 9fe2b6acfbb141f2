// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "strings"

// exactDescriptions maps well-known metric names to the explanation
// shown in the detail pane.
var exactDescriptions = map[string]string{
	"cpu.total":        "Average utilization across every logical CPU over the last poll interval.",
	"cpu.load1":        "Run-queue load averaged over the last minute. Values above the CPU count mean work is waiting.",
	"cpu.load5":        "Run-queue load averaged over the last five minutes.",
	"cpu.load15":       "Run-queue load averaged over the last fifteen minutes.",
	"mem.used_percent": "Share of physical memory in use, excluding reclaimable caches and buffers.",
	"mem.used":         "Physical memory in use, excluding reclaimable caches and buffers.",
	"mem.total":        "Total physical memory installed.",
	"mem.available":    "Memory available for new allocations without swapping, including reclaimable caches.",
	"swap.used_percent": "Share of swap space in use. Sustained swap pressure usually means the" +
		" working set no longer fits in memory.",
	"swap.used":       "Swap space in use.",
	"swap.total":      "Total swap space configured.",
	"disk.read_rate":  "Bytes read per second, summed across all physical disks.",
	"disk.write_rate": "Bytes written per second, summed across all physical disks.",
	"net.rx_rate":     "Bytes received per second, summed across all physical interfaces.",
	"net.tx_rate":     "Bytes sent per second, summed across all physical interfaces.",
	"host.hostname":   "The machine's hostname.",
	"host.platform":   "Operating system distribution and version.",
	"host.kernel":     "Running kernel version.",
	"host.uptime":     "Time since the last boot.",
	"host.procs":      "Number of processes currently known to the kernel.",
}

// prefixDescriptions maps metric name families (matched by prefix) to
// a generic explanation. Checked after exact names.
var prefixDescriptions = []struct {
	prefix      string
	description string
}{
	{"cpu.core.", "Utilization of one logical CPU over the last poll interval."},
	{"disk.used_percent.", "Share of this filesystem's capacity in use."},
	{"net.rx_rate.", "Bytes received per second on this interface."},
	{"net.tx_rate.", "Bytes sent per second on this interface."},
	{"temp.", "Temperature reported by this hardware sensor."},
	{"fan.", "Rotational speed reported by this fan. Zero usually means the fan is stopped, not missing."},
	{"battery.", "Battery state read from the power supply class."},
}

// describeMetric returns the catalog description for a metric name,
// or empty string for names the catalog does not know.
func describeMetric(name string) string {
	if description, known := exactDescriptions[name]; known {
		return description
	}
	for _, entry := range prefixDescriptions {
		if strings.HasPrefix(name, entry.prefix) {
			return entry.description
		}
	}
	return ""
}

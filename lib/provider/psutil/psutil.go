// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package psutil bridges the gopsutil measurement engine into metric
// values. Each Collect copies one engine snapshot into process-local
// records; the only engine state retained between polls is the
// cumulative counters that rate computation needs as a baseline.
//
// Value names are dotted lowercase keys, stable across polls:
//
//	cpu.total, cpu.core.N, cpu.load1/5/15
//	mem.used_percent/used/total/available, swap.used_percent/used/total
//	disk.used_percent.<mount>, disk.read_rate, disk.write_rate
//	net.rx_rate, net.tx_rate, net.rx_rate.<iface>, net.tx_rate.<iface>
//	temp.<sensor>
//	host.hostname/platform/kernel/uptime/procs
//
// Collection degrades per area: a failing source logs a warning and
// contributes nothing to the snapshot, and Collect errors only when
// every area came back empty.
package psutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/sysvitals/vitals/lib/metric"
)

// minPartitionBytes filters out small volumes (EFI system partitions,
// recovery images) from disk usage reporting.
const minPartitionBytes = 1 << 30

// Collector reads system metrics through gopsutil. Not safe for
// concurrent use: the polling loop serializes Collect calls.
type Collector struct {
	logger *slog.Logger

	lastNetAt     time.Time
	prevNet       map[string]net.IOCountersStat
	lastDiskAt    time.Time
	prevDiskRead  uint64
	prevDiskWrite uint64
}

// New returns a collector logging diagnostics to logger. A nil logger
// discards them.
func New(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Collector{
		logger:  logger,
		prevNet: make(map[string]net.IOCountersStat),
	}
}

// Collect reads one snapshot's worth of values from the engine. Areas
// that fail are logged and skipped; an error is returned only when no
// area produced anything.
func (collector *Collector) Collect(ctx context.Context) ([]metric.Value, error) {
	now := time.Now()

	var values []metric.Value
	var failures []error
	area := func(name string, collected []metric.Value, err error) {
		if err != nil {
			collector.logger.Warn("metric area unavailable", "area", name, "error", err)
			failures = append(failures, fmt.Errorf("%s: %w", name, err))
			return
		}
		values = append(values, collected...)
	}

	collected, err := collectCPU(ctx)
	area("cpu", collected, err)
	collected, err = collectMemory(ctx)
	area("memory", collected, err)
	collected, err = collectDiskUsage(ctx)
	area("disk", collected, err)
	collected, err = collector.collectDiskRates(ctx, now)
	area("diskio", collected, err)
	collected, err = collector.collectNetworkRates(ctx, now)
	area("network", collected, err)
	collected, err = collectTemperatures(ctx)
	area("temperature", collected, err)
	collected, err = collectHost(ctx)
	area("host", collected, err)

	if len(values) == 0 {
		if len(failures) > 0 {
			return nil, errors.Join(failures...)
		}
		return nil, errors.New("measurement engine returned no values")
	}
	return values, nil
}

// collectCPU reads per-core utilization since the previous call plus
// load averages. The engine's first reading has no baseline and
// reports zeros; that settles by the second poll.
func collectCPU(ctx context.Context) ([]metric.Value, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return nil, err
	}
	if len(percents) == 0 {
		return nil, errors.New("no per-core utilization reported")
	}

	total := 0.0
	for _, percent := range percents {
		total += percent
	}
	total /= float64(len(percents))

	values := make([]metric.Value, 0, len(percents)+4)
	values = append(values, metric.Num(metric.CategoryCPU, "cpu.total", "%", total))
	for index, percent := range percents {
		name := fmt.Sprintf("cpu.core.%d", index)
		values = append(values, metric.Num(metric.CategoryCPU, name, "%", percent))
	}

	// Load averages are optional: not every platform reports them.
	if loadAverage, err := load.AvgWithContext(ctx); err == nil {
		values = append(values,
			metric.Num(metric.CategoryCPU, "cpu.load1", "", loadAverage.Load1),
			metric.Num(metric.CategoryCPU, "cpu.load5", "", loadAverage.Load5),
			metric.Num(metric.CategoryCPU, "cpu.load15", "", loadAverage.Load15),
		)
	}
	return values, nil
}

func collectMemory(ctx context.Context) ([]metric.Value, error) {
	virtual, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	values := []metric.Value{
		metric.Num(metric.CategoryMemory, "mem.used_percent", "%", virtual.UsedPercent),
		metric.Num(metric.CategoryMemory, "mem.used", "B", float64(virtual.Used)),
		metric.Num(metric.CategoryMemory, "mem.total", "B", float64(virtual.Total)),
		metric.Num(metric.CategoryMemory, "mem.available", "B", float64(virtual.Available)),
	}
	// Swapless machines skip the swap values entirely rather than
	// reporting 0% of nothing.
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil && swap.Total > 0 {
		values = append(values,
			metric.Num(metric.CategoryMemory, "swap.used_percent", "%", swap.UsedPercent),
			metric.Num(metric.CategoryMemory, "swap.used", "B", float64(swap.Used)),
			metric.Num(metric.CategoryMemory, "swap.total", "B", float64(swap.Total)),
		)
	}
	return values, nil
}

func collectDiskUsage(ctx context.Context) ([]metric.Value, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	var values []metric.Value
	for _, partition := range mountTargets(partitions) {
		usage, err := disk.UsageWithContext(ctx, partition.Mountpoint)
		if err != nil || usage.Total < minPartitionBytes {
			continue
		}
		name := "disk.used_percent." + mountKey(partition.Mountpoint)
		values = append(values, metric.Num(metric.CategoryDisk, name, "%", usage.UsedPercent))
	}
	return values, nil
}

// mountTargets filters a partition list down to real disks: loop
// devices and repeat mounts of the same device are dropped, order is
// preserved.
func mountTargets(partitions []disk.PartitionStat) []disk.PartitionStat {
	seen := make(map[string]bool)
	var targets []disk.PartitionStat
	for _, partition := range partitions {
		if strings.HasPrefix(partition.Device, "/dev/loop") {
			continue
		}
		if seen[partition.Device] {
			continue
		}
		seen[partition.Device] = true
		targets = append(targets, partition)
	}
	return targets
}

// mountKey turns a mountpoint into a metric name segment: "/" becomes
// "root", other paths drop the leading slash and use underscores
// ("/home/data" becomes "home_data").
func mountKey(mountpoint string) string {
	if mountpoint == "/" {
		return "root"
	}
	key := strings.TrimPrefix(mountpoint, "/")
	key = strings.ReplaceAll(key, "/", "_")
	return strings.ToLower(key)
}

func (collector *Collector) collectDiskRates(ctx context.Context, now time.Time) ([]metric.Value, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return collector.diskRates(counters, now), nil
}

// diskRates turns cumulative I/O counters, summed across devices, into
// byte rates against the previous poll's counters. The first call
// records the baseline and emits nothing.
func (collector *Collector) diskRates(counters map[string]disk.IOCountersStat, now time.Time) []metric.Value {
	if len(counters) == 0 {
		return nil
	}
	var read, write uint64
	for _, counter := range counters {
		read += counter.ReadBytes
		write += counter.WriteBytes
	}

	first := collector.lastDiskAt.IsZero()
	elapsed := now.Sub(collector.lastDiskAt).Seconds()
	previousRead, previousWrite := collector.prevDiskRead, collector.prevDiskWrite
	collector.prevDiskRead, collector.prevDiskWrite = read, write
	collector.lastDiskAt = now

	if first {
		return nil
	}
	if elapsed <= 0 {
		elapsed = 1
	}
	return []metric.Value{
		metric.Num(metric.CategoryDisk, "disk.read_rate", "B/s", counterRate(previousRead, read, elapsed)),
		metric.Num(metric.CategoryDisk, "disk.write_rate", "B/s", counterRate(previousWrite, write, elapsed)),
	}
}

func (collector *Collector) collectNetworkRates(ctx context.Context, now time.Time) ([]metric.Value, error) {
	stats, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, err
	}
	return collector.networkRates(stats, now), nil
}

// networkRates computes per-interface receive and transmit rates plus
// aggregates across the interfaces that matter. The first call records
// the baseline and emits nothing; an interface that appeared since the
// previous poll has no baseline and is skipped for one poll.
func (collector *Collector) networkRates(stats []net.IOCountersStat, now time.Time) []metric.Value {
	if collector.lastNetAt.IsZero() {
		collector.lastNetAt = now
		for _, stat := range stats {
			collector.prevNet[stat.Name] = stat
		}
		return nil
	}

	elapsed := now.Sub(collector.lastNetAt).Seconds()
	if elapsed <= 0 {
		elapsed = 1
	}

	var perInterface []metric.Value
	var totalRx, totalTx float64
	for _, current := range stats {
		if noiseInterface(current.Name) {
			continue
		}
		previous, ok := collector.prevNet[current.Name]
		if !ok {
			continue
		}
		rx := counterRate(previous.BytesRecv, current.BytesRecv, elapsed)
		tx := counterRate(previous.BytesSent, current.BytesSent, elapsed)
		totalRx += rx
		totalTx += tx
		iface := strings.ToLower(current.Name)
		perInterface = append(perInterface,
			metric.Num(metric.CategoryNetwork, "net.rx_rate."+iface, "B/s", rx),
			metric.Num(metric.CategoryNetwork, "net.tx_rate."+iface, "B/s", tx),
		)
	}

	collector.lastNetAt = now
	for _, stat := range stats {
		collector.prevNet[stat.Name] = stat
	}

	if len(perInterface) == 0 {
		return nil
	}
	// Aggregate rates precede the per-interface values.
	values := []metric.Value{
		metric.Num(metric.CategoryNetwork, "net.rx_rate", "B/s", totalRx),
		metric.Num(metric.CategoryNetwork, "net.tx_rate", "B/s", totalTx),
	}
	return append(values, perInterface...)
}

// noiseInterface reports whether an interface name is loopback or a
// virtual interface that only clutters the dashboard.
func noiseInterface(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range []string{"lo", "awdl", "utun", "llw", "bridge", "gif", "stf", "xhc", "anpi", "ap"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// counterRate converts a cumulative counter delta into a per-second
// rate. A counter that went backwards (device reset or wrap) reads as
// zero rather than a huge negative rate.
func counterRate(previous, current uint64, elapsedSeconds float64) float64 {
	if current < previous {
		return 0
	}
	return float64(current-previous) / elapsedSeconds
}

// collectTemperatures tolerates partial sensor failures: the engine
// reports what it could read alongside a warning error, and partial
// readings win over the error.
func collectTemperatures(ctx context.Context) ([]metric.Value, error) {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil && len(stats) == 0 {
		return nil, err
	}
	return temperatureValues(stats), nil
}

// temperatureValues filters engine sensor readings to plausible
// temperatures. Readings at or below 0°C or above 150°C come from
// uninitialized or absent probes and are dropped, as are duplicate
// sensor keys.
func temperatureValues(stats []sensors.TemperatureStat) []metric.Value {
	var values []metric.Value
	seen := make(map[string]bool)
	for _, stat := range stats {
		if stat.Temperature <= 0 || stat.Temperature > 150 {
			continue
		}
		key := sensorKey(stat.SensorKey)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		values = append(values, metric.Num(metric.CategoryTemperature, "temp."+key, "°C", stat.Temperature))
	}
	return values
}

// sensorKey normalizes an engine sensor key into a metric name
// segment.
func sensorKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(key, " ", "_")
}

func collectHost(ctx context.Context) ([]metric.Value, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return hostValues(info), nil
}

func hostValues(info *host.InfoStat) []metric.Value {
	var values []metric.Value
	if info.Hostname != "" {
		values = append(values, metric.Txt(metric.CategoryHost, "host.hostname", info.Hostname))
	}
	if platform := strings.TrimSpace(info.Platform + " " + info.PlatformVersion); platform != "" {
		values = append(values, metric.Txt(metric.CategoryHost, "host.platform", platform))
	}
	if info.KernelVersion != "" {
		values = append(values, metric.Txt(metric.CategoryHost, "host.kernel", info.KernelVersion))
	}
	values = append(values,
		metric.Txt(metric.CategoryHost, "host.uptime", formatUptime(info.Uptime)),
		metric.Num(metric.CategoryHost, "host.procs", "procs", float64(info.Procs)),
	)
	return values
}

// formatUptime renders seconds of uptime as "3d 4h 12m", dropping
// leading zero units.
func formatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

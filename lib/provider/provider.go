// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/provider/psutil"
	"github.com/sysvitals/vitals/lib/provider/sysfs"
)

// ErrClosed is returned by Poll after the provider has been closed.
var ErrClosed = errors.New("provider is closed")

// systemInterval is the poll cadence the system provider reports when
// no configuration overrides it.
const systemInterval = 2 * time.Second

// Provider hands out metric snapshots from a measurement engine.
type Provider interface {
	// Name identifies the provider in logs and the dashboard footer.
	Name() string

	// DefaultInterval is the poll cadence the provider recommends.
	// Callers may override it but should treat this as the default.
	DefaultInterval() time.Duration

	// Poll reads a fresh snapshot. The returned snapshot is owned by
	// the caller; the provider retains nothing from it.
	Poll(ctx context.Context) (*metric.Snapshot, error)

	// Close releases the provider. Idempotent; Poll after Close
	// returns ErrClosed.
	Close() error
}

// Collector reads one area of system metrics. Implementations return
// only the values they could read: missing hardware or an unreadable
// source yields fewer values, not an error. An error means the
// collector's entire source is unavailable.
//
// Collectors holding OS resources additionally implement io.Closer;
// the composite provider closes them on Close.
type Collector interface {
	Collect(ctx context.Context) ([]metric.Value, error)
}

// NewSystem returns the provider for the local machine: the gopsutil
// bridge merged with the sysfs battery and fan prober. A nil logger
// discards collector diagnostics.
func NewSystem(logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return NewComposite("system", systemInterval,
		psutil.New(logger),
		sysfs.New(logger),
	)
}

// NewComposite assembles a provider from collectors. Each Poll runs
// the collectors in order and concatenates their values into one
// snapshot; collector errors are joined into the Poll error only when
// every collector came back empty.
func NewComposite(name string, interval time.Duration, collectors ...Collector) Provider {
	return &composite{
		name:       name,
		interval:   interval,
		collectors: collectors,
	}
}

type composite struct {
	name       string
	interval   time.Duration
	collectors []Collector

	mu     sync.Mutex
	closed bool
}

func (provider *composite) Name() string { return provider.name }

func (provider *composite) DefaultInterval() time.Duration { return provider.interval }

func (provider *composite) Poll(ctx context.Context) (*metric.Snapshot, error) {
	provider.mu.Lock()
	closed := provider.closed
	provider.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	var values []metric.Value
	var failures []error
	for _, collector := range provider.collectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		collected, err := collector.Collect(ctx)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		values = append(values, collected...)
	}

	if len(values) == 0 {
		if len(failures) > 0 {
			return nil, errors.Join(failures...)
		}
		return nil, errors.New("no metrics collected")
	}
	return &metric.Snapshot{Taken: time.Now(), Values: values}, nil
}

func (provider *composite) Close() error {
	provider.mu.Lock()
	defer provider.mu.Unlock()
	if provider.closed {
		return nil
	}
	provider.closed = true

	var failures []error
	for _, collector := range provider.collectors {
		if closer, ok := collector.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				failures = append(failures, err)
			}
		}
	}
	return errors.Join(failures...)
}

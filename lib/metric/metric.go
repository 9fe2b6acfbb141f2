// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package metric defines the transient value records that flow from a
// measurement provider to the dashboard. Each provider poll produces
// one [Snapshot]; each entry in that snapshot becomes exactly one
// [Value]. Values carry no identity beyond their display name and are
// replaced wholesale on the next poll; nothing in this package
// persists anything.
package metric

import (
	"strings"
	"time"
)

// Kind tags which payload field of a Value is meaningful.
type Kind int

const (
	// KindNumber marks a numeric reading (utilization, rate, count).
	KindNumber Kind = iota
	// KindText marks a string reading (status, hostname, uptime).
	KindText
)

// Category groups related values for display. The dashboard renders
// categories in the order they are declared here.
type Category int

const (
	CategoryCPU Category = iota
	CategoryMemory
	CategoryDisk
	CategoryNetwork
	CategoryTemperature
	CategoryFan
	CategoryBattery
	CategoryHost

	categoryCount
)

// String returns the display label for the category.
func (category Category) String() string {
	switch category {
	case CategoryCPU:
		return "CPU"
	case CategoryMemory:
		return "Memory"
	case CategoryDisk:
		return "Disk"
	case CategoryNetwork:
		return "Network"
	case CategoryTemperature:
		return "Temperature"
	case CategoryFan:
		return "Fan"
	case CategoryBattery:
		return "Battery"
	case CategoryHost:
		return "Host"
	default:
		return "Other"
	}
}

// Categories returns every category in display order.
func Categories() []Category {
	categories := make([]Category, 0, categoryCount)
	for category := Category(0); category < categoryCount; category++ {
		categories = append(categories, category)
	}
	return categories
}

// CategoryByName resolves a display label back to its Category,
// ignoring case ("cpu" and "CPU" both resolve). Returns false for
// unknown labels. Used by configuration and threshold-rule validation
// so typos in category lists fail loudly instead of silently matching
// nothing.
func CategoryByName(name string) (Category, bool) {
	for category := Category(0); category < categoryCount; category++ {
		if strings.EqualFold(category.String(), name) {
			return category, true
		}
	}
	return 0, false
}

// Value is a single metric reading bridged out of a provider
// snapshot. The Kind tag selects whether Number or Text holds the
// payload; the other field is zero.
type Value struct {
	// Name is the display key, unique within one snapshot. Dotted
	// lowercase, e.g. "cpu.total" or "net.rx_rate.eth0".
	Name string

	// Category places the value in a dashboard group.
	Category Category

	// Unit is the optional unit: "%", "B", "B/s", "°C", "RPM", or
	// empty. Empty for all text values.
	Unit string

	// Kind selects the payload field.
	Kind Kind

	// Number is the payload for KindNumber values.
	Number float64

	// Text is the payload for KindText values.
	Text string
}

// Num constructs a numeric value.
func Num(category Category, name, unit string, number float64) Value {
	return Value{
		Name:     name,
		Category: category,
		Unit:     unit,
		Kind:     KindNumber,
		Number:   number,
	}
}

// Txt constructs a text value.
func Txt(category Category, name, text string) Value {
	return Value{
		Name:     name,
		Category: category,
		Kind:     KindText,
		Text:     text,
	}
}

// Snapshot is the process-local copy of one provider poll.
type Snapshot struct {
	// Taken is when the poll completed.
	Taken time.Time

	// Values holds one entry per provider snapshot entry, in the
	// provider's emission order.
	Values []Value
}

// Find returns the value with the given name and whether it exists.
func (snapshot *Snapshot) Find(name string) (Value, bool) {
	for _, value := range snapshot.Values {
		if value.Name == name {
			return value, true
		}
	}
	return Value{}, false
}

// ByCategory groups the snapshot's values by category, preserving
// emission order within each group. Categories with no values are
// absent from the map.
func (snapshot *Snapshot) ByCategory() map[Category][]Value {
	grouped := make(map[Category][]Value)
	for _, value := range snapshot.Values {
		grouped[value.Category] = append(grouped[value.Category], value)
	}
	return grouped
}

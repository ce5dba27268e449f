package voxgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus. Grids report through it when wrapped with NewInstrumented.
type MetricsCollector interface {
	// RecordGet is called after each single-slot read.
	// duration is the time taken, err is nil if successful.
	RecordGet(duration time.Duration, err error)

	// RecordSet is called after each single-slot write.
	RecordSet(duration time.Duration, err error)

	// RecordRemove is called after each single-slot removal.
	RecordRemove(duration time.Duration, err error)

	// RecordBulk is called after each bulk operation (fill, apply,
	// replace, range copy). op names the operation, slots is the declared
	// volume visited.
	RecordBulk(op string, slots int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGet(time.Duration, error)    {}
func (NoopMetricsCollector) RecordSet(time.Duration, error)    {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error) {}
func (NoopMetricsCollector) RecordBulk(string, int, time.Duration) {
}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// Safe for concurrent use.
type BasicMetricsCollector struct {
	GetCount         atomic.Int64
	GetErrors        atomic.Int64
	GetTotalNanos    atomic.Int64
	SetCount         atomic.Int64
	SetErrors        atomic.Int64
	SetTotalNanos    atomic.Int64
	RemoveCount      atomic.Int64
	RemoveErrors     atomic.Int64
	RemoveTotalNanos atomic.Int64
	BulkCount        atomic.Int64
	BulkSlots        atomic.Int64
	BulkTotalNanos   atomic.Int64
}

// RecordGet implements MetricsCollector.
func (c *BasicMetricsCollector) RecordGet(duration time.Duration, err error) {
	c.GetCount.Add(1)
	c.GetTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.GetErrors.Add(1)
	}
}

// RecordSet implements MetricsCollector.
func (c *BasicMetricsCollector) RecordSet(duration time.Duration, err error) {
	c.SetCount.Add(1)
	c.SetTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.SetErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (c *BasicMetricsCollector) RecordRemove(duration time.Duration, err error) {
	c.RemoveCount.Add(1)
	c.RemoveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		c.RemoveErrors.Add(1)
	}
}

// RecordBulk implements MetricsCollector.
func (c *BasicMetricsCollector) RecordBulk(_ string, slots int, duration time.Duration) {
	c.BulkCount.Add(1)
	c.BulkSlots.Add(int64(slots))
	c.BulkTotalNanos.Add(duration.Nanoseconds())
}

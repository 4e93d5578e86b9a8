// Package metrics records how long each pipeline stage took.
package metrics

import (
	"log/slog"
	"time"
)

// Stage is one timed step of a run
type Stage struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Collector records stage timings for a single run. It is not safe for
// concurrent use; a run is sequential.
type Collector struct {
	now func() time.Time

	startTime time.Time
	endTime   time.Time
	stages    []Stage
}

// NewCollector creates a collector reading time from now. A nil now uses
// time.Now.
func NewCollector(now func() time.Time) *Collector {
	if now == nil {
		now = time.Now
	}
	return &Collector{now: now}
}

// Start marks the start of the run
func (c *Collector) Start() {
	c.startTime = c.now()
	c.endTime = time.Time{}
	c.stages = nil
}

// Stop marks the end of the run
func (c *Collector) Stop() {
	c.endTime = c.now()
}

// Time runs fn as the named stage and records its duration, including
// failed stages. fn's error is returned unchanged.
func (c *Collector) Time(name string, fn func() error) error {
	begin := c.now()
	err := fn()
	c.stages = append(c.stages, Stage{Name: name, Duration: c.now().Sub(begin), Err: err})
	return err
}

// Stages returns the recorded stages in execution order
func (c *Collector) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Duration returns the wall time between Start and Stop, or up to now
// while the run is still going
func (c *Collector) Duration() time.Duration {
	if c.startTime.IsZero() {
		return 0
	}
	if c.endTime.IsZero() {
		return c.now().Sub(c.startTime)
	}
	return c.endTime.Sub(c.startTime)
}

// Attrs returns the stage timings as a log group
func (c *Collector) Attrs() slog.Attr {
	attrs := make([]any, 0, len(c.stages))
	for _, s := range c.stages {
		attrs = append(attrs, slog.Duration(s.Name, s.Duration))
	}
	return slog.Group("stages", attrs...)
}

package metrics

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// fakeClock advances by step on every reading
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (f *fakeClock) now() time.Time {
	f.t = f.t.Add(f.step)
	return f.t
}

func TestCollectorTime(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), step: time.Second}
	c := NewCollector(clock.now)
	c.Start()

	if err := c.Time("load", func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	boom := errors.New("boom")
	if err := c.Time("estimate", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected stage error to pass through, got %v", err)
	}
	c.Stop()

	stages := c.Stages()
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(stages))
	}
	if stages[0].Name != "load" || stages[0].Duration != time.Second || stages[0].Err != nil {
		t.Fatalf("unexpected first stage %+v", stages[0])
	}
	if stages[1].Name != "estimate" || !errors.Is(stages[1].Err, boom) {
		t.Fatalf("unexpected second stage %+v", stages[1])
	}

	// Start, two readings per stage, Stop
	if got := c.Duration(); got != 5*time.Second {
		t.Fatalf("expected 5s run, got %v", got)
	}
}

func TestCollectorDurationBeforeStart(t *testing.T) {
	c := NewCollector(nil)
	if got := c.Duration(); got != 0 {
		t.Fatalf("expected zero duration before Start, got %v", got)
	}
}

func TestCollectorStartResets(t *testing.T) {
	c := NewCollector(nil)
	c.Start()
	_ = c.Time("load", func() error { return nil })
	c.Stop()

	c.Start()
	if len(c.Stages()) != 0 {
		t.Fatalf("expected Start to clear stages")
	}
}

func TestCollectorAttrs(t *testing.T) {
	clock := &fakeClock{step: 2 * time.Millisecond}
	c := NewCollector(clock.now)
	c.Start()
	_ = c.Time("render", func() error { return nil })

	attr := c.Attrs()
	if attr.Key != "stages" || attr.Value.Kind() != slog.KindGroup {
		t.Fatalf("expected stages group, got %v", attr)
	}
	group := attr.Value.Group()
	if len(group) != 1 || group[0].Key != "render" || group[0].Value.Duration() != 2*time.Millisecond {
		t.Fatalf("unexpected group %v", group)
	}
}

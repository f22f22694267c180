package health

import (
	"context"
	"time"

	"github.com/speedwagon-io/roomsense/internal/monitor"
)

// FuncChecker adapts a plain check function such as Sender.Health. An error
// degrades the service; the monitor loop keeps running.
type FuncChecker struct {
	name  string
	check func(ctx context.Context) error
}

func NewFuncChecker(name string, check func(ctx context.Context) error) *FuncChecker {
	return &FuncChecker{name: name, check: check}
}

func (c *FuncChecker) Name() string {
	return c.name
}

func (c *FuncChecker) Check(ctx context.Context) (Status, string) {
	if err := c.check(ctx); err != nil {
		return StatusDegraded, err.Error()
	}
	return StatusHealthy, ""
}

// CycleHealthChecker reports on the most recent monitor cycle. A cycle older
// than maxAge means the loop is stuck.
type CycleHealthChecker struct {
	lastFunc func() (monitor.CycleResult, bool)
	maxAge   time.Duration
	now      func() time.Time
}

func NewCycleHealthChecker(lastFunc func() (monitor.CycleResult, bool), maxAge time.Duration) *CycleHealthChecker {
	return &CycleHealthChecker{
		lastFunc: lastFunc,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

func (c *CycleHealthChecker) Name() string {
	return "cycle"
}

func (c *CycleHealthChecker) Check(ctx context.Context) (Status, string) {
	last, ok := c.lastFunc()
	if !ok {
		return StatusDegraded, "no cycle completed yet"
	}

	if c.maxAge > 0 && c.now().Sub(last.FinishedAt) > c.maxAge {
		return StatusUnhealthy, "last cycle finished at " + last.FinishedAt.Format(time.RFC3339)
	}

	switch {
	case last.Err != nil:
		return StatusDegraded, last.Err.Error()
	case !last.IndicatorOn:
		return StatusDegraded, "incomplete sensor reading"
	case last.TelemetryErr != nil:
		return StatusDegraded, last.TelemetryErr.Error()
	}

	return StatusHealthy, ""
}

package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/speedwagon-io/roomsense/internal/model"
)

type fakeBoard struct {
	temperature *float64
	humidity    *float64
	lightRaw    uint16

	indicator  bool
	indicators []bool
}

func (b *fakeBoard) Measure() (*float64, *float64) { return b.temperature, b.humidity }
func (b *fakeBoard) ReadLightRaw() uint16          { return b.lightRaw }
func (b *fakeBoard) Name() string                  { return "fake" }
func (b *fakeBoard) Close() error                  { return nil }

func (b *fakeBoard) SetIndicator(on bool) {
	b.indicator = on
	b.indicators = append(b.indicators, on)
}

type fakeNotifier struct {
	errs map[model.NotificationKind]error
	sent []model.Notification
}

func (n *fakeNotifier) Send(ctx context.Context, notification model.Notification) error {
	n.sent = append(n.sent, notification)
	return n.errs[notification.Kind]
}

type fakeSender struct {
	err  error
	sent []*model.Reading
}

func (s *fakeSender) Send(ctx context.Context, r *model.Reading) error {
	s.sent = append(s.sent, r)
	return s.err
}

func (s *fakeSender) Health(ctx context.Context) error { return nil }
func (s *fakeSender) Close() error                     { return nil }

// fakeClock records sleeps and cancels the run after a fixed number of them.
type fakeClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
	limit  int
	cancel context.CancelFunc
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	n := len(c.sleeps)
	c.mu.Unlock()

	if n >= c.limit {
		c.cancel()
		return context.Canceled
	}
	return nil
}

var errNetwork = errors.New("dial tcp: connection refused")

// rawForIntensity returns an ADC sample whose scaled intensity is close to v.
func rawForIntensity(v float64) uint16 {
	return uint16(v / 3300 * 65535)
}

package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/speedwagon-io/roomsense/internal/hardware"
	"github.com/speedwagon-io/roomsense/internal/lib/logger/sl"
	"github.com/speedwagon-io/roomsense/internal/model"
	"github.com/speedwagon-io/roomsense/internal/notify"
	"github.com/speedwagon-io/roomsense/internal/telemetry"
)

// CycleResult records what a single cycle did.
type CycleResult struct {
	Reading       *model.Reading
	Notified      []model.NotificationKind
	Rejected      []model.NotificationKind
	TelemetrySent bool
	TelemetryErr  error
	IndicatorOn   bool
	Err           error
	FinishedAt    time.Time
}

type Monitor struct {
	log        *slog.Logger
	board      hardware.Board
	notifier   notify.Notifier
	sender     telemetry.Sender
	thresholds model.Thresholds
	interval   time.Duration
	clock      Clock

	mu   sync.RWMutex
	last *CycleResult
}

func New(
	log *slog.Logger,
	board hardware.Board,
	notifier notify.Notifier,
	sender telemetry.Sender,
	thresholds model.Thresholds,
	interval time.Duration,
	clock Clock,
) *Monitor {
	if clock == nil {
		clock = RealClock{}
	}

	return &Monitor{
		log:        log,
		board:      board,
		notifier:   notifier,
		sender:     sender,
		thresholds: thresholds,
		interval:   interval,
		clock:      clock,
	}
}

// Run executes a cycle, sleeps for the interval and repeats until ctx is
// cancelled. An aborted cycle is logged and the loop waits a full interval
// before the next attempt.
func (m *Monitor) Run(ctx context.Context) {
	m.log.Info("starting monitor",
		slog.String("board", m.board.Name()),
		slog.Duration("interval", m.interval),
		slog.Float64("temp_threshold", m.thresholds.Temperature),
		slog.Float64("light_threshold", m.thresholds.Light),
	)

	for {
		if _, err := m.RunCycle(ctx); err != nil {
			m.log.Error("cycle aborted", sl.Err(err))
		}

		if err := m.clock.Sleep(ctx, m.interval); err != nil {
			m.log.Info("context cancelled, stopping monitor")
			return
		}
	}
}

// RunCycle performs one read-evaluate-transmit pass. The returned error is
// non-nil only when a notification could not be delivered at the transport
// level, in which case the rest of the cycle is skipped.
func (m *Monitor) RunCycle(ctx context.Context) (*CycleResult, error) {
	result := &CycleResult{}
	defer func() {
		result.FinishedAt = time.Now().UTC()
		m.setLast(result)
	}()

	m.board.SetIndicator(true)
	result.IndicatorOn = true

	temperature, humidity := hardware.ReadTemperatureHumidity(m.board)
	light := hardware.ReadLightIntensity(m.board)

	reading := model.NewReading(temperature, humidity, &light)
	result.Reading = reading

	log := m.log.With(slog.String("reading_id", reading.ID))

	log.Info("reading acquired",
		slog.String("temperature_c", model.FormatValue(reading.Temperature, -1)),
		slog.String("humidity_pct", model.FormatValue(reading.Humidity, -1)),
		slog.String("light_intensity", model.FormatValue(reading.LightIntensity, 2)),
	)

	for _, n := range Evaluate(reading, m.thresholds) {
		err := m.notifier.Send(ctx, n)
		switch {
		case err == nil:
			result.Notified = append(result.Notified, n.Kind)
		case errors.Is(err, notify.ErrRejected):
			log.Warn("notification not accepted",
				slog.String("kind", string(n.Kind)),
				sl.Err(err),
			)
			result.Rejected = append(result.Rejected, n.Kind)
		default:
			result.Err = fmt.Errorf("failed to send %s notification: %w", n.Kind, err)
			return result, result.Err
		}
	}

	if !reading.Complete() {
		log.Warn("incomplete reading, telemetry skipped")
		m.board.SetIndicator(false)
		result.IndicatorOn = false
		return result, nil
	}

	if err := m.sender.Send(ctx, reading); err != nil {
		log.Error("failed to send data", sl.Err(err))
		result.TelemetryErr = err
		return result, nil
	}
	result.TelemetrySent = true

	return result, nil
}

// LastCycle returns a copy of the most recent cycle result.
func (m *Monitor) LastCycle() (CycleResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.last == nil {
		return CycleResult{}, false
	}
	return *m.last, true
}

func (m *Monitor) Interval() time.Duration {
	return m.interval
}

func (m *Monitor) setLast(r *CycleResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = r
}

package hardware

import (
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/speedwagon-io/roomsense/internal/config"
)

// SimBoard is a stand-in for the real board. Each channel either follows a
// bounded random walk or, when pinned in config, returns a fixed value.
type SimBoard struct {
	log *slog.Logger
	cfg config.SimConfig

	mu          sync.Mutex
	rnd         *rand.Rand
	temperature float64
	humidity    float64
	lightRaw    float64
	indicator   bool
}

func NewSimBoard(log *slog.Logger, cfg config.SimConfig) *SimBoard {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &SimBoard{
		log:         log,
		cfg:         cfg,
		rnd:         rand.New(rand.NewSource(seed)),
		temperature: cfg.BaseTemperature,
		humidity:    cfg.BaseHumidity,
		lightRaw:    float64(cfg.BaseLightRaw),
	}
}

func (b *SimBoard) Name() string {
	return "sim"
}

func (b *SimBoard) Measure() (*float64, *float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg.FailureRate > 0 && b.rnd.Float64() < b.cfg.FailureRate {
		b.log.Debug("simulated sensor read failure")
		return nil, nil
	}

	// DHT11 resolution is 1 unit on both channels.
	b.temperature = clamp(b.temperature+b.rnd.NormFloat64()*0.5, -20, 60)
	b.humidity = clamp(b.humidity+b.rnd.NormFloat64()*2, 0, 100)

	temperature := math.Round(b.temperature)
	humidity := math.Round(b.humidity)

	if b.cfg.Temperature != nil {
		temperature = *b.cfg.Temperature
	}
	if b.cfg.Humidity != nil {
		humidity = *b.cfg.Humidity
	}

	return &temperature, &humidity
}

func (b *SimBoard) ReadLightRaw() uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg.LightRaw != nil {
		return *b.cfg.LightRaw
	}

	b.lightRaw = clamp(b.lightRaw+b.rnd.NormFloat64()*1500, 0, adcMax)
	return uint16(b.lightRaw)
}

func (b *SimBoard) SetIndicator(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.indicator != on {
		b.log.Debug("indicator changed", slog.Bool("on", on))
	}
	b.indicator = on
}

// Indicator returns the current indicator state.
func (b *SimBoard) Indicator() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.indicator
}

func (b *SimBoard) Close() error {
	b.SetIndicator(false)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

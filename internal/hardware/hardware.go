package hardware

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/speedwagon-io/roomsense/internal/config"
)

// ErrUnsupportedBoard is returned when the binary was not built for the
// requested board (the pico adapter needs a TinyGo rp2040 build).
var ErrUnsupportedBoard = errors.New("board not supported by this build")

// Board abstracts the microcontroller peripherals the monitor touches: a
// 1-wire temperature/humidity sensor, a 16-bit ADC wired to a photoresistor
// and a single status indicator pin.
type Board interface {
	// Measure triggers a measurement cycle on the temperature/humidity sensor.
	// A failed read yields nil values rather than an error.
	Measure() (temperature, humidity *float64)
	// ReadLightRaw samples the light sensor ADC, 0..65535.
	ReadLightRaw() uint16
	SetIndicator(on bool)
	Name() string
	Close() error
}

const (
	adcMax       = 65535
	adcReference = 3.3
	lightScale   = 1000
)

// Voltage converts a raw ADC sample to volts.
func Voltage(raw uint16) float64 {
	return float64(raw) * adcReference / adcMax
}

// LightIntensity converts a raw ADC sample to the scaled intensity figure
// (volts * 1000, so 0..3300).
func LightIntensity(raw uint16) float64 {
	return Voltage(raw) * lightScale
}

func ReadTemperatureHumidity(b Board) (temperature, humidity *float64) {
	return b.Measure()
}

func ReadLightIntensity(b Board) float64 {
	return LightIntensity(b.ReadLightRaw())
}

// Open builds the board selected by cfg.Adapter.
func Open(log *slog.Logger, cfg config.HardwareConfig) (Board, error) {
	switch cfg.Adapter {
	case "sim":
		return NewSimBoard(log, cfg.Sim), nil
	case "pico":
		board, err := newPicoBoard(log, cfg.Pico)
		if err != nil {
			return nil, fmt.Errorf("failed to open pico board: %w", err)
		}
		return board, nil
	default:
		return nil, fmt.Errorf("unknown hardware adapter %q", cfg.Adapter)
	}
}

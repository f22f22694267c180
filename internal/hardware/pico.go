//go:build tinygo && rp2040

package hardware

import (
	"fmt"
	"log/slog"
	"machine"

	"tinygo.org/x/drivers/dht"

	"github.com/speedwagon-io/roomsense/internal/config"
	"github.com/speedwagon-io/roomsense/internal/lib/logger/sl"
)

// picoBoard drives a DHT11 on a GPIO pin, a photoresistor divider on an ADC
// input and an LED on an output pin.
type picoBoard struct {
	log       *slog.Logger
	sensor    dht.Device
	adc       machine.ADC
	indicator machine.Pin
}

func newPicoBoard(log *slog.Logger, cfg config.PicoConfig) (Board, error) {
	dhtPin := machine.Pin(cfg.DHTPin)
	dhtPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	machine.InitADC()
	adc := machine.ADC{Pin: machine.Pin(cfg.LightADCPin)}
	if err := adc.Configure(machine.ADCConfig{}); err != nil {
		return nil, fmt.Errorf("failed to configure adc on GP%d: %w", cfg.LightADCPin, err)
	}

	led := machine.Pin(cfg.IndicatorPin)
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.Low()

	log.Info("pico board ready",
		slog.Int("dht_pin", int(cfg.DHTPin)),
		slog.Int("light_adc_pin", int(cfg.LightADCPin)),
		slog.Int("indicator_pin", int(cfg.IndicatorPin)),
	)

	return &picoBoard{
		log:       log,
		sensor:    dht.New(dhtPin, dht.DHT11),
		adc:       adc,
		indicator: led,
	}, nil
}

func (b *picoBoard) Name() string {
	return "pico"
}

func (b *picoBoard) Measure() (*float64, *float64) {
	if err := b.sensor.ReadMeasurements(); err != nil {
		b.log.Warn("dht11 read failed", sl.Err(err))
		return nil, nil
	}

	temperature, humidity, err := b.sensor.Measurements()
	if err != nil {
		b.log.Warn("dht11 measurements unavailable", sl.Err(err))
		return nil, nil
	}

	return dhtReading(temperature, humidity)
}

func (b *picoBoard) ReadLightRaw() uint16 {
	return b.adc.Get()
}

func (b *picoBoard) SetIndicator(on bool) {
	b.indicator.Set(on)
}

func (b *picoBoard) Close() error {
	b.indicator.Low()
	return nil
}

package config

import "fmt"

type HardwareConfig struct {
	Adapter string     `yaml:"adapter" env:"HARDWARE_ADAPTER" env-default:"sim"`
	Sim     SimConfig  `yaml:"sim"`
	Pico    PicoConfig `yaml:"pico"`
}

// PicoConfig holds RP2040 GPIO numbers for the physical board.
type PicoConfig struct {
	DHTPin       uint8 `yaml:"dht_pin" env-default:"15"`
	LightADCPin  uint8 `yaml:"light_adc_pin" env-default:"26"`
	IndicatorPin uint8 `yaml:"indicator_pin" env-default:"18"`
}

// SimConfig drives the simulated board. Fixed values, when set, replace the
// random walk for that channel.
type SimConfig struct {
	Seed            int64    `yaml:"seed" env-default:"0"`
	BaseTemperature float64  `yaml:"base_temperature" env-default:"24"`
	BaseHumidity    float64  `yaml:"base_humidity" env-default:"45"`
	BaseLightRaw    uint16   `yaml:"base_light_raw" env-default:"20000"`
	Temperature     *float64 `yaml:"temperature"`
	Humidity        *float64 `yaml:"humidity"`
	LightRaw        *uint16  `yaml:"light_raw"`
	FailureRate     float64  `yaml:"failure_rate" env-default:"0"`
}

func (h *HardwareConfig) Validate() error {
	switch h.Adapter {
	case "sim":
	case "pico":
		// Only GP26..GP29 are wired to the RP2040 ADC.
		if h.Pico.LightADCPin < 26 || h.Pico.LightADCPin > 29 {
			return fmt.Errorf("pico light_adc_pin must be an ADC pin (26-29), got %d", h.Pico.LightADCPin)
		}
		if h.Pico.DHTPin == h.Pico.IndicatorPin {
			return fmt.Errorf("pico dht_pin and indicator_pin must differ")
		}
	default:
		return fmt.Errorf("unknown hardware adapter %q", h.Adapter)
	}

	if h.Sim.FailureRate < 0 || h.Sim.FailureRate > 1 {
		return fmt.Errorf("sim failure_rate must be within [0, 1], got %v", h.Sim.FailureRate)
	}

	return nil
}

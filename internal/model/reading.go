package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Reading is one sample of all three channels. A nil field means the sensor
// did not produce a value this cycle.
type Reading struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Temperature    *float64  `json:"temperature,omitempty"`
	Humidity       *float64  `json:"humidity,omitempty"`
	LightIntensity *float64  `json:"light_intensity,omitempty"`
}

func NewReading(temperature, humidity, lightIntensity *float64) *Reading {
	return &Reading{
		ID:             uuid.New().String(),
		Timestamp:      time.Now().UTC(),
		Temperature:    temperature,
		Humidity:       humidity,
		LightIntensity: lightIntensity,
	}
}

// Complete reports whether every channel has a value.
func (r *Reading) Complete() bool {
	return r.Temperature != nil && r.Humidity != nil && r.LightIntensity != nil
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// FormatValue renders an optional value, "none" when missing.
func FormatValue(v *float64, precision int) string {
	if v == nil {
		return "none"
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}

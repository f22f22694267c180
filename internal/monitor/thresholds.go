package monitor

import (
	"fmt"
	"strconv"

	"github.com/speedwagon-io/roomsense/internal/model"
)

// Evaluate runs both threshold checks independently and returns the
// notifications to dispatch, temperature first.
func Evaluate(r *model.Reading, t model.Thresholds) []model.Notification {
	var out []model.Notification

	if r.Temperature != nil && *r.Temperature > t.Temperature {
		out = append(out, temperatureWarning(*r.Temperature, t.Temperature))
	}

	if r.LightIntensity != nil && *r.LightIntensity < t.Light {
		out = append(out, lightWarning(*r.LightIntensity))
	}

	return out
}

func temperatureWarning(temperature, threshold float64) model.Notification {
	return model.Notification{
		Kind: model.KindTempWarning,
		Message: fmt.Sprintf("Temperature is above %sC (%sC), consider opening the window.",
			formatExact(threshold), formatExact(temperature)),
		Title: "ALERT: Temperature",
		Tag:   "thermometer",
	}
}

func lightWarning(intensity float64) model.Notification {
	return model.Notification{
		Kind:    model.KindLightWarning,
		Message: fmt.Sprintf("The light in the room is too bright (%.1f), consider closing the blinds.", intensity),
		Title:   "ALERT: Light intensity",
		Tag:     "sunny",
	}
}

// formatExact prints the shortest decimal that round-trips, so 35 stays "35"
// and 30.0001 stays "30.0001".
func formatExact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package monitor

import (
	"strings"
	"testing"

	"github.com/speedwagon-io/roomsense/internal/model"
)

func kinds(ns []model.Notification) []model.NotificationKind {
	out := make([]model.NotificationKind, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Kind)
	}
	return out
}

func TestEvaluateTemperatureBoundary(t *testing.T) {
	tests := []struct {
		temperature *float64
		fires       bool
	}{
		{nil, false},
		{model.Float(29), false},
		{model.Float(30), false},
		{model.Float(30.0001), true},
		{model.Float(35), true},
	}

	for _, tt := range tests {
		r := &model.Reading{Temperature: tt.temperature}
		got := Evaluate(r, model.DefaultThresholds())
		fired := len(got) == 1 && got[0].Kind == model.KindTempWarning
		if fired != tt.fires {
			t.Errorf("temperature %s: fired=%v, want %v", model.FormatValue(tt.temperature, -1), fired, tt.fires)
		}
	}
}

func TestEvaluateLightBoundary(t *testing.T) {
	tests := []struct {
		light *float64
		fires bool
	}{
		{nil, false},
		{model.Float(100), false},
		{model.Float(250), false},
		{model.Float(99.9999), true},
		{model.Float(0), true},
	}

	for _, tt := range tests {
		r := &model.Reading{LightIntensity: tt.light}
		got := Evaluate(r, model.DefaultThresholds())
		fired := len(got) == 1 && got[0].Kind == model.KindLightWarning
		if fired != tt.fires {
			t.Errorf("light %s: fired=%v, want %v", model.FormatValue(tt.light, -1), fired, tt.fires)
		}
	}
}

func TestEvaluateBothFire(t *testing.T) {
	r := &model.Reading{Temperature: model.Float(35), LightIntensity: model.Float(50)}

	got := kinds(Evaluate(r, model.DefaultThresholds()))
	if len(got) != 2 || got[0] != model.KindTempWarning || got[1] != model.KindLightWarning {
		t.Fatalf("kinds = %v", got)
	}
}

func TestTemperatureMessage(t *testing.T) {
	for _, temp := range []float64{35, 30.0001, 41.5} {
		ns := Evaluate(&model.Reading{Temperature: model.Float(temp)}, model.DefaultThresholds())
		if len(ns) != 1 {
			t.Fatalf("temperature %v: expected one notification", temp)
		}
		n := ns[0]

		if n.Title != "ALERT: Temperature" {
			t.Errorf("title = %q", n.Title)
		}
		if n.Tag != "thermometer" {
			t.Errorf("tag = %q", n.Tag)
		}
		want := "(" + formatExact(temp) + "C)"
		if !strings.Contains(n.Message, want) || !strings.HasPrefix(n.Message, "Temperature is above 30C") {
			t.Errorf("message = %q", n.Message)
		}
	}

	n := Evaluate(&model.Reading{Temperature: model.Float(35)}, model.DefaultThresholds())[0]
	if n.Message != "Temperature is above 30C (35C), consider opening the window." {
		t.Errorf("message = %q", n.Message)
	}
}

func TestLightMessage(t *testing.T) {
	n := Evaluate(&model.Reading{LightIntensity: model.Float(49.96)}, model.DefaultThresholds())[0]

	if n.Message != "The light in the room is too bright (50.0), consider closing the blinds." {
		t.Errorf("message = %q", n.Message)
	}
	if n.Title != "ALERT: Light intensity" || n.Tag != "sunny" {
		t.Errorf("title/tag = %q/%q", n.Title, n.Tag)
	}
}

func TestEvaluateCustomThresholds(t *testing.T) {
	r := &model.Reading{Temperature: model.Float(26), LightIntensity: model.Float(150)}

	got := Evaluate(r, model.Thresholds{Temperature: 25, Light: 200})
	if len(got) != 2 {
		t.Fatalf("expected both checks to fire, got %v", kinds(got))
	}
	if !strings.HasPrefix(got[0].Message, "Temperature is above 25C (26C)") {
		t.Errorf("message = %q", got[0].Message)
	}
}

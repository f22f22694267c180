package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/speedwagon-io/roomsense/internal/config"
	"github.com/speedwagon-io/roomsense/internal/lib/logger/sl"
	"github.com/speedwagon-io/roomsense/internal/model"
)

func testLabels() config.LabelsConfig {
	return config.LabelsConfig{
		Device:      "pico-w",
		Temperature: "temp",
		Humidity:    "hum",
		Light:       "lux",
	}
}

func TestUbidotsSend(t *testing.T) {
	var (
		gotPath  string
		gotToken string
		gotType  string
		gotBody  map[string]float64
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Auth-Token")
		gotType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewUbidotsSender(sl.Discard(), &config.TelemetryConfig{
		URL:    srv.URL + "/api/v1.6/devices/",
		Token:  "BBFF-token",
		Labels: testLabels(),
	})
	defer s.Close()

	reading := model.NewReading(model.Float(35), model.Float(40), model.Float(50))
	if err := s.Send(context.Background(), reading); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/api/v1.6/devices/pico-w" {
		t.Errorf("path = %s", gotPath)
	}
	if gotToken != "BBFF-token" {
		t.Errorf("token = %q", gotToken)
	}
	if gotType != "application/json" {
		t.Errorf("content type = %q", gotType)
	}
	want := map[string]float64{"temp": 35, "hum": 40, "lux": 50}
	if len(gotBody) != len(want) {
		t.Fatalf("body = %v, want %v", gotBody, want)
	}
	for k, v := range want {
		if gotBody[k] != v {
			t.Errorf("body[%s] = %v, want %v", k, gotBody[k], v)
		}
	}
}

func TestUbidotsSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":401001}`))
	}))
	defer srv.Close()

	s := NewUbidotsSender(sl.Discard(), &config.TelemetryConfig{URL: srv.URL, Token: "bad", Labels: testLabels()})

	err := s.Send(context.Background(), model.NewReading(model.Float(1), model.Float(2), model.Float(3)))
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestUbidotsSendIncomplete(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	s := NewUbidotsSender(sl.Discard(), &config.TelemetryConfig{URL: srv.URL, Token: "t", Labels: testLabels()})

	if err := s.Send(context.Background(), model.NewReading(model.Float(1), nil, model.Float(3))); err == nil {
		t.Fatal("expected error for incomplete reading")
	}
	if called {
		t.Fatal("incomplete reading must not reach the endpoint")
	}
}

func TestUbidotsHealth(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(status)
	}))
	defer srv.Close()

	s := NewUbidotsSender(sl.Discard(), &config.TelemetryConfig{URL: srv.URL, Token: "t", Labels: testLabels()})

	if err := s.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}

	status = http.StatusBadGateway
	if err := s.Health(context.Background()); err == nil {
		t.Fatal("expected unhealthy on 502")
	}
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(sl.Discard(), testLabels())

	if err := s.Send(context.Background(), model.NewReading(model.Float(1), model.Float(2), model.Float(3))); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := s.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

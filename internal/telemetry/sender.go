package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/speedwagon-io/roomsense/internal/config"
	"github.com/speedwagon-io/roomsense/internal/model"
)

type Sender interface {
	Send(ctx context.Context, reading *model.Reading) error
	Health(ctx context.Context) error
	Close() error
}

// UbidotsSender posts readings to a Ubidots-style device endpoint, mapping
// each channel to a configured variable label.
type UbidotsSender struct {
	log    *slog.Logger
	url    string
	token  string
	labels config.LabelsConfig
	client *http.Client
}

func NewUbidotsSender(log *slog.Logger, cfg *config.TelemetryConfig) *UbidotsSender {
	return &UbidotsSender{
		log:    log,
		url:    fmt.Sprintf("%s/%s", strings.TrimRight(cfg.URL, "/"), cfg.Labels.Device),
		token:  cfg.Token,
		labels: cfg.Labels,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (s *UbidotsSender) Send(ctx context.Context, reading *model.Reading) error {
	payload, err := labelledPayload(s.labels, reading)
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Auth-Token", s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		s.log.Info("data sent to telemetry endpoint", slog.String("reading_id", reading.ID))
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

func (s *UbidotsSender) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}

	req.Header.Set("X-Auth-Token", s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("server unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

func (s *UbidotsSender) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// labelledPayload maps the three channels onto their variable labels. The
// reading must be complete.
func labelledPayload(labels config.LabelsConfig, reading *model.Reading) (map[string]float64, error) {
	if !reading.Complete() {
		return nil, fmt.Errorf("reading %s is incomplete", reading.ID)
	}

	return map[string]float64{
		labels.Temperature: *reading.Temperature,
		labels.Humidity:    *reading.Humidity,
		labels.Light:       *reading.LightIntensity,
	}, nil
}

// LogSender logs readings instead of sending them (dry run).
type LogSender struct {
	log    *slog.Logger
	labels config.LabelsConfig
}

func NewLogSender(log *slog.Logger, labels config.LabelsConfig) *LogSender {
	return &LogSender{log: log, labels: labels}
}

func (s *LogSender) Send(ctx context.Context, reading *model.Reading) error {
	payload, err := labelledPayload(s.labels, reading)
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	s.log.Info("SEND",
		slog.String("reading_id", reading.ID),
		slog.String("device", s.labels.Device),
		slog.String("payload", string(data)),
	)

	return nil
}

func (s *LogSender) Health(ctx context.Context) error {
	return nil
}

func (s *LogSender) Close() error {
	return nil
}

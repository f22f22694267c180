package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/speedwagon-io/roomsense/internal/config"
	"github.com/speedwagon-io/roomsense/internal/model"
)

const (
	mqttQoS            = 1
	defaultMQTTTimeout = 5 * time.Second
)

// MQTTSender publishes each reading as JSON to a single topic.
type MQTTSender struct {
	log            *slog.Logger
	client         mqtt.Client
	topic          string
	labels         config.LabelsConfig
	publishTimeout time.Duration
}

type mqttMessage struct {
	ID        string             `json:"id"`
	Device    string             `json:"device"`
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

func NewMQTTSender(log *slog.Logger, cfg *config.TelemetryConfig) (*MQTTSender, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTT.Broker)
	opts.SetClientID(cfg.MQTT.ClientID)
	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	timeout := mqttTimeout(cfg)
	opts.SetConnectTimeout(timeout)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn("mqtt connection lost", slog.String("error", err.Error()))
	})

	client := mqtt.NewClient(opts)
	if err := connectMQTT(client, cfg.MQTT.Broker, timeout); err != nil {
		return nil, err
	}

	log.Info("connected to mqtt broker", slog.String("broker", cfg.MQTT.Broker))

	return newMQTTSender(log, client, cfg), nil
}

// connectMQTT waits up to timeout for the broker handshake. The client is
// disconnected on failure so its reconnect goroutines do not linger.
func connectMQTT(client mqtt.Client, broker string, timeout time.Duration) error {
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		client.Disconnect(0)
		return fmt.Errorf("timed out connecting to mqtt broker %s", broker)
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return fmt.Errorf("failed to connect to mqtt broker: %w", err)
	}
	return nil
}

func mqttTimeout(cfg *config.TelemetryConfig) time.Duration {
	if cfg.MQTT.ConnectTimeout <= 0 {
		return defaultMQTTTimeout
	}
	return cfg.MQTT.ConnectTimeout
}

func newMQTTSender(log *slog.Logger, client mqtt.Client, cfg *config.TelemetryConfig) *MQTTSender {
	return &MQTTSender{
		log:            log,
		client:         client,
		topic:          cfg.MQTT.Topic,
		labels:         cfg.Labels,
		publishTimeout: mqttTimeout(cfg),
	}
}

func (s *MQTTSender) Send(ctx context.Context, reading *model.Reading) error {
	values, err := labelledPayload(s.labels, reading)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(mqttMessage{
		ID:        reading.ID,
		Device:    s.labels.Device,
		Timestamp: reading.Timestamp,
		Values:    values,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	token := s.client.Publish(s.topic, mqttQoS, false, payload)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
	case <-time.After(s.publishTimeout):
		return fmt.Errorf("timed out publishing to %s", s.topic)
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish reading: %w", err)
	}

	s.log.Info("data published to mqtt",
		slog.String("topic", s.topic),
		slog.String("reading_id", reading.ID),
	)
	return nil
}

func (s *MQTTSender) Health(ctx context.Context) error {
	if !s.client.IsConnectionOpen() {
		return errors.New("mqtt connection is not open")
	}
	return nil
}

func (s *MQTTSender) Close() error {
	s.client.Disconnect(250)
	return nil
}

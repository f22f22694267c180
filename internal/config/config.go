package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"prod"`
	DryRun     bool             `yaml:"dry_run" env:"DRY_RUN" env-default:"false"`
	Device     DeviceRef        `yaml:"device"`
	Polling    PollingConfig    `yaml:"polling"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Hardware   HardwareConfig   `yaml:"hardware"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Notify     NotifyConfig     `yaml:"notify"`
	Health     HealthConfig     `yaml:"health"`
	Log        LogConfig        `yaml:"log"`
}

type DeviceRef struct {
	ID   string `yaml:"id" env:"DEVICE_ID" env-default:"pico-w"`
	Name string `yaml:"name" env-default:"room monitor"`
}

type PollingConfig struct {
	Interval time.Duration `yaml:"interval" env:"POLLING_INTERVAL" env-default:"3600s"`
}

type ThresholdsConfig struct {
	Temperature float64 `yaml:"temperature" env:"TEMP_THRESHOLD" env-default:"30"`
	Light       float64 `yaml:"light" env:"LIGHT_THRESHOLD" env-default:"100"`
}

type TelemetryConfig struct {
	Adapter string        `yaml:"adapter" env:"TELEMETRY_ADAPTER" env-default:"ubidots"`
	URL     string        `yaml:"url" env-default:"https://industrial.api.ubidots.com/api/v1.6/devices"`
	Token   string        `yaml:"token" env:"TELEMETRY_TOKEN"`
	Timeout time.Duration `yaml:"timeout" env-default:"0s"`
	Labels  LabelsConfig  `yaml:"labels"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
}

type LabelsConfig struct {
	Device      string `yaml:"device" env-default:"pico-w"`
	Temperature string `yaml:"temperature" env-default:"temperature"`
	Humidity    string `yaml:"humidity" env-default:"humidity"`
	Light       string `yaml:"light" env-default:"light"`
}

type MQTTConfig struct {
	Broker         string        `yaml:"broker" env:"MQTT_BROKER" env-default:"tcp://localhost:1883"`
	ClientID       string        `yaml:"client_id" env-default:"roomsense"`
	Topic          string        `yaml:"topic" env-default:"roomsense/readings"`
	Username       string        `yaml:"username" env:"MQTT_USERNAME"`
	Password       string        `yaml:"password" env:"MQTT_PASSWORD"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env-default:"5s"`
}

type NotifyConfig struct {
	BaseURL  string        `yaml:"base_url" env-default:"https://ntfy.sh"`
	Priority string        `yaml:"priority" env-default:"5"`
	Timeout  time.Duration `yaml:"timeout" env-default:"0s"`
}

type HealthConfig struct {
	Address string `yaml:"address" env-default:":8080"`
}

type LogConfig struct {
	Level  string `yaml:"level" env-default:"info"`
	Format string `yaml:"format" env-default:"json"`
}

// MustLoad reads the config or panics. dryRun forces dry-run mode on top of
// whatever the file and environment say.
func MustLoad(configPath string, dryRun bool) *Config {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	cfg, err := Load(configPath, dryRun)
	if err != nil {
		panic("failed to read config: " + err.Error())
	}

	return cfg
}

func Load(configPath string, dryRun bool) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	if dryRun {
		cfg.DryRun = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Polling.Interval <= 0 {
		return fmt.Errorf("polling interval must be positive, got %s", c.Polling.Interval)
	}

	switch c.Telemetry.Adapter {
	case "ubidots", "mqtt":
	default:
		return fmt.Errorf("unknown telemetry adapter %q", c.Telemetry.Adapter)
	}

	// Nothing leaves the process in dry-run mode, so credentials are optional.
	if !c.DryRun {
		if err := c.Telemetry.validateCredentials(); err != nil {
			return err
		}
	}

	return c.Hardware.Validate()
}

func (t *TelemetryConfig) validateCredentials() error {
	switch t.Adapter {
	case "ubidots":
		if t.Token == "" {
			return fmt.Errorf("telemetry token is required for the ubidots adapter")
		}
		if t.URL == "" {
			return fmt.Errorf("telemetry url is required for the ubidots adapter")
		}
	case "mqtt":
		if t.MQTT.Broker == "" || t.MQTT.Topic == "" {
			return fmt.Errorf("mqtt broker and topic are required for the mqtt adapter")
		}
	}
	return nil
}

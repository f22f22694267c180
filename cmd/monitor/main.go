package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/speedwagon-io/roomsense/internal/config"
	"github.com/speedwagon-io/roomsense/internal/hardware"
	"github.com/speedwagon-io/roomsense/internal/health"
	"github.com/speedwagon-io/roomsense/internal/lib/logger/sl"
	"github.com/speedwagon-io/roomsense/internal/model"
	"github.com/speedwagon-io/roomsense/internal/monitor"
	"github.com/speedwagon-io/roomsense/internal/notify"
	"github.com/speedwagon-io/roomsense/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	dryRun := flag.Bool("dry-run", false, "log notifications and telemetry instead of sending")
	flag.Parse()

	cfg := config.MustLoad(*configPath, *dryRun)

	log := sl.SetupLogger(cfg.Log.Level, cfg.Log.Format)

	if err := run(log, cfg); err != nil {
		log.Error("monitor failed", sl.Err(err))
		os.Exit(1)
	}
}

func run(log *slog.Logger, cfg *config.Config) error {
	log.Info("starting room monitor",
		slog.String("env", cfg.Env),
		slog.String("device_id", cfg.Device.ID),
		slog.String("device_name", cfg.Device.Name),
		slog.Bool("dry_run", cfg.DryRun),
	)

	board, err := hardware.Open(log, cfg.Hardware)
	if err != nil {
		return err
	}
	defer func() {
		if err := board.Close(); err != nil {
			log.Error("failed to close board", sl.Err(err))
		}
	}()

	sender, err := newSender(log, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sender.Close(); err != nil {
			log.Error("failed to close telemetry sender", sl.Err(err))
		}
	}()

	var notifier notify.Notifier
	if cfg.DryRun {
		notifier = notify.NewLogNotifier(log)
		log.Info("dry-run mode: notifications and telemetry will be logged instead of sent")
	} else {
		ntfy := notify.NewNtfyNotifier(log, &cfg.Notify)
		defer ntfy.Close()
		notifier = ntfy
	}

	thresholds := model.Thresholds{
		Temperature: cfg.Thresholds.Temperature,
		Light:       cfg.Thresholds.Light,
	}

	mon := monitor.New(log, board, notifier, sender, thresholds, cfg.Polling.Interval, monitor.RealClock{})

	if cfg.Health.Address != "" {
		healthServer := health.NewServer(log, cfg.Health.Address)
		healthServer.AddChecker(health.NewFuncChecker("telemetry", sender.Health))
		healthServer.AddChecker(health.NewCycleHealthChecker(mon.LastCycle, 2*mon.Interval()))
		healthServer.SetReadiness(func() bool {
			_, ok := mon.LastCycle()
			return ok
		})

		if err := healthServer.Start(); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := healthServer.Stop(shutdownCtx); err != nil {
				log.Error("failed to stop health server", sl.Err(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mon.Run(ctx)

	log.Info("monitor stopped")
	return nil
}

func newSender(log *slog.Logger, cfg *config.Config) (telemetry.Sender, error) {
	if cfg.DryRun {
		return telemetry.NewLogSender(log, cfg.Telemetry.Labels), nil
	}

	switch cfg.Telemetry.Adapter {
	case "ubidots":
		return telemetry.NewUbidotsSender(log, &cfg.Telemetry), nil
	case "mqtt":
		sender, err := telemetry.NewMQTTSender(log, &cfg.Telemetry)
		if err != nil {
			return nil, fmt.Errorf("failed to create mqtt sender: %w", err)
		}
		return sender, nil
	default:
		return nil, fmt.Errorf("unknown telemetry adapter %q", cfg.Telemetry.Adapter)
	}
}

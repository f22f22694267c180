package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/speedwagon-io/roomsense/internal/config"
	"github.com/speedwagon-io/roomsense/internal/model"
)

// ErrRejected is returned when the notification service answered with a
// status other than 200.
var ErrRejected = errors.New("notification rejected")

type Notifier interface {
	Send(ctx context.Context, n model.Notification) error
}

type NtfyNotifier struct {
	log      *slog.Logger
	baseURL  string
	priority string
	client   *http.Client
}

func NewNtfyNotifier(log *slog.Logger, cfg *config.NotifyConfig) *NtfyNotifier {
	return &NtfyNotifier{
		log:      log,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		priority: cfg.Priority,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Send posts the message to <base>/<kind>. There is a single attempt; transport
// errors are returned as-is, a non-200 answer wraps ErrRejected.
func (n *NtfyNotifier) Send(ctx context.Context, notification model.Notification) error {
	url := fmt.Sprintf("%s/%s", n.baseURL, notification.Kind)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(notification.Message))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Title", notification.Title)
	req.Header.Set("Priority", n.priority)
	req.Header.Set("Tags", notification.Tag)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		n.log.Warn("failed to send notification",
			slog.String("kind", string(notification.Kind)),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	n.log.Info("notification sent successfully", slog.String("kind", string(notification.Kind)))
	return nil
}

func (n *NtfyNotifier) Close() {
	n.client.CloseIdleConnections()
}

// LogNotifier logs notifications instead of sending them (dry run).
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(ctx context.Context, notification model.Notification) error {
	n.log.Info("NOTIFY",
		slog.String("kind", string(notification.Kind)),
		slog.String("title", notification.Title),
		slog.String("tag", notification.Tag),
		slog.String("message", notification.Message),
		slog.Time("at", time.Now().UTC()),
	)
	return nil
}

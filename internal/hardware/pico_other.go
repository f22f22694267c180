//go:build !(tinygo && rp2040)

package hardware

import (
	"log/slog"

	"github.com/speedwagon-io/roomsense/internal/config"
)

func newPicoBoard(_ *slog.Logger, _ config.PicoConfig) (Board, error) {
	return nil, ErrUnsupportedBoard
}

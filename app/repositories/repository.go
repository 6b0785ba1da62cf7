package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"postboard/app/config"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Open returns the Store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		return OpenBadger(cfg.Path, log)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

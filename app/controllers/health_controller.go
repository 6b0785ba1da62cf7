package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store   Pinger
	timeout time.Duration
}

func NewHealthController(store Pinger, timeout time.Duration) *HealthController {
	return &HealthController{store: store, timeout: timeout}
}

// Check answers 200 when storage responds and 503 otherwise.
func (hc *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if hc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hc.timeout)
		defer cancel()
	}

	if err := hc.store.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		sendJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	sendJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

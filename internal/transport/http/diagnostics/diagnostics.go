package diagnostics

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bluelight/shop/internal/service/models/diagnostics"
)

type service interface {
	Diagnostics(ctx context.Context) diagnostics.Report
}

// Root handles the liveness endpoint.
func Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"message": "BlueLight Shop API running",
	}); err != nil {
		slog.Error("Error sending liveness response", "error", err)
	}
}

// Diagnostics handles the database diagnostics endpoint.
func Diagnostics(w http.ResponseWriter, r *http.Request, service service) {
	report := service.Diagnostics(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		slog.Error("Error sending diagnostics response", "error", err)
	}
}

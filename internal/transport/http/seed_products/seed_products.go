package seedproducts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type service interface {
	SeedProducts(ctx context.Context) (int, error)
}

type seedResponse struct {
	Seeded  bool   `json:"seeded"`
	Count   int    `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

// SeedProducts handles the idempotent catalog seeding request.
func SeedProducts(w http.ResponseWriter, r *http.Request, service service) {
	count, err := service.SeedProducts(r.Context())
	if err != nil {
		http.Error(w, "Failed to seed products", http.StatusInternalServerError)
		slog.Error("Error seeding products", "error", err)

		return
	}

	response := seedResponse{Seeded: count > 0, Count: count}
	if count == 0 {
		response.Message = "Products already exist"
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error sending response for seed products", "error", err)
	}
}

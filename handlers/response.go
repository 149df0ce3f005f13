package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ricemill/billing"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the billing error taxonomy onto HTTP statuses:
// validation 400, missing refs 404, insufficient stock 409, the rest 500.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), ApiResponse{
		Success: false,
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	var (
		validation   *billing.ValidationError
		notFound     *billing.NotFoundError
		insufficient *billing.InsufficientStockError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &insufficient):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

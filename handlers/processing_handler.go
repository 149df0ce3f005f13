package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"ricemill/billing"
	"ricemill/models"
	"ricemill/repository"
)

type ProcessingHandler struct {
	Repo repository.ProcessingRepository
}

// CreateBatch moves raw paddy into a milling run. The whole batch is
// rejected if any line is short on stock.
func (h *ProcessingHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessingBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, &billing.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"})
		return
	}

	batch, err := h.Repo.CreateBatch(date, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: batch})
}

func (h *ProcessingHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	batches, err := h.Repo.ListBatches(q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, err)
		return
	}
	if batches == nil {
		batches = []*models.ProcessingBatch{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: batches})
}

// NextNumber previews the batch number for the entry form's date.
func (h *ProcessingHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			writeError(w, &billing.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	next, err := h.Repo.NextBatchNo(date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]string{"next_batch_no": next},
	})
}

func (h *ProcessingHandler) GetBatchItems(w http.ResponseWriter, r *http.Request, batchNo string) {
	items, err := h.Repo.GetBatchItems(batchNo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: items})
}

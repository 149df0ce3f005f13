package handlers

import (
	"net/http"
	"time"

	"ricemill/billing"
	"ricemill/repository"
)

type ReportHandler struct {
	Repo repository.ReportRepository
}

// reportRange reads the mandatory start/end window shared by the range
// reports. Bills and batches treat an empty range as "everything"; the
// range reports do not.
func reportRange(r *http.Request) (string, string, error) {
	q := r.URL.Query()
	for _, p := range []struct{ name, val string }{
		{"start", q.Get("start")},
		{"end", q.Get("end")},
	} {
		if p.val == "" {
			return "", "", &billing.ValidationError{Field: p.name, Reason: "required"}
		}
		if _, err := time.Parse("2006-01-02", p.val); err != nil {
			return "", "", &billing.ValidationError{Field: p.name, Reason: "must be YYYY-MM-DD"}
		}
	}
	return q.Get("start"), q.Get("end"), nil
}

func (h *ReportHandler) PurchaseRegister(w http.ResponseWriter, r *http.Request) {
	start, end, err := reportRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rows, err := h.Repo.PurchaseRegister(start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rows})
}

func (h *ReportHandler) InventorySummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.InventorySummary()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rows})
}

func (h *ReportHandler) ProcessingVarieties(w http.ResponseWriter, r *http.Request) {
	start, end, err := reportRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rows, err := h.Repo.ProcessingVarietyStats(start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rows})
}

func (h *ReportHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	variety := r.URL.Query().Get("variety")
	if variety == "" {
		writeError(w, &billing.ValidationError{Field: "variety", Reason: "required"})
		return
	}
	rows, err := h.Repo.PriceHistory(variety)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rows})
}

func (h *ReportHandler) LatestPrices(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.LatestPrices()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rows})
}

func (h *ReportHandler) MoistureInsights(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.MoistureInsights()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rows})
}

func (h *ReportHandler) SupplierRankings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.SupplierRankings()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rows})
}

func (h *ReportHandler) SeasonalBuying(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.SeasonalBuying()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rows})
}

package handlers

import (
	"net/http"

	"ricemill/models"
	"ricemill/repository"
)

type InventoryHandler struct {
	Repo repository.LedgerRepository
}

func (h *InventoryHandler) GetAllStock(w http.ResponseWriter, r *http.Request) {
	levels, err := h.Repo.AllStockLevels()
	if err != nil {
		writeError(w, err)
		return
	}
	if levels == nil {
		levels = []models.StockLevel{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: levels})
}

func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request, variety string) {
	level, err := h.Repo.CurrentStock(variety)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: level})
}

func (h *InventoryHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Repo.Entries(r.URL.Query().Get("variety"))
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.StockLedgerEntry{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: entries})
}

// Rebuild wipes the ledger and replays every stored bill and batch. Safe
// to run at any time; also runs automatically at startup.
func (h *InventoryHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Rebuild(); err != nil {
		writeError(w, err)
		return
	}

	levels, err := h.Repo.AllStockLevels()
	if err != nil {
		writeError(w, err)
		return
	}
	if levels == nil {
		levels = []models.StockLevel{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Stock ledger rebuilt",
		Data:    levels,
	})
}

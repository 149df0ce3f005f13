package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ricemill/models"
	"ricemill/repository"
)

type MasterHandler struct {
	Parties   repository.PartyRepository
	Varieties repository.VarietyRepository
}

func (h *MasterHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	var party models.Party
	if err := json.NewDecoder(r.Body).Decode(&party); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if err := h.Parties.CreateParty(&party); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: party})
}

// GetParty serves the party detail view used by the party dashboard.
func (h *MasterHandler) GetParty(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid party id"})
		return
	}
	party, err := h.Parties.GetParty(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: party})
}

func (h *MasterHandler) UpdateParty(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid party id"})
		return
	}

	var party models.Party
	if err := json.NewDecoder(r.Body).Decode(&party); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}
	party.ID = id

	if err := h.Parties.UpdateParty(&party); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: party})
}

func (h *MasterHandler) DeleteParty(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid party id"})
		return
	}

	if err := h.Parties.DeleteParty(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Party deleted"})
}

func (h *MasterHandler) GetAllParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.Parties.GetAllParties()
	if err != nil {
		writeError(w, err)
		return
	}
	if parties == nil {
		parties = []*models.Party{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: parties})
}

func (h *MasterHandler) CreateVariety(w http.ResponseWriter, r *http.Request) {
	var variety models.PaddyVariety
	if err := json.NewDecoder(r.Body).Decode(&variety); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if err := h.Varieties.CreateVariety(&variety); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: variety})
}

func (h *MasterHandler) UpdateVariety(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid variety id"})
		return
	}

	var variety models.PaddyVariety
	if err := json.NewDecoder(r.Body).Decode(&variety); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}
	variety.ID = id

	if err := h.Varieties.UpdateVariety(&variety); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: variety})
}

func (h *MasterHandler) GetAllVarieties(w http.ResponseWriter, r *http.Request) {
	varieties, err := h.Varieties.GetAllVarieties()
	if err != nil {
		writeError(w, err)
		return
	}
	if varieties == nil {
		varieties = []*models.PaddyVariety{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: varieties})
}

func queryID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ricemill/billing"
	"ricemill/models"
	"ricemill/repository"
	"ricemill/utils"
)

type SalesHandler struct {
	Repo repository.SalesBillRepository
}

// CreateBill commits an outward bill. The stock check runs inside the
// repository against the same view the ledger write sees; an oversell
// comes back as a 409 with nothing written.
func (h *SalesHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req models.SalesBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	bill, err := billing.ComputeSalesBill(&req)
	if err != nil {
		writeError(w, err)
		return
	}

	billNo, err := h.Repo.CreateSalesBill(billing.NormalizeName(req.PartyName), bill)
	if err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.Repo.GetSalesBill(billNo)
	if err != nil {
		writeError(w, err)
		return
	}
	saved.NetPayableWords = utils.RupeesInWords(saved.NetPayable)

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: saved})
}

func (h *SalesHandler) GetBill(w http.ResponseWriter, r *http.Request, billNoStr string) {
	billNo, err := strconv.ParseInt(billNoStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid bill number"})
		return
	}

	bill, err := h.Repo.GetSalesBill(billNo)
	if err != nil {
		writeError(w, err)
		return
	}
	bill.NetPayableWords = utils.RupeesInWords(bill.NetPayable)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: bill})
}

func (h *SalesHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bills, err := h.Repo.ListSalesBills(q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, err)
		return
	}
	if bills == nil {
		bills = []*models.SalesBill{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: bills})
}

func (h *SalesHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	next, err := h.Repo.NextBillNumber()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]int64{"next_bill_no": next},
	})
}

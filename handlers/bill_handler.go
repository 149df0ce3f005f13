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

type BillHandler struct {
	Repo repository.PurchaseBillRepository
}

// CreateBill recomputes every derived figure server-side from the raw
// entry-form payload before committing.
func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	bill, err := billing.ComputePurchaseBill(&req)
	if err != nil {
		writeError(w, err)
		return
	}

	billNo, err := h.Repo.CreatePurchaseBill(billing.NormalizeName(req.PartyName), bill)
	if err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.Repo.GetPurchaseBill(billNo)
	if err != nil {
		writeError(w, err)
		return
	}
	saved.NetPayableWords = utils.RupeesInWords(saved.NetPayable)

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: saved})
}

// ReplaceBill rewrites a committed bill under its original number.
func (h *BillHandler) ReplaceBill(w http.ResponseWriter, r *http.Request, billNoStr string) {
	billNo, err := strconv.ParseInt(billNoStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid bill number"})
		return
	}

	var req models.PurchaseBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	bill, err := billing.ComputePurchaseBill(&req)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Repo.ReplacePurchaseBill(billNo, billing.NormalizeName(req.PartyName), bill); err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.Repo.GetPurchaseBill(billNo)
	if err != nil {
		writeError(w, err)
		return
	}
	saved.NetPayableWords = utils.RupeesInWords(saved.NetPayable)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: saved})
}

func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request, billNoStr string) {
	billNo, err := strconv.ParseInt(billNoStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: "invalid bill number"})
		return
	}

	bill, err := h.Repo.GetPurchaseBill(billNo)
	if err != nil {
		writeError(w, err)
		return
	}
	bill.NetPayableWords = utils.RupeesInWords(bill.NetPayable)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: bill})
}

func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bills, err := h.Repo.ListPurchaseBills(q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, err)
		return
	}
	if bills == nil {
		bills = []*models.PurchaseBill{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: bills})
}

// NextNumber is advisory for the entry form; the committed number is
// assigned inside the transaction.
func (h *BillHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
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

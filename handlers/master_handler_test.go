package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"ricemill/billing"
	"ricemill/models"
)

type stubPartyRepo struct {
	parties map[int64]*models.Party
}

func (s *stubPartyRepo) CreateParty(p *models.Party) error { return nil }
func (s *stubPartyRepo) UpdateParty(p *models.Party) error { return nil }
func (s *stubPartyRepo) DeleteParty(id int64) error        { return nil }

func (s *stubPartyRepo) GetAllParties() ([]*models.Party, error) {
	var out []*models.Party
	for _, p := range s.parties {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPartyRepo) GetParty(id int64) (*models.Party, error) {
	p, ok := s.parties[id]
	if !ok {
		return nil, &billing.NotFoundError{Entity: "party", Ref: strconv.FormatInt(id, 10)}
	}
	return p, nil
}

func TestGetPartyDetail(t *testing.T) {
	h := &MasterHandler{Parties: &stubPartyRepo{parties: map[int64]*models.Party{
		7: {ID: 7, Name: "RAMESH TRADERS"},
	}}}

	req := httptest.NewRequest(http.MethodGet, "/parties?id=7", nil)
	rec := httptest.NewRecorder()
	h.GetParty(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Success bool         `json:"success"`
		Data    models.Party `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.ID != 7 || resp.Data.Name != "RAMESH TRADERS" {
		t.Errorf("response = %+v, want party 7", resp)
	}

	req = httptest.NewRequest(http.MethodGet, "/parties?id=99", nil)
	rec = httptest.NewRecorder()
	h.GetParty(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing party status = %d, want 404", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/parties?id=abc", nil)
	rec = httptest.NewRecorder()
	h.GetParty(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

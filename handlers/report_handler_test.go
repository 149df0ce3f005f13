package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ricemill/models"
)

type stubReportRepo struct {
	registerCalls   int
	processingCalls int
}

func (s *stubReportRepo) PurchaseRegister(start, end string) ([]models.PurchaseRegisterRow, error) {
	s.registerCalls++
	return []models.PurchaseRegisterRow{}, nil
}

func (s *stubReportRepo) ProcessingVarietyStats(start, end string) ([]models.ProcessingVarietyStat, error) {
	s.processingCalls++
	return []models.ProcessingVarietyStat{}, nil
}

func (s *stubReportRepo) InventorySummary() ([]models.InventorySummaryRow, error) { return nil, nil }
func (s *stubReportRepo) PriceHistory(variety string) ([]models.PricePoint, error) {
	return nil, nil
}
func (s *stubReportRepo) LatestPrices() ([]models.LatestPrice, error)         { return nil, nil }
func (s *stubReportRepo) MoistureInsights() ([]models.MoistureInsight, error) { return nil, nil }
func (s *stubReportRepo) SupplierRankings() ([]models.SupplierRanking, error) { return nil, nil }
func (s *stubReportRepo) SeasonalBuying() ([]models.SeasonalStat, error)      { return nil, nil }

func TestRangeReportsValidateDates(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"missing both", "", http.StatusBadRequest},
		{"missing end", "start=2025-04-01", http.StatusBadRequest},
		{"missing start", "end=2025-04-30", http.StatusBadRequest},
		{"malformed start", "start=april&end=2025-04-30", http.StatusBadRequest},
		{"malformed end", "start=2025-04-01&end=30-04-2025", http.StatusBadRequest},
		{"valid range", "start=2025-04-01&end=2025-04-30", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubReportRepo{}
			h := &ReportHandler{Repo: repo}

			endpoints := []struct {
				path  string
				serve http.HandlerFunc
			}{
				{"/reports/purchase-register", h.PurchaseRegister},
				{"/reports/processing-varieties", h.ProcessingVarieties},
			}
			for _, ep := range endpoints {
				req := httptest.NewRequest(http.MethodGet, ep.path+"?"+tc.query, nil)
				rec := httptest.NewRecorder()
				ep.serve(rec, req)
				if rec.Code != tc.wantStatus {
					t.Errorf("%s?%s status = %d, want %d", ep.path, tc.query, rec.Code, tc.wantStatus)
				}
			}
			wantCalls := 0
			if tc.wantStatus == http.StatusOK {
				wantCalls = 1
			}
			if repo.registerCalls != wantCalls || repo.processingCalls != wantCalls {
				t.Errorf("repo calls = %d/%d, want %d each", repo.registerCalls, repo.processingCalls, wantCalls)
			}
		})
	}
}

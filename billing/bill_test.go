package billing

import (
	"errors"
	"testing"

	"ricemill/models"
)

// The worked purchase scenario: 100 bags, weighbridge 5000/0/4950 kg, one
// item at moisture 16 over base rate 2000, 2% discount, 500 brokerage,
// 300 hamali.
func TestComputePurchaseBill(t *testing.T) {
	req := &models.PurchaseBillRequest{
		Date:            "2025-11-12",
		PartyName:       "Sharma Traders",
		LorryNo:         "KA-01-1234",
		TotalBags:       100,
		TruckWeight1Kg:  5000,
		TruckWeight2Kg:  0,
		TruckWeight3Kg:  4950,
		DiscountPercent: 2,
		Brokerage:       500,
		Hamali:          300,
		Items: []models.PurchaseItemRequest{
			{Variety: "Sona", Bags: 100, Moisture: 16, BaseRate: 2000},
		},
	}

	bill, err := ComputePurchaseBill(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bill.FinalWeightQtl != 49.5 {
		t.Errorf("final weight = %v qtl, want 49.5", bill.FinalWeightQtl)
	}
	if len(bill.Items) != 1 {
		t.Fatalf("item count = %d, want 1", len(bill.Items))
	}
	item := bill.Items[0]
	if item.Variety != "SONA" {
		t.Errorf("variety = %q, want normalized SONA", item.Variety)
	}
	if item.CalculatedRate != 1960 {
		t.Errorf("calculated rate = %v, want 1960", item.CalculatedRate)
	}
	if item.WeightQtl != 49.5 {
		t.Errorf("item weight = %v, want 49.5", item.WeightQtl)
	}
	if item.Amount != 97020 {
		t.Errorf("item amount = %d, want 97020", item.Amount)
	}
	if bill.GrossAmount != 97020 {
		t.Errorf("gross = %d, want 97020", bill.GrossAmount)
	}
	// 97020 − 1940 + 500 + 300
	if bill.NetPayable != 95880 {
		t.Errorf("net payable = %d, want 95880", bill.NetPayable)
	}
	if bill.LorryNo == nil || *bill.LorryNo != "KA-01-1234" {
		t.Errorf("lorry no not carried")
	}
}

func TestComputePurchaseBillDistribution(t *testing.T) {
	req := &models.PurchaseBillRequest{
		Date:           "2025-11-12",
		PartyName:      "Sharma Traders",
		TotalBags:      100,
		TruckWeight1Kg: 5000,
		TruckWeight3Kg: 4950,
		Items: []models.PurchaseItemRequest{
			{Variety: "SONA", Bags: 60, Moisture: 0, BaseRate: 2000},
			{Variety: "HMT", Bags: 40, Moisture: 0, BaseRate: 2500},
		},
	}

	bill, err := ComputePurchaseBill(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.Items[0].WeightQtl != 29.7 {
		t.Errorf("first share = %v, want 29.7", bill.Items[0].WeightQtl)
	}
	if bill.Items[1].WeightQtl != 19.8 {
		t.Errorf("second share = %v, want 19.8", bill.Items[1].WeightQtl)
	}
	// shares sum back to the final weight
	if got := bill.Items[0].WeightQtl + bill.Items[1].WeightQtl; got != bill.FinalWeightQtl {
		t.Errorf("shares sum to %v, final weight %v", got, bill.FinalWeightQtl)
	}
}

func TestComputePurchaseBillValidation(t *testing.T) {
	valid := func() *models.PurchaseBillRequest {
		return &models.PurchaseBillRequest{
			Date:           "2025-11-12",
			PartyName:      "Sharma Traders",
			TotalBags:      10,
			TruckWeight1Kg: 500,
			Items: []models.PurchaseItemRequest{
				{Variety: "SONA", Bags: 10, BaseRate: 2000},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.PurchaseBillRequest)
		field  string
	}{
		{"bad date", func(r *models.PurchaseBillRequest) { r.Date = "12-11-2025" }, "date"},
		{"empty party", func(r *models.PurchaseBillRequest) { r.PartyName = "  " }, "party_name"},
		{"zero total bags", func(r *models.PurchaseBillRequest) { r.TotalBags = 0 }, "total_bags"},
		{"no items", func(r *models.PurchaseBillRequest) { r.Items = nil }, "items"},
		{"blank variety", func(r *models.PurchaseBillRequest) { r.Items[0].Variety = "" }, "items.variety"},
		{"zero item bags", func(r *models.PurchaseBillRequest) { r.Items[0].Bags = 0 }, "items.bags"},
		{"zero rate", func(r *models.PurchaseBillRequest) { r.Items[0].BaseRate = 0 }, "items.base_rate"},
		{"negative moisture", func(r *models.PurchaseBillRequest) { r.Items[0].Moisture = -1 }, "items.moisture"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			_, err := ComputePurchaseBill(req)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if validation.Field != tt.field {
				t.Errorf("field = %q, want %q", validation.Field, tt.field)
			}
		})
	}
}

// All readings zero is not an entry error: the bill carries zero weight and
// zero amounts.
func TestComputePurchaseBillZeroWeight(t *testing.T) {
	req := &models.PurchaseBillRequest{
		Date:      "2025-11-12",
		PartyName: "Sharma Traders",
		TotalBags: 10,
		Items: []models.PurchaseItemRequest{
			{Variety: "SONA", Bags: 10, BaseRate: 2000},
		},
	}
	bill, err := ComputePurchaseBill(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.FinalWeightQtl != 0 || bill.GrossAmount != 0 {
		t.Errorf("zero-weight bill = %v qtl gross %d, want 0 / 0",
			bill.FinalWeightQtl, bill.GrossAmount)
	}
}

func TestComputeSalesBill(t *testing.T) {
	req := &models.SalesBillRequest{
		Date:            "2025-12-01",
		PartyName:       "Modern Rice Depot",
		TotalBags:       50,
		FinalWeightQtl:  25,
		DiscountPercent: 1,
		Hamali:          200,
		Items: []models.SalesItemRequest{
			{Variety: "sona", Bags: 50, Rate: 3000},
		},
	}

	bill, err := ComputeSalesBill(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.FinalWeightQtl != 25 {
		t.Errorf("final weight = %v, want operator-entered 25", bill.FinalWeightQtl)
	}
	if bill.Items[0].Amount != 75000 {
		t.Errorf("item amount = %d, want 75000", bill.Items[0].Amount)
	}
	// 75000 − 750 + 200
	if bill.NetPayable != 74450 {
		t.Errorf("net payable = %d, want 74450", bill.NetPayable)
	}
}

func TestComputeSalesBillValidation(t *testing.T) {
	req := &models.SalesBillRequest{
		Date:           "2025-12-01",
		PartyName:      "Modern Rice Depot",
		TotalBags:      50,
		FinalWeightQtl: 0,
		Items: []models.SalesItemRequest{
			{Variety: "SONA", Bags: 50, Rate: 3000},
		},
	}
	_, err := ComputeSalesBill(req)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if validation.Field != "final_weight_qtl" {
		t.Errorf("field = %q, want final_weight_qtl", validation.Field)
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  sharma Traders "); got != "SHARMA TRADERS" {
		t.Errorf("NormalizeName = %q", got)
	}
}

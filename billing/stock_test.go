package billing

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"ricemill/models"
)

func mapLookup(levels map[string]models.StockLevel) StockLookup {
	return func(variety string) (models.StockLevel, error) {
		return levels[variety], nil
	}
}

func TestCheckSaleStock(t *testing.T) {
	lookup := mapLookup(map[string]models.StockLevel{
		"SONA": {Variety: "SONA", Bags: 50, WeightKg: 2500, AvgUnitWeightKg: 50},
		"HMT":  {Variety: "HMT", Bags: 10, WeightKg: 400, AvgUnitWeightKg: 40},
	})

	t.Run("sufficient", func(t *testing.T) {
		items := []models.SalesBillItem{
			{Variety: "SONA", Bags: 30},
			{Variety: "HMT", Bags: 10},
		}
		if err := CheckSaleStock(items, lookup); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("plain shortfall", func(t *testing.T) {
		items := []models.SalesBillItem{{Variety: "SONA", Bags: 51}}
		var insufficient *InsufficientStockError
		err := CheckSaleStock(items, lookup)
		if !errors.As(err, &insufficient) {
			t.Fatalf("want InsufficientStockError, got %v", err)
		}
		if insufficient.Variety != "SONA" || insufficient.Available != 50 || insufficient.Required != 51 {
			t.Errorf("unexpected error detail: %+v", insufficient)
		}
	})

	t.Run("same variety lines checked jointly", func(t *testing.T) {
		// each line alone fits, the pair oversells
		items := []models.SalesBillItem{
			{Variety: "SONA", Bags: 30},
			{Variety: "sona", Bags: 30},
		}
		var insufficient *InsufficientStockError
		err := CheckSaleStock(items, lookup)
		if !errors.As(err, &insufficient) {
			t.Fatalf("want InsufficientStockError, got %v", err)
		}
		if insufficient.Required != 60 || insufficient.Available != 50 {
			t.Errorf("unexpected aggregation: %+v", insufficient)
		}
	})

	t.Run("unknown variety is empty stock", func(t *testing.T) {
		items := []models.SalesBillItem{{Variety: "BASMATI", Bags: 1}}
		var insufficient *InsufficientStockError
		if err := CheckSaleStock(items, lookup); !errors.As(err, &insufficient) {
			t.Fatalf("want InsufficientStockError, got %v", err)
		}
	})
}

func TestBuildProcessingBatch(t *testing.T) {
	lookup := mapLookup(map[string]models.StockLevel{
		"SONA": {Variety: "SONA", Bags: 100, WeightKg: 5000, AvgUnitWeightKg: 50},
		"HMT":  {Variety: "HMT", Bags: 20, WeightKg: 900, AvgUnitWeightKg: 45},
	})
	day := time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)

	t.Run("derives totals from pre-batch snapshot", func(t *testing.T) {
		batch, err := BuildProcessingBatch(day, []models.BatchItemRequest{
			{Variety: "Sona", Bags: 40},
			{Variety: "HMT", Bags: 10},
		}, lookup)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if batch.FinancialYear != "2025-2026" {
			t.Errorf("financial year = %q, want 2025-2026", batch.FinancialYear)
		}
		if batch.Status != "COMPLETED" {
			t.Errorf("status = %q, want COMPLETED", batch.Status)
		}
		if len(batch.Items) != 2 {
			t.Fatalf("item count = %d, want 2", len(batch.Items))
		}
		if batch.Items[0].Variety != "SONA" || batch.Items[0].TotalWeightKg != 2000 {
			t.Errorf("sona item = %+v, want 40 bags at 50 kg", batch.Items[0])
		}
		if batch.Items[1].Variety != "HMT" || batch.Items[1].TotalWeightKg != 450 {
			t.Errorf("hmt item = %+v, want 10 bags at 45 kg", batch.Items[1])
		}
		if batch.TotalInputBags != 50 || batch.TotalInputWeightKg != 2450 {
			t.Errorf("totals = %d bags %v kg, want 50 / 2450",
				batch.TotalInputBags, batch.TotalInputWeightKg)
		}
	})

	t.Run("same variety lines merge", func(t *testing.T) {
		batch, err := BuildProcessingBatch(day, []models.BatchItemRequest{
			{Variety: "SONA", Bags: 30},
			{Variety: "sona", Bags: 20},
		}, lookup)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(batch.Items) != 1 || batch.Items[0].Bags != 50 {
			t.Errorf("items = %+v, want one merged SONA line of 50 bags", batch.Items)
		}
	})

	t.Run("rejects whole batch on shortfall", func(t *testing.T) {
		batch, err := BuildProcessingBatch(day, []models.BatchItemRequest{
			{Variety: "SONA", Bags: 10},
			{Variety: "HMT", Bags: 21},
		}, lookup)
		var insufficient *InsufficientStockError
		if !errors.As(err, &insufficient) {
			t.Fatalf("want InsufficientStockError, got %v", err)
		}
		if batch != nil {
			t.Errorf("batch should be nil on rejection, got %+v", batch)
		}
	})

	t.Run("rejects variety without weight history", func(t *testing.T) {
		noHistory := mapLookup(map[string]models.StockLevel{
			"SONA": {Variety: "SONA", Bags: 100, WeightKg: 0, AvgUnitWeightKg: 0},
		})
		_, err := BuildProcessingBatch(day, []models.BatchItemRequest{
			{Variety: "SONA", Bags: 10},
		}, noHistory)
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("want ValidationError, got %v", err)
		}
	})

	t.Run("rejects empty and invalid items", func(t *testing.T) {
		var validation *ValidationError
		if _, err := BuildProcessingBatch(day, nil, lookup); !errors.As(err, &validation) {
			t.Errorf("empty items: want ValidationError, got %v", err)
		}
		if _, err := BuildProcessingBatch(day, []models.BatchItemRequest{
			{Variety: "SONA", Bags: 0},
		}, lookup); !errors.As(err, &validation) {
			t.Errorf("zero bags: want ValidationError, got %v", err)
		}
	})
}

func TestLedgerEntrySigns(t *testing.T) {
	day := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	purchase := &models.PurchaseBill{
		BillNo:   7,
		BillDate: day,
		Items: []models.PurchaseBillItem{
			{Variety: "SONA", Bags: 100, WeightQtl: 49.5},
		},
	}
	entries := PurchaseLedgerEntries(purchase)
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	if entries[0].BagsChange != 100 || entries[0].WeightChangeKg != 4950 {
		t.Errorf("purchase entry = %+v, want +100 bags +4950 kg", entries[0])
	}
	if entries[0].MovementType != models.MovementPurchase || entries[0].RefID != 7 {
		t.Errorf("purchase entry ref = %+v", entries[0])
	}

	sale := &models.SalesBill{
		BillNo:   3,
		BillDate: day,
		Items: []models.SalesBillItem{
			{Variety: "SONA", Bags: 40, WeightQtl: 20},
		},
	}
	saleEntries := SalesLedgerEntries(sale)
	if saleEntries[0].BagsChange != -40 || saleEntries[0].WeightChangeKg != -2000 {
		t.Errorf("sale entry = %+v, want -40 bags -2000 kg", saleEntries[0])
	}

	batch := &models.ProcessingBatch{
		ID:   5,
		Date: day,
		Items: []models.ProcessingBatchItem{
			{Variety: "SONA", Bags: 10, TotalWeightKg: 500},
		},
	}
	batchEntries := BatchLedgerEntries(batch)
	if batchEntries[0].BagsChange != -10 || batchEntries[0].WeightChangeKg != -500 {
		t.Errorf("batch entry = %+v, want -10 bags -500 kg", batchEntries[0])
	}
	if batchEntries[0].MovementType != models.MovementProcess {
		t.Errorf("batch movement = %q, want PROCESS_IN", batchEntries[0].MovementType)
	}
}

func TestReplayLedgerBalancesAndIdempotence(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	purchases := []*models.PurchaseBill{
		{
			BillNo:   1,
			BillDate: day,
			Items: []models.PurchaseBillItem{
				{Variety: "SONA", Bags: 100, WeightQtl: 49.5},
				{Variety: "HMT", Bags: 40, WeightQtl: 19.8},
			},
		},
		{
			BillNo:   2,
			BillDate: day.AddDate(0, 0, 2),
			Items: []models.PurchaseBillItem{
				{Variety: "SONA", Bags: 50, WeightQtl: 24.75},
			},
		},
	}
	sales := []*models.SalesBill{
		{
			BillNo:   1,
			BillDate: day.AddDate(0, 0, 5),
			Items: []models.SalesBillItem{
				{Variety: "SONA", Bags: 30, WeightQtl: 15},
			},
		},
	}
	batches := []*models.ProcessingBatch{
		{
			ID:   1,
			Date: day.AddDate(0, 0, 9),
			Items: []models.ProcessingBatchItem{
				{Variety: "SONA", Bags: 20, TotalWeightKg: 990},
				{Variety: "HMT", Bags: 10, TotalWeightKg: 495},
			},
		},
	}

	first := ReplayLedger(purchases, sales, batches)
	if len(first) != 6 {
		t.Fatalf("replay produced %d entries, want 6", len(first))
	}

	// Balances folded from the replayed rows must equal the sums taken
	// straight from the stored items.
	bags := map[string]int{}
	kg := map[string]float64{}
	for _, e := range first {
		bags[e.Variety] += e.BagsChange
		kg[e.Variety] += e.WeightChangeKg
	}
	wantBags := map[string]int{}
	wantKg := map[string]float64{}
	for _, b := range purchases {
		for _, it := range b.Items {
			wantBags[it.Variety] += it.Bags
			wantKg[it.Variety] += it.WeightQtl * KgPerQuintal
		}
	}
	for _, b := range sales {
		for _, it := range b.Items {
			wantBags[it.Variety] -= it.Bags
			wantKg[it.Variety] -= it.WeightQtl * KgPerQuintal
		}
	}
	for _, b := range batches {
		for _, it := range b.Items {
			wantBags[it.Variety] -= it.Bags
			wantKg[it.Variety] -= it.TotalWeightKg
		}
	}
	for variety, want := range wantBags {
		if bags[variety] != want {
			t.Errorf("%s balance = %d bags, want %d", variety, bags[variety], want)
		}
	}
	for variety, want := range wantKg {
		if kg[variety] != want {
			t.Errorf("%s balance = %v kg, want %v", variety, kg[variety], want)
		}
	}
	if bags["SONA"] != 100 || kg["SONA"] != 4935 {
		t.Errorf("SONA = %d bags %v kg, want 100 bags 4935 kg", bags["SONA"], kg["SONA"])
	}
	if bags["HMT"] != 30 || kg["HMT"] != 1485 {
		t.Errorf("HMT = %d bags %v kg, want 30 bags 1485 kg", bags["HMT"], kg["HMT"])
	}

	second := ReplayLedger(purchases, sales, batches)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second replay differs from first:\n%+v\n%+v", second, first)
	}
}

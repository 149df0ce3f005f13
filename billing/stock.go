package billing

import (
	"strings"
	"time"

	"ricemill/models"
)

// StockLookup reads the current ledger position of one variety. Both
// storage backends satisfy it; tests inject maps.
type StockLookup func(variety string) (models.StockLevel, error)

// PurchaseLedgerEntries builds the positive ledger rows for a committed
// purchase bill. Item weights are quintals on the bill and kilograms here.
func PurchaseLedgerEntries(bill *models.PurchaseBill) []models.StockLedgerEntry {
	entries := make([]models.StockLedgerEntry, 0, len(bill.Items))
	for _, it := range bill.Items {
		entries = append(entries, models.StockLedgerEntry{
			Date:           bill.BillDate,
			MovementType:   models.MovementPurchase,
			RefID:          bill.BillNo,
			Variety:        it.Variety,
			BagsChange:     it.Bags,
			WeightChangeKg: it.WeightQtl * KgPerQuintal,
		})
	}
	return entries
}

// SalesLedgerEntries builds the negative ledger rows for a sales bill.
func SalesLedgerEntries(bill *models.SalesBill) []models.StockLedgerEntry {
	entries := make([]models.StockLedgerEntry, 0, len(bill.Items))
	for _, it := range bill.Items {
		entries = append(entries, models.StockLedgerEntry{
			Date:           bill.BillDate,
			MovementType:   models.MovementSale,
			RefID:          bill.BillNo,
			Variety:        it.Variety,
			BagsChange:     -it.Bags,
			WeightChangeKg: -(it.WeightQtl * KgPerQuintal),
		})
	}
	return entries
}

// BatchLedgerEntries builds the negative ledger rows for a processing
// batch. Batch item weights are already kilograms.
func BatchLedgerEntries(batch *models.ProcessingBatch) []models.StockLedgerEntry {
	entries := make([]models.StockLedgerEntry, 0, len(batch.Items))
	for _, it := range batch.Items {
		entries = append(entries, models.StockLedgerEntry{
			Date:           batch.Date,
			MovementType:   models.MovementProcess,
			RefID:          batch.ID,
			Variety:        it.Variety,
			BagsChange:     -it.Bags,
			WeightChangeKg: -it.TotalWeightKg,
		})
	}
	return entries
}

// ReplayLedger regenerates the full ledger from stored bills and batches.
// Rows come from the same constructors that append entries at commit time,
// so a rebuilt ledger always matches one grown incrementally from the same
// history, and replaying twice yields identical entries.
func ReplayLedger(purchases []*models.PurchaseBill, sales []*models.SalesBill, batches []*models.ProcessingBatch) []models.StockLedgerEntry {
	var entries []models.StockLedgerEntry
	for _, b := range purchases {
		entries = append(entries, PurchaseLedgerEntries(b)...)
	}
	for _, b := range sales {
		entries = append(entries, SalesLedgerEntries(b)...)
	}
	for _, b := range batches {
		entries = append(entries, BatchLedgerEntries(b)...)
	}
	return entries
}

type varietyBags struct {
	variety string
	bags    int
}

// requiredBags totals requested bags per normalized variety, keeping
// first-seen order so rejections are deterministic. Two lines of the same
// variety must be checked jointly or they could oversell together.
func requiredBags(varieties []string, bags []int) []varietyBags {
	index := make(map[string]int)
	var out []varietyBags
	for i, v := range varieties {
		name := NormalizeName(v)
		if pos, ok := index[name]; ok {
			out[pos].bags += bags[i]
			continue
		}
		index[name] = len(out)
		out = append(out, varietyBags{variety: name, bags: bags[i]})
	}
	return out
}

// CheckSaleStock verifies every variety on a sales bill against the ledger
// before any write. The first shortfall rejects the whole bill.
func CheckSaleStock(items []models.SalesBillItem, lookup StockLookup) error {
	varieties := make([]string, len(items))
	bags := make([]int, len(items))
	for i, it := range items {
		varieties[i] = it.Variety
		bags[i] = it.Bags
	}
	for _, req := range requiredBags(varieties, bags) {
		stock, err := lookup(req.variety)
		if err != nil {
			return err
		}
		if stock.Bags < req.bags {
			return &InsufficientStockError{Variety: req.variety, Available: stock.Bags, Required: req.bags}
		}
	}
	return nil
}

// BuildProcessingBatch turns a consumption request into a fully-derived
// batch using the pre-batch ledger snapshot: every item is priced at the
// average unit weight read before any deduction of this batch applies. The
// whole batch is rejected on any shortfall or on a variety with no usable
// weight history.
func BuildProcessingBatch(date time.Time, items []models.BatchItemRequest, lookup StockLookup) (*models.ProcessingBatch, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "at least one item required"}
	}
	varieties := make([]string, len(items))
	bags := make([]int, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.Variety) == "" {
			return nil, &ValidationError{Field: "items.variety", Reason: "required"}
		}
		if it.Bags <= 0 {
			return nil, &ValidationError{Field: "items.bags", Reason: "must be positive"}
		}
		varieties[i] = it.Variety
		bags[i] = it.Bags
	}

	fy := FinancialYear(date)
	batch := &models.ProcessingBatch{
		Date:          date,
		FinancialYear: fy,
		Status:        "COMPLETED",
	}

	for _, req := range requiredBags(varieties, bags) {
		stock, err := lookup(req.variety)
		if err != nil {
			return nil, err
		}
		if stock.Bags < req.bags {
			return nil, &InsufficientStockError{Variety: req.variety, Available: stock.Bags, Required: req.bags}
		}
		if stock.AvgUnitWeightKg <= 0 {
			return nil, &ValidationError{Field: "items.variety", Reason: "no usable weight history for " + req.variety}
		}
		weight := float64(req.bags) * stock.AvgUnitWeightKg
		batch.Items = append(batch.Items, models.ProcessingBatchItem{
			Variety:       req.variety,
			Bags:          req.bags,
			AvgWeightKg:   stock.AvgUnitWeightKg,
			TotalWeightKg: weight,
		})
		batch.TotalInputBags += req.bags
		batch.TotalInputWeightKg += weight
	}
	return batch, nil
}

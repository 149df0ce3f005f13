package billing

import (
	"strings"
	"time"

	"ricemill/models"
)

const dateLayout = "2006-01-02"

// NormalizeName upper-cases and trims a party or variety name. Master rows
// are matched case-insensitively, so this is the canonical stored form.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ComputePurchaseBill validates the raw entry payload and derives every
// stored figure: final weight from the weighbridge readings, per-item
// moisture-adjusted rates and weight shares, gross, and net payable. The
// bill number and party id are filled in by the store at commit time.
func ComputePurchaseBill(req *models.PurchaseBillRequest) (*models.PurchaseBill, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(req.PartyName) == "" {
		return nil, &ValidationError{Field: "party_name", Reason: "required"}
	}
	if req.TotalBags <= 0 {
		return nil, &ValidationError{Field: "total_bags", Reason: "must be positive"}
	}
	if len(req.Items) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "at least one item required"}
	}

	itemBags := 0
	for _, it := range req.Items {
		if strings.TrimSpace(it.Variety) == "" {
			return nil, &ValidationError{Field: "items.variety", Reason: "required"}
		}
		if it.Bags <= 0 {
			return nil, &ValidationError{Field: "items.bags", Reason: "must be positive"}
		}
		if it.BaseRate <= 0 {
			return nil, &ValidationError{Field: "items.base_rate", Reason: "must be positive"}
		}
		if it.Moisture < 0 {
			return nil, &ValidationError{Field: "items.moisture", Reason: "cannot be negative"}
		}
		itemBags += it.Bags
	}

	finalKg := FinalWeight(req.TruckWeight1Kg, req.TruckWeight2Kg, req.TruckWeight3Kg)
	finalQtl := finalKg / KgPerQuintal
	dist := AllocatedBags(itemBags, req.TotalBags)

	bill := &models.PurchaseBill{
		BillDate:        date,
		TotalBags:       req.TotalBags,
		TruckWeight1Kg:  req.TruckWeight1Kg,
		TruckWeight2Kg:  req.TruckWeight2Kg,
		TruckWeight3Kg:  req.TruckWeight3Kg,
		FinalWeightQtl:  finalQtl,
		DiscountPercent: req.DiscountPercent,
		Brokerage:       req.Brokerage,
		Hamali:          req.Hamali,
		OthersAmount:    req.OthersAmount,
	}
	if s := strings.TrimSpace(req.LorryNo); s != "" {
		bill.LorryNo = &s
	}
	if s := strings.TrimSpace(req.OthersDesc); s != "" {
		bill.OthersDesc = &s
	}

	var gross int64
	for _, it := range req.Items {
		rate := MoistureAdjustedRate(it.BaseRate, it.Moisture)
		weight := DistributeWeight(it.Bags, dist, finalQtl)
		amount := ItemAmount(weight, rate)
		gross += amount
		bill.Items = append(bill.Items, models.PurchaseBillItem{
			Variety:        NormalizeName(it.Variety),
			Bags:           it.Bags,
			Moisture:       it.Moisture,
			BaseRate:       it.BaseRate,
			CalculatedRate: rate,
			WeightQtl:      weight,
			Amount:         amount,
		})
	}
	bill.GrossAmount = gross
	bill.NetPayable = NetPayable(gross, req.DiscountPercent, req.Brokerage, req.Hamali, req.OthersAmount)
	return bill, nil
}

// ComputeSalesBill mirrors ComputePurchaseBill for outward bills: no
// weighbridge triplet, no moisture adjustment, the final weight comes
// straight from the form.
func ComputeSalesBill(req *models.SalesBillRequest) (*models.SalesBill, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(req.PartyName) == "" {
		return nil, &ValidationError{Field: "party_name", Reason: "required"}
	}
	if req.TotalBags <= 0 {
		return nil, &ValidationError{Field: "total_bags", Reason: "must be positive"}
	}
	if req.FinalWeightQtl <= 0 {
		return nil, &ValidationError{Field: "final_weight_qtl", Reason: "must be positive"}
	}
	if len(req.Items) == 0 {
		return nil, &ValidationError{Field: "items", Reason: "at least one item required"}
	}

	itemBags := 0
	for _, it := range req.Items {
		if strings.TrimSpace(it.Variety) == "" {
			return nil, &ValidationError{Field: "items.variety", Reason: "required"}
		}
		if it.Bags <= 0 {
			return nil, &ValidationError{Field: "items.bags", Reason: "must be positive"}
		}
		if it.Rate <= 0 {
			return nil, &ValidationError{Field: "items.rate", Reason: "must be positive"}
		}
		itemBags += it.Bags
	}

	dist := AllocatedBags(itemBags, req.TotalBags)

	bill := &models.SalesBill{
		BillDate:        date,
		TotalBags:       req.TotalBags,
		FinalWeightQtl:  req.FinalWeightQtl,
		DiscountPercent: req.DiscountPercent,
		Brokerage:       req.Brokerage,
		Hamali:          req.Hamali,
		OthersAmount:    req.OthersAmount,
	}
	if s := strings.TrimSpace(req.LorryNo); s != "" {
		bill.LorryNo = &s
	}
	if s := strings.TrimSpace(req.OthersDesc); s != "" {
		bill.OthersDesc = &s
	}

	var gross int64
	for _, it := range req.Items {
		weight := DistributeWeight(it.Bags, dist, req.FinalWeightQtl)
		amount := ItemAmount(weight, it.Rate)
		gross += amount
		bill.Items = append(bill.Items, models.SalesBillItem{
			Variety:   NormalizeName(it.Variety),
			Bags:      it.Bags,
			Rate:      it.Rate,
			WeightQtl: weight,
			Amount:    amount,
		})
	}
	bill.GrossAmount = gross
	bill.NetPayable = NetPayable(gross, req.DiscountPercent, req.Brokerage, req.Hamali, req.OthersAmount)
	return bill, nil
}

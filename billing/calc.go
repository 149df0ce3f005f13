// Package billing holds the pure calculation core of the mill: weighbridge
// weight selection, moisture-adjusted rates, proportional weight allocation,
// rupee rounding, financial-year batch numbering, and the stock-sufficiency
// rules. Nothing in here touches storage.
package billing

import (
	"github.com/shopspring/decimal"
)

// KgPerQuintal is the only unit conversion in the system. Bills and items
// carry quintals; the stock ledger carries kilograms.
const KgPerQuintal = 100.0

// MoistureThreshold is the reference moisture percent. Readings at or below
// it leave the rate untouched; every point above deducts one percent.
const MoistureThreshold = 14.0

// FinalWeight returns the lowest strictly-positive weighbridge reading, or 0
// when none is positive. Lorries are weighed up to three times; the lowest
// pass is trusted against scale drift and padding.
func FinalWeight(readings ...float64) float64 {
	final := 0.0
	for _, r := range readings {
		if r > 0 && (final == 0 || r < final) {
			final = r
		}
	}
	return final
}

// AllocatedBags picks the denominator for weight distribution: the summed
// item bags when any were entered, else the declared bill total, else 1 so a
// degenerate form never divides by zero.
func AllocatedBags(itemBagsTotal, declaredTotal int) int {
	if itemBagsTotal > 0 {
		return itemBagsTotal
	}
	if declaredTotal > 0 {
		return declaredTotal
	}
	return 1
}

// DistributeWeight gives an item its bag-share of the bill's final weight.
func DistributeWeight(itemBags, totalAllocatedBags int, finalWeight float64) float64 {
	if totalAllocatedBags <= 0 {
		totalAllocatedBags = 1
	}
	return (float64(itemBags) / float64(totalAllocatedBags)) * finalWeight
}

// MoistureAdjustedRate deducts one percent of the base rate for every
// moisture point above the threshold.
func MoistureAdjustedRate(baseRate, moisture float64) float64 {
	deduction := moisture - MoistureThreshold
	if deduction <= 0 {
		return baseRate
	}
	rate := decimal.NewFromFloat(baseRate).
		Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(deduction).Div(decimal.NewFromInt(100))))
	f, _ := rate.Float64()
	return f
}

// ItemAmount rounds weight × rate half-up to whole rupees. This is the
// single rounding point for item money; stored amounts are never re-rounded.
func ItemAmount(weightQtl, rate float64) int64 {
	return decimal.NewFromFloat(weightQtl).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).
		IntPart()
}

// DiscountAmount rounds gross × percent / 100 half-up to whole rupees.
func DiscountAmount(gross int64, discountPercent float64) int64 {
	return decimal.NewFromInt(gross).
		Mul(decimal.NewFromFloat(discountPercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// NetPayable is gross − discount + brokerage + hamali + others.
func NetPayable(gross int64, discountPercent float64, brokerage, hamali, others int64) int64 {
	return gross - DiscountAmount(gross, discountPercent) + brokerage + hamali + others
}

// AutoBrokerage sums each item's weight share times its variety's default
// brokerage rate, rounded to whole rupees. It is a live suggestion for the
// entry form; the committed bill always carries the operator's figure.
func AutoBrokerage(itemBags []int, varietyRates []float64, finalWeightQtl float64) int64 {
	total := 0
	for _, b := range itemBags {
		total += b
	}
	if total <= 0 || finalWeightQtl <= 0 {
		return 0
	}
	sum := decimal.Zero
	for i, b := range itemBags {
		share := DistributeWeight(b, total, finalWeightQtl)
		sum = sum.Add(decimal.NewFromFloat(share).Mul(decimal.NewFromFloat(varietyRates[i])))
	}
	return sum.Round(0).IntPart()
}

package repository

import "ricemill/models"

// ReportRepository serves the read-only aggregations the presentation layer
// renders. Nothing here mutates state.
type ReportRepository interface {
	PurchaseRegister(start, end string) ([]models.PurchaseRegisterRow, error)
	InventorySummary() ([]models.InventorySummaryRow, error)
	ProcessingVarietyStats(start, end string) ([]models.ProcessingVarietyStat, error)
	PriceHistory(variety string) ([]models.PricePoint, error)
	LatestPrices() ([]models.LatestPrice, error)
	MoistureInsights() ([]models.MoistureInsight, error)
	SupplierRankings() ([]models.SupplierRanking, error)
	SeasonalBuying() ([]models.SeasonalStat, error)
}

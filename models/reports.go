package models

import "time"

// Read-only report rows consumed by the presentation layer.

type PurchaseRegisterRow struct {
	BillNo         int64   `json:"bill_no"`
	BillDate       string  `json:"bill_date"`
	PartyName      string  `json:"party_name"`
	TotalBags      int     `json:"total_bags"`
	FinalWeightQtl float64 `json:"final_weight_qtl"`
	NetPayable     int64   `json:"net_payable"`
	BillBrokerage  int64   `json:"bill_brokerage"`
	Variety        string  `json:"variety"`
	ItemWeightQtl  float64 `json:"item_weight_qtl"`
	Moisture       float64 `json:"moisture"`
	BaseRate       float64 `json:"base_rate"`
	BrokerageRate  float64 `json:"brokerage_rate"`
}

type InventorySummaryRow struct {
	Variety        string  `json:"variety"`
	TotalInKg      float64 `json:"total_in_kg"`
	TotalOutKg     float64 `json:"total_out_kg"`
	CurrentStockKg float64 `json:"current_stock_kg"`
	CurrentBags    int     `json:"current_bags"`
	AvgRate        float64 `json:"avg_rate"`
	StockValue     int64   `json:"stock_value"`
}

type ProcessingVarietyStat struct {
	Variety       string  `json:"variety"`
	TotalBags     int     `json:"total_bags"`
	TotalWeightKg float64 `json:"total_weight_kg"`
}

type PricePoint struct {
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

type LatestPrice struct {
	Variety string  `json:"variety"`
	Rate    float64 `json:"rate"`
}

type MoistureInsight struct {
	PartyName   string  `json:"party_name"`
	AvgMoisture float64 `json:"avg_moisture"`
	TotalBags   int     `json:"total_bags"`
}

type SupplierRanking struct {
	PartyName string  `json:"party_name"`
	AvgRate   float64 `json:"avg_rate"`
	TotalBags int     `json:"total_bags"`
}

type SeasonalStat struct {
	Month     string  `json:"month"`
	TotalBags int     `json:"total_bags"`
	AvgRate   float64 `json:"avg_rate"`
}

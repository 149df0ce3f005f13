package models

import "time"

type MovementType string

const (
	MovementPurchase MovementType = "PURCHASE"
	MovementSale     MovementType = "SALE"
	MovementProcess  MovementType = "PROCESS_IN"
)

// StockLedgerEntry is one signed inventory movement. PURCHASE rows are
// positive, SALE and PROCESS_IN rows negative. Weight is always kilograms
// here regardless of the quintal figures on the bills (1 qtl = 100 kg).
type StockLedgerEntry struct {
	ID             int64        `json:"id" bson:"_id,omitempty" db:"id"`
	Date           time.Time    `json:"date" bson:"date" db:"entry_date"`
	MovementType   MovementType `json:"movement_type" bson:"movement_type" db:"movement_type"`
	RefID          int64        `json:"ref_id" bson:"ref_id" db:"ref_id"`
	Variety        string       `json:"variety" bson:"variety" db:"variety"`
	BagsChange     int          `json:"bags_change" bson:"bags_change" db:"bags_change"`
	WeightChangeKg float64      `json:"weight_change_kg" bson:"weight_change_kg" db:"weight_change_kg"`
}

// StockLevel is the summed ledger position of one variety.
type StockLevel struct {
	Variety         string  `json:"variety"`
	Bags            int     `json:"bags"`
	WeightKg        float64 `json:"weight_kg"`
	AvgUnitWeightKg float64 `json:"avg_unit_weight_kg"`
}

package models

import "time"

// PurchaseBill is the inward paddy bill. Weighbridge readings are captured in
// kilograms; the derived final weight and the item weights are quintals.
// Monetary fields are whole rupees.
type PurchaseBill struct {
	BillNo          int64     `json:"bill_no" bson:"_id,omitempty" db:"bill_no"`
	PartyID         int64     `json:"party_id" bson:"party_id" db:"party_id"`
	BillDate        time.Time `json:"bill_date" bson:"bill_date" db:"bill_date"`
	LorryNo         *string   `json:"lorry_no,omitempty" bson:"lorry_no,omitempty" db:"lorry_no"`
	TotalBags       int       `json:"total_bags" bson:"total_bags" db:"total_bags"`
	TruckWeight1Kg  float64   `json:"truck_weight1_kg" bson:"truck_weight1_kg" db:"truck_weight1_kg"`
	TruckWeight2Kg  float64   `json:"truck_weight2_kg" bson:"truck_weight2_kg" db:"truck_weight2_kg"`
	TruckWeight3Kg  float64   `json:"truck_weight3_kg" bson:"truck_weight3_kg" db:"truck_weight3_kg"`
	FinalWeightQtl  float64   `json:"final_weight_qtl" bson:"final_weight_qtl" db:"final_weight_qtl"`
	GrossAmount     int64     `json:"gross_amount" bson:"gross_amount" db:"gross_amount"`
	DiscountPercent float64   `json:"discount_percent" bson:"discount_percent" db:"discount_percent"`
	Brokerage       int64     `json:"brokerage" bson:"brokerage" db:"brokerage"`
	Hamali          int64     `json:"hamali" bson:"hamali" db:"hamali"`
	OthersDesc      *string   `json:"others_desc,omitempty" bson:"others_desc,omitempty" db:"others_desc"`
	OthersAmount    int64     `json:"others_amount" bson:"others_amount" db:"others_amount"`
	NetPayable      int64     `json:"net_payable" bson:"net_payable" db:"net_payable"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" db:"created_at"`

	// Nested objects for responses (denormalized)
	Party           *Party             `json:"party,omitempty" bson:"-"`
	Items           []PurchaseBillItem `json:"items,omitempty" bson:"-"`
	NetPayableWords string             `json:"net_payable_words,omitempty" bson:"-"`
}

type PurchaseBillItem struct {
	ID             int64   `json:"id" bson:"_id,omitempty" db:"id"`
	BillNo         int64   `json:"bill_no" bson:"bill_no" db:"bill_no"`
	Variety        string  `json:"variety" bson:"variety" db:"variety"`
	Bags           int     `json:"bags" bson:"bags" db:"bags"`
	Moisture       float64 `json:"moisture" bson:"moisture" db:"moisture"`
	BaseRate       float64 `json:"base_rate" bson:"base_rate" db:"base_rate"`
	CalculatedRate float64 `json:"calculated_rate" bson:"calculated_rate" db:"calculated_rate"`
	WeightQtl      float64 `json:"weight_qtl" bson:"weight_qtl" db:"weight_qtl"`
	Amount         int64   `json:"amount" bson:"amount" db:"amount"`
}

// PurchaseBillRequest is the raw entry-form payload. All derived values
// (final weight, adjusted rates, item weights, amounts, net payable) are
// computed server-side; the brokerage here is the operator's committed
// figure, not the auto suggestion.
type PurchaseBillRequest struct {
	Date            string                `json:"date"` // "2006-01-02"
	PartyName       string                `json:"party_name"`
	LorryNo         string                `json:"lorry_no"`
	TotalBags       int                   `json:"total_bags"`
	TruckWeight1Kg  float64               `json:"truck_weight1_kg"`
	TruckWeight2Kg  float64               `json:"truck_weight2_kg"`
	TruckWeight3Kg  float64               `json:"truck_weight3_kg"`
	DiscountPercent float64               `json:"discount_percent"`
	Brokerage       int64                 `json:"brokerage"`
	Hamali          int64                 `json:"hamali"`
	OthersDesc      string                `json:"others_desc"`
	OthersAmount    int64                 `json:"others_amount"`
	Items           []PurchaseItemRequest `json:"items"`
}

type PurchaseItemRequest struct {
	Variety  string  `json:"variety"`
	Bags     int     `json:"bags"`
	Moisture float64 `json:"moisture"`
	BaseRate float64 `json:"base_rate"`
}

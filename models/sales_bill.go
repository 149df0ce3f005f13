package models

import "time"

// SalesBill is the outward bill. No weighbridge triplet here: the operator
// supplies the final weight (quintals) directly.
type SalesBill struct {
	BillNo          int64     `json:"bill_no" bson:"_id,omitempty" db:"bill_no"`
	PartyID         int64     `json:"party_id" bson:"party_id" db:"party_id"`
	BillDate        time.Time `json:"bill_date" bson:"bill_date" db:"bill_date"`
	LorryNo         *string   `json:"lorry_no,omitempty" bson:"lorry_no,omitempty" db:"lorry_no"`
	TotalBags       int       `json:"total_bags" bson:"total_bags" db:"total_bags"`
	FinalWeightQtl  float64   `json:"final_weight_qtl" bson:"final_weight_qtl" db:"final_weight_qtl"`
	GrossAmount     int64     `json:"gross_amount" bson:"gross_amount" db:"gross_amount"`
	DiscountPercent float64   `json:"discount_percent" bson:"discount_percent" db:"discount_percent"`
	Brokerage       int64     `json:"brokerage" bson:"brokerage" db:"brokerage"`
	Hamali          int64     `json:"hamali" bson:"hamali" db:"hamali"`
	OthersDesc      *string   `json:"others_desc,omitempty" bson:"others_desc,omitempty" db:"others_desc"`
	OthersAmount    int64     `json:"others_amount" bson:"others_amount" db:"others_amount"`
	NetPayable      int64     `json:"net_payable" bson:"net_payable" db:"net_payable"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" db:"created_at"`

	Party           *Party          `json:"party,omitempty" bson:"-"`
	Items           []SalesBillItem `json:"items,omitempty" bson:"-"`
	NetPayableWords string          `json:"net_payable_words,omitempty" bson:"-"`
}

type SalesBillItem struct {
	ID        int64   `json:"id" bson:"_id,omitempty" db:"id"`
	BillNo    int64   `json:"bill_no" bson:"bill_no" db:"bill_no"`
	Variety   string  `json:"variety" bson:"variety" db:"variety"`
	Bags      int     `json:"bags" bson:"bags" db:"bags"`
	Rate      float64 `json:"rate" bson:"rate" db:"rate"`
	WeightQtl float64 `json:"weight_qtl" bson:"weight_qtl" db:"weight_qtl"`
	Amount    int64   `json:"amount" bson:"amount" db:"amount"`
}

type SalesBillRequest struct {
	Date            string             `json:"date"`
	PartyName       string             `json:"party_name"`
	LorryNo         string             `json:"lorry_no"`
	TotalBags       int                `json:"total_bags"`
	FinalWeightQtl  float64            `json:"final_weight_qtl"`
	DiscountPercent float64            `json:"discount_percent"`
	Brokerage       int64              `json:"brokerage"`
	Hamali          int64              `json:"hamali"`
	OthersDesc      string             `json:"others_desc"`
	OthersAmount    int64              `json:"others_amount"`
	Items           []SalesItemRequest `json:"items"`
}

type SalesItemRequest struct {
	Variety string  `json:"variety"`
	Bags    int     `json:"bags"`
	Rate    float64 `json:"rate"`
}

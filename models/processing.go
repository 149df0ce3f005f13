package models

import "time"

// ProcessingBatch records a milling run's raw-paddy consumption. Batch
// numbers restart every financial year ("7/25-26"). Batches are immutable
// once committed.
type ProcessingBatch struct {
	ID                 int64     `json:"id" bson:"_id,omitempty" db:"id"`
	BatchNo            string    `json:"batch_no" bson:"batch_no" db:"batch_no"`
	Date               time.Time `json:"date" bson:"date" db:"batch_date"`
	FinancialYear      string    `json:"financial_year" bson:"financial_year" db:"financial_year"`
	TotalInputBags     int       `json:"total_input_bags" bson:"total_input_bags" db:"total_input_bags"`
	TotalInputWeightKg float64   `json:"total_input_weight_kg" bson:"total_input_weight_kg" db:"total_input_weight_kg"`
	Status             string    `json:"status" bson:"status" db:"status"`

	Items []ProcessingBatchItem `json:"items,omitempty" bson:"-"`
}

type ProcessingBatchItem struct {
	ID            int64   `json:"id" bson:"_id,omitempty" db:"id"`
	BatchID       int64   `json:"batch_id" bson:"batch_id" db:"batch_id"`
	Variety       string  `json:"variety" bson:"variety" db:"variety"`
	Bags          int     `json:"bags" bson:"bags" db:"bags"`
	AvgWeightKg   float64 `json:"avg_weight_kg" bson:"avg_weight_kg" db:"avg_weight_kg"`
	TotalWeightKg float64 `json:"total_weight_kg" bson:"total_weight_kg" db:"total_weight_kg"`
}

type ProcessingBatchRequest struct {
	Date  string             `json:"date"`
	Items []BatchItemRequest `json:"items"`
}

type BatchItemRequest struct {
	Variety string `json:"variety"`
	Bags    int    `json:"bags"`
}

package models

type PaddyVariety struct {
	ID                   int64   `json:"id" bson:"_id,omitempty" db:"id"`
	Name                 string  `json:"name" bson:"name" db:"variety_name"`
	DefaultBrokerageRate float64 `json:"default_brokerage_rate" bson:"default_brokerage_rate" db:"default_brokerage_rate"`
}

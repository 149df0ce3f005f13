package models

import "time"

type Party struct {
	ID        int64     `json:"id" bson:"_id,omitempty" db:"id"`
	Name      string    `json:"name" bson:"name" db:"party_name"`
	GSTNo     *string   `json:"gst_no,omitempty" bson:"gst_no,omitempty" db:"gst_no"`
	MobileNo  *string   `json:"mobile_no,omitempty" bson:"mobile_no,omitempty" db:"mobile_no"`
	Address   *string   `json:"address,omitempty" bson:"address,omitempty" db:"address"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

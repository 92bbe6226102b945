package models

import "time"

// Trade pairs two objects owned by the same person, e.g. USD/AAPL.
type Trade struct {
	ID            int64     `json:"id"`
	Owner         int64     `json:"owner"`
	BaseObjectID  int64     `json:"base_object_id"`
	QuoteObjectID int64     `json:"quote_object_id"`
	Alias         *string   `json:"alias,omitempty"`
	Remark        *string   `json:"remark,omitempty"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

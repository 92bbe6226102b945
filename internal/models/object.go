package models

import "time"

// Object is anything a person trades: a currency, a stock, a fund share.
type Object struct {
	ID        int64     `json:"id"`
	Owner     int64     `json:"owner"`
	Symbol    string    `json:"symbol"`
	Alias     *string   `json:"alias,omitempty"`
	Remark    *string   `json:"remark,omitempty"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

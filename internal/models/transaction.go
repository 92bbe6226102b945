package models

import "time"

// Transaction is a single execution of a trade. IsBaseToQuote records the
// direction: true means base was sold for quote.
type Transaction struct {
	ID            int64     `json:"id"`
	TradeID       int64     `json:"trade_id"`
	Quantity      Quantity  `json:"quantity"`
	IsBaseToQuote bool      `json:"is_base_to_quote"`
	Alias         *string   `json:"alias,omitempty"`
	Remark        *string   `json:"remark,omitempty"`
	OccurrenceAt  time.Time `json:"occurrence_at"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

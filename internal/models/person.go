package models

import "time"

type Person struct {
	ID           int64     `json:"id"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"-"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

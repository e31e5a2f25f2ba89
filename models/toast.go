package models

import "time"

// Toast is a transient user facing notification
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

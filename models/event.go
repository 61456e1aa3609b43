package models

import "time"

const (
	EventUserRegistered = "user.registered"
	EventProductCreated = "product.created"
	EventProductRemoved = "product.removed"
)

// Event is the envelope published to the events topic.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

type UserRegisteredData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type ProductEventData struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

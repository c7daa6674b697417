package model

import "time"

// Audience addresses a notification to a group of users rather than one person.
type Audience string

const AudienceAdmin Audience = "admin"

// Notification is a fan-out message stored for an audience.
type Notification struct {
	ID        string    `json:"id"`
	Audience  Audience  `json:"audience"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// User represents a user in the system
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not serialized
	CreatedAt      time.Time `json:"created_at"`
}

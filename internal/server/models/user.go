// Package models defines the server-side data model persisted in the catalog.
package models

import "time"

// User is an account in the identity subsystem. The storage engine only
// reads ID and UserName for ownership checks.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}

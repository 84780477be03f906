// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account known to the system. Its identity is assigned by the store on
// creation and never changes afterwards.
type User struct {
	ID           uuid.UUID // Assigned by the store.
	Name         string    // Display name, never empty.
	Email        string    // Login identifier, unique across all users.
	Age          *int      // Optional.
	PasswordHash string    // bcrypt digest. Never leaves the service layer.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone returns a copy that shares no pointers with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	clone := *u
	if u.Age != nil {
		age := *u.Age
		clone.Age = &age
	}

	return &clone
}

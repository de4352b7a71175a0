package auth

import (
	"time"

	"github.com/campusdrive/campusdrive/internal/shared"
)

// User represents a user account row, password hash included. Only this
// package ever sees the hash; everything else works with shared.Principal.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	Role         shared.Role
	Tier         shared.Tier
	CreatedAt    time.Time
}

// Principal strips the user down to its session representation.
func (u *User) Principal() *shared.Principal {
	if u == nil {
		return nil
	}
	return &shared.Principal{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
		Tier:     u.Tier,
	}
}

package users

import (
	"time"

	"github.com/campusdrive/campusdrive/internal/shared"
)

// User is the administrative view of an account. The password hash is
// never serialized.
type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Name         string      `json:"name"`
	PasswordHash string      `json:"-"`
	Role         shared.Role `json:"role"`
	Tier         shared.Tier `json:"subscriptionTier"`
	CreatedAt    time.Time   `json:"createdAt"`
}

package shared

// Role describes what a user account is allowed to do.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Tier is the subscription level gating which drives a student may view.
type Tier string

const (
	TierFree    Tier = "FREE"
	TierPremium Tier = "PREMIUM"
)

// Principal is the authenticated user stored in the session. It never
// carries the password hash.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Tier     Tier   `json:"subscriptionTier,omitempty"`
}

// IsSuperAdmin reports whether the principal holds the SUPER_ADMIN role.
func (p *Principal) IsSuperAdmin() bool {
	return p != nil && p.Role == RoleSuperAdmin
}

// CanMutate reports whether the principal may update or delete a record
// posted by ownerID. Posters may touch their own records; SUPER_ADMIN may
// touch anything.
func (p *Principal) CanMutate(ownerID string) bool {
	if p == nil {
		return false
	}
	return p.ID == ownerID || p.Role == RoleSuperAdmin
}

// HasRole reports whether the principal's role is in the allowed set. An
// empty set allows any authenticated principal.
func (p *Principal) HasRole(allowed ...Role) bool {
	if p == nil {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if p.Role == r {
			return true
		}
	}
	return false
}

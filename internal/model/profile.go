package model

// Profile roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// CustomerProfile holds the shipping contact data for an account.
// Phone is stored digits-only.
type CustomerProfile struct {
	UserID   string `json:"userId" db:"user_id"`
	FullName string `json:"fullName" db:"full_name"`
	Phone    string `json:"phone" db:"phone"`
	Address  string `json:"address" db:"address"`
	Role     string `json:"role" db:"role"`
}

// IsAdmin reports whether the profile belongs to an administrator.
func (p *CustomerProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

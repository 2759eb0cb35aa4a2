package domain

import "time"

// Role grants access to a set of routes. Customers transact on their own
// accounts, bankers run the approval queue and deposits, admins manage accounts.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleBanker   Role = "BANKER"
	RoleAdmin    Role = "ADMIN"
)

// User is an identity that owns accounts, schedules and bill payments.
// PasswordHash is written exactly once at registration; there is no
// "maybe already hashed" state anywhere in the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	FullName     string    `json:"fullName"`
	Active       bool      `json:"active"`
	PANNumber    string    `json:"panNumber,omitempty"` // linked once, shared by all of the customer's accounts
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

package domain

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleClient   = "CLIENT"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee || role == RoleClient
}

// User models an account in the system. Exactly one of Employee or Client is
// set for non-admin users, depending on the role.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Employee     *Employee `json:"employee,omitempty"`
	Client       *Client   `json:"client,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Employee is the profile attached to EMPLOYEE users.
type Employee struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	JoinedDate time.Time `json:"joined_date"`
}

// Client is the profile attached to CLIENT users.
type Client struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// Principal is the identity resolved from a session token. It is derived
// fresh on every request and never persisted.
type Principal struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

package auth

import (
	"database/sql"
	"time"
)

// User is one row of the users table (registered application account).
type User struct {
	ID           int64
	EmployeeNo   string
	DisplayName  string
	PasswordHash string
	DepartmentID sql.NullInt64
	Role         string
	Status       string
	CreatedAt    time.Time
}

// Account roles. Page visibility on the frontend is gated by these.
const (
	RoleAdmin    = "admin"
	RoleSubAdmin = "sub-admin"
	RoleUser     = "user"
)

// Account statuses. New registrations start as pending until an admin approves.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
)

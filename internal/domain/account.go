package domain

import "time"

// AccountRole enumerates dashboard access levels.
type AccountRole string

const (
	AccountRoleAdmin   AccountRole = "ADMIN"
	AccountRoleManager AccountRole = "MANAGER"
	AccountRoleViewer  AccountRole = "VIEWER"
)

// Account is a dashboard login identity.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         AccountRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

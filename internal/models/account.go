package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
)

// Role is the single authorization attribute of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole accepts "user", "admin" or "" (meaning user).
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", common.ErrValidation, s)
}

// Account is a registered identity. Accounts are never updated or deleted.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`

	PasswordHash []byte `json:"passwordHash,omitempty"`
	PasswordSalt []byte `json:"passwordSalt,omitempty"`
}

func (a Account) IsAdmin() bool { return a.Role == RoleAdmin }

// Public returns a copy without credential material, suitable for the
// session slot and for display.
func (a Account) Public() Account {
	a.PasswordHash = nil
	a.PasswordSalt = nil
	return a
}

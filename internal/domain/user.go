package domain

import (
	"context"
	"strings"
	"time"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleConsultant Role = "consultant"
)

// ParseRole accepts only the two known roles; anything else is ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleConsultant:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the only shape of a user that leaves the service.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Patrimony is one asset line of a client's holdings.
type Patrimony struct {
	Category string  `json:"categoria"`
	Value    float64 `json:"valor"`
}

// NormalizeEmail makes email uniqueness case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AccountRepository interface {
	CreateUser(ctx context.Context, u *User) error
	CreateClientProfile(ctx context.Context, userID string) error
	CreateConsultantProfile(ctx context.Context, userID string) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]User, int64, error)
	ListPatrimony(ctx context.Context, userID string) ([]Patrimony, error)

	// Transaction runs fn against a repository bound to one storage
	// transaction. It commits iff fn returns nil and rolls back otherwise,
	// including when fn panics.
	Transaction(ctx context.Context, fn func(tx AccountRepository) error) error
}

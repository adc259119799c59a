package user

import (
	"time"

	"github.com/gab-correia/w1-app/internal/domain"
)

type UserModel struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Name         string `gorm:"size:128;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	Role         string `gorm:"size:16;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) ToDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func FromDomain(u *domain.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
	}
}

// ClientModel exists iff the owning user has role client.
type ClientModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	User      UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ClientModel) TableName() string { return "clients" }

// ConsultantModel exists iff the owning user has role consultant.
type ConsultantModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	User      UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ConsultantModel) TableName() string { return "consultants" }

type PatrimonyModel struct {
	ID       uint        `gorm:"primaryKey"`
	ClientID uint        `gorm:"index;not null"`
	Client   ClientModel `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Category string      `gorm:"size:64;not null"`
	Value    float64     `gorm:"not null"`
}

func (PatrimonyModel) TableName() string { return "patrimonies" }

// Models lists every table in migration order.
func Models() []any {
	return []any{&UserModel{}, &ClientModel{}, &ConsultantModel{}, &PatrimonyModel{}}
}

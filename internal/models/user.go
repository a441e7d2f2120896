package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        *string        `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Enabled      bool           `gorm:"not null;default:true" json:"enabled"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks    []Task    `gorm:"foreignKey:OwnerID" json:"-"`
	Projects []Project `gorm:"foreignKey:OwnerID" json:"-"`
}

// Authorities returns the granted authorities derived from the user's role.
// Admins hold both authorities.
func (u User) Authorities() []string {
	if u.Role == RoleAdmin {
		return []string{string(RoleUser), string(RoleAdmin)}
	}
	return []string{string(RoleUser)}
}

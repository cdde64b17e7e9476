package model

import (
	"time"

	"github.com/google/uuid"
)

// Role ids as provisioned by the directory platform.
const (
	RoleAdmin   = 1
	RoleManager = 2
)

// Profile mirrors the directory-owned profiles table. This service only reads it.
type Profile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID            uint      `gorm:"not null;index"`
	Username         string
	Email            string
	RoleID           int  `gorm:"not null"`
	CanCloseRegister bool `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) IsAdmin() bool { return p.RoleID == RoleAdmin }

// IsManager is true for admins as well as managers.
func (p *Profile) IsManager() bool { return p.RoleID == RoleAdmin || p.RoleID == RoleManager }

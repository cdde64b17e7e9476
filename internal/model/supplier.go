package model

import "time"

// Supplier is an org-scoped vendor keyed by its AFM (Greek tax id).
type Supplier struct {
	ID            uint   `gorm:"primaryKey"`
	OrgID         uint   `gorm:"not null;uniqueIndex:idx_supplier_org_afm"`
	Name          string `gorm:"not null"`
	AFM           string `gorm:"column:afm;not null;uniqueIndex:idx_supplier_org_afm"`
	Phone         *string
	Email         *string
	Address       *string
	ContactPerson *string
	PaymentTerms  *string
	Notes         *string
	IsActive      bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Supplier) TableName() string { return "suppliers" }

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Closing status values. Transitions only move forward: draft → submitted → reviewed.
const (
	ClosingDraft     = "draft"
	ClosingSubmitted = "submitted"
	ClosingReviewed  = "reviewed"
)

// Supplier payment methods. Only cash leaves the register drawer.
const (
	PaymentCash         = "cash"
	PaymentBankTransfer = "bank_transfer"
	PaymentCheck        = "check"
)

// DailyRegisterClosing is the reconciled close of one organization's register for one day.
type DailyRegisterClosing struct {
	ID          uint      `gorm:"primaryKey"`
	OrgID       uint      `gorm:"not null;uniqueIndex:idx_closing_org_date"`
	ClosingDate Date      `gorm:"not null;uniqueIndex:idx_closing_org_date"`
	ClosedBy    uuid.UUID `gorm:"type:uuid;not null"`

	TotalSales        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CardSales         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	WoltSales         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	EfoodSales        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtherDigitalSales decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// ExpectedCash = TotalSales - digital channels
	ExpectedCash decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	OpeningFloat      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ActualCashCounted decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// CashDifference = ActualCashCounted - (ExpectedCash + OpeningFloat)
	CashDifference decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TotalSupplierPayments decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalExpenses         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// FinalCashBalance = ActualCashCounted - TotalSupplierPayments - TotalExpenses
	FinalCashBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TomorrowOpeningFloat decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CashDeposit          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Notes      *string
	Status     string     `gorm:"type:varchar(20);not null;default:'submitted'"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	SupplierPayments []RegisterSupplierPayment `gorm:"foreignKey:ClosingID;constraint:OnDelete:CASCADE"`
	Expenses         []RegisterExpense         `gorm:"foreignKey:ClosingID;constraint:OnDelete:CASCADE"`
}

func (DailyRegisterClosing) TableName() string { return "daily_register_closings" }

// RegisterSupplierPayment is a supplier paid on the day of a closing.
type RegisterSupplierPayment struct {
	ID            uint  `gorm:"primaryKey"`
	ClosingID     uint  `gorm:"not null;index"`
	SupplierID    *uint `gorm:"index"`
	SupplierName  *string
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null;default:'cash'"`
	InvoiceNumber *string
	Notes         *string
	CreatedAt     time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID;constraint:OnDelete:SET NULL"`
}

func (RegisterSupplierPayment) TableName() string { return "register_supplier_payments" }

// RegisterExpense is a cash expense taken out of the register on the day of a closing.
type RegisterExpense struct {
	ID              uint `gorm:"primaryKey"`
	ClosingID       uint `gorm:"not null;index"`
	ExpenseCategory *string
	Description     *string
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt       time.Time
}

func (RegisterExpense) TableName() string { return "register_expenses" }

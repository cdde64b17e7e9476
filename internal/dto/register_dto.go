package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SupplierPaymentInput struct {
	SupplierID    *uint   `json:"supplier_id"    validate:"omitempty,gt=0"`
	SupplierName  *string `json:"supplier_name"  validate:"omitempty,max=200"`
	Amount        Amount  `json:"amount"         validate:"present,numeric,min=0,lte=9999999999.99"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash bank_transfer check"`
	InvoiceNumber *string `json:"invoice_number" validate:"omitempty,max=100"`
	Notes         *string `json:"notes"          validate:"omitempty,max=1000"`
}

type ExpenseInput struct {
	ExpenseCategory *string `json:"expense_category" validate:"omitempty,max=100"`
	Description     *string `json:"description"      validate:"omitempty,max=500"`
	Amount          Amount  `json:"amount"           validate:"present,numeric,min=0,lte=9999999999.99"`
}

// SubmitClosingRequest is the day's register submission. Blank digital-sales
// fields count as zero; the cash fields are mandatory.
type SubmitClosingRequest struct {
	ClosingDate string `json:"closing_date" validate:"omitempty,datetime=2006-01-02"`

	TotalSales        Amount `json:"total_sales"         validate:"present,numeric,min=0,lte=9999999999.99"`
	CardSales         Amount `json:"card_sales"          validate:"omitempty,numeric,min=0,lte=9999999999.99"`
	WoltSales         Amount `json:"wolt_sales"          validate:"omitempty,numeric,min=0,lte=9999999999.99"`
	EfoodSales        Amount `json:"efood_sales"         validate:"omitempty,numeric,min=0,lte=9999999999.99"`
	OtherDigitalSales Amount `json:"other_digital_sales" validate:"omitempty,numeric,min=0,lte=9999999999.99"`

	OpeningFloat         Amount `json:"opening_float"          validate:"present,numeric,min=0,lte=9999999999.99"`
	ActualCashCounted    Amount `json:"actual_cash_counted"    validate:"present,numeric,min=0,lte=9999999999.99"`
	TomorrowOpeningFloat Amount `json:"tomorrow_opening_float" validate:"present,numeric,min=0,lte=9999999999.99"`
	CashDeposit          Amount `json:"cash_deposit"           validate:"present,numeric,min=0,lte=9999999999.99"`

	SupplierPayments []SupplierPaymentInput `json:"supplier_payments" validate:"omitempty,dive"`
	Expenses         []ExpenseInput         `json:"expenses"          validate:"omitempty,dive"`
	Notes            *string                `json:"notes"             validate:"omitempty,max=2000"`
}

// ReviewClosingRequest optionally names the target status; empty advances one step.
type ReviewClosingRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=submitted reviewed"`
}

// DateSelector picks closings either by a look-back period or an explicit range.
type DateSelector struct {
	Mode      string `form:"mode"       json:"mode"       validate:"omitempty,oneof=period range"`
	Days      int    `form:"days"       json:"days"       validate:"omitempty,gt=0,lte=3660"`
	StartDate string `form:"start_date" json:"start_date" validate:"required_if=Mode range,omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   json:"end_date"   validate:"required_if=Mode range,omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AccessResponse struct {
	HasAccess bool   `json:"has_access"`
	Message   string `json:"message"`
	Username  string `json:"username,omitempty"`
	RoleID    int    `json:"role_id,omitempty"`
}

type OpeningFloatResponse struct {
	OpeningFloat decimal.Decimal `json:"opening_float"`
	FromDate     *string         `json:"from_date"`
}

type ClosedTodayResponse struct {
	Closed bool   `json:"closed"`
	Date   string `json:"date"`
}

type SupplierPaymentResponse struct {
	ID            uint            `json:"id"`
	ClosingID     uint            `json:"closing_id"`
	ClosingDate   string          `json:"closing_date,omitempty"`
	SupplierID    *uint           `json:"supplier_id"`
	SupplierName  *string         `json:"supplier_name"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	InvoiceNumber *string         `json:"invoice_number"`
	Notes         *string         `json:"notes"`
	CreatedAt     string          `json:"created_at"`
}

type ExpenseResponse struct {
	ID              uint            `json:"id"`
	ClosingID       uint            `json:"closing_id"`
	ClosingDate     string          `json:"closing_date,omitempty"`
	ExpenseCategory *string         `json:"expense_category"`
	Description     *string         `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       string          `json:"created_at"`
}

type ClosingResponse struct {
	ID          uint   `json:"id"`
	OrgID       uint   `json:"org_id"`
	ClosingDate string `json:"closing_date"`
	ClosedBy    string `json:"closed_by"`

	TotalSales        decimal.Decimal `json:"total_sales"`
	CardSales         decimal.Decimal `json:"card_sales"`
	WoltSales         decimal.Decimal `json:"wolt_sales"`
	EfoodSales        decimal.Decimal `json:"efood_sales"`
	OtherDigitalSales decimal.Decimal `json:"other_digital_sales"`
	ExpectedCash      decimal.Decimal `json:"expected_cash"`

	OpeningFloat          decimal.Decimal `json:"opening_float"`
	ActualCashCounted     decimal.Decimal `json:"actual_cash_counted"`
	CashDifference        decimal.Decimal `json:"cash_difference"`
	TotalSupplierPayments decimal.Decimal `json:"total_supplier_payments"`
	TotalExpenses         decimal.Decimal `json:"total_expenses"`
	FinalCashBalance      decimal.Decimal `json:"final_cash_balance"`
	TomorrowOpeningFloat  decimal.Decimal `json:"tomorrow_opening_float"`
	CashDeposit           decimal.Decimal `json:"cash_deposit"`

	Notes      *string `json:"notes"`
	Status     string  `json:"status"`
	ReviewedBy *string `json:"reviewed_by"`
	ReviewedAt *string `json:"reviewed_at"`
	CreatedAt  string  `json:"created_at"`

	SupplierPayments []SupplierPaymentResponse `json:"supplier_payments,omitempty"`
	Expenses         []ExpenseResponse         `json:"expenses,omitempty"`
}

type ClosingListResponse struct {
	Data      []ClosingResponse `json:"data"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
}

type SupplierPaymentsReport struct {
	Data      []SupplierPaymentResponse `json:"data"`
	Total     decimal.Decimal           `json:"total"`
	StartDate string                    `json:"start_date"`
	EndDate   string                    `json:"end_date"`
}

type ExpensesReport struct {
	Data      []ExpenseResponse `json:"data"`
	Total     decimal.Decimal   `json:"total"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
}

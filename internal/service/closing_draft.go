package service

import (
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClosingDraft accumulates one submission and derives the reconciled figures.
// It lives for a single request; nothing is persisted until Build.
type ClosingDraft struct {
	orgID    uint
	closedBy uuid.UUID
	date     model.Date

	totalSales        decimal.Decimal
	cardSales         decimal.Decimal
	woltSales         decimal.Decimal
	efoodSales        decimal.Decimal
	otherDigitalSales decimal.Decimal

	openingFloat         decimal.Decimal
	actualCashCounted    decimal.Decimal
	tomorrowOpeningFloat decimal.Decimal
	cashDeposit          decimal.Decimal

	notes    *string
	payments []model.RegisterSupplierPayment
	expenses []model.RegisterExpense
}

func NewClosingDraft(orgID uint, closedBy uuid.UUID, date model.Date) *ClosingDraft {
	return &ClosingDraft{orgID: orgID, closedBy: closedBy, date: date}
}

// cents rounds an input once on the way in. Every derived figure is computed
// from the rounded inputs, so stored rows reconcile exactly.
func cents(v decimal.Decimal) decimal.Decimal { return v.Round(2) }

func (d *ClosingDraft) WithSales(total, card, wolt, efood, otherDigital decimal.Decimal) *ClosingDraft {
	d.totalSales = cents(total)
	d.cardSales = cents(card)
	d.woltSales = cents(wolt)
	d.efoodSales = cents(efood)
	d.otherDigitalSales = cents(otherDigital)
	return d
}

func (d *ClosingDraft) WithCash(openingFloat, counted, tomorrowFloat, deposit decimal.Decimal) *ClosingDraft {
	d.openingFloat = cents(openingFloat)
	d.actualCashCounted = cents(counted)
	d.tomorrowOpeningFloat = cents(tomorrowFloat)
	d.cashDeposit = cents(deposit)
	return d
}

func (d *ClosingDraft) WithNotes(notes *string) *ClosingDraft {
	d.notes = notes
	return d
}

// AddSupplierPayment defaults an empty payment method to cash.
func (d *ClosingDraft) AddSupplierPayment(p model.RegisterSupplierPayment) *ClosingDraft {
	if p.PaymentMethod == "" {
		p.PaymentMethod = model.PaymentCash
	}
	p.Amount = cents(p.Amount)
	d.payments = append(d.payments, p)
	return d
}

func (d *ClosingDraft) AddExpense(e model.RegisterExpense) *ClosingDraft {
	e.Amount = cents(e.Amount)
	d.expenses = append(d.expenses, e)
	return d
}

func (d *ClosingDraft) DigitalSales() decimal.Decimal {
	return d.cardSales.Add(d.woltSales).Add(d.efoodSales).Add(d.otherDigitalSales)
}

func (d *ClosingDraft) ExpectedCash() decimal.Decimal {
	return d.totalSales.Sub(d.DigitalSales())
}

// CashDifference is negative when the drawer is short.
func (d *ClosingDraft) CashDifference() decimal.Decimal {
	return d.actualCashCounted.Sub(d.ExpectedCash().Add(d.openingFloat))
}

// TotalSupplierPayments only counts money that left the drawer.
func (d *ClosingDraft) TotalSupplierPayments() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range d.payments {
		if p.PaymentMethod == model.PaymentCash {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

func (d *ClosingDraft) TotalExpenses() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range d.expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

func (d *ClosingDraft) FinalCashBalance() decimal.Decimal {
	return d.actualCashCounted.Sub(d.TotalSupplierPayments()).Sub(d.TotalExpenses())
}

// Build returns the closing row with its children attached. Children carry no
// ClosingID yet; the caller sets it once the parent has an ID.
func (d *ClosingDraft) Build() *model.DailyRegisterClosing {
	payments := make([]model.RegisterSupplierPayment, len(d.payments))
	copy(payments, d.payments)
	expenses := make([]model.RegisterExpense, len(d.expenses))
	copy(expenses, d.expenses)

	return &model.DailyRegisterClosing{
		OrgID:                 d.orgID,
		ClosingDate:           d.date,
		ClosedBy:              d.closedBy,
		TotalSales:            d.totalSales,
		CardSales:             d.cardSales,
		WoltSales:             d.woltSales,
		EfoodSales:            d.efoodSales,
		OtherDigitalSales:     d.otherDigitalSales,
		ExpectedCash:          d.ExpectedCash(),
		OpeningFloat:          d.openingFloat,
		ActualCashCounted:     d.actualCashCounted,
		CashDifference:        d.CashDifference(),
		TotalSupplierPayments: d.TotalSupplierPayments(),
		TotalExpenses:         d.TotalExpenses(),
		FinalCashBalance:      d.FinalCashBalance(),
		TomorrowOpeningFloat:  d.tomorrowOpeningFloat,
		CashDeposit:           d.cashDeposit,
		Notes:                 d.notes,
		Status:                model.ClosingSubmitted,
		SupplierPayments:      payments,
		Expenses:              expenses,
	}
}

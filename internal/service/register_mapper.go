package service

import (
	"time"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/dto"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/repository"
)

func closingToResponse(c *model.DailyRegisterClosing) dto.ClosingResponse {
	resp := dto.ClosingResponse{
		ID:                    c.ID,
		OrgID:                 c.OrgID,
		ClosingDate:           c.ClosingDate.String(),
		ClosedBy:              c.ClosedBy.String(),
		TotalSales:            c.TotalSales,
		CardSales:             c.CardSales,
		WoltSales:             c.WoltSales,
		EfoodSales:            c.EfoodSales,
		OtherDigitalSales:     c.OtherDigitalSales,
		ExpectedCash:          c.ExpectedCash,
		OpeningFloat:          c.OpeningFloat,
		ActualCashCounted:     c.ActualCashCounted,
		CashDifference:        c.CashDifference,
		TotalSupplierPayments: c.TotalSupplierPayments,
		TotalExpenses:         c.TotalExpenses,
		FinalCashBalance:      c.FinalCashBalance,
		TomorrowOpeningFloat:  c.TomorrowOpeningFloat,
		CashDeposit:           c.CashDeposit,
		Notes:                 c.Notes,
		Status:                c.Status,
		CreatedAt:             c.CreatedAt.Format(time.RFC3339),
	}
	if c.ReviewedBy != nil {
		s := c.ReviewedBy.String()
		resp.ReviewedBy = &s
	}
	if c.ReviewedAt != nil {
		s := c.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &s
	}
	for i := range c.SupplierPayments {
		resp.SupplierPayments = append(resp.SupplierPayments, paymentToResponse(&c.SupplierPayments[i]))
	}
	for i := range c.Expenses {
		resp.Expenses = append(resp.Expenses, expenseToResponse(&c.Expenses[i]))
	}
	return resp
}

func paymentToResponse(p *model.RegisterSupplierPayment) dto.SupplierPaymentResponse {
	return dto.SupplierPaymentResponse{
		ID:            p.ID,
		ClosingID:     p.ClosingID,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		InvoiceNumber: p.InvoiceNumber,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func expenseToResponse(e *model.RegisterExpense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:              e.ID,
		ClosingID:       e.ClosingID,
		ExpenseCategory: e.ExpenseCategory,
		Description:     e.Description,
		Amount:          e.Amount,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
}

func paymentRowToResponse(r *repository.SupplierPaymentRow) dto.SupplierPaymentResponse {
	resp := paymentToResponse(&r.RegisterSupplierPayment)
	resp.ClosingDate = r.ClosingDate.String()
	return resp
}

func expenseRowToResponse(r *repository.ExpenseRow) dto.ExpenseResponse {
	resp := expenseToResponse(&r.RegisterExpense)
	resp.ClosingDate = r.ClosingDate.String()
	return resp
}

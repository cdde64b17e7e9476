package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/dto"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/repository"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/validation"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultReportDays = 30

type RegisterService interface {
	SubmitClosing(ctx context.Context, actor *model.Profile, req dto.SubmitClosingRequest) (*dto.ClosingResponse, error)
	GetOpeningFloatCarryover(ctx context.Context, orgID uint) (*dto.OpeningFloatResponse, error)
	CheckAlreadyClosedToday(ctx context.Context, orgID uint) (*dto.ClosedTodayResponse, error)
	DeleteClosing(ctx context.Context, actor *model.Profile, closingID uint) error
	ReviewClosing(ctx context.Context, actor *model.Profile, closingID uint, req dto.ReviewClosingRequest) (*dto.ClosingResponse, error)
	GetClosing(ctx context.Context, orgID, closingID uint) (*dto.ClosingResponse, error)
	ListClosings(ctx context.Context, orgID uint, sel dto.DateSelector) (*dto.ClosingListResponse, error)
	SupplierPaymentsReport(ctx context.Context, orgID uint, sel dto.DateSelector) (*dto.SupplierPaymentsReport, error)
	ExpensesReport(ctx context.Context, orgID uint, sel dto.DateSelector) (*dto.ExpensesReport, error)
}

type registerService struct {
	repo      repository.RegisterRepository
	suppliers repository.SupplierRepository
	loc       *time.Location
	now       func() time.Time
}

// NewRegisterService builds the closing service. loc decides which calendar
// day "today" is.
func NewRegisterService(repo repository.RegisterRepository, suppliers repository.SupplierRepository, loc *time.Location) RegisterService {
	if loc == nil {
		loc = time.UTC
	}
	return &registerService{repo: repo, suppliers: suppliers, loc: loc, now: time.Now}
}

func (s *registerService) today() model.Date {
	return model.DateOf(s.now().In(s.loc))
}

// ── SubmitClosing ─────────────────────────────────────────────────────────────

func (s *registerService) SubmitClosing(ctx context.Context, actor *model.Profile, req dto.SubmitClosingRequest) (*dto.ClosingResponse, error) {
	if actor == nil || !actor.CanCloseRegister {
		return nil, ErrForbidden
	}
	if v := validation.Struct(req); !v.Empty() {
		return nil, &ValidationError{Fields: v}
	}

	date := s.today()
	if req.ClosingDate != "" {
		d, err := model.ParseDate(req.ClosingDate)
		if err != nil {
			return nil, newValidationError("closing_date", "must be a date formatted as YYYY-MM-DD")
		}
		date = d
	}

	draft := NewClosingDraft(actor.OrgID, actor.ID, date).
		WithSales(req.TotalSales.Decimal(), req.CardSales.Decimal(), req.WoltSales.Decimal(),
			req.EfoodSales.Decimal(), req.OtherDigitalSales.Decimal()).
		WithCash(req.OpeningFloat.Decimal(), req.ActualCashCounted.Decimal(),
			req.TomorrowOpeningFloat.Decimal(), req.CashDeposit.Decimal()).
		WithNotes(req.Notes)

	violations := validation.Violations{}
	for i, p := range req.SupplierPayments {
		name := p.SupplierName
		if p.SupplierID != nil {
			sup, err := s.activeSupplier(ctx, actor.OrgID, *p.SupplierID)
			if err != nil {
				return nil, err
			}
			if sup == nil {
				violations[fmt.Sprintf("supplier_payments[%d].supplier_id", i)] = "must reference an active supplier"
				continue
			}
			if name == nil || *name == "" {
				name = &sup.Name
			}
		}
		draft.AddSupplierPayment(model.RegisterSupplierPayment{
			SupplierID:    p.SupplierID,
			SupplierName:  name,
			Amount:        p.Amount.Decimal(),
			PaymentMethod: p.PaymentMethod,
			InvoiceNumber: p.InvoiceNumber,
			Notes:         p.Notes,
		})
	}
	if !violations.Empty() {
		return nil, &ValidationError{Fields: violations}
	}
	for _, e := range req.Expenses {
		draft.AddExpense(model.RegisterExpense{
			ExpenseCategory: e.ExpenseCategory,
			Description:     e.Description,
			Amount:          e.Amount.Decimal(),
		})
	}

	existing, err := s.repo.FindClosingByDate(ctx, actor.OrgID, date)
	if err != nil {
		log.Error().Err(err).Uint("org_id", actor.OrgID).Str("date", date.String()).Msg("register: lookup closing failed")
		return nil, fmt.Errorf("lookup closing: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyClosed
	}

	closing := draft.Build()
	err = s.repo.Transaction(ctx, func(repo repository.RegisterRepository) error {
		if err := repo.CreateClosing(ctx, closing); err != nil {
			return err
		}
		for i := range closing.SupplierPayments {
			closing.SupplierPayments[i].ClosingID = closing.ID
		}
		for i := range closing.Expenses {
			closing.Expenses[i].ClosingID = closing.ID
		}
		if err := repo.CreateSupplierPayments(ctx, closing.SupplierPayments); err != nil {
			return fmt.Errorf("supplier payments: %w", err)
		}
		if err := repo.CreateExpenses(ctx, closing.Expenses); err != nil {
			return fmt.Errorf("expenses: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyClosed
		}
		log.Error().Err(err).
			Uint("org_id", actor.OrgID).
			Str("user_id", actor.ID.String()).
			Str("date", date.String()).
			Msg("register: save closing failed")
		return nil, fmt.Errorf("save closing: %w", err)
	}

	log.Info().Uint("org_id", actor.OrgID).Uint("closing_id", closing.ID).Str("date", date.String()).Msg("register closed")
	resp := closingToResponse(closing)
	return &resp, nil
}

// activeSupplier returns nil, nil when the supplier is missing or inactive.
func (s *registerService) activeSupplier(ctx context.Context, orgID, id uint) (*model.Supplier, error) {
	sup, err := s.suppliers.FindByID(ctx, orgID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup supplier: %w", err)
	}
	if !sup.IsActive {
		return nil, nil
	}
	return sup, nil
}

// ── Carryover / today ────────────────────────────────────────────────────────

func (s *registerService) GetOpeningFloatCarryover(ctx context.Context, orgID uint) (*dto.OpeningFloatResponse, error) {
	prev, err := s.repo.FindLatestClosingBefore(ctx, orgID, s.today())
	if err != nil {
		return nil, fmt.Errorf("lookup previous closing: %w", err)
	}
	if prev == nil {
		return &dto.OpeningFloatResponse{OpeningFloat: decimal.Zero}, nil
	}
	from := prev.ClosingDate.String()
	return &dto.OpeningFloatResponse{OpeningFloat: prev.TomorrowOpeningFloat, FromDate: &from}, nil
}

func (s *registerService) CheckAlreadyClosedToday(ctx context.Context, orgID uint) (*dto.ClosedTodayResponse, error) {
	today := s.today()
	existing, err := s.repo.FindClosingByDate(ctx, orgID, today)
	if err != nil {
		return nil, fmt.Errorf("lookup closing: %w", err)
	}
	return &dto.ClosedTodayResponse{Closed: existing != nil, Date: today.String()}, nil
}

// ── Delete / review ──────────────────────────────────────────────────────────

func (s *registerService) DeleteClosing(ctx context.Context, actor *model.Profile, closingID uint) error {
	if actor == nil || !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.repo.DeleteClosing(ctx, actor.OrgID, closingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Uint("org_id", actor.OrgID).Uint("closing_id", closingID).Msg("register: delete closing failed")
		return fmt.Errorf("delete closing: %w", err)
	}
	log.Info().Uint("org_id", actor.OrgID).Uint("closing_id", closingID).Msg("register closing deleted")
	return nil
}

// statusFlow lists the only forward step allowed from each status.
var statusFlow = map[string]string{
	model.ClosingDraft:     model.ClosingSubmitted,
	model.ClosingSubmitted: model.ClosingReviewed,
}

func (s *registerService) ReviewClosing(ctx context.Context, actor *model.Profile, closingID uint, req dto.ReviewClosingRequest) (*dto.ClosingResponse, error) {
	if actor == nil || !actor.IsManager() {
		return nil, ErrForbidden
	}
	if v := validation.Struct(req); !v.Empty() {
		return nil, &ValidationError{Fields: v}
	}

	closing, err := s.repo.FindClosingByID(ctx, actor.OrgID, closingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup closing: %w", err)
	}

	next, ok := statusFlow[closing.Status]
	if !ok || (req.Status != "" && req.Status != next) {
		return nil, ErrInvalidTransition
	}
	closing.Status = next
	if next == model.ClosingReviewed {
		at := s.now().UTC()
		reviewer := actor.ID
		closing.ReviewedBy = &reviewer
		closing.ReviewedAt = &at
	}
	if err := s.repo.UpdateClosing(ctx, closing); err != nil {
		log.Error().Err(err).Uint("closing_id", closingID).Msg("register: review closing failed")
		return nil, fmt.Errorf("update closing: %w", err)
	}
	resp := closingToResponse(closing)
	return &resp, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *registerService) GetClosing(ctx context.Context, orgID, closingID uint) (*dto.ClosingResponse, error) {
	closing, err := s.repo.FindClosingByID(ctx, orgID, closingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup closing: %w", err)
	}
	resp := closingToResponse(closing)
	return &resp, nil
}

func (s *registerService) ListClosings(ctx context.Context, orgID uint, sel dto.DateSelector) (*dto.ClosingListResponse, error) {
	from, to, err := s.resolveRange(sel)
	if err != nil {
		return nil, err
	}
	closings, err := s.repo.ListClosings(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list closings: %w", err)
	}
	out := &dto.ClosingListResponse{
		Data:      make([]dto.ClosingResponse, 0, len(closings)),
		StartDate: from.String(),
		EndDate:   to.String(),
	}
	for i := range closings {
		out.Data = append(out.Data, closingToResponse(&closings[i]))
	}
	return out, nil
}

func (s *registerService) SupplierPaymentsReport(ctx context.Context, orgID uint, sel dto.DateSelector) (*dto.SupplierPaymentsReport, error) {
	from, to, err := s.resolveRange(sel)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListSupplierPayments(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list supplier payments: %w", err)
	}
	out := &dto.SupplierPaymentsReport{
		Data:      make([]dto.SupplierPaymentResponse, 0, len(rows)),
		Total:     decimal.Zero,
		StartDate: from.String(),
		EndDate:   to.String(),
	}
	for i := range rows {
		out.Data = append(out.Data, paymentRowToResponse(&rows[i]))
		out.Total = out.Total.Add(rows[i].Amount)
	}
	out.Total = out.Total.Round(2)
	return out, nil
}

func (s *registerService) ExpensesReport(ctx context.Context, orgID uint, sel dto.DateSelector) (*dto.ExpensesReport, error) {
	from, to, err := s.resolveRange(sel)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListExpenses(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := &dto.ExpensesReport{
		Data:      make([]dto.ExpenseResponse, 0, len(rows)),
		Total:     decimal.Zero,
		StartDate: from.String(),
		EndDate:   to.String(),
	}
	for i := range rows {
		out.Data = append(out.Data, expenseRowToResponse(&rows[i]))
		out.Total = out.Total.Add(rows[i].Amount)
	}
	out.Total = out.Total.Round(2)
	return out, nil
}

// resolveRange turns a selector into an inclusive [from, to] pair of days.
// Period mode looks back N days from today (30 when omitted).
func (s *registerService) resolveRange(sel dto.DateSelector) (model.Date, model.Date, error) {
	if v := validation.Struct(sel); !v.Empty() {
		return model.Date{}, model.Date{}, &ValidationError{Fields: v}
	}
	if sel.Mode == "range" {
		from, err := model.ParseDate(sel.StartDate)
		if err != nil {
			return model.Date{}, model.Date{}, newValidationError("start_date", "must be a date formatted as YYYY-MM-DD")
		}
		to, err := model.ParseDate(sel.EndDate)
		if err != nil {
			return model.Date{}, model.Date{}, newValidationError("end_date", "must be a date formatted as YYYY-MM-DD")
		}
		if to.Before(from) {
			return model.Date{}, model.Date{}, newValidationError("end_date", "must be on or after start_date")
		}
		return from, to, nil
	}

	days := sel.Days
	if days == 0 {
		days = defaultReportDays
	}
	today := s.today()
	return today.AddDays(-days), today, nil
}

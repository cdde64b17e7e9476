package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"
	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory RegisterRepository ─────────────────────────────────────────────

type memRegisterRepo struct {
	closings map[uint]*model.DailyRegisterClosing
	payments []model.RegisterSupplierPayment
	expenses []model.RegisterExpense
	nextID   uint

	failExpenses   error
	duplicateOnAdd bool
}

var _ repository.RegisterRepository = (*memRegisterRepo)(nil)

func newMemRegisterRepo() *memRegisterRepo {
	return &memRegisterRepo{closings: make(map[uint]*model.DailyRegisterClosing)}
}

// Transaction restores the pre-call state when fn fails.
func (r *memRegisterRepo) Transaction(_ context.Context, fn func(repo repository.RegisterRepository) error) error {
	closings := make(map[uint]*model.DailyRegisterClosing, len(r.closings))
	for k, v := range r.closings {
		cp := *v
		closings[k] = &cp
	}
	payments := append([]model.RegisterSupplierPayment(nil), r.payments...)
	expenses := append([]model.RegisterExpense(nil), r.expenses...)
	nextID := r.nextID

	if err := fn(r); err != nil {
		r.closings, r.payments, r.expenses, r.nextID = closings, payments, expenses, nextID
		return err
	}
	return nil
}

func (r *memRegisterRepo) CreateClosing(_ context.Context, c *model.DailyRegisterClosing) error {
	if r.duplicateOnAdd {
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range r.closings {
		if existing.OrgID == c.OrgID && existing.ClosingDate == c.ClosingDate {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	stored := *c
	stored.SupplierPayments, stored.Expenses = nil, nil
	r.closings[c.ID] = &stored
	return nil
}

func (r *memRegisterRepo) CreateSupplierPayments(_ context.Context, payments []model.RegisterSupplierPayment) error {
	for i := range payments {
		r.nextID++
		payments[i].ID = r.nextID
		r.payments = append(r.payments, payments[i])
	}
	return nil
}

func (r *memRegisterRepo) CreateExpenses(_ context.Context, expenses []model.RegisterExpense) error {
	if r.failExpenses != nil && len(expenses) > 0 {
		return r.failExpenses
	}
	for i := range expenses {
		r.nextID++
		expenses[i].ID = r.nextID
		r.expenses = append(r.expenses, expenses[i])
	}
	return nil
}

func (r *memRegisterRepo) UpdateClosing(_ context.Context, c *model.DailyRegisterClosing) error {
	stored := *c
	stored.SupplierPayments, stored.Expenses = nil, nil
	r.closings[c.ID] = &stored
	return nil
}

func (r *memRegisterRepo) DeleteClosing(_ context.Context, orgID, id uint) error {
	c, ok := r.closings[id]
	if !ok || c.OrgID != orgID {
		return gorm.ErrRecordNotFound
	}
	delete(r.closings, id)
	payments := r.payments[:0]
	for _, p := range r.payments {
		if p.ClosingID != id {
			payments = append(payments, p)
		}
	}
	r.payments = payments
	expenses := r.expenses[:0]
	for _, e := range r.expenses {
		if e.ClosingID != id {
			expenses = append(expenses, e)
		}
	}
	r.expenses = expenses
	return nil
}

func (r *memRegisterRepo) FindClosingByID(_ context.Context, orgID, id uint) (*model.DailyRegisterClosing, error) {
	c, ok := r.closings[id]
	if !ok || c.OrgID != orgID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	for _, p := range r.payments {
		if p.ClosingID == id {
			cp.SupplierPayments = append(cp.SupplierPayments, p)
		}
	}
	for _, e := range r.expenses {
		if e.ClosingID == id {
			cp.Expenses = append(cp.Expenses, e)
		}
	}
	return &cp, nil
}

func (r *memRegisterRepo) FindClosingByDate(_ context.Context, orgID uint, date model.Date) (*model.DailyRegisterClosing, error) {
	for _, c := range r.closings {
		if c.OrgID == orgID && c.ClosingDate == date {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRegisterRepo) FindLatestClosingBefore(_ context.Context, orgID uint, date model.Date) (*model.DailyRegisterClosing, error) {
	var best *model.DailyRegisterClosing
	for _, c := range r.closings {
		if c.OrgID != orgID || !c.ClosingDate.Before(date) {
			continue
		}
		if best == nil || c.ClosingDate.After(best.ClosingDate) {
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *memRegisterRepo) inRange(c *model.DailyRegisterClosing, orgID uint, from, to model.Date) bool {
	return c.OrgID == orgID && !c.ClosingDate.Before(from) && !c.ClosingDate.After(to)
}

func (r *memRegisterRepo) ListClosings(_ context.Context, orgID uint, from, to model.Date) ([]model.DailyRegisterClosing, error) {
	var out []model.DailyRegisterClosing
	for _, c := range r.closings {
		if r.inRange(c, orgID, from, to) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClosingDate.After(out[j].ClosingDate) })
	return out, nil
}

func (r *memRegisterRepo) ListSupplierPayments(_ context.Context, orgID uint, from, to model.Date) ([]repository.SupplierPaymentRow, error) {
	var out []repository.SupplierPaymentRow
	for _, p := range r.payments {
		c := r.closings[p.ClosingID]
		if c != nil && r.inRange(c, orgID, from, to) {
			out = append(out, repository.SupplierPaymentRow{RegisterSupplierPayment: p, ClosingDate: c.ClosingDate})
		}
	}
	return out, nil
}

func (r *memRegisterRepo) ListExpenses(_ context.Context, orgID uint, from, to model.Date) ([]repository.ExpenseRow, error) {
	var out []repository.ExpenseRow
	for _, e := range r.expenses {
		c := r.closings[e.ClosingID]
		if c != nil && r.inRange(c, orgID, from, to) {
			out = append(out, repository.ExpenseRow{RegisterExpense: e, ClosingDate: c.ClosingDate})
		}
	}
	return out, nil
}

// ── In-memory SupplierRepository ─────────────────────────────────────────────

type memSupplierRepo struct {
	suppliers map[uint]*model.Supplier
	nextID    uint
}

var _ repository.SupplierRepository = (*memSupplierRepo)(nil)

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{suppliers: make(map[uint]*model.Supplier)}
}

func (r *memSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	for _, existing := range r.suppliers {
		if existing.OrgID == s.OrgID && existing.AFM == s.AFM {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) FindByID(_ context.Context, orgID, id uint) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok || s.OrgID != orgID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSupplierRepo) FindByAFM(_ context.Context, orgID uint, afm string) (*model.Supplier, error) {
	for _, s := range r.suppliers {
		if s.OrgID == orgID && s.AFM == afm {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSupplierRepo) ListActive(_ context.Context, orgID uint) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		if s.OrgID == orgID && s.IsActive {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	if _, ok := r.suppliers[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) SoftDelete(_ context.Context, orgID, id uint) error {
	s, ok := r.suppliers[id]
	if !ok || s.OrgID != orgID {
		return gorm.ErrRecordNotFound
	}
	s.IsActive = false
	return nil
}

// ── In-memory ProfileRepository ──────────────────────────────────────────────

type memProfileRepo struct {
	profiles map[uuid.UUID]*model.Profile
	calls    int
	err      error
}

var _ repository.ProfileRepository = (*memProfileRepo)(nil)

func (r *memProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

var errDiskFull = errors.New("disk full")

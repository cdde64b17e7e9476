package repository

import (
	"context"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SupplierPaymentRow is a supplier payment annotated with its closing's date.
type SupplierPaymentRow struct {
	model.RegisterSupplierPayment
	ClosingDate model.Date
}

// ExpenseRow is an expense annotated with its closing's date.
type ExpenseRow struct {
	model.RegisterExpense
	ClosingDate model.Date
}

type RegisterRepository interface {
	// Transaction runs fn against a repository bound to a single DB transaction.
	// Any error returned by fn rolls back everything fn wrote.
	Transaction(ctx context.Context, fn func(repo RegisterRepository) error) error

	CreateClosing(ctx context.Context, c *model.DailyRegisterClosing) error
	CreateSupplierPayments(ctx context.Context, payments []model.RegisterSupplierPayment) error
	CreateExpenses(ctx context.Context, expenses []model.RegisterExpense) error
	UpdateClosing(ctx context.Context, c *model.DailyRegisterClosing) error
	// DeleteClosing removes a closing and its children. gorm.ErrRecordNotFound
	// when the closing does not exist in orgID.
	DeleteClosing(ctx context.Context, orgID, id uint) error

	FindClosingByID(ctx context.Context, orgID, id uint) (*model.DailyRegisterClosing, error)
	// FindClosingByDate returns nil, nil when the org has no closing that day.
	FindClosingByDate(ctx context.Context, orgID uint, date model.Date) (*model.DailyRegisterClosing, error)
	// FindLatestClosingBefore returns nil, nil when no earlier closing exists.
	FindLatestClosingBefore(ctx context.Context, orgID uint, date model.Date) (*model.DailyRegisterClosing, error)
	ListClosings(ctx context.Context, orgID uint, from, to model.Date) ([]model.DailyRegisterClosing, error)
	ListSupplierPayments(ctx context.Context, orgID uint, from, to model.Date) ([]SupplierPaymentRow, error)
	ListExpenses(ctx context.Context, orgID uint, from, to model.Date) ([]ExpenseRow, error)
}

type registerRepo struct{ db *gorm.DB }

func NewRegisterRepository(db *gorm.DB) RegisterRepository { return &registerRepo{db: db} }

func (r *registerRepo) Transaction(ctx context.Context, fn func(repo RegisterRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&registerRepo{db: tx})
	})
}

func (r *registerRepo) CreateClosing(ctx context.Context, c *model.DailyRegisterClosing) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *registerRepo) CreateSupplierPayments(ctx context.Context, payments []model.RegisterSupplierPayment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&payments).Error
}

func (r *registerRepo) CreateExpenses(ctx context.Context, expenses []model.RegisterExpense) error {
	if len(expenses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&expenses).Error
}

func (r *registerRepo) UpdateClosing(ctx context.Context, c *model.DailyRegisterClosing) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *registerRepo) DeleteClosing(ctx context.Context, orgID, id uint) error {
	return r.Transaction(ctx, func(repo RegisterRepository) error {
		tx := repo.(*registerRepo).db
		var c model.DailyRegisterClosing
		if err := tx.Select("id").Where("id = ? AND org_id = ?", id, orgID).First(&c).Error; err != nil {
			return err
		}
		// The FKs cascade on Postgres; deleting explicitly keeps engines without
		// FK enforcement consistent.
		if err := tx.Where("closing_id = ?", id).Delete(&model.RegisterSupplierPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("closing_id = ?", id).Delete(&model.RegisterExpense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.DailyRegisterClosing{}, c.ID).Error
	})
}

func (r *registerRepo) FindClosingByID(ctx context.Context, orgID, id uint) (*model.DailyRegisterClosing, error) {
	var c model.DailyRegisterClosing
	err := r.db.WithContext(ctx).
		Preload("SupplierPayments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ? AND org_id = ?", id, orgID).
		First(&c).Error
	return &c, err
}

func (r *registerRepo) FindClosingByDate(ctx context.Context, orgID uint, date model.Date) (*model.DailyRegisterClosing, error) {
	var found []model.DailyRegisterClosing
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND closing_date = ?", orgID, date).
		Limit(1).Find(&found).Error
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

func (r *registerRepo) FindLatestClosingBefore(ctx context.Context, orgID uint, date model.Date) (*model.DailyRegisterClosing, error) {
	var found []model.DailyRegisterClosing
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND closing_date < ?", orgID, date).
		Order("closing_date DESC").
		Limit(1).Find(&found).Error
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

func (r *registerRepo) ListClosings(ctx context.Context, orgID uint, from, to model.Date) ([]model.DailyRegisterClosing, error) {
	var closings []model.DailyRegisterClosing
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND closing_date >= ? AND closing_date <= ?", orgID, from, to).
		Order("closing_date DESC").
		Find(&closings).Error
	return closings, err
}

func (r *registerRepo) ListSupplierPayments(ctx context.Context, orgID uint, from, to model.Date) ([]SupplierPaymentRow, error) {
	var rows []SupplierPaymentRow
	err := r.db.WithContext(ctx).
		Model(&model.RegisterSupplierPayment{}).
		Select("register_supplier_payments.*, daily_register_closings.closing_date").
		Joins("JOIN daily_register_closings ON daily_register_closings.id = register_supplier_payments.closing_id").
		Where("daily_register_closings.org_id = ? AND daily_register_closings.closing_date >= ? AND daily_register_closings.closing_date <= ?", orgID, from, to).
		Order("daily_register_closings.closing_date DESC, register_supplier_payments.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *registerRepo) ListExpenses(ctx context.Context, orgID uint, from, to model.Date) ([]ExpenseRow, error) {
	var rows []ExpenseRow
	err := r.db.WithContext(ctx).
		Model(&model.RegisterExpense{}).
		Select("register_expenses.*, daily_register_closings.closing_date").
		Joins("JOIN daily_register_closings ON daily_register_closings.id = register_expenses.closing_id").
		Where("daily_register_closings.org_id = ? AND daily_register_closings.closing_date >= ? AND daily_register_closings.closing_date <= ?", orgID, from, to).
		Order("daily_register_closings.closing_date DESC, register_expenses.id ASC").
		Scan(&rows).Error
	return rows, err
}

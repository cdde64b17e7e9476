package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newClosing(orgID uint, date string) *model.DailyRegisterClosing {
	return &model.DailyRegisterClosing{
		OrgID:                orgID,
		ClosingDate:          day(date),
		ClosedBy:             uuid.New(),
		TotalSales:           decimal.NewFromInt(1000),
		ExpectedCash:         decimal.NewFromInt(700),
		OpeningFloat:         decimal.NewFromInt(100),
		ActualCashCounted:    decimal.NewFromInt(780),
		CashDifference:       decimal.NewFromInt(-20),
		FinalCashBalance:     decimal.NewFromInt(780),
		TomorrowOpeningFloat: decimal.NewFromInt(120),
		Status:               model.ClosingSubmitted,
	}
}

// saveClosing inserts a closing with children the way the service does.
func saveClosing(t *testing.T, repo RegisterRepository, c *model.DailyRegisterClosing, payments []model.RegisterSupplierPayment, expenses []model.RegisterExpense) {
	t.Helper()
	err := repo.Transaction(context.Background(), func(tx RegisterRepository) error {
		if err := tx.CreateClosing(context.Background(), c); err != nil {
			return err
		}
		for i := range payments {
			payments[i].ClosingID = c.ID
		}
		for i := range expenses {
			expenses[i].ClosingID = c.ID
		}
		if err := tx.CreateSupplierPayments(context.Background(), payments); err != nil {
			return err
		}
		return tx.CreateExpenses(context.Background(), expenses)
	})
	require.NoError(t, err)
}

func TestRegisterRepo_CreateAndFindWithChildren(t *testing.T) {
	repo := NewRegisterRepository(newTestDB(t))
	ctx := context.Background()

	c := newClosing(1, "2026-03-15")
	saveClosing(t, repo, c,
		[]model.RegisterSupplierPayment{
			{Amount: decimal.RequireFromString("50.25"), PaymentMethod: model.PaymentCash},
			{Amount: decimal.NewFromInt(120), PaymentMethod: model.PaymentBankTransfer},
		},
		[]model.RegisterExpense{{Amount: decimal.NewFromInt(30)}},
	)
	require.NotZero(t, c.ID)

	got, err := repo.FindClosingByID(ctx, 1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, day("2026-03-15"), got.ClosingDate)
	assert.Equal(t, c.ClosedBy, got.ClosedBy)
	assert.True(t, decimal.NewFromInt(-20).Equal(got.CashDifference))
	require.Len(t, got.SupplierPayments, 2)
	assert.True(t, decimal.RequireFromString("50.25").Equal(got.SupplierPayments[0].Amount))
	assert.Equal(t, model.PaymentBankTransfer, got.SupplierPayments[1].PaymentMethod)
	require.Len(t, got.Expenses, 1)

	_, err = repo.FindClosingByID(ctx, 2, c.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRegisterRepo_TransactionRollsBackParent(t *testing.T) {
	repo := NewRegisterRepository(newTestDB(t))
	ctx := context.Background()
	boom := errors.New("expense insert failed")

	err := repo.Transaction(ctx, func(tx RegisterRepository) error {
		c := newClosing(1, "2026-03-15")
		if err := tx.CreateClosing(ctx, c); err != nil {
			return err
		}
		if err := tx.CreateSupplierPayments(ctx, []model.RegisterSupplierPayment{{ClosingID: c.ID, Amount: decimal.NewFromInt(5), PaymentMethod: model.PaymentCash}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	found, err := repo.FindClosingByDate(ctx, 1, day("2026-03-15"))
	require.NoError(t, err)
	assert.Nil(t, found)

	payments, err := repo.ListSupplierPayments(ctx, 1, day("2026-01-01"), day("2026-12-31"))
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestRegisterRepo_OneClosingPerOrgAndDay(t *testing.T) {
	repo := NewRegisterRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateClosing(ctx, newClosing(1, "2026-03-15")))
	err := repo.CreateClosing(ctx, newClosing(1, "2026-03-15"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Other org, same day.
	assert.NoError(t, repo.CreateClosing(ctx, newClosing(2, "2026-03-15")))
}

func TestRegisterRepo_DateLookups(t *testing.T) {
	repo := NewRegisterRepository(newTestDB(t))
	ctx := context.Background()

	none, err := repo.FindLatestClosingBefore(ctx, 1, day("2026-03-15"))
	require.NoError(t, err)
	assert.Nil(t, none)

	older := newClosing(1, "2026-02-27")
	older.TomorrowOpeningFloat = decimal.NewFromInt(80)
	latest := newClosing(1, "2026-03-13")
	latest.TomorrowOpeningFloat = decimal.NewFromInt(150)
	for _, c := range []*model.DailyRegisterClosing{older, latest, newClosing(1, "2026-03-15"), newClosing(2, "2026-03-14")} {
		require.NoError(t, repo.CreateClosing(ctx, c))
	}

	prev, err := repo.FindLatestClosingBefore(ctx, 1, day("2026-03-15"))
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, day("2026-03-13"), prev.ClosingDate)
	assert.True(t, decimal.NewFromInt(150).Equal(prev.TomorrowOpeningFloat))

	today, err := repo.FindClosingByDate(ctx, 1, day("2026-03-15"))
	require.NoError(t, err)
	require.NotNil(t, today)

	list, err := repo.ListClosings(ctx, 1, day("2026-03-01"), day("2026-03-31"))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, day("2026-03-15"), list[0].ClosingDate)
	assert.Equal(t, day("2026-03-13"), list[1].ClosingDate)
}

func TestRegisterRepo_DeleteClosingRemovesChildren(t *testing.T) {
	repo := NewRegisterRepository(newTestDB(t))
	ctx := context.Background()

	c := newClosing(1, "2026-03-15")
	saveClosing(t, repo, c,
		[]model.RegisterSupplierPayment{{Amount: decimal.NewFromInt(10), PaymentMethod: model.PaymentCash}},
		[]model.RegisterExpense{{Amount: decimal.NewFromInt(3)}},
	)

	assert.ErrorIs(t, repo.DeleteClosing(ctx, 2, c.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.DeleteClosing(ctx, 1, c.ID))

	_, err := repo.FindClosingByID(ctx, 1, c.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	payments, err := repo.ListSupplierPayments(ctx, 1, day("2026-01-01"), day("2026-12-31"))
	require.NoError(t, err)
	assert.Empty(t, payments)
	expenses, err := repo.ListExpenses(ctx, 1, day("2026-01-01"), day("2026-12-31"))
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestRegisterRepo_ReportsJoinClosingDate(t *testing.T) {
	repo := NewRegisterRepository(newTestDB(t))
	ctx := context.Background()

	saveClosing(t, repo, newClosing(1, "2026-03-10"),
		[]model.RegisterSupplierPayment{{Amount: decimal.NewFromInt(10), PaymentMethod: model.PaymentCash}},
		[]model.RegisterExpense{{Amount: decimal.NewFromInt(1)}},
	)
	saveClosing(t, repo, newClosing(1, "2026-03-12"),
		[]model.RegisterSupplierPayment{{Amount: decimal.NewFromInt(20), PaymentMethod: model.PaymentCheck}},
		nil,
	)
	saveClosing(t, repo, newClosing(2, "2026-03-12"),
		[]model.RegisterSupplierPayment{{Amount: decimal.NewFromInt(99), PaymentMethod: model.PaymentCash}},
		[]model.RegisterExpense{{Amount: decimal.NewFromInt(99)}},
	)

	payments, err := repo.ListSupplierPayments(ctx, 1, day("2026-03-01"), day("2026-03-31"))
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, day("2026-03-12"), payments[0].ClosingDate)
	assert.True(t, decimal.NewFromInt(20).Equal(payments[0].Amount))
	assert.Equal(t, day("2026-03-10"), payments[1].ClosingDate)

	expenses, err := repo.ListExpenses(ctx, 1, day("2026-03-11"), day("2026-03-31"))
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestRegisterRepo_UpdateClosingKeepsChildren(t *testing.T) {
	repo := NewRegisterRepository(newTestDB(t))
	ctx := context.Background()

	c := newClosing(1, "2026-03-15")
	saveClosing(t, repo, c, []model.RegisterSupplierPayment{{Amount: decimal.NewFromInt(10), PaymentMethod: model.PaymentCash}}, nil)

	got, err := repo.FindClosingByID(ctx, 1, c.ID)
	require.NoError(t, err)
	got.Status = model.ClosingReviewed
	require.NoError(t, repo.UpdateClosing(ctx, got))

	again, err := repo.FindClosingByID(ctx, 1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClosingReviewed, again.Status)
	assert.Len(t, again.SupplierPayments, 1)
}

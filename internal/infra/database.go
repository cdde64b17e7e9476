package infra

import (
	"fmt"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection backed by pgx. TranslateError is on so
// unique-index violations surface as gorm.ErrDuplicatedKey. When autoMigrate
// is set the register tables are created/updated and the SQL patches applied.
func NewDatabase(dsn string, autoMigrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if autoMigrate {
		if err := RunMigrations(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// RunMigrations creates the tables this service owns. profiles belongs to the
// directory platform and is only migrated outside Postgres (tests, local dev).
func RunMigrations(db *gorm.DB) error {
	models := []interface{}{
		&model.Supplier{},
		&model.DailyRegisterClosing{},
		&model.RegisterSupplierPayment{},
		&model.RegisterExpense{},
	}
	if db.Dialector.Name() != "postgres" {
		models = append([]interface{}{&model.Profile{}}, models...)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() == "postgres" {
		if err := applySchemaPatches(db); err != nil {
			return fmt.Errorf("schema patches: %w", err)
		}
	}
	return nil
}

// applySchemaPatches adds the CHECK constraints GORM tags cannot express.
// Each statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ name, table, check string }{
		{"chk_closing_status", "daily_register_closings", "status IN ('draft','submitted','reviewed')"},
		{"chk_closing_sales_nonneg", "daily_register_closings",
			"total_sales >= 0 AND card_sales >= 0 AND wolt_sales >= 0 AND efood_sales >= 0 AND other_digital_sales >= 0"},
		{"chk_closing_cash_nonneg", "daily_register_closings",
			"opening_float >= 0 AND actual_cash_counted >= 0 AND tomorrow_opening_float >= 0 AND cash_deposit >= 0"},
		{"chk_payment_method", "register_supplier_payments", "payment_method IN ('cash','bank_transfer','check')"},
		{"chk_payment_amount_nonneg", "register_supplier_payments", "amount >= 0"},
		{"chk_expense_amount_nonneg", "register_expenses", "amount >= 0"},
	}
	for _, p := range patches {
		sql := fmt.Sprintf(`DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
    ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
  END IF;
END $$`, p.name, p.table, p.name, p.check)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.name, err)
		}
	}
	return nil
}

package repository

import (
	"context"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"

	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, orgID, id uint) (*model.Supplier, error)
	// FindByAFM returns nil, nil when no supplier of orgID carries afm.
	FindByAFM(ctx context.Context, orgID uint, afm string) (*model.Supplier, error)
	ListActive(ctx context.Context, orgID uint) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	SoftDelete(ctx context.Context, orgID, id uint) error
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplierRepo) FindByID(ctx context.Context, orgID, id uint) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).Where("id = ? AND org_id = ?", id, orgID).First(&s).Error
	return &s, err
}

func (r *supplierRepo) FindByAFM(ctx context.Context, orgID uint, afm string) (*model.Supplier, error) {
	var found []model.Supplier
	err := r.db.WithContext(ctx).Where("org_id = ? AND afm = ?", orgID, afm).Limit(1).Find(&found).Error
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

func (r *supplierRepo) ListActive(ctx context.Context, orgID uint) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).Where("org_id = ? AND is_active = ?", orgID, true).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepo) SoftDelete(ctx context.Context, orgID, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ? AND org_id = ?", id, orgID).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

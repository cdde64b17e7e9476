package repository

import (
	"context"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository reads the directory-owned profiles table.
type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepo{db: db} }

func (r *profileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return &p, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"unidash/internal/model"
)

// LeadRepository defines lead persistence operations.
type LeadRepository interface {
	Create(ctx context.Context, lead *model.Lead) error
	Update(ctx context.Context, lead *model.Lead) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Lead, error)
	List(ctx context.Context, limit int) ([]model.Lead, error)
}

type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository builds a GORM-backed repository.
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *model.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) Update(ctx context.Context, lead *model.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *leadRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Lead{}, id).Error
}

func (r *leadRepository) FindByID(ctx context.Context, id uint) (*model.Lead, error) {
	var lead model.Lead
	if err := r.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, limit int) ([]model.Lead, error) {
	var leads []model.Lead
	if err := r.db.WithContext(ctx).Limit(limit).Order("data_registrazione DESC").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

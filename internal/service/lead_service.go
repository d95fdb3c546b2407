package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"unidash/internal/cache"
	apperrors "unidash/internal/errors"
	"unidash/internal/model"
	"unidash/internal/repository"
)

const (
	leadCacheTTL     = 5 * time.Minute
	defaultListLimit = 1000
)

// LeadService handles lead operations for the lead tenant.
type LeadService interface {
	Get(ctx context.Context, id uint) (*model.Lead, error)
	List(ctx context.Context) ([]model.Lead, error)
	Create(ctx context.Context, lead *model.Lead) error
	Update(ctx context.Context, lead *model.Lead) error
	Delete(ctx context.Context, id uint) error
}

type leadService struct {
	repo  repository.LeadRepository
	cache cache.Store
}

// NewLeadService creates a new lead service.
func NewLeadService(repo repository.LeadRepository, cache cache.Store) LeadService {
	return &leadService{repo: repo, cache: cache}
}

func (s *leadService) cacheKey(id uint) string {
	return fmt.Sprintf("lead:%d", id)
}

// Get retrieves a lead by ID with caching.
func (s *leadService) Get(ctx context.Context, id uint) (*model.Lead, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Lead
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(lead); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, leadCacheTTL)
	}
	return lead, nil
}

func (s *leadService) List(ctx context.Context) ([]model.Lead, error) {
	return s.repo.List(ctx, defaultListLimit)
}

func (s *leadService) Create(ctx context.Context, lead *model.Lead) error {
	if lead.DataRegistrazione.IsZero() {
		lead.DataRegistrazione = time.Now()
	}
	return s.repo.Create(ctx, lead)
}

func (s *leadService) Update(ctx context.Context, lead *model.Lead) error {
	if err := s.repo.Update(ctx, lead); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(lead.ID))
	return nil
}

func (s *leadService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

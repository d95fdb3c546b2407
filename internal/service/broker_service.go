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

const brokerCacheTTL = 5 * time.Minute

// BrokerService handles prop broker operations for the prop tenant.
type BrokerService interface {
	Get(ctx context.Context, id uint) (*model.Broker, error)
	List(ctx context.Context) ([]model.Broker, error)
	Create(ctx context.Context, broker *model.Broker) error
	Update(ctx context.Context, broker *model.Broker) error
	Delete(ctx context.Context, id uint) error
}

type brokerService struct {
	repo  repository.BrokerRepository
	cache cache.Store
}

// NewBrokerService creates a new broker service.
func NewBrokerService(repo repository.BrokerRepository, cache cache.Store) BrokerService {
	return &brokerService{repo: repo, cache: cache}
}

func (s *brokerService) cacheKey(id uint) string {
	return fmt.Sprintf("broker:%d", id)
}

// Get retrieves a broker by ID with caching.
func (s *brokerService) Get(ctx context.Context, id uint) (*model.Broker, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Broker
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	broker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(broker); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, brokerCacheTTL)
	}
	return broker, nil
}

func (s *brokerService) List(ctx context.Context) ([]model.Broker, error) {
	return s.repo.List(ctx, defaultListLimit)
}

func (s *brokerService) Create(ctx context.Context, broker *model.Broker) error {
	return s.repo.Create(ctx, broker)
}

func (s *brokerService) Update(ctx context.Context, broker *model.Broker) error {
	if err := s.repo.Update(ctx, broker); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(broker.ID))
	return nil
}

func (s *brokerService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

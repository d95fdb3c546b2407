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

const clientCacheTTL = 5 * time.Minute

// ClientService handles CPA client operations for the cpa tenant.
type ClientService interface {
	Get(ctx context.Context, id uint) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id uint) error
}

type clientService struct {
	repo  repository.ClientRepository
	cache cache.Store
}

// NewClientService creates a new client service.
func NewClientService(repo repository.ClientRepository, cache cache.Store) ClientService {
	return &clientService{repo: repo, cache: cache}
}

func (s *clientService) cacheKey(id uint) string {
	return fmt.Sprintf("client:%d", id)
}

// Get retrieves a client by ID with caching.
func (s *clientService) Get(ctx context.Context, id uint) (*model.Client, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Client
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(client); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, clientCacheTTL)
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context) ([]model.Client, error) {
	return s.repo.List(ctx, defaultListLimit)
}

func (s *clientService) Create(ctx context.Context, client *model.Client) error {
	if client.DataRegistrazione.IsZero() {
		client.DataRegistrazione = time.Now()
	}
	return s.repo.Create(ctx, client)
}

func (s *clientService) Update(ctx context.Context, client *model.Client) error {
	if err := s.repo.Update(ctx, client); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(client.ID))
	return nil
}

func (s *clientService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

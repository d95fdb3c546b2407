package repository

import (
	"context"

	"gorm.io/gorm"

	"unidash/internal/model"
)

// BrokerRepository defines prop broker persistence operations.
type BrokerRepository interface {
	Create(ctx context.Context, broker *model.Broker) error
	Update(ctx context.Context, broker *model.Broker) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Broker, error)
	List(ctx context.Context, limit int) ([]model.Broker, error)
}

type brokerRepository struct {
	db *gorm.DB
}

// NewBrokerRepository builds a GORM-backed repository.
func NewBrokerRepository(db *gorm.DB) BrokerRepository {
	return &brokerRepository{db: db}
}

func (r *brokerRepository) Create(ctx context.Context, broker *model.Broker) error {
	return r.db.WithContext(ctx).Create(broker).Error
}

func (r *brokerRepository) Update(ctx context.Context, broker *model.Broker) error {
	return r.db.WithContext(ctx).Save(broker).Error
}

func (r *brokerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Broker{}, id).Error
}

func (r *brokerRepository) FindByID(ctx context.Context, id uint) (*model.Broker, error) {
	var broker model.Broker
	if err := r.db.WithContext(ctx).First(&broker, id).Error; err != nil {
		return nil, err
	}
	return &broker, nil
}

func (r *brokerRepository) List(ctx context.Context, limit int) ([]model.Broker, error) {
	var brokers []model.Broker
	if err := r.db.WithContext(ctx).Limit(limit).Order("nome_broker").Find(&brokers).Error; err != nil {
		return nil, err
	}
	return brokers, nil
}

package repository

import (
	"context"

	"github.com/soulbriar/shardfront-backend/internal/model"
	"gorm.io/gorm"
)

type MapRepository interface {
	Create(ctx context.Context, m *model.Map) error
	FindByID(ctx context.Context, id string) (*model.Map, error)
	List(ctx context.Context) ([]model.Map, error)
}

type mapRepository struct {
	db *gorm.DB
}

func NewMapRepository(db *gorm.DB) MapRepository {
	return &mapRepository{db: db}
}

func (r *mapRepository) Create(ctx context.Context, m *model.Map) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mapRepository) FindByID(ctx context.Context, id string) (*model.Map, error) {
	var m model.Map
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mapRepository) List(ctx context.Context) ([]model.Map, error) {
	var list []model.Map
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

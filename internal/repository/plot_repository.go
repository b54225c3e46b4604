package repository

import (
	"context"
	"time"

	"github.com/soulbriar/shardfront-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlotRepository interface {
	WithTx(tx *gorm.DB) PlotRepository
	Create(ctx context.Context, p *model.Plot) error
	FindByID(ctx context.Context, id string) (*model.Plot, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.Plot, error)
	ListByMap(ctx context.Context, mapID string) ([]model.Plot, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Plot, error)
	AssignOwner(ctx context.Context, plotID, ownerID string, at time.Time) error
}

type plotRepository struct {
	db *gorm.DB
}

func NewPlotRepository(db *gorm.DB) PlotRepository {
	return &plotRepository{db: db}
}

func (r *plotRepository) WithTx(tx *gorm.DB) PlotRepository {
	return &plotRepository{db: tx}
}

func (r *plotRepository) Create(ctx context.Context, p *model.Plot) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *plotRepository) FindByID(ctx context.Context, id string) (*model.Plot, error) {
	var p model.Plot
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDForUpdate takes a row lock so concurrent buyers serialize on the
// same plot.
func (r *plotRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Plot, error) {
	var p model.Plot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *plotRepository) ListByMap(ctx context.Context, mapID string) ([]model.Plot, error) {
	var list []model.Plot
	if err := r.db.WithContext(ctx).
		Where("map_id = ?", mapID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *plotRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Plot, error) {
	var list []model.Plot
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("purchased_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *plotRepository) AssignOwner(ctx context.Context, plotID, ownerID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Plot{}).
		Where("id = ?", plotID).
		Updates(map[string]interface{}{
			"owner_id":     ownerID,
			"is_available": false,
			"purchased_at": at,
		}).Error
}

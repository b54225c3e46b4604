package repository

import (
	"context"

	"github.com/soulbriar/shardfront-backend/internal/model"
	"gorm.io/gorm"
)

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	UpdateSpawnLocation(ctx context.Context, id, spawnLocation string) error
	CreateImage(ctx context.Context, img *model.ProductImage) error
	ShowImage(ctx context.Context, imageID string) (int64, error)
	CreateReview(ctx context.Context, rv *model.ProductReview) error
	ShowReview(ctx context.Context, reviewID string) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) UpdateSpawnLocation(ctx context.Context, id, spawnLocation string) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("spawn_location", spawnLocation).Error
}

func (r *productRepository) CreateImage(ctx context.Context, img *model.ProductImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

// ShowImage flips an image visible and reports how many rows matched, so the
// caller can tell a vanished image apart from a successful flip.
func (r *productRepository) ShowImage(ctx context.Context, imageID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ProductImage{}).
		Where("id = ?", imageID).
		Update("is_visible", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *productRepository) CreateReview(ctx context.Context, rv *model.ProductReview) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *productRepository) ShowReview(ctx context.Context, reviewID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ProductReview{}).
		Where("id = ?", reviewID).
		Update("is_visible", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

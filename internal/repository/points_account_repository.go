package repository

import (
	"context"

	"github.com/soulbriar/shardfront-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PointsAccountRepository is the only writer of user_points rows. Mutations
// are plain row updates so they compose with whatever transaction the caller
// scopes in via WithTx.
type PointsAccountRepository interface {
	WithTx(tx *gorm.DB) PointsAccountRepository
	GetOrCreate(ctx context.Context, userID string) (*model.PointsAccount, error)
	Find(ctx context.Context, userID string) (*model.PointsAccount, error)
	FindForUpdate(ctx context.Context, userID string) (*model.PointsAccount, error)
	AddPoints(ctx context.Context, userID string, amount int64) error
	SpendPoints(ctx context.Context, userID string, amount int64) (int64, error)
}

type pointsAccountRepository struct {
	db *gorm.DB
}

func NewPointsAccountRepository(db *gorm.DB) PointsAccountRepository {
	return &pointsAccountRepository{db: db}
}

func (r *pointsAccountRepository) WithTx(tx *gorm.DB) PointsAccountRepository {
	return &pointsAccountRepository{db: tx}
}

func (r *pointsAccountRepository) GetOrCreate(ctx context.Context, userID string) (*model.PointsAccount, error) {
	var acct model.PointsAccount
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&acct, &model.PointsAccount{UserID: userID}).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *pointsAccountRepository) Find(ctx context.Context, userID string) (*model.PointsAccount, error) {
	var acct model.PointsAccount
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *pointsAccountRepository) FindForUpdate(ctx context.Context, userID string) (*model.PointsAccount, error) {
	var acct model.PointsAccount
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

// AddPoints bumps both the spendable balance and the lifetime counter.
func (r *pointsAccountRepository) AddPoints(ctx context.Context, userID string, amount int64) error {
	return r.db.WithContext(ctx).
		Model(&model.PointsAccount{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"current_points":  gorm.Expr("current_points + ?", amount),
			"lifetime_points": gorm.Expr("lifetime_points + ?", amount),
		}).Error
}

// SpendPoints decrements current_points only when the balance covers the
// amount; the returned row count is zero when it does not. Lifetime points
// are untouched by spends.
func (r *pointsAccountRepository) SpendPoints(ctx context.Context, userID string, amount int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PointsAccount{}).
		Where("user_id = ? AND current_points >= ?", userID, amount).
		Updates(map[string]interface{}{
			"current_points": gorm.Expr("current_points - ?", amount),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

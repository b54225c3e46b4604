package service

import (
	"context"
	"errors"

	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/repository"
	"gorm.io/gorm"
)

// LedgerService owns per-user points balances. Credit and Debit never open
// their own transaction; the engines scope them into theirs with WithTx so
// an award or debit commits (or rolls back) together with the write that
// caused it.
type LedgerService interface {
	WithTx(tx *gorm.DB) LedgerService
	GetBalance(ctx context.Context, userID string) (*model.PointsAccount, error)
	Credit(ctx context.Context, userID string, amount int64) (*model.PointsAccount, error)
	Debit(ctx context.Context, userID string, amount int64) (*model.PointsAccount, error)
}

type ledgerService struct {
	accounts repository.PointsAccountRepository
}

func NewLedgerService(accounts repository.PointsAccountRepository) LedgerService {
	return &ledgerService{accounts: accounts}
}

func (s *ledgerService) WithTx(tx *gorm.DB) LedgerService {
	return &ledgerService{accounts: s.accounts.WithTx(tx)}
}

// GetBalance creates a zero-balance account on first access.
func (s *ledgerService) GetBalance(ctx context.Context, userID string) (*model.PointsAccount, error) {
	if userID == "" {
		return nil, errors.New("user is required")
	}
	return s.accounts.GetOrCreate(ctx, userID)
}

func (s *ledgerService) Credit(ctx context.Context, userID string, amount int64) (*model.PointsAccount, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if _, err := s.accounts.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.accounts.AddPoints(ctx, userID, amount); err != nil {
		return nil, err
	}
	return s.accounts.Find(ctx, userID)
}

func (s *ledgerService) Debit(ctx context.Context, userID string, amount int64) (*model.PointsAccount, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if _, err := s.accounts.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	rows, err := s.accounts.SpendPoints(ctx, userID, amount)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInsufficientPoints
	}
	return s.accounts.Find(ctx, userID)
}

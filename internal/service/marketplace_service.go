package service

import (
	"context"
	"errors"
	"time"

	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/repository"
	"gorm.io/gorm"
)

type MarketplaceService interface {
	PurchasePlot(ctx context.Context, plotID, buyerID string) (*PurchaseResult, error)
	GetPlot(ctx context.Context, plotID string) (*model.Plot, error)
	ListMaps(ctx context.Context) ([]model.Map, error)
	ListPlotsByMap(ctx context.Context, mapID string) ([]model.Plot, error)
	ListPlotsByOwner(ctx context.Context, ownerID string) ([]model.Plot, error)
}

// PurchaseResult carries the plot as committed plus the buyer's balance
// after the debit.
type PurchaseResult struct {
	Plot    *model.Plot
	Balance *model.PointsAccount
}

type marketplaceService struct {
	db       *gorm.DB
	plots    repository.PlotRepository
	maps     repository.MapRepository
	ledger   LedgerService
	lockWait time.Duration
}

func NewMarketplaceService(db *gorm.DB, plots repository.PlotRepository, maps repository.MapRepository, ledger LedgerService, lockWait time.Duration) MarketplaceService {
	return &marketplaceService{db: db, plots: plots, maps: maps, ledger: ledger, lockWait: lockWait}
}

// PurchasePlot runs the whole purchase as one transaction: lock the plot
// row, re-check availability under the lock, debit the buyer, assign
// ownership. Any failure rolls the lot back, so concurrent buyers of the
// same plot see exactly one winner and the losers get ErrPlotSold or
// ErrInsufficientPoints, never a half-applied purchase.
func (s *marketplaceService) PurchasePlot(ctx context.Context, plotID, buyerID string) (*PurchaseResult, error) {
	if buyerID == "" {
		return nil, errors.New("buyer is required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	var res PurchaseResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plots := s.plots.WithTx(tx)

		plot, err := plots.FindByIDForUpdate(ctx, plotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !plot.IsAvailable || plot.OwnerID != nil {
			return ErrPlotSold
		}

		ledger := s.ledger.WithTx(tx)
		var acct *model.PointsAccount
		if plot.PointsPrice > 0 {
			acct, err = ledger.Debit(ctx, buyerID, plot.PointsPrice)
		} else {
			acct, err = ledger.GetBalance(ctx, buyerID)
		}
		if err != nil {
			return err
		}

		now := time.Now()
		if err := plots.AssignOwner(ctx, plot.ID, buyerID, now); err != nil {
			return err
		}
		plot.OwnerID = &buyerID
		plot.IsAvailable = false
		plot.PurchasedAt = &now

		res.Plot = plot
		res.Balance = acct
		return nil
	})
	if err != nil {
		if isBusy(err) {
			return nil, ErrBusy
		}
		return nil, err
	}
	return &res, nil
}

func (s *marketplaceService) GetPlot(ctx context.Context, plotID string) (*model.Plot, error) {
	plot, err := s.plots.FindByID(ctx, plotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plot, nil
}

func (s *marketplaceService) ListMaps(ctx context.Context) ([]model.Map, error) {
	return s.maps.List(ctx)
}

func (s *marketplaceService) ListPlotsByMap(ctx context.Context, mapID string) ([]model.Plot, error) {
	if _, err := s.maps.FindByID(ctx, mapID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.plots.ListByMap(ctx, mapID)
}

func (s *marketplaceService) ListPlotsByOwner(ctx context.Context, ownerID string) ([]model.Plot, error) {
	if ownerID == "" {
		return nil, errors.New("owner is required")
	}
	return s.plots.ListByOwner(ctx, ownerID)
}

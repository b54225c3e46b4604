package service

import (
	"context"
	"testing"

	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/repository"
	"github.com/soulbriar/shardfront-backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) LedgerService {
	db := testutil.NewTestDB(t, &model.PointsAccount{})
	return NewLedgerService(repository.NewPointsAccountRepository(db))
}

func TestLedgerGetBalanceCreatesAccount(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	acct, err := ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", acct.UserID)
	require.Zero(t, acct.CurrentPoints)
	require.Zero(t, acct.LifetimePoints)
}

func TestLedgerCreditAndDebit(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	acct, err := ledger.Credit(ctx, "user-1", 100)
	require.NoError(t, err)
	require.EqualValues(t, 100, acct.CurrentPoints)
	require.EqualValues(t, 100, acct.LifetimePoints)

	acct, err = ledger.Debit(ctx, "user-1", 30)
	require.NoError(t, err)
	require.EqualValues(t, 70, acct.CurrentPoints)
	// lifetime never decreases on spends
	require.EqualValues(t, 100, acct.LifetimePoints)
}

func TestLedgerDebitInsufficient(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	_, err := ledger.Credit(ctx, "user-1", 15)
	require.NoError(t, err)

	_, err = ledger.Debit(ctx, "user-1", 20)
	require.ErrorIs(t, err, ErrInsufficientPoints)

	acct, err := ledger.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	require.EqualValues(t, 15, acct.CurrentPoints)
	require.EqualValues(t, 15, acct.LifetimePoints)
}

func TestLedgerDebitUnknownUser(t *testing.T) {
	ledger := newLedger(t)

	_, err := ledger.Debit(context.Background(), "ghost", 1)
	require.ErrorIs(t, err, ErrInsufficientPoints)

	acct, err := ledger.GetBalance(context.Background(), "ghost")
	require.NoError(t, err)
	require.Zero(t, acct.CurrentPoints)
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	for _, amount := range []int64{0, -5} {
		_, err := ledger.Credit(ctx, "user-1", amount)
		require.Error(t, err)
		_, err = ledger.Debit(ctx, "user-1", amount)
		require.Error(t, err)
	}
}

func TestLedgerLifetimeMonotonic(t *testing.T) {
	ledger := newLedger(t)
	ctx := context.Background()

	var lastLifetime int64
	ops := []struct {
		credit bool
		amount int64
	}{
		{true, 50}, {false, 20}, {true, 10}, {false, 40}, {false, 100}, {true, 5},
	}
	for _, op := range ops {
		if op.credit {
			_, err := ledger.Credit(ctx, "user-1", op.amount)
			require.NoError(t, err)
		} else {
			// may fail with insufficient points; balance must be untouched then
			_, _ = ledger.Debit(ctx, "user-1", op.amount)
		}
		acct, err := ledger.GetBalance(ctx, "user-1")
		require.NoError(t, err)
		require.GreaterOrEqual(t, acct.CurrentPoints, int64(0))
		require.GreaterOrEqual(t, acct.LifetimePoints, lastLifetime)
		lastLifetime = acct.LifetimePoints
	}
}

package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/repository"
	"github.com/soulbriar/shardfront-backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type moderationFixture struct {
	db     *gorm.DB
	svc    ModerationService
	ledger LedgerService
}

func newModeration(t *testing.T) *moderationFixture {
	db := testutil.NewTestDB(t,
		&model.PointsAccount{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductReview{},
		&model.Submission{},
	)
	ledger := NewLedgerService(repository.NewPointsAccountRepository(db))
	svc := NewModerationService(db,
		repository.NewSubmissionRepository(db),
		repository.NewProductRepository(db),
		ledger,
		AwardConfig{SpawnLocation: 20, ProductImage: 0, ProductReview: 0},
		5*time.Second,
	)
	return &moderationFixture{db: db, svc: svc, ledger: ledger}
}

func (f *moderationFixture) seedProduct(t *testing.T, spawnLocation string) *model.Product {
	t.Helper()
	p := &model.Product{
		ID:            uuid.NewString(),
		Name:          "Shard Crystal",
		Slug:          "shard-crystal-" + uuid.NewString()[:8],
		SpawnLocation: spawnLocation,
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *moderationFixture) seedSubmission(t *testing.T, kind model.SubmissionKind, subjectID, submitterID string, payload any) *model.Submission {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	s := &model.Submission{
		ID:          uuid.NewString(),
		Kind:        kind,
		SubjectID:   subjectID,
		SubmitterID: submitterID,
		Payload:     raw,
		Status:      model.SubmissionStatusPending,
	}
	require.NoError(t, f.db.Create(s).Error)
	return s
}

func TestReviewApproveSpawnLocation(t *testing.T) {
	f := newModeration(t)
	ctx := context.Background()
	product := f.seedProduct(t, "")
	sub := f.seedSubmission(t, model.SubmissionSpawnLocation, product.ID, "hunter",
		model.SpawnLocationPayload{SpawnLocation: "Destard Level 1"})

	_, err := f.ledger.Credit(ctx, "hunter", 100)
	require.NoError(t, err)
	// lifetime needs a head start to match the 100/500 scenario
	require.NoError(t, f.db.Model(&model.PointsAccount{}).
		Where("user_id = ?", "hunter").
		Update("lifetime_points", 500).Error)

	notes := "confirmed in game"
	out, err := f.svc.Review(ctx, sub.ID, model.SubmissionStatusApproved, "admin-1", &notes)
	require.NoError(t, err)
	require.Equal(t, model.SubmissionStatusApproved, out.Status)
	require.Equal(t, "admin-1", *out.ReviewedBy)
	require.NotNil(t, out.ReviewedAt)
	require.EqualValues(t, 20, *out.PointsAwarded)
	require.NotNil(t, out.PointsAwardedAt)
	require.Equal(t, notes, *out.ReviewNotes)

	acct, err := f.ledger.GetBalance(ctx, "hunter")
	require.NoError(t, err)
	require.EqualValues(t, 120, acct.CurrentPoints)
	require.EqualValues(t, 520, acct.LifetimePoints)

	var stored model.Product
	require.NoError(t, f.db.First(&stored, "id = ?", product.ID).Error)
	require.Equal(t, "Destard Level 1", stored.SpawnLocation)
}

func TestReviewApproveSpawnLocationIdenticalValue(t *testing.T) {
	f := newModeration(t)
	ctx := context.Background()
	product := f.seedProduct(t, "Destard Level 1")
	sub := f.seedSubmission(t, model.SubmissionSpawnLocation, product.ID, "hunter",
		model.SpawnLocationPayload{SpawnLocation: "Destard Level 1"})

	var before model.Product
	require.NoError(t, f.db.First(&before, "id = ?", product.ID).Error)

	_, err := f.svc.Review(ctx, sub.ID, model.SubmissionStatusApproved, "admin-1", nil)
	require.NoError(t, err)

	// identical value must not churn the product row
	var after model.Product
	require.NoError(t, f.db.First(&after, "id = ?", product.ID).Error)
	require.Equal(t, before.SpawnLocation, after.SpawnLocation)
	require.True(t, after.UpdatedAt.Equal(before.UpdatedAt))
}

func TestReviewRejectImageSubmission(t *testing.T) {
	f := newModeration(t)
	ctx := context.Background()
	product := f.seedProduct(t, "")
	img := &model.ProductImage{ID: uuid.NewString(), ProductID: product.ID, ImageURL: "https://img/x.png", SubmittedBy: "hunter"}
	require.NoError(t, f.db.Create(img).Error)
	sub := f.seedSubmission(t, model.SubmissionProductImage, product.ID, "hunter",
		model.ProductImagePayload{ImageID: img.ID, ImageURL: img.ImageURL})

	out, err := f.svc.Review(ctx, sub.ID, model.SubmissionStatusRejected, "admin-1", nil)
	require.NoError(t, err)
	require.Equal(t, model.SubmissionStatusRejected, out.Status)
	require.Nil(t, out.PointsAwarded)

	acct, err := f.ledger.GetBalance(ctx, "hunter")
	require.NoError(t, err)
	require.Zero(t, acct.CurrentPoints)

	var stored model.ProductImage
	require.NoError(t, f.db.First(&stored, "id = ?", img.ID).Error)
	require.False(t, stored.IsVisible)
}

func TestReviewApproveImageSubmission(t *testing.T) {
	f := newModeration(t)
	ctx := context.Background()
	product := f.seedProduct(t, "")
	img := &model.ProductImage{ID: uuid.NewString(), ProductID: product.ID, ImageURL: "https://img/x.png", SubmittedBy: "hunter"}
	require.NoError(t, f.db.Create(img).Error)
	sub := f.seedSubmission(t, model.SubmissionProductImage, product.ID, "hunter",
		model.ProductImagePayload{ImageID: img.ID, ImageURL: img.ImageURL})

	out, err := f.svc.Review(ctx, sub.ID, model.SubmissionStatusApproved, "admin-1", nil)
	require.NoError(t, err)
	require.Equal(t, model.SubmissionStatusApproved, out.Status)
	// image approval flips visibility but carries no award
	require.Nil(t, out.PointsAwarded)

	var stored model.ProductImage
	require.NoError(t, f.db.First(&stored, "id = ?", img.ID).Error)
	require.True(t, stored.IsVisible)

	acct, err := f.ledger.GetBalance(ctx, "hunter")
	require.NoError(t, err)
	require.Zero(t, acct.CurrentPoints)
}

func TestReviewTwiceAwardsOnce(t *testing.T) {
	f := newModeration(t)
	ctx := context.Background()
	product := f.seedProduct(t, "")
	sub := f.seedSubmission(t, model.SubmissionSpawnLocation, product.ID, "hunter",
		model.SpawnLocationPayload{SpawnLocation: "Shame Level 3"})

	_, err := f.svc.Review(ctx, sub.ID, model.SubmissionStatusApproved, "admin-1", nil)
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, sub.ID, model.SubmissionStatusApproved, "admin-2", nil)
	require.ErrorIs(t, err, ErrAlreadyReviewed)

	var reviewed *AlreadyReviewedError
	require.ErrorAs(t, err, &reviewed)
	require.Equal(t, "admin-1", reviewed.ReviewedBy)
	require.False(t, reviewed.ReviewedAt.IsZero())

	acct, err := f.ledger.GetBalance(ctx, "hunter")
	require.NoError(t, err)
	require.EqualValues(t, 20, acct.CurrentPoints)
	require.EqualValues(t, 20, acct.LifetimePoints)
}

func TestReviewConcurrentOppositeDecisions(t *testing.T) {
	f := newModeration(t)
	ctx := context.Background()
	product := f.seedProduct(t, "")
	sub := f.seedSubmission(t, model.SubmissionSpawnLocation, product.ID, "hunter",
		model.SpawnLocationPayload{SpawnLocation: "Covetous Level 2"})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	decisions := []model.SubmissionStatus{model.SubmissionStatusApproved, model.SubmissionStatusRejected}
	for i, d := range decisions {
		wg.Add(1)
		go func(i int, d model.SubmissionStatus) {
			defer wg.Done()
			_, err := f.svc.Review(ctx, sub.ID, d, "admin", nil)
			errs[i] = err
		}(i, d)
	}
	wg.Wait()

	var wins, rejected int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrAlreadyReviewed)
			rejected++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, rejected)

	var stored model.Submission
	require.NoError(t, f.db.First(&stored, "id = ?", sub.ID).Error)
	require.NotEqual(t, model.SubmissionStatusPending, stored.Status)

	// at most one award applied
	acct, err := f.ledger.GetBalance(ctx, "hunter")
	require.NoError(t, err)
	require.LessOrEqual(t, acct.CurrentPoints, int64(20))
}

func TestReviewSubjectGoneRollsBack(t *testing.T) {
	f := newModeration(t)
	ctx := context.Background()
	product := f.seedProduct(t, "")
	sub := f.seedSubmission(t, model.SubmissionSpawnLocation, product.ID, "hunter",
		model.SpawnLocationPayload{SpawnLocation: "Deceit Level 4"})

	require.NoError(t, f.db.Delete(&model.Product{}, "id = ?", product.ID).Error)

	_, err := f.svc.Review(ctx, sub.ID, model.SubmissionStatusApproved, "admin-1", nil)
	require.ErrorIs(t, err, ErrSubjectGone)

	// whole review rolled back: still pending, no award
	var stored model.Submission
	require.NoError(t, f.db.First(&stored, "id = ?", sub.ID).Error)
	require.Equal(t, model.SubmissionStatusPending, stored.Status)
	require.Nil(t, stored.PointsAwarded)

	acct, err := f.ledger.GetBalance(ctx, "hunter")
	require.NoError(t, err)
	require.Zero(t, acct.CurrentPoints)
}

func TestReviewValidation(t *testing.T) {
	f := newModeration(t)
	ctx := context.Background()

	_, err := f.svc.Review(ctx, uuid.NewString(), model.SubmissionStatus("maybe"), "admin-1", nil)
	require.ErrorIs(t, err, ErrInvalidDecision)

	_, err = f.svc.Review(ctx, uuid.NewString(), model.SubmissionStatusPending, "admin-1", nil)
	require.ErrorIs(t, err, ErrInvalidDecision)

	_, err = f.svc.Review(ctx, uuid.NewString(), model.SubmissionStatusApproved, "", nil)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Review(ctx, uuid.NewString(), model.SubmissionStatusApproved, "admin-1", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

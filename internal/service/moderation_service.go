package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/repository"
	"gorm.io/gorm"
)

type ModerationService interface {
	Review(ctx context.Context, submissionID string, decision model.SubmissionStatus, reviewerID string, notes *string) (*model.Submission, error)
	Get(ctx context.Context, submissionID string) (*model.Submission, error)
	List(ctx context.Context, status model.SubmissionStatus, kind model.SubmissionKind) ([]model.Submission, error)
}

// AwardConfig sets how many points each submission kind earns on approval.
// Amounts are policy, not engine logic; zero means approval carries no
// ledger effect.
type AwardConfig struct {
	SpawnLocation int64
	ProductImage  int64
	ProductReview int64
}

// reviewVariant is what makes the engine generic: one award amount plus one
// approval side effect per kind, both run inside the review transaction.
type reviewVariant struct {
	AwardPoints int64
	Apply       func(ctx context.Context, tx *gorm.DB, sub *model.Submission) error
}

type moderationService struct {
	db          *gorm.DB
	submissions repository.SubmissionRepository
	products    repository.ProductRepository
	ledger      LedgerService
	variants    map[model.SubmissionKind]reviewVariant
	lockWait    time.Duration
}

func NewModerationService(db *gorm.DB, submissions repository.SubmissionRepository, products repository.ProductRepository, ledger LedgerService, awards AwardConfig, lockWait time.Duration) ModerationService {
	s := &moderationService{
		db:          db,
		submissions: submissions,
		products:    products,
		ledger:      ledger,
		lockWait:    lockWait,
	}
	s.variants = map[model.SubmissionKind]reviewVariant{
		model.SubmissionSpawnLocation: {AwardPoints: awards.SpawnLocation, Apply: s.applySpawnLocation},
		model.SubmissionProductImage:  {AwardPoints: awards.ProductImage, Apply: s.applyProductImage},
		model.SubmissionProductReview: {AwardPoints: awards.ProductReview, Apply: s.applyProductReview},
	}
	return s
}

// Review settles a pending submission. The status flip, the award and the
// variant side effect all commit in one transaction; a submission that is
// no longer pending fails with AlreadyReviewedError before anything is
// written, which is what makes concurrent or retried reviews safe.
func (s *moderationService) Review(ctx context.Context, submissionID string, decision model.SubmissionStatus, reviewerID string, notes *string) (*model.Submission, error) {
	if reviewerID == "" {
		return nil, ErrForbidden
	}
	if decision != model.SubmissionStatusApproved && decision != model.SubmissionStatusRejected {
		return nil, ErrInvalidDecision
	}
	ctx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	var out *model.Submission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subs := s.submissions.WithTx(tx)

		sub, err := subs.FindByIDForUpdate(ctx, submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sub.Status != model.SubmissionStatusPending {
			e := &AlreadyReviewedError{}
			if sub.ReviewedBy != nil {
				e.ReviewedBy = *sub.ReviewedBy
			}
			if sub.ReviewedAt != nil {
				e.ReviewedAt = *sub.ReviewedAt
			}
			return e
		}

		v, ok := s.variants[sub.Kind]
		if !ok {
			return fmt.Errorf("unknown submission kind %q", sub.Kind)
		}

		now := time.Now()
		sub.Status = decision
		sub.ReviewedBy = &reviewerID
		sub.ReviewedAt = &now
		sub.ReviewNotes = notes

		if decision == model.SubmissionStatusApproved {
			if v.AwardPoints > 0 {
				if _, err := s.ledger.WithTx(tx).Credit(ctx, sub.SubmitterID, v.AwardPoints); err != nil {
					return err
				}
				awarded := v.AwardPoints
				sub.PointsAwarded = &awarded
				sub.PointsAwardedAt = &now
			}
			if v.Apply != nil {
				if err := v.Apply(ctx, tx, sub); err != nil {
					return err
				}
			}
		}

		if err := subs.Update(ctx, sub); err != nil {
			return err
		}
		out = sub
		return nil
	})
	if err != nil {
		if isBusy(err) {
			return nil, ErrBusy
		}
		return nil, err
	}
	return out, nil
}

// applySpawnLocation writes the approved location onto the product, but only
// when the product has none yet or records a different one. An identical
// value is left alone so updated_at does not churn.
func (s *moderationService) applySpawnLocation(ctx context.Context, tx *gorm.DB, sub *model.Submission) error {
	var payload model.SpawnLocationPayload
	if err := json.Unmarshal(sub.Payload, &payload); err != nil {
		return fmt.Errorf("decode spawn location payload: %w", err)
	}
	products := s.products.WithTx(tx)
	product, err := products.FindByID(ctx, sub.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectGone
		}
		return err
	}
	if product.SpawnLocation == payload.SpawnLocation {
		return nil
	}
	return products.UpdateSpawnLocation(ctx, product.ID, payload.SpawnLocation)
}

func (s *moderationService) applyProductImage(ctx context.Context, tx *gorm.DB, sub *model.Submission) error {
	var payload model.ProductImagePayload
	if err := json.Unmarshal(sub.Payload, &payload); err != nil {
		return fmt.Errorf("decode image payload: %w", err)
	}
	rows, err := s.products.WithTx(tx).ShowImage(ctx, payload.ImageID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSubjectGone
	}
	return nil
}

func (s *moderationService) applyProductReview(ctx context.Context, tx *gorm.DB, sub *model.Submission) error {
	var payload model.ProductReviewPayload
	if err := json.Unmarshal(sub.Payload, &payload); err != nil {
		return fmt.Errorf("decode review payload: %w", err)
	}
	rows, err := s.products.WithTx(tx).ShowReview(ctx, payload.ReviewID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSubjectGone
	}
	return nil
}

func (s *moderationService) Get(ctx context.Context, submissionID string) (*model.Submission, error) {
	sub, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *moderationService) List(ctx context.Context, status model.SubmissionStatus, kind model.SubmissionKind) ([]model.Submission, error) {
	if status == "" {
		status = model.SubmissionStatusPending
	}
	return s.submissions.List(ctx, status, kind)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/repository"
	"gorm.io/gorm"
)

type SubmissionService interface {
	SubmitSpawnLocation(ctx context.Context, productID, submitterID string, payload model.SpawnLocationPayload) (*model.Submission, error)
	SubmitProductImage(ctx context.Context, productID, submitterID, imageURL string) (*model.Submission, error)
	SubmitProductReview(ctx context.Context, productID, submitterID string, rating int, title, body string) (*model.Submission, error)
	ListMine(ctx context.Context, submitterID string) ([]model.Submission, error)
}

type submissionService struct {
	db          *gorm.DB
	submissions repository.SubmissionRepository
	products    repository.ProductRepository
}

func NewSubmissionService(db *gorm.DB, submissions repository.SubmissionRepository, products repository.ProductRepository) SubmissionService {
	return &submissionService{db: db, submissions: submissions, products: products}
}

func (s *submissionService) SubmitSpawnLocation(ctx context.Context, productID, submitterID string, payload model.SpawnLocationPayload) (*model.Submission, error) {
	if strings.TrimSpace(payload.SpawnLocation) == "" {
		return nil, errors.New("spawn location is required")
	}
	return s.create(ctx, model.SubmissionSpawnLocation, productID, submitterID, payload, nil)
}

// SubmitProductImage records the image hidden and opens a submission for it
// in one transaction; approval later flips it visible.
func (s *submissionService) SubmitProductImage(ctx context.Context, productID, submitterID, imageURL string) (*model.Submission, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, errors.New("image url is required")
	}
	img := &model.ProductImage{
		ID:          uuid.NewString(),
		ProductID:   productID,
		ImageURL:    imageURL,
		SubmittedBy: submitterID,
	}
	payload := model.ProductImagePayload{ImageID: img.ID, ImageURL: imageURL}
	return s.create(ctx, model.SubmissionProductImage, productID, submitterID, payload, func(ctx context.Context, tx *gorm.DB) error {
		return s.products.WithTx(tx).CreateImage(ctx, img)
	})
}

func (s *submissionService) SubmitProductReview(ctx context.Context, productID, submitterID string, rating int, title, body string) (*model.Submission, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	rv := &model.ProductReview{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    submitterID,
		Rating:    rating,
		Title:     title,
		Body:      body,
	}
	payload := model.ProductReviewPayload{ReviewID: rv.ID}
	return s.create(ctx, model.SubmissionProductReview, productID, submitterID, payload, func(ctx context.Context, tx *gorm.DB) error {
		return s.products.WithTx(tx).CreateReview(ctx, rv)
	})
}

func (s *submissionService) create(ctx context.Context, kind model.SubmissionKind, productID, submitterID string, payload any, extra func(ctx context.Context, tx *gorm.DB) error) (*model.Submission, error) {
	if submitterID == "" {
		return nil, errors.New("submitter is required")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	sub := &model.Submission{
		ID:          uuid.NewString(),
		Kind:        kind,
		SubjectID:   productID,
		SubmitterID: submitterID,
		Payload:     raw,
		Status:      model.SubmissionStatusPending,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.products.WithTx(tx).FindByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		subs := s.submissions.WithTx(tx)
		// Friendly pre-check; the unique index on kind+subject+submitter is
		// what actually holds when two writers race past it.
		if existing, err := subs.FindPending(ctx, kind, productID, submitterID); err == nil && existing != nil {
			return ErrDuplicateSubmission
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if extra != nil {
			if err := extra(ctx, tx); err != nil {
				return err
			}
		}
		if err := subs.Create(ctx, sub); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSubmission
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *submissionService) ListMine(ctx context.Context, submitterID string) ([]model.Submission, error) {
	if submitterID == "" {
		return nil, errors.New("submitter is required")
	}
	return s.submissions.ListBySubmitter(ctx, submitterID)
}

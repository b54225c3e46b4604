package repository

import (
	"context"

	"github.com/soulbriar/shardfront-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository interface {
	WithTx(tx *gorm.DB) SubmissionRepository
	Create(ctx context.Context, s *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.Submission, error)
	FindPending(ctx context.Context, kind model.SubmissionKind, subjectID, submitterID string) (*model.Submission, error)
	ListBySubmitter(ctx context.Context, submitterID string) ([]model.Submission, error)
	List(ctx context.Context, status model.SubmissionStatus, kind model.SubmissionKind) ([]model.Submission, error)
	Update(ctx context.Context, s *model.Submission) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) WithTx(tx *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: tx}
}

func (r *submissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *submissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	var s model.Submission
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByIDForUpdate locks the row so two reviewers serialize on the same
// submission.
func (r *submissionRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Submission, error) {
	var s model.Submission
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepository) FindPending(ctx context.Context, kind model.SubmissionKind, subjectID, submitterID string) (*model.Submission, error) {
	var s model.Submission
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND subject_id = ? AND submitter_id = ? AND status = ?",
			kind, subjectID, submitterID, model.SubmissionStatusPending).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepository) ListBySubmitter(ctx context.Context, submitterID string) ([]model.Submission, error) {
	var list []model.Submission
	if err := r.db.WithContext(ctx).
		Where("submitter_id = ?", submitterID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// List filters by status and optionally by kind (empty kind means all kinds).
func (r *submissionRepository) List(ctx context.Context, status model.SubmissionStatus, kind model.SubmissionKind) ([]model.Submission, error) {
	q := r.db.WithContext(ctx).Where("status = ?", status)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var list []model.Submission
	if err := q.Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *submissionRepository) Update(ctx context.Context, s *model.Submission) error {
	return r.db.WithContext(ctx).Save(s).Error
}

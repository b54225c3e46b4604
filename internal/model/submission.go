package model

import (
	"time"

	"gorm.io/datatypes"
)

type SubmissionKind string

const (
	SubmissionSpawnLocation SubmissionKind = "spawn_location"
	SubmissionProductImage  SubmissionKind = "product_image"
	SubmissionProductReview SubmissionKind = "product_review"
)

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Submission is one community contribution awaiting review. All variants
// share the same moderation columns; the variant-specific fields live in
// the JSON payload. Status only ever moves pending -> approved or
// pending -> rejected. The composite unique index keeps concurrent
// submitters to one submission per product, user and kind regardless of
// which writer's pre-check ran first.
type Submission struct {
	ID              string           `gorm:"primaryKey;size:36"`
	Kind            SubmissionKind   `gorm:"size:32;index;not null;uniqueIndex:idx_submissions_dedupe"`
	SubjectID       string           `gorm:"column:subject_id;size:36;index;not null;uniqueIndex:idx_submissions_dedupe"`
	SubmitterID     string           `gorm:"column:submitter_id;size:128;index;not null;uniqueIndex:idx_submissions_dedupe"`
	Payload         datatypes.JSON   `gorm:"column:payload"`
	Status          SubmissionStatus `gorm:"size:20;not null;default:pending;index"`
	ReviewNotes     *string          `gorm:"column:review_notes;type:text"`
	ReviewedBy      *string          `gorm:"column:reviewed_by;size:128"`
	ReviewedAt      *time.Time       `gorm:"column:reviewed_at"`
	PointsAwarded   *int64           `gorm:"column:points_awarded"`
	PointsAwardedAt *time.Time       `gorm:"column:points_awarded_at"`
	CreatedAt       time.Time        `gorm:"autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SpawnLocationPayload is the payload for SubmissionSpawnLocation.
type SpawnLocationPayload struct {
	SpawnLocation string `json:"spawnLocation"`
	Coordinates   string `json:"coordinates,omitempty"`
	Shard         string `json:"shard,omitempty"`
	Description   string `json:"description,omitempty"`
}

// ProductImagePayload references the hidden image row created with the
// submission.
type ProductImagePayload struct {
	ImageID  string `json:"imageId"`
	ImageURL string `json:"imageUrl"`
}

// ProductReviewPayload references the hidden review row created with the
// submission.
type ProductReviewPayload struct {
	ReviewID string `json:"reviewId"`
}

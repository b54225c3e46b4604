package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound            = errors.New("not_found")
	ErrPlotSold            = errors.New("plot_already_sold")
	ErrInsufficientPoints  = errors.New("insufficient_points")
	ErrInvalidDecision     = errors.New("invalid_decision")
	ErrSubjectGone         = errors.New("subject_gone")
	ErrAlreadyReviewed     = errors.New("already_reviewed")
	ErrDuplicateSubmission = errors.New("duplicate_submission")
	ErrForbidden           = errors.New("forbidden")
	ErrBusy                = errors.New("busy")
)

// AlreadyReviewedError reports who settled the submission and when, taken
// from the persisted row rather than guessed.
type AlreadyReviewedError struct {
	ReviewedBy string
	ReviewedAt time.Time
}

func (e *AlreadyReviewedError) Error() string {
	return fmt.Sprintf("already reviewed by %s on %s", e.ReviewedBy, e.ReviewedAt.Format(time.RFC3339))
}

func (e *AlreadyReviewedError) Is(target error) bool {
	return target == ErrAlreadyReviewed
}

// MySQL ER_LOCK_WAIT_TIMEOUT: the row lock was held past
// innodb_lock_wait_timeout.
const mysqlLockWaitTimeout = 1205

// isBusy reports whether a transaction failed because it waited too long for
// a row lock, either our own context deadline or the server's lock wait
// timeout. Callers surface these as ErrBusy.
func isBusy(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlLockWaitTimeout
}

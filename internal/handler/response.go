package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/soulbriar/shardfront-backend/internal/service"
)

type errorPayload struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	ReviewedBy string `json:"reviewedBy,omitempty"`
	ReviewedAt string `json:"reviewedAt,omitempty"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// serviceError maps the engines' sentinel errors to HTTP responses so every
// handler reports the same codes for the same failures.
func serviceError(c echo.Context, err error) error {
	var reviewed *service.AlreadyReviewedError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "resource not found"))
	case errors.Is(err, service.ErrPlotSold):
		return c.JSON(http.StatusConflict, NewErrorResponse("plot_already_sold", "plot has already been sold"))
	case errors.Is(err, service.ErrInsufficientPoints):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("insufficient_points", "not enough points"))
	case errors.As(err, &reviewed):
		resp := ErrorResponse{Error: errorPayload{
			Code:       "already_reviewed",
			Message:    reviewed.Error(),
			ReviewedBy: reviewed.ReviewedBy,
			ReviewedAt: reviewed.ReviewedAt.Format(time.RFC3339),
		}}
		return c.JSON(http.StatusConflict, resp)
	case errors.Is(err, service.ErrAlreadyReviewed):
		return c.JSON(http.StatusConflict, NewErrorResponse("already_reviewed", "submission has already been reviewed"))
	case errors.Is(err, service.ErrInvalidDecision):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_decision", `decision must be "approved" or "rejected"`))
	case errors.Is(err, service.ErrDuplicateSubmission):
		return c.JSON(http.StatusConflict, NewErrorResponse("duplicate_submission", "a pending submission already exists"))
	case errors.Is(err, service.ErrSubjectGone):
		return c.JSON(http.StatusConflict, NewErrorResponse("subject_gone", "submission target no longer exists"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case errors.Is(err, service.ErrBusy):
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("busy", "resource is busy, retry shortly"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal", "internal server error"))
	}
}

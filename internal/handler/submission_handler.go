package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/service"
)

type SubmissionHandler struct {
	svc service.SubmissionService
}

func NewSubmissionHandler(svc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

type SubmissionResponse struct {
	ID              string  `json:"id"`
	Kind            string  `json:"kind"`
	SubjectID       string  `json:"subjectId"`
	SubmitterID     string  `json:"submitterId"`
	Status          string  `json:"status"`
	ReviewNotes     *string `json:"reviewNotes,omitempty"`
	ReviewedBy      *string `json:"reviewedBy,omitempty"`
	ReviewedAt      *string `json:"reviewedAt,omitempty"`
	PointsAwarded   *int64  `json:"pointsAwarded,omitempty"`
	PointsAwardedAt *string `json:"pointsAwardedAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

func toSubmissionResponse(s *model.Submission) SubmissionResponse {
	fmtTime := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		val := t.Format(time.RFC3339)
		return &val
	}
	return SubmissionResponse{
		ID:              s.ID,
		Kind:            string(s.Kind),
		SubjectID:       s.SubjectID,
		SubmitterID:     s.SubmitterID,
		Status:          string(s.Status),
		ReviewNotes:     s.ReviewNotes,
		ReviewedBy:      s.ReviewedBy,
		ReviewedAt:      fmtTime(s.ReviewedAt),
		PointsAwarded:   s.PointsAwarded,
		PointsAwardedAt: fmtTime(s.PointsAwardedAt),
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
	}
}

func (h *SubmissionHandler) SubmitSpawnLocation(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var body struct {
		SpawnLocation string `json:"spawnLocation"`
		Coordinates   string `json:"coordinates"`
		Shard         string `json:"shard"`
		Description   string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	if strings.TrimSpace(body.SpawnLocation) == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "spawnLocation is required"))
	}
	sub, err := h.svc.SubmitSpawnLocation(c.Request().Context(), c.Param("id"), uid, model.SpawnLocationPayload{
		SpawnLocation: body.SpawnLocation,
		Coordinates:   body.Coordinates,
		Shard:         body.Shard,
		Description:   body.Description,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toSubmissionResponse(sub))
}

func (h *SubmissionHandler) SubmitImage(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var body struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	if strings.TrimSpace(body.ImageURL) == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "imageUrl is required"))
	}
	sub, err := h.svc.SubmitProductImage(c.Request().Context(), c.Param("id"), uid, body.ImageURL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toSubmissionResponse(sub))
}

func (h *SubmissionHandler) SubmitReview(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var body struct {
		Rating int    `json:"rating"`
		Title  string `json:"title"`
		Body   string `json:"body"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	if body.Rating < 1 || body.Rating > 5 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "rating must be between 1 and 5"))
	}
	sub, err := h.svc.SubmitProductReview(c.Request().Context(), c.Param("id"), uid, body.Rating, body.Title, body.Body)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toSubmissionResponse(sub))
}

func (h *SubmissionHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	subs, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return serviceError(c, err)
	}
	resp := make([]SubmissionResponse, 0, len(subs))
	for i := range subs {
		resp = append(resp, toSubmissionResponse(&subs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

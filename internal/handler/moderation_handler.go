package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/service"
)

type ModerationHandler struct {
	svc service.ModerationService
}

func NewModerationHandler(svc service.ModerationService) *ModerationHandler {
	return &ModerationHandler{svc: svc}
}

func (h *ModerationHandler) List(c echo.Context) error {
	status := model.SubmissionStatus(c.QueryParam("status"))
	kind := model.SubmissionKind(c.QueryParam("kind"))
	subs, err := h.svc.List(c.Request().Context(), status, kind)
	if err != nil {
		return serviceError(c, err)
	}
	resp := make([]SubmissionResponse, 0, len(subs))
	for i := range subs {
		resp = append(resp, toSubmissionResponse(&subs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ModerationHandler) Get(c echo.Context) error {
	sub, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toSubmissionResponse(sub))
}

func (h *ModerationHandler) Review(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var body struct {
		Decision    string  `json:"decision"`
		ReviewNotes *string `json:"reviewNotes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	sub, err := h.svc.Review(c.Request().Context(), c.Param("id"), model.SubmissionStatus(body.Decision), uid, body.ReviewNotes)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toSubmissionResponse(sub))
}

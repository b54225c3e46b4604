package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/service"
)

type PointsHandler struct {
	ledger service.LedgerService
}

func NewPointsHandler(ledger service.LedgerService) *PointsHandler {
	return &PointsHandler{ledger: ledger}
}

type PointsResponse struct {
	UserID         string `json:"userId"`
	CurrentPoints  int64  `json:"currentPoints"`
	LifetimePoints int64  `json:"lifetimePoints"`
	UpdatedAt      string `json:"updatedAt"`
}

func toPointsResponse(a *model.PointsAccount) PointsResponse {
	return PointsResponse{
		UserID:         a.UserID,
		CurrentPoints:  a.CurrentPoints,
		LifetimePoints: a.LifetimePoints,
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *PointsHandler) GetMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	acct, err := h.ledger.GetBalance(c.Request().Context(), uid)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toPointsResponse(acct))
}

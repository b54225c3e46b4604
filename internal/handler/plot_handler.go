package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/service"
)

type PlotHandler struct {
	svc service.MarketplaceService
}

func NewPlotHandler(svc service.MarketplaceService) *PlotHandler {
	return &PlotHandler{svc: svc}
}

type PlotResponse struct {
	ID          string  `json:"id"`
	MapID       string  `json:"mapId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PointsPrice int64   `json:"pointsPrice"`
	IsAvailable bool    `json:"isAvailable"`
	OwnerID     *string `json:"ownerId,omitempty"`
	PurchasedAt *string `json:"purchasedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func toPlotResponse(p *model.Plot) PlotResponse {
	var purchasedAt *string
	if p.PurchasedAt != nil {
		val := p.PurchasedAt.Format(time.RFC3339)
		purchasedAt = &val
	}
	return PlotResponse{
		ID:          p.ID,
		MapID:       p.MapID,
		Name:        p.Name,
		Description: p.Description,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		PointsPrice: p.PointsPrice,
		IsAvailable: p.IsAvailable,
		OwnerID:     p.OwnerID,
		PurchasedAt: purchasedAt,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

type MapResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

type PurchasePlotResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Plot    PlotResponse   `json:"plot"`
	Points  PointsResponse `json:"points"`
}

func (h *PlotHandler) ListMaps(c echo.Context) error {
	maps, err := h.svc.ListMaps(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	resp := make([]MapResponse, 0, len(maps))
	for _, m := range maps {
		resp = append(resp, MapResponse{ID: m.ID, Name: m.Name, Description: m.Description, ImageURL: m.ImageURL})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PlotHandler) ListByMap(c echo.Context) error {
	plots, err := h.svc.ListPlotsByMap(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	resp := make([]PlotResponse, 0, len(plots))
	for i := range plots {
		resp = append(resp, toPlotResponse(&plots[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PlotHandler) Get(c echo.Context) error {
	plot, err := h.svc.GetPlot(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toPlotResponse(plot))
}

func (h *PlotHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	plots, err := h.svc.ListPlotsByOwner(c.Request().Context(), uid)
	if err != nil {
		return serviceError(c, err)
	}
	resp := make([]PlotResponse, 0, len(plots))
	for i := range plots {
		resp = append(resp, toPlotResponse(&plots[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PlotHandler) Purchase(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	res, err := h.svc.PurchasePlot(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, PurchasePlotResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully purchased %s for %d points!", res.Plot.Name, res.Plot.PointsPrice),
		Plot:    toPlotResponse(res.Plot),
		Points:  toPointsResponse(res.Balance),
	})
}

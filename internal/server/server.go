package server

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/soulbriar/shardfront-backend/internal/config"
	"github.com/soulbriar/shardfront-backend/internal/handler"
	appmw "github.com/soulbriar/shardfront-backend/internal/middleware"
	"github.com/soulbriar/shardfront-backend/internal/repository"
	"github.com/soulbriar/shardfront-backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(cfg *config.Config, db *gorm.DB) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	accountRepo := repository.NewPointsAccountRepository(db)
	plotRepo := repository.NewPlotRepository(db)
	mapRepo := repository.NewMapRepository(db)
	productRepo := repository.NewProductRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	ledgerSvc := service.NewLedgerService(accountRepo)
	marketplaceSvc := service.NewMarketplaceService(db, plotRepo, mapRepo, ledgerSvc, cfg.LockWaitTimeout)
	submissionSvc := service.NewSubmissionService(db, submissionRepo, productRepo)
	moderationSvc := service.NewModerationService(db, submissionRepo, productRepo, ledgerSvc, service.AwardConfig{
		SpawnLocation: cfg.AwardSpawnLocation,
		ProductImage:  cfg.AwardProductImage,
		ProductReview: cfg.AwardProductReview,
	}, cfg.LockWaitTimeout)

	pointsHandler := handler.NewPointsHandler(ledgerSvc)
	plotHandler := handler.NewPlotHandler(marketplaceSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	moderationHandler := handler.NewModerationHandler(moderationSvc)

	var authn []echo.MiddlewareFunc
	var adminOnly []echo.MiddlewareFunc
	authMw, err := appmw.NewAuthMiddleware(context.Background())
	if err != nil {
		log.Printf("firebase auth unavailable, running without request auth: %v", err)
	} else {
		authn = []echo.MiddlewareFunc{authMw.RequireAuth}
		adminOnly = []echo.MiddlewareFunc{authMw.RequireAuth, authMw.RequireAdmin}
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	api.GET("/maps", plotHandler.ListMaps)
	api.GET("/maps/:id/plots", plotHandler.ListByMap)
	api.GET("/plots/:id", plotHandler.Get)

	api.GET("/me/points", pointsHandler.GetMine, authn...)
	api.GET("/me/plots", plotHandler.ListMine, authn...)
	api.GET("/me/submissions", submissionHandler.ListMine, authn...)
	api.POST("/plots/:id/purchase", plotHandler.Purchase, authn...)
	api.POST("/products/:id/spawn-locations", submissionHandler.SubmitSpawnLocation, authn...)
	api.POST("/products/:id/images", submissionHandler.SubmitImage, authn...)
	api.POST("/products/:id/reviews", submissionHandler.SubmitReview, authn...)

	admin := api.Group("/admin", adminOnly...)
	admin.GET("/submissions", moderationHandler.List)
	admin.GET("/submissions/:id", moderationHandler.Get)
	admin.PUT("/submissions/:id/review", moderationHandler.Review)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/soulbriar/shardfront-backend/internal/config"
	"github.com/soulbriar/shardfront-backend/internal/db"
	"github.com/soulbriar/shardfront-backend/internal/model"
	"gorm.io/gorm"
)

type seedPlot struct {
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
	PointsPrice int64
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(
		&model.PointsAccount{},
		&model.Map{},
		&model.Plot{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductReview{},
		&model.Submission{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := gdb.WithContext(ctx).Model(&model.Map{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count maps: %w", err)
	}
	force := strings.EqualFold(os.Getenv("FORCE_SEED"), "true")
	if count > 0 && !force {
		log.Printf("maps already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		worldMap := &model.Map{
			ID:          uuid.NewString(),
			Name:        "Atlantic",
			Description: "Main shard overworld",
		}
		if err := tx.Create(worldMap).Error; err != nil {
			return fmt.Errorf("create map: %w", err)
		}

		plots := []seedPlot{
			{"Harbor View", "Small plot by the docks", 41.2, -72.9, 50},
			{"Forest Edge", "Shaded plot near the spawn forest", 42.1, -71.4, 80},
			{"Mountain Pass", "Remote plot with ore nearby", 44.6, -70.2, 120},
			{"Free Meadow", "Starter plot, no cost", 40.8, -73.1, 0},
		}
		for _, p := range plots {
			if err := tx.Create(&model.Plot{
				ID:          uuid.NewString(),
				MapID:       worldMap.ID,
				Name:        p.Name,
				Description: p.Description,
				Latitude:    p.Latitude,
				Longitude:   p.Longitude,
				PointsPrice: p.PointsPrice,
				IsAvailable: true,
				CreatedBy:   "seed",
			}).Error; err != nil {
				return fmt.Errorf("create plot %q: %w", p.Name, err)
			}
		}

		products := []model.Product{
			{ID: uuid.NewString(), Name: "Ancient Dragon Egg", Slug: "ancient-dragon-egg"},
			{ID: uuid.NewString(), Name: "Shard Crystal", Slug: "shard-crystal", SpawnLocation: "Despise Level 2"},
			{ID: uuid.NewString(), Name: "Ethereal Mount", Slug: "ethereal-mount"},
		}
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return fmt.Errorf("create product %q: %w", products[i].Name, err)
			}
		}

		log.Printf("seeded 1 map, %d plots, %d products", len(plots), len(products))
		return nil
	})
}

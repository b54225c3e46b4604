package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/soulbriar/shardfront-backend/internal/config"
	"github.com/soulbriar/shardfront-backend/internal/db"
	"github.com/soulbriar/shardfront-backend/internal/model"
	"github.com/soulbriar/shardfront-backend/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.PointsAccount{},
		&model.Map{},
		&model.Plot{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductReview{},
		&model.Submission{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	srv := server.New(cfg, conn)
	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

package model

import "time"

// Product carries only the fields the moderation side effects touch; the
// rest of the catalog lives with the storefront.
type Product struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Name          string    `gorm:"size:255;not null"`
	Slug          string    `gorm:"size:255;uniqueIndex;not null"`
	SpawnLocation string    `gorm:"column:spawn_location;size:500"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

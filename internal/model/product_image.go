package model

import "time"

// ProductImage stays hidden until the submission that created it is approved.
type ProductImage struct {
	ID          string    `gorm:"primaryKey;size:36"`
	ProductID   string    `gorm:"column:product_id;size:36;index;not null"`
	ImageURL    string    `gorm:"column:image_url;size:512;not null"`
	IsVisible   bool      `gorm:"column:is_visible;not null;default:false"`
	SubmittedBy string    `gorm:"column:submitted_by;size:128"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

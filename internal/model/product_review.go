package model

import "time"

// ProductReview stays hidden until the submission that created it is approved.
type ProductReview struct {
	ID        string    `gorm:"primaryKey;size:36"`
	ProductID string    `gorm:"column:product_id;size:36;index;not null"`
	UserID    string    `gorm:"column:user_id;size:128;index;not null"`
	Rating    int       `gorm:"not null"`
	Title     string    `gorm:"size:255"`
	Body      string    `gorm:"type:text"`
	IsVisible bool      `gorm:"column:is_visible;not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ProductReview) TableName() string {
	return "product_reviews"
}

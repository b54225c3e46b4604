package model

import "time"

type Map struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	ImageURL    *string   `gorm:"column:image_url;size:512"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Map) TableName() string {
	return "maps"
}

package model

import "time"

// PointsAccount holds a user's spendable balance and a lifetime-earned
// counter that only ever grows. Rows are created lazily on first award or
// purchase attempt and never deleted.
type PointsAccount struct {
	UserID         string    `gorm:"column:user_id;primaryKey;size:128"`
	CurrentPoints  int64     `gorm:"column:current_points;not null;default:0"`
	LifetimePoints int64     `gorm:"column:lifetime_points;not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (PointsAccount) TableName() string {
	return "user_points"
}

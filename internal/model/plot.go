package model

import "time"

// Plot is a purchasable location on a map, priced in points. An available
// plot has no owner; once purchased it carries the buyer and the purchase
// time until an admin explicitly resets it.
type Plot struct {
	ID          string     `gorm:"primaryKey;size:36"`
	MapID       string     `gorm:"column:map_id;size:36;index;not null"`
	Name        string     `gorm:"size:255;not null"`
	Description string     `gorm:"type:text"`
	Latitude    float64    `gorm:"not null"`
	Longitude   float64    `gorm:"not null"`
	PointsPrice int64      `gorm:"column:points_price;not null;default:0"`
	IsAvailable bool       `gorm:"column:is_available;not null;default:true;index"`
	OwnerID     *string    `gorm:"column:owner_id;size:128;index"`
	PurchasedAt *time.Time `gorm:"column:purchased_at"`
	CreatedBy   string     `gorm:"column:created_by;size:128"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Plot) TableName() string {
	return "plots"
}

package model

import "time"

// CleaningCost is a flat finishing cost applied per garment type.
type CleaningCost struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	GarmentType string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"garment_type"`
	FixedCost   float64   `gorm:"not null" json:"fixed_cost"`
	AvgMinutes  int       `gorm:"not null" json:"avg_minutes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CleaningCost) TableName() string {
	return "cleaning_costs"
}

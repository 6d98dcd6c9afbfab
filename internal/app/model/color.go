package model

import "time"

// Color is a selection dimension only; it never contributes to cost.
type Color struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	ColorCode string    `gorm:"type:varchar(50)" json:"color_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Color) TableName() string {
	return "colors"
}

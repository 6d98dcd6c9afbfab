package model

import "time"

// Variable is an optional adjustment attached to a style. CostAdjustment is
// added once per attachment to the style's total cost.
type Variable struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CostAdjustment float64   `gorm:"default:0" json:"cost_adjustment"`
	Description    string    `gorm:"type:varchar(200)" json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Variable) TableName() string {
	return "variables"
}

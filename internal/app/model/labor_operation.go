package model

import "time"

// LaborCostKind discriminates how a labor operation is billed. The single Rate
// field means there is never an irrelevant cost column to accidentally sum.
type LaborCostKind string

const (
	// LaborHourly bills rate × time_hours from the attachment
	LaborHourly LaborCostKind = "hourly"
	// LaborFixedPerUnit bills rate × quantity from the attachment
	LaborFixedPerUnit LaborCostKind = "fixed_per_unit"
)

func (k LaborCostKind) Valid() bool {
	return k == LaborHourly || k == LaborFixedPerUnit
}

type LaborOperation struct {
	ID        uint          `gorm:"primarykey" json:"id"`
	Name      string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CostKind  LaborCostKind `gorm:"type:varchar(20);not null" json:"cost_kind"`
	Rate      float64       `gorm:"not null" json:"rate"`
	IsActive  bool          `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (LaborOperation) TableName() string {
	return "labor_operations"
}

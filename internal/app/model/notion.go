package model

import "time"

type NotionVendor struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	VendorCode string    `gorm:"type:varchar(20);uniqueIndex" json:"vendor_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (NotionVendor) TableName() string {
	return "notion_vendors"
}

// Notion is a small priced component (buttons, zippers, thread spools).
type Notion struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(100);index;not null" json:"name"`
	CostPerUnit    float64   `gorm:"not null" json:"cost_per_unit"`
	UnitType       string    `gorm:"type:varchar(20);default:'each'" json:"unit_type"`
	NotionVendorID *uint     `gorm:"index" json:"notion_vendor_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	NotionVendor *NotionVendor `gorm:"foreignKey:NotionVendorID" json:"notion_vendor,omitempty"`
}

func (Notion) TableName() string {
	return "notions"
}

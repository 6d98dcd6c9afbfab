package model

import "time"

type FabricVendor struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	VendorCode string    `gorm:"type:varchar(20);uniqueIndex" json:"vendor_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (FabricVendor) TableName() string {
	return "fabric_vendors"
}

// Fabric is an independently priced material. CostPerYard is the unit cost the
// aggregator multiplies by each attachment's yards_required.
type Fabric struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Name           string     `gorm:"type:varchar(100);index;not null" json:"name"`
	FabricCode     string     `gorm:"type:varchar(20)" json:"fabric_code"`
	CostPerYard    float64    `gorm:"not null" json:"cost_per_yard"`
	Color          string     `gorm:"type:varchar(50)" json:"color"`
	FabricVendorID *uint      `gorm:"index" json:"fabric_vendor_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	FabricVendor *FabricVendor `gorm:"foreignKey:FabricVendorID" json:"fabric_vendor,omitempty"`
}

func (Fabric) TableName() string {
	return "fabrics"
}

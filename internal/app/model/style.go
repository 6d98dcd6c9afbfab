package model

import "time"

type Gender string

const (
	GenderMens   Gender = "MENS"
	GenderLadies Gender = "LADIES"
	GenderUnisex Gender = "UNISEX"
)

func (g Gender) Valid() bool {
	return g == GenderMens || g == GenderLadies || g == GenderUnisex
}

// Style is a sellable garment definition. SuggestedPrice is derived: only the
// pricing engine writes it, and only inside the same transaction that mutated
// the style's attachments.
type Style struct {
	ID                uint       `gorm:"primarykey" json:"id"`
	VendorStyle       string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"vendor_style"`
	BaseItemNumber    string     `gorm:"type:varchar(20)" json:"base_item_number"`
	VariantCode       string     `gorm:"type:varchar(20)" json:"variant_code"`
	StyleName         string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"style_name"`
	Gender            Gender     `gorm:"type:varchar(20);index" json:"gender"`
	GarmentType       string     `gorm:"type:varchar(50);index" json:"garment_type"`
	SizeRange         string     `gorm:"type:varchar(50)" json:"size_range"`
	BaseMarginPercent float64    `gorm:"default:60;index" json:"base_margin_percent"`
	SuggestedPrice    *float64   `json:"suggested_price"`
	Notes             string     `gorm:"type:text" json:"notes"`
	LastModifiedBy    string     `gorm:"type:varchar(100)" json:"last_modified_by"`
	IsActive          bool       `gorm:"default:true;index" json:"is_active"`
	IsFavorite        bool       `gorm:"default:false;index" json:"is_favorite"`
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"index" json:"updated_at"`

	Fabrics   []StyleFabric   `gorm:"foreignKey:StyleID" json:"fabrics,omitempty"`
	Notions   []StyleNotion   `gorm:"foreignKey:StyleID" json:"notions,omitempty"`
	Labor     []StyleLabor    `gorm:"foreignKey:StyleID" json:"labor,omitempty"`
	Colors    []StyleColor    `gorm:"foreignKey:StyleID" json:"colors,omitempty"`
	Variables []StyleVariable `gorm:"foreignKey:StyleID" json:"variables,omitempty"`
	Images    []StyleImage    `gorm:"foreignKey:StyleID" json:"images,omitempty"`
}

func (Style) TableName() string {
	return "styles"
}

// StyleFabric attaches a fabric to a style. The composite unique index is the
// final backstop against concurrent edits inserting the same pair twice.
type StyleFabric struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	StyleID       uint    `gorm:"uniqueIndex:uq_style_fabric;index;not null" json:"style_id"`
	FabricID      uint    `gorm:"uniqueIndex:uq_style_fabric;index;not null" json:"fabric_id"`
	YardsRequired float64 `gorm:"not null" json:"yards_required"`
	IsPrimary     bool    `gorm:"default:false" json:"is_primary"`
	IsSublimation bool    `gorm:"default:false" json:"is_sublimation"`
	Notes         string  `gorm:"type:varchar(200)" json:"notes"`

	Style  Style  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Fabric Fabric `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"fabric,omitempty"`
}

func (StyleFabric) TableName() string {
	return "style_fabrics"
}

type StyleNotion struct {
	ID               uint    `gorm:"primarykey" json:"id"`
	StyleID          uint    `gorm:"uniqueIndex:uq_style_notion;index;not null" json:"style_id"`
	NotionID         uint    `gorm:"uniqueIndex:uq_style_notion;index;not null" json:"notion_id"`
	QuantityRequired float64 `gorm:"not null" json:"quantity_required"`
	Notes            string  `gorm:"type:varchar(200)" json:"notes"`

	Style  Style  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Notion Notion `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"notion,omitempty"`
}

func (StyleNotion) TableName() string {
	return "style_notions"
}

// StyleLabor carries both time_hours and quantity; which one the aggregator
// reads is decided by the operation's cost kind, never by which field is set.
type StyleLabor struct {
	ID               uint    `gorm:"primarykey" json:"id"`
	StyleID          uint    `gorm:"uniqueIndex:uq_style_labor;index;not null" json:"style_id"`
	LaborOperationID uint    `gorm:"uniqueIndex:uq_style_labor;index;not null" json:"labor_operation_id"`
	TimeHours        float64 `gorm:"default:0" json:"time_hours"`
	Quantity         int     `gorm:"default:1" json:"quantity"`
	Notes            string  `gorm:"type:varchar(200)" json:"notes"`

	Style          Style          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	LaborOperation LaborOperation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"labor_operation,omitempty"`
}

func (StyleLabor) TableName() string {
	return "style_labor"
}

type StyleColor struct {
	ID      uint `gorm:"primarykey" json:"id"`
	StyleID uint `gorm:"uniqueIndex:uq_style_color;index;not null" json:"style_id"`
	ColorID uint `gorm:"uniqueIndex:uq_style_color;index;not null" json:"color_id"`

	Style Style `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Color Color `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"color,omitempty"`
}

func (StyleColor) TableName() string {
	return "style_colors"
}

type StyleVariable struct {
	ID         uint `gorm:"primarykey" json:"id"`
	StyleID    uint `gorm:"uniqueIndex:uq_style_variable;index;not null" json:"style_id"`
	VariableID uint `gorm:"uniqueIndex:uq_style_variable;index;not null" json:"variable_id"`

	Style    Style    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Variable Variable `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"variable,omitempty"`
}

func (StyleVariable) TableName() string {
	return "style_variables"
}

type StyleImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StyleID   uint      `gorm:"index;not null" json:"style_id"`
	FileURL   string    `gorm:"type:varchar(255);not null" json:"file_url"`
	FileKey   string    `gorm:"type:varchar(255)" json:"file_key"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`

	Style Style `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (StyleImage) TableName() string {
	return "style_images"
}

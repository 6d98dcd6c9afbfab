package model

import (
	"strings"
	"time"
)

// SizeRange names a set of sizes a style is offered in. Extended sizes carry a
// percentage markup over the base suggested price.
type SizeRange struct {
	ID                    uint      `gorm:"primarykey" json:"id"`
	Name                  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	RegularSizes          string    `gorm:"type:varchar(100);not null" json:"regular_sizes"`
	ExtendedSizes         string    `gorm:"type:varchar(100)" json:"extended_sizes"`
	ExtendedMarkupPercent float64   `gorm:"default:15" json:"extended_markup_percent"`
	Description           string    `gorm:"type:varchar(200)" json:"description"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (SizeRange) TableName() string {
	return "size_ranges"
}

// RegularSizeList splits the comma-separated regular sizes
func (r *SizeRange) RegularSizeList() []string {
	return splitSizes(r.RegularSizes)
}

// ExtendedSizeList splits the comma-separated extended sizes
func (r *SizeRange) ExtendedSizeList() []string {
	return splitSizes(r.ExtendedSizes)
}

func splitSizes(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sizes = append(sizes, p)
		}
	}
	return sizes
}

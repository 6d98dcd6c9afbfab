package repository

import (
	"fmt"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
)

// StyleFilter narrows style list queries. Zero values mean "no filter".
type StyleFilter struct {
	Query       string
	Gender      model.Gender
	GarmentType string
	IsActive    *bool
	IsFavorite  *bool
	SortBy      string
	SortDesc    bool
	Limit       int
	Offset      int
}

// StyleStats summarizes the catalog for the dashboard
type StyleStats struct {
	Total         int64            `json:"total"`
	Active        int64            `json:"active"`
	Favorites     int64            `json:"favorites"`
	ByGender      map[string]int64 `json:"by_gender"`
	ByGarmentType map[string]int64 `json:"by_garment_type"`
}

type StyleRepository interface {
	FindByID(id uint) (*model.Style, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Style, error)
	FindByVendorStyle(vendorStyle string) (*model.Style, error)
	FindByName(name string) (*model.Style, error)
	FindWithFilter(filter StyleFilter) ([]model.Style, int64, error)
	FindActiveIDs() ([]uint, error)
	Stats() (*StyleStats, error)
}

type styleRepository struct {
	db *gorm.DB
}

func NewStyleRepository(db *gorm.DB) StyleRepository {
	return &styleRepository{db: db}
}

// PreloadStyleAssociations loads every attachment set with its catalog
// component so the cost aggregator can run without further queries.
func PreloadStyleAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Fabrics.Fabric").
		Preload("Notions.Notion").
		Preload("Labor.LaborOperation").
		Preload("Colors.Color").
		Preload("Variables.Variable").
		Preload("Images")
}

func (r *styleRepository) FindByID(id uint) (*model.Style, error) {
	return r.FindByIDTx(r.db, id)
}

// FindByIDTx reads a style through the given handle. The style service passes
// its open transaction here so recomputation sees uncommitted attachment edits.
func (r *styleRepository) FindByIDTx(tx *gorm.DB, id uint) (*model.Style, error) {
	var style model.Style
	if err := PreloadStyleAssociations(tx).First(&style, id).Error; err != nil {
		return nil, err
	}
	return &style, nil
}

func (r *styleRepository) FindByVendorStyle(vendorStyle string) (*model.Style, error) {
	var style model.Style
	if err := r.db.Where("vendor_style = ?", vendorStyle).First(&style).Error; err != nil {
		return nil, err
	}
	return &style, nil
}

func (r *styleRepository) FindByName(name string) (*model.Style, error) {
	var style model.Style
	if err := r.db.Where("LOWER(style_name) = LOWER(?)", name).First(&style).Error; err != nil {
		return nil, err
	}
	return &style, nil
}

func (r *styleRepository) FindWithFilter(filter StyleFilter) ([]model.Style, int64, error) {
	query := r.db.Model(&model.Style{})

	if filter.Query != "" {
		like := fmt.Sprintf("%%%s%%", filter.Query)
		query = query.Where("style_name LIKE ? OR vendor_style LIKE ?", like, like)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.GarmentType != "" {
		query = query.Where("garment_type = ?", filter.GarmentType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsFavorite != nil {
		query = query.Where("is_favorite = ?", *filter.IsFavorite)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count styles in database", err)
		return nil, 0, err
	}

	query = query.Order(buildStyleOrder(filter))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var styles []model.Style
	if err := query.Preload("Images").Find(&styles).Error; err != nil {
		logger.Error("Failed to find styles in database", err)
		return nil, 0, err
	}

	return styles, total, nil
}

func buildStyleOrder(filter StyleFilter) string {
	column := "style_name"
	switch filter.SortBy {
	case "vendor_style":
		column = "vendor_style"
	case "price":
		column = "suggested_price"
	case "margin":
		column = "base_margin_percent"
	case "updated_at":
		column = "updated_at"
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

func (r *styleRepository) FindActiveIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.Style{}).Where("is_active = ?", true).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *styleRepository) Stats() (*StyleStats, error) {
	stats := &StyleStats{
		ByGender:      make(map[string]int64),
		ByGarmentType: make(map[string]int64),
	}

	if err := r.db.Model(&model.Style{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Style{}).Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Style{}).Where("is_favorite = ?", true).Count(&stats.Favorites).Error; err != nil {
		return nil, err
	}

	type groupCount struct {
		Key   string
		Count int64
	}

	var byGender []groupCount
	if err := r.db.Model(&model.Style{}).
		Select("gender AS key, COUNT(*) AS count").
		Group("gender").Scan(&byGender).Error; err != nil {
		return nil, err
	}
	for _, g := range byGender {
		stats.ByGender[g.Key] = g.Count
	}

	var byGarment []groupCount
	if err := r.db.Model(&model.Style{}).
		Select("garment_type AS key, COUNT(*) AS count").
		Group("garment_type").Scan(&byGarment).Error; err != nil {
		return nil, err
	}
	for _, g := range byGarment {
		stats.ByGarmentType[g.Key] = g.Count
	}

	return stats, nil
}

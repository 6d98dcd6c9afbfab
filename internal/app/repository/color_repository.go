package repository

import (
	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
)

type ColorRepository interface {
	Create(color *model.Color) error
	FindAll() ([]model.Color, error)
	FindByID(id uint) (*model.Color, error)
	FindByName(name string) (*model.Color, error)
	Update(color *model.Color) error
	Delete(id uint) error
}

type colorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) ColorRepository {
	return &colorRepository{db: db}
}

func (r *colorRepository) Create(color *model.Color) error {
	if err := r.db.Create(color).Error; err != nil {
		logger.Error("Failed to create color in database", err, map[string]interface{}{
			"name": color.Name,
		})
		return err
	}
	return nil
}

func (r *colorRepository) FindAll() ([]model.Color, error) {
	var colors []model.Color
	if err := r.db.Order("name ASC").Find(&colors).Error; err != nil {
		logger.Error("Failed to find colors in database", err)
		return nil, err
	}
	return colors, nil
}

func (r *colorRepository) FindByID(id uint) (*model.Color, error) {
	var color model.Color
	if err := r.db.First(&color, id).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *colorRepository) FindByName(name string) (*model.Color, error) {
	var color model.Color
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&color).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *colorRepository) Update(color *model.Color) error {
	if err := r.db.Save(color).Error; err != nil {
		logger.Error("Failed to update color in database", err, map[string]interface{}{
			"color_id": color.ID,
		})
		return err
	}
	return nil
}

func (r *colorRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Color{}, id).Error; err != nil {
		logger.Error("Failed to delete color from database", err, map[string]interface{}{
			"color_id": id,
		})
		return err
	}
	return nil
}

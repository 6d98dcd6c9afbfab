package repository

import (
	"fmt"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
)

type NotionRepository interface {
	Create(notion *model.Notion) error
	FindAll() ([]model.Notion, error)
	FindByID(id uint) (*model.Notion, error)
	FindByName(name string) (*model.Notion, error)
	Search(query string) ([]model.Notion, error)
	Update(notion *model.Notion) error
	Delete(id uint) error

	CreateVendor(vendor *model.NotionVendor) error
	FindAllVendors() ([]model.NotionVendor, error)
	FindVendorByID(id uint) (*model.NotionVendor, error)
	UpdateVendor(vendor *model.NotionVendor) error
	DeleteVendor(id uint) error
}

type notionRepository struct {
	db *gorm.DB
}

func NewNotionRepository(db *gorm.DB) NotionRepository {
	return &notionRepository{db: db}
}

func (r *notionRepository) Create(notion *model.Notion) error {
	if err := r.db.Create(notion).Error; err != nil {
		logger.Error("Failed to create notion in database", err, map[string]interface{}{
			"name": notion.Name,
		})
		return err
	}

	logger.Debug("Notion created in database", map[string]interface{}{
		"notion_id": notion.ID,
		"name":      notion.Name,
	})
	return nil
}

func (r *notionRepository) FindAll() ([]model.Notion, error) {
	var notions []model.Notion
	if err := r.db.Preload("NotionVendor").Order("name ASC").Find(&notions).Error; err != nil {
		logger.Error("Failed to find notions in database", err)
		return nil, err
	}
	return notions, nil
}

func (r *notionRepository) FindByID(id uint) (*model.Notion, error) {
	var notion model.Notion
	if err := r.db.Preload("NotionVendor").First(&notion, id).Error; err != nil {
		return nil, err
	}
	return &notion, nil
}

func (r *notionRepository) FindByName(name string) (*model.Notion, error) {
	var notion model.Notion
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&notion).Error; err != nil {
		return nil, err
	}
	return &notion, nil
}

func (r *notionRepository) Search(query string) ([]model.Notion, error) {
	like := fmt.Sprintf("%%%s%%", query)
	var notions []model.Notion
	if err := r.db.Where("name LIKE ?", like).Order("name ASC").Find(&notions).Error; err != nil {
		return nil, err
	}
	return notions, nil
}

func (r *notionRepository) Update(notion *model.Notion) error {
	if err := r.db.Save(notion).Error; err != nil {
		logger.Error("Failed to update notion in database", err, map[string]interface{}{
			"notion_id": notion.ID,
		})
		return err
	}
	return nil
}

func (r *notionRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Notion{}, id).Error; err != nil {
		logger.Error("Failed to delete notion from database", err, map[string]interface{}{
			"notion_id": id,
		})
		return err
	}
	return nil
}

func (r *notionRepository) CreateVendor(vendor *model.NotionVendor) error {
	if err := r.db.Create(vendor).Error; err != nil {
		logger.Error("Failed to create notion vendor in database", err, map[string]interface{}{
			"name": vendor.Name,
		})
		return err
	}
	return nil
}

func (r *notionRepository) FindAllVendors() ([]model.NotionVendor, error) {
	var vendors []model.NotionVendor
	if err := r.db.Order("name ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *notionRepository) FindVendorByID(id uint) (*model.NotionVendor, error) {
	var vendor model.NotionVendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *notionRepository) UpdateVendor(vendor *model.NotionVendor) error {
	return r.db.Save(vendor).Error
}

func (r *notionRepository) DeleteVendor(id uint) error {
	return r.db.Delete(&model.NotionVendor{}, id).Error
}

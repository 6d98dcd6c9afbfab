package repository

import (
	"fmt"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
)

type FabricRepository interface {
	Create(fabric *model.Fabric) error
	FindAll() ([]model.Fabric, error)
	FindByID(id uint) (*model.Fabric, error)
	FindByName(name string) (*model.Fabric, error)
	Search(query string) ([]model.Fabric, error)
	Update(fabric *model.Fabric) error
	Delete(id uint) error

	CreateVendor(vendor *model.FabricVendor) error
	FindAllVendors() ([]model.FabricVendor, error)
	FindVendorByID(id uint) (*model.FabricVendor, error)
	UpdateVendor(vendor *model.FabricVendor) error
	DeleteVendor(id uint) error
}

type fabricRepository struct {
	db *gorm.DB
}

func NewFabricRepository(db *gorm.DB) FabricRepository {
	return &fabricRepository{db: db}
}

func (r *fabricRepository) Create(fabric *model.Fabric) error {
	if err := r.db.Create(fabric).Error; err != nil {
		logger.Error("Failed to create fabric in database", err, map[string]interface{}{
			"name": fabric.Name,
		})
		return err
	}

	logger.Debug("Fabric created in database", map[string]interface{}{
		"fabric_id": fabric.ID,
		"name":      fabric.Name,
	})
	return nil
}

func (r *fabricRepository) FindAll() ([]model.Fabric, error) {
	var fabrics []model.Fabric
	if err := r.db.Preload("FabricVendor").Order("name ASC").Find(&fabrics).Error; err != nil {
		logger.Error("Failed to find fabrics in database", err)
		return nil, err
	}
	return fabrics, nil
}

func (r *fabricRepository) FindByID(id uint) (*model.Fabric, error) {
	var fabric model.Fabric
	if err := r.db.Preload("FabricVendor").First(&fabric, id).Error; err != nil {
		return nil, err
	}
	return &fabric, nil
}

func (r *fabricRepository) FindByName(name string) (*model.Fabric, error) {
	var fabric model.Fabric
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&fabric).Error; err != nil {
		return nil, err
	}
	return &fabric, nil
}

func (r *fabricRepository) Search(query string) ([]model.Fabric, error) {
	like := fmt.Sprintf("%%%s%%", query)
	var fabrics []model.Fabric
	if err := r.db.Where("name LIKE ?", like).Order("name ASC").Find(&fabrics).Error; err != nil {
		return nil, err
	}
	return fabrics, nil
}

func (r *fabricRepository) Update(fabric *model.Fabric) error {
	if err := r.db.Save(fabric).Error; err != nil {
		logger.Error("Failed to update fabric in database", err, map[string]interface{}{
			"fabric_id": fabric.ID,
		})
		return err
	}
	return nil
}

func (r *fabricRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Fabric{}, id).Error; err != nil {
		logger.Error("Failed to delete fabric from database", err, map[string]interface{}{
			"fabric_id": id,
		})
		return err
	}
	return nil
}

func (r *fabricRepository) CreateVendor(vendor *model.FabricVendor) error {
	if err := r.db.Create(vendor).Error; err != nil {
		logger.Error("Failed to create fabric vendor in database", err, map[string]interface{}{
			"name": vendor.Name,
		})
		return err
	}
	return nil
}

func (r *fabricRepository) FindAllVendors() ([]model.FabricVendor, error) {
	var vendors []model.FabricVendor
	if err := r.db.Order("name ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *fabricRepository) FindVendorByID(id uint) (*model.FabricVendor, error) {
	var vendor model.FabricVendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *fabricRepository) UpdateVendor(vendor *model.FabricVendor) error {
	return r.db.Save(vendor).Error
}

func (r *fabricRepository) DeleteVendor(id uint) error {
	return r.db.Delete(&model.FabricVendor{}, id).Error
}

package repository

import (
	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
)

type LaborRepository interface {
	Create(op *model.LaborOperation) error
	FindAll() ([]model.LaborOperation, error)
	FindActive() ([]model.LaborOperation, error)
	FindByID(id uint) (*model.LaborOperation, error)
	FindByName(name string) (*model.LaborOperation, error)
	Update(op *model.LaborOperation) error
	Delete(id uint) error
}

type laborRepository struct {
	db *gorm.DB
}

func NewLaborRepository(db *gorm.DB) LaborRepository {
	return &laborRepository{db: db}
}

func (r *laborRepository) Create(op *model.LaborOperation) error {
	if err := r.db.Create(op).Error; err != nil {
		logger.Error("Failed to create labor operation in database", err, map[string]interface{}{
			"name":      op.Name,
			"cost_kind": op.CostKind,
		})
		return err
	}

	logger.Debug("Labor operation created in database", map[string]interface{}{
		"labor_operation_id": op.ID,
		"name":               op.Name,
	})
	return nil
}

func (r *laborRepository) FindAll() ([]model.LaborOperation, error) {
	var ops []model.LaborOperation
	if err := r.db.Order("name ASC").Find(&ops).Error; err != nil {
		logger.Error("Failed to find labor operations in database", err)
		return nil, err
	}
	return ops, nil
}

func (r *laborRepository) FindActive() ([]model.LaborOperation, error) {
	var ops []model.LaborOperation
	if err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}

func (r *laborRepository) FindByID(id uint) (*model.LaborOperation, error) {
	var op model.LaborOperation
	if err := r.db.First(&op, id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *laborRepository) FindByName(name string) (*model.LaborOperation, error) {
	var op model.LaborOperation
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&op).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *laborRepository) Update(op *model.LaborOperation) error {
	if err := r.db.Save(op).Error; err != nil {
		logger.Error("Failed to update labor operation in database", err, map[string]interface{}{
			"labor_operation_id": op.ID,
		})
		return err
	}
	return nil
}

func (r *laborRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.LaborOperation{}, id).Error; err != nil {
		logger.Error("Failed to delete labor operation from database", err, map[string]interface{}{
			"labor_operation_id": id,
		})
		return err
	}
	return nil
}

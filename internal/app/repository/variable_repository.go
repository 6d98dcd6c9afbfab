package repository

import (
	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
)

type VariableRepository interface {
	Create(variable *model.Variable) error
	FindAll() ([]model.Variable, error)
	FindByID(id uint) (*model.Variable, error)
	FindByName(name string) (*model.Variable, error)
	Update(variable *model.Variable) error
	Delete(id uint) error
}

type variableRepository struct {
	db *gorm.DB
}

func NewVariableRepository(db *gorm.DB) VariableRepository {
	return &variableRepository{db: db}
}

func (r *variableRepository) Create(variable *model.Variable) error {
	if err := r.db.Create(variable).Error; err != nil {
		logger.Error("Failed to create variable in database", err, map[string]interface{}{
			"name": variable.Name,
		})
		return err
	}
	return nil
}

func (r *variableRepository) FindAll() ([]model.Variable, error) {
	var variables []model.Variable
	if err := r.db.Order("name ASC").Find(&variables).Error; err != nil {
		logger.Error("Failed to find variables in database", err)
		return nil, err
	}
	return variables, nil
}

func (r *variableRepository) FindByID(id uint) (*model.Variable, error) {
	var variable model.Variable
	if err := r.db.First(&variable, id).Error; err != nil {
		return nil, err
	}
	return &variable, nil
}

func (r *variableRepository) FindByName(name string) (*model.Variable, error) {
	var variable model.Variable
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&variable).Error; err != nil {
		return nil, err
	}
	return &variable, nil
}

func (r *variableRepository) Update(variable *model.Variable) error {
	if err := r.db.Save(variable).Error; err != nil {
		logger.Error("Failed to update variable in database", err, map[string]interface{}{
			"variable_id": variable.ID,
		})
		return err
	}
	return nil
}

func (r *variableRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Variable{}, id).Error; err != nil {
		logger.Error("Failed to delete variable from database", err, map[string]interface{}{
			"variable_id": id,
		})
		return err
	}
	return nil
}

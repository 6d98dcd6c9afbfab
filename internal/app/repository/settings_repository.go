package repository

import (
	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	FindAllSettings() ([]model.GlobalSetting, error)
	FindSettingByKey(key string) (*model.GlobalSetting, error)
	UpsertSetting(setting *model.GlobalSetting) error

	FindAllCleaningCosts() ([]model.CleaningCost, error)
	FindCleaningCostByGarmentType(garmentType string) (*model.CleaningCost, error)
	CreateCleaningCost(cost *model.CleaningCost) error
	UpdateCleaningCost(cost *model.CleaningCost) error
	DeleteCleaningCost(id uint) error

	FindAllSizeRanges() ([]model.SizeRange, error)
	FindSizeRangeByName(name string) (*model.SizeRange, error)
	CreateSizeRange(sizeRange *model.SizeRange) error
	UpdateSizeRange(sizeRange *model.SizeRange) error
	DeleteSizeRange(id uint) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindAllSettings() ([]model.GlobalSetting, error) {
	var settings []model.GlobalSetting
	if err := r.db.Order("setting_key ASC").Find(&settings).Error; err != nil {
		logger.Error("Failed to find global settings in database", err)
		return nil, err
	}
	return settings, nil
}

func (r *settingsRepository) FindSettingByKey(key string) (*model.GlobalSetting, error) {
	var setting model.GlobalSetting
	if err := r.db.Where("setting_key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) UpsertSetting(setting *model.GlobalSetting) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "description", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		logger.Error("Failed to upsert global setting in database", err, map[string]interface{}{
			"setting_key": setting.SettingKey,
		})
		return err
	}

	logger.Debug("Global setting upserted", map[string]interface{}{
		"setting_key":   setting.SettingKey,
		"setting_value": setting.SettingValue,
	})
	return nil
}

func (r *settingsRepository) FindAllCleaningCosts() ([]model.CleaningCost, error) {
	var costs []model.CleaningCost
	if err := r.db.Order("garment_type ASC").Find(&costs).Error; err != nil {
		logger.Error("Failed to find cleaning costs in database", err)
		return nil, err
	}
	return costs, nil
}

func (r *settingsRepository) FindCleaningCostByGarmentType(garmentType string) (*model.CleaningCost, error) {
	var cost model.CleaningCost
	if err := r.db.Where("LOWER(garment_type) = LOWER(?)", garmentType).First(&cost).Error; err != nil {
		return nil, err
	}
	return &cost, nil
}

func (r *settingsRepository) CreateCleaningCost(cost *model.CleaningCost) error {
	if err := r.db.Create(cost).Error; err != nil {
		logger.Error("Failed to create cleaning cost in database", err, map[string]interface{}{
			"garment_type": cost.GarmentType,
		})
		return err
	}
	return nil
}

func (r *settingsRepository) UpdateCleaningCost(cost *model.CleaningCost) error {
	if err := r.db.Save(cost).Error; err != nil {
		logger.Error("Failed to update cleaning cost in database", err, map[string]interface{}{
			"cleaning_cost_id": cost.ID,
		})
		return err
	}
	return nil
}

func (r *settingsRepository) DeleteCleaningCost(id uint) error {
	return r.db.Delete(&model.CleaningCost{}, id).Error
}

func (r *settingsRepository) FindAllSizeRanges() ([]model.SizeRange, error) {
	var ranges []model.SizeRange
	if err := r.db.Order("name ASC").Find(&ranges).Error; err != nil {
		logger.Error("Failed to find size ranges in database", err)
		return nil, err
	}
	return ranges, nil
}

func (r *settingsRepository) FindSizeRangeByName(name string) (*model.SizeRange, error) {
	var sizeRange model.SizeRange
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&sizeRange).Error; err != nil {
		return nil, err
	}
	return &sizeRange, nil
}

func (r *settingsRepository) CreateSizeRange(sizeRange *model.SizeRange) error {
	if err := r.db.Create(sizeRange).Error; err != nil {
		logger.Error("Failed to create size range in database", err, map[string]interface{}{
			"name": sizeRange.Name,
		})
		return err
	}
	return nil
}

func (r *settingsRepository) UpdateSizeRange(sizeRange *model.SizeRange) error {
	if err := r.db.Save(sizeRange).Error; err != nil {
		logger.Error("Failed to update size range in database", err, map[string]interface{}{
			"size_range_id": sizeRange.ID,
		})
		return err
	}
	return nil
}

func (r *settingsRepository) DeleteSizeRange(id uint) error {
	return r.db.Delete(&model.SizeRange{}, id).Error
}

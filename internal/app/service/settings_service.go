package service

import (
	"errors"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSettingNotFound   = errors.New("setting not found")
	ErrSizeRangeNotFound = errors.New("size range not found")
)

type SettingsService interface {
	ListSettings() ([]model.GlobalSetting, error)
	GetSetting(key string) (*model.GlobalSetting, error)
	SetSetting(key string, value float64, description string) (*model.GlobalSetting, error)

	ListCleaningCosts() ([]model.CleaningCost, error)
	SaveCleaningCost(cost *model.CleaningCost) (*model.CleaningCost, error)
	DeleteCleaningCost(id uint) error

	ListSizeRanges() ([]model.SizeRange, error)
	GetSizeRange(name string) (*model.SizeRange, error)
	SaveSizeRange(sizeRange *model.SizeRange) (*model.SizeRange, error)
	DeleteSizeRange(id uint) error
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) ListSettings() ([]model.GlobalSetting, error) {
	return s.settingsRepo.FindAllSettings()
}

func (s *settingsService) GetSetting(key string) (*model.GlobalSetting, error) {
	setting, err := s.settingsRepo.FindSettingByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return setting, nil
}

// SetSetting creates or overwrites a global setting. Pricing-relevant values
// like avg_label_cost take effect on the next recompute, not retroactively.
func (s *settingsService) SetSetting(key string, value float64, description string) (*model.GlobalSetting, error) {
	setting := &model.GlobalSetting{
		SettingKey:   key,
		SettingValue: value,
		Description:  description,
	}
	if err := s.settingsRepo.UpsertSetting(setting); err != nil {
		return nil, err
	}

	logger.Info("Global setting saved", map[string]interface{}{
		"setting_key":   key,
		"setting_value": value,
	})
	return s.settingsRepo.FindSettingByKey(key)
}

func (s *settingsService) ListCleaningCosts() ([]model.CleaningCost, error) {
	return s.settingsRepo.FindAllCleaningCosts()
}

func (s *settingsService) SaveCleaningCost(cost *model.CleaningCost) (*model.CleaningCost, error) {
	existing, err := s.settingsRepo.FindCleaningCostByGarmentType(cost.GarmentType)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.FixedCost = cost.FixedCost
		existing.AvgMinutes = cost.AvgMinutes
		if err := s.settingsRepo.UpdateCleaningCost(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if err := s.settingsRepo.CreateCleaningCost(cost); err != nil {
		return nil, err
	}
	return cost, nil
}

func (s *settingsService) DeleteCleaningCost(id uint) error {
	return s.settingsRepo.DeleteCleaningCost(id)
}

func (s *settingsService) ListSizeRanges() ([]model.SizeRange, error) {
	return s.settingsRepo.FindAllSizeRanges()
}

func (s *settingsService) GetSizeRange(name string) (*model.SizeRange, error) {
	sizeRange, err := s.settingsRepo.FindSizeRangeByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSizeRangeNotFound
		}
		return nil, err
	}
	return sizeRange, nil
}

func (s *settingsService) SaveSizeRange(sizeRange *model.SizeRange) (*model.SizeRange, error) {
	if sizeRange.ID > 0 {
		if err := s.settingsRepo.UpdateSizeRange(sizeRange); err != nil {
			return nil, err
		}
		return sizeRange, nil
	}
	if err := s.settingsRepo.CreateSizeRange(sizeRange); err != nil {
		return nil, err
	}
	return sizeRange, nil
}

func (s *settingsService) DeleteSizeRange(id uint) error {
	return s.settingsRepo.DeleteSizeRange(id)
}

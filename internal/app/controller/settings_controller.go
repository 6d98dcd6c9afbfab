package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/service"
	apperrors "github.com/jauniforms/pricing-backend/internal/errors"
	"github.com/jauniforms/pricing-backend/internal/middleware"
)

type SettingsController struct {
	settingsService service.SettingsService
}

func NewSettingsController(settingsService service.SettingsService) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
	}
}

type SetSettingRequest struct {
	SettingKey   string  `json:"setting_key" binding:"required"`
	SettingValue float64 `json:"setting_value"`
	Description  string  `json:"description"`
}

type CleaningCostRequest struct {
	GarmentType string  `json:"garment_type" binding:"required"`
	FixedCost   float64 `json:"fixed_cost" binding:"required,gt=0"`
	AvgMinutes  int     `json:"avg_minutes"`
}

type SizeRangeRequest struct {
	ID                    uint    `json:"id"`
	Name                  string  `json:"name" binding:"required"`
	RegularSizes          string  `json:"regular_sizes" binding:"required"`
	ExtendedSizes         string  `json:"extended_sizes"`
	ExtendedMarkupPercent float64 `json:"extended_markup_percent"`
	Description           string  `json:"description"`
}

// GET /api/v1/settings
func (ctrl *SettingsController) ListSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	settings, err := ctrl.settingsService.ListSettings()
	if err != nil {
		log.Error("Failed to fetch settings", err, nil)
		apperrors.InternalError(c, "Failed to fetch settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// PUT /api/v1/settings
func (ctrl *SettingsController) SetSetting(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	setting, err := ctrl.settingsService.SetSetting(req.SettingKey, req.SettingValue, req.Description)
	if err != nil {
		log.Error("Failed to save setting", err, map[string]interface{}{
			"setting_key": req.SettingKey,
		})
		apperrors.InternalError(c, "Failed to save setting")
		return
	}

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

// GET /api/v1/settings/cleaning-costs
func (ctrl *SettingsController) ListCleaningCosts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	costs, err := ctrl.settingsService.ListCleaningCosts()
	if err != nil {
		log.Error("Failed to fetch cleaning costs", err, nil)
		apperrors.InternalError(c, "Failed to fetch cleaning costs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleaning_costs": costs})
}

// PUT /api/v1/settings/cleaning-costs
func (ctrl *SettingsController) SaveCleaningCost(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CleaningCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	cost, err := ctrl.settingsService.SaveCleaningCost(&model.CleaningCost{
		GarmentType: req.GarmentType,
		FixedCost:   req.FixedCost,
		AvgMinutes:  req.AvgMinutes,
	})
	if err != nil {
		log.Error("Failed to save cleaning cost", err, map[string]interface{}{
			"garment_type": req.GarmentType,
		})
		apperrors.InternalError(c, "Failed to save cleaning cost")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleaning_cost": cost})
}

// DELETE /api/v1/settings/cleaning-costs/:id
func (ctrl *SettingsController) DeleteCleaningCost(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	if err := ctrl.settingsService.DeleteCleaningCost(id); err != nil {
		log.Error("Failed to delete cleaning cost", err, map[string]interface{}{
			"cleaning_cost_id": id,
		})
		apperrors.InternalError(c, "Failed to delete cleaning cost")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cleaning cost deleted"})
}

// GET /api/v1/settings/size-ranges
func (ctrl *SettingsController) ListSizeRanges(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ranges, err := ctrl.settingsService.ListSizeRanges()
	if err != nil {
		log.Error("Failed to fetch size ranges", err, nil)
		apperrors.InternalError(c, "Failed to fetch size ranges")
		return
	}

	c.JSON(http.StatusOK, gin.H{"size_ranges": ranges})
}

// PUT /api/v1/settings/size-ranges
func (ctrl *SettingsController) SaveSizeRange(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SizeRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	markup := req.ExtendedMarkupPercent
	if markup == 0 {
		markup = 15
	}

	sizeRange, err := ctrl.settingsService.SaveSizeRange(&model.SizeRange{
		ID:                    req.ID,
		Name:                  req.Name,
		RegularSizes:          req.RegularSizes,
		ExtendedSizes:         req.ExtendedSizes,
		ExtendedMarkupPercent: markup,
		Description:           req.Description,
	})
	if err != nil {
		log.Error("Failed to save size range", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to save size range")
		return
	}

	c.JSON(http.StatusOK, gin.H{"size_range": sizeRange})
}

// DELETE /api/v1/settings/size-ranges/:id
func (ctrl *SettingsController) DeleteSizeRange(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	if err := ctrl.settingsService.DeleteSizeRange(id); err != nil {
		if errors.Is(err, service.ErrSizeRangeNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Size range not found")
			return
		}
		log.Error("Failed to delete size range", err, map[string]interface{}{
			"size_range_id": id,
		})
		apperrors.InternalError(c, "Failed to delete size range")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Size range deleted"})
}

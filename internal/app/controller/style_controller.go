package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/internal/app/service"
	apperrors "github.com/jauniforms/pricing-backend/internal/errors"
	"github.com/jauniforms/pricing-backend/internal/middleware"
	"github.com/jauniforms/pricing-backend/pkg/logger"
)

type StyleController struct {
	styleService service.StyleService
}

func NewStyleController(styleService service.StyleService) *StyleController {
	return &StyleController{
		styleService: styleService,
	}
}

type DuplicateStyleRequest struct {
	VendorStyle string `json:"vendor_style" binding:"required"`
	StyleName   string `json:"style_name"`
}

type DetachComponentRequest struct {
	Category    service.AttachmentCategory `json:"category" binding:"required"`
	ComponentID uint                       `json:"component_id" binding:"required"`
}

// ListStyles returns styles matching the query filters
// GET /api/v1/styles
func (ctrl *StyleController) ListStyles(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.StyleFilter{
		Query:       c.Query("q"),
		Gender:      model.Gender(c.Query("gender")),
		GarmentType: c.Query("garment_type"),
		SortBy:      c.Query("sort_by"),
		SortDesc:    c.Query("sort_dir") == "desc",
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	if v := c.Query("is_favorite"); v != "" {
		favorite := v == "true"
		filter.IsFavorite = &favorite
	}
	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	styles, total, err := ctrl.styleService.ListStyles(filter)
	if err != nil {
		log.Error("Failed to fetch styles", err, nil)
		apperrors.InternalError(c, "Failed to fetch styles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"styles": styles,
		"count":  len(styles),
		"total":  total,
	})
}

// GetStyle returns a style with its cost breakdown and size prices
// GET /api/v1/styles/:id
func (ctrl *StyleController) GetStyle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	detail, err := ctrl.styleService.GetStyleDetail(id)
	if err != nil {
		ctrl.respondStyleError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateStyle creates a style with its attachments in one transaction
// POST /api/v1/styles
func (ctrl *StyleController) CreateStyle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.StyleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid style creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	style, err := ctrl.styleService.CreateStyle(&input, ctrl.modifiedBy(c))
	if err != nil {
		ctrl.respondStyleError(c, log, err, 0)
		return
	}

	log.Info("Style created", map[string]interface{}{
		"style_id":     style.ID,
		"vendor_style": style.VendorStyle,
	})

	c.JSON(http.StatusCreated, gin.H{
		"style": style,
	})
}

// UpdateStyle replaces a style's fields and all five attachment sets
// PUT /api/v1/styles/:id
func (ctrl *StyleController) UpdateStyle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var input service.StyleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid style update request", map[string]interface{}{
			"style_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	style, err := ctrl.styleService.UpdateStyle(id, &input, ctrl.modifiedBy(c))
	if err != nil {
		ctrl.respondStyleError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"style": style,
	})
}

// DeleteStyle removes a style and every attachment under it
// DELETE /api/v1/styles/:id
func (ctrl *StyleController) DeleteStyle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	if err := ctrl.styleService.DeleteStyle(id); err != nil {
		ctrl.respondStyleError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Style deleted",
	})
}

// AttachComponent adds one component to a style and reprices it
// POST /api/v1/styles/:id/attachments
func (ctrl *StyleController) AttachComponent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var input service.AttachmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid attachment request", map[string]interface{}{
			"style_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	style, err := ctrl.styleService.AttachComponent(id, &input, ctrl.modifiedBy(c))
	if err != nil {
		ctrl.respondStyleError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"style": style,
	})
}

// DetachComponent removes one component from a style. Detaching something not
// attached returns the style unchanged.
// DELETE /api/v1/styles/:id/attachments
func (ctrl *StyleController) DetachComponent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var req DetachComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid detach request", map[string]interface{}{
			"style_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	style, err := ctrl.styleService.DetachComponent(id, req.Category, req.ComponentID, ctrl.modifiedBy(c))
	if err != nil {
		ctrl.respondStyleError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"style": style,
	})
}

// RecomputePrice reruns the pricing pass for one style
// POST /api/v1/styles/:id/recompute
func (ctrl *StyleController) RecomputePrice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	result, err := ctrl.styleService.RecomputePrice(id)
	if err != nil {
		ctrl.respondStyleError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DuplicateStyle copies a style and its attachments under a new vendor code
// POST /api/v1/styles/:id/duplicate
func (ctrl *StyleController) DuplicateStyle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var req DuplicateStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid duplicate request", map[string]interface{}{
			"style_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	style, err := ctrl.styleService.DuplicateStyle(id, req.VendorStyle, req.StyleName, ctrl.modifiedBy(c))
	if err != nil {
		ctrl.respondStyleError(c, log, err, id)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"style": style,
	})
}

// ToggleFavorite flips the style's favorite flag
// POST /api/v1/styles/:id/favorite
func (ctrl *StyleController) ToggleFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	style, err := ctrl.styleService.ToggleFavorite(id)
	if err != nil {
		ctrl.respondStyleError(c, log, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"style": style,
	})
}

// GetStats returns catalog-wide style counts
// GET /api/v1/styles/stats
func (ctrl *StyleController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.styleService.Stats()
	if err != nil {
		log.Error("Failed to compute style stats", err, nil)
		apperrors.InternalError(c, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (ctrl *StyleController) modifiedBy(c *gin.Context) string {
	email, _ := middleware.GetUserEmail(c)
	return email
}

func (ctrl *StyleController) respondStyleError(c *gin.Context, log *logger.Logger, err error, styleID uint) {
	fields := map[string]interface{}{}
	if styleID > 0 {
		fields["style_id"] = styleID
	}

	switch {
	case errors.Is(err, service.ErrStyleNotFound):
		log.Warn("Style not found", fields)
		apperrors.NotFound(c, apperrors.StyleNotFound, "Style not found")
	case errors.Is(err, service.ErrDuplicateVendorStyle):
		log.Warn("Duplicate vendor style code", fields)
		apperrors.Conflict(c, apperrors.StyleDuplicateVendorCode, "A style with this vendor style code already exists")
	case errors.Is(err, service.ErrDuplicateStyleName):
		log.Warn("Duplicate style name", fields)
		apperrors.Conflict(c, apperrors.StyleDuplicateName, "A style with this name already exists")
	case errors.Is(err, service.ErrDuplicateAttachment):
		log.Warn("Duplicate attachment", fields)
		apperrors.Conflict(c, apperrors.StyleDuplicateAttachment, "This component is already attached to the style")
	case errors.Is(err, service.ErrUnknownComponent):
		log.Warn("Unknown component in request", fields)
		apperrors.BadRequest(c, apperrors.StyleUnknownComponent, "The referenced catalog component does not exist")
	case errors.Is(err, service.ErrInvalidMargin):
		log.Warn("Invalid margin percent", fields)
		apperrors.BadRequest(c, apperrors.ValidationInvalidMargin, "Margin percent must be at least 0 and below 100")
	case errors.Is(err, service.ErrInvalidCategory):
		log.Warn("Invalid attachment category", fields)
		apperrors.BadRequest(c, apperrors.StyleInvalidCategory, "Unknown attachment category")
	case errors.Is(err, service.ErrInvalidGender):
		log.Warn("Invalid gender", fields)
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Gender must be MENS, LADIES or UNISEX")
	case errors.Is(err, service.ErrInvalidAttachment):
		log.Warn("Invalid attachment quantity", fields)
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Attachment quantity must be positive")
	default:
		log.Error("Style operation failed", err, fields)
		apperrors.InternalError(c, "")
	}
}

func parseIDParam(c *gin.Context, log *logger.Logger) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid ID format", map[string]interface{}{
			"id":    idStr,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

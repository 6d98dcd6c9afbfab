package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/service"
	apperrors "github.com/jauniforms/pricing-backend/internal/errors"
	"github.com/jauniforms/pricing-backend/internal/middleware"
	"github.com/jauniforms/pricing-backend/pkg/logger"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

type FabricRequest struct {
	Name           string  `json:"name" binding:"required"`
	FabricCode     string  `json:"fabric_code"`
	CostPerYard    float64 `json:"cost_per_yard" binding:"required,gt=0"`
	Color          string  `json:"color"`
	FabricVendorID *uint   `json:"fabric_vendor_id"`
}

type NotionRequest struct {
	Name           string  `json:"name" binding:"required"`
	CostPerUnit    float64 `json:"cost_per_unit" binding:"required,gt=0"`
	UnitType       string  `json:"unit_type"`
	NotionVendorID *uint   `json:"notion_vendor_id"`
}

type LaborOperationRequest struct {
	Name     string              `json:"name" binding:"required"`
	CostKind model.LaborCostKind `json:"cost_kind" binding:"required"`
	Rate     float64             `json:"rate" binding:"required,gt=0"`
	IsActive *bool               `json:"is_active"`
}

type ColorRequest struct {
	Name      string `json:"name" binding:"required"`
	ColorCode string `json:"color_code"`
}

type VariableRequest struct {
	Name           string  `json:"name" binding:"required"`
	CostAdjustment float64 `json:"cost_adjustment"`
	Description    string  `json:"description"`
}

type VendorRequest struct {
	Name       string `json:"name" binding:"required"`
	VendorCode string `json:"vendor_code"`
}

// ---- fabrics ----

// GET /api/v1/catalog/fabrics
func (ctrl *CatalogController) ListFabrics(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fabrics, err := ctrl.catalogService.ListFabrics()
	if err != nil {
		log.Error("Failed to fetch fabrics", err, nil)
		apperrors.InternalError(c, "Failed to fetch fabrics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fabrics": fabrics,
		"count":   len(fabrics),
	})
}

// GET /api/v1/catalog/fabrics/:id
func (ctrl *CatalogController) GetFabric(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	fabric, err := ctrl.catalogService.GetFabric(id)
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fabric": fabric})
}

// POST /api/v1/catalog/fabrics
func (ctrl *CatalogController) CreateFabric(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req FabricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid fabric request", map[string]interface{}{"error": err.Error()})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	fabric, err := ctrl.catalogService.CreateFabric(&model.Fabric{
		Name:           req.Name,
		FabricCode:     req.FabricCode,
		CostPerYard:    req.CostPerYard,
		Color:          req.Color,
		FabricVendorID: req.FabricVendorID,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"fabric": fabric})
}

// PUT /api/v1/catalog/fabrics/:id
func (ctrl *CatalogController) UpdateFabric(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var req FabricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	fabric, err := ctrl.catalogService.UpdateFabric(&model.Fabric{
		ID:             id,
		Name:           req.Name,
		FabricCode:     req.FabricCode,
		CostPerYard:    req.CostPerYard,
		Color:          req.Color,
		FabricVendorID: req.FabricVendorID,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fabric": fabric})
}

// DELETE /api/v1/catalog/fabrics/:id
func (ctrl *CatalogController) DeleteFabric(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteFabric(id); err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fabric deleted"})
}

// ---- notions ----

// GET /api/v1/catalog/notions
func (ctrl *CatalogController) ListNotions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	notions, err := ctrl.catalogService.ListNotions()
	if err != nil {
		log.Error("Failed to fetch notions", err, nil)
		apperrors.InternalError(c, "Failed to fetch notions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notions": notions,
		"count":   len(notions),
	})
}

// GET /api/v1/catalog/notions/:id
func (ctrl *CatalogController) GetNotion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	notion, err := ctrl.catalogService.GetNotion(id)
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notion": notion})
}

// POST /api/v1/catalog/notions
func (ctrl *CatalogController) CreateNotion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req NotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid notion request", map[string]interface{}{"error": err.Error()})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	unitType := req.UnitType
	if unitType == "" {
		unitType = "each"
	}

	notion, err := ctrl.catalogService.CreateNotion(&model.Notion{
		Name:           req.Name,
		CostPerUnit:    req.CostPerUnit,
		UnitType:       unitType,
		NotionVendorID: req.NotionVendorID,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notion": notion})
}

// PUT /api/v1/catalog/notions/:id
func (ctrl *CatalogController) UpdateNotion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var req NotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	notion, err := ctrl.catalogService.UpdateNotion(&model.Notion{
		ID:             id,
		Name:           req.Name,
		CostPerUnit:    req.CostPerUnit,
		UnitType:       req.UnitType,
		NotionVendorID: req.NotionVendorID,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notion": notion})
}

// DELETE /api/v1/catalog/notions/:id
func (ctrl *CatalogController) DeleteNotion(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteNotion(id); err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notion deleted"})
}

// ---- labor operations ----

// GET /api/v1/catalog/labor-operations
func (ctrl *CatalogController) ListLaborOperations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ops, err := ctrl.catalogService.ListLaborOperations()
	if err != nil {
		log.Error("Failed to fetch labor operations", err, nil)
		apperrors.InternalError(c, "Failed to fetch labor operations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"labor_operations": ops,
		"count":            len(ops),
	})
}

// POST /api/v1/catalog/labor-operations
func (ctrl *CatalogController) CreateLaborOperation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LaborOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid labor operation request", map[string]interface{}{"error": err.Error()})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	op := &model.LaborOperation{
		Name:     req.Name,
		CostKind: req.CostKind,
		Rate:     req.Rate,
		IsActive: true,
	}
	if req.IsActive != nil {
		op.IsActive = *req.IsActive
	}

	op, err := ctrl.catalogService.CreateLaborOperation(op)
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"labor_operation": op})
}

// PUT /api/v1/catalog/labor-operations/:id
func (ctrl *CatalogController) UpdateLaborOperation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var req LaborOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	op := &model.LaborOperation{
		ID:       id,
		Name:     req.Name,
		CostKind: req.CostKind,
		Rate:     req.Rate,
		IsActive: true,
	}
	if req.IsActive != nil {
		op.IsActive = *req.IsActive
	}

	op, err := ctrl.catalogService.UpdateLaborOperation(op)
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"labor_operation": op})
}

// DELETE /api/v1/catalog/labor-operations/:id
func (ctrl *CatalogController) DeleteLaborOperation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteLaborOperation(id); err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Labor operation deleted"})
}

// ---- colors ----

// GET /api/v1/catalog/colors
func (ctrl *CatalogController) ListColors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	colors, err := ctrl.catalogService.ListColors()
	if err != nil {
		log.Error("Failed to fetch colors", err, nil)
		apperrors.InternalError(c, "Failed to fetch colors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"colors": colors,
		"count":  len(colors),
	})
}

// POST /api/v1/catalog/colors
func (ctrl *CatalogController) CreateColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	color, err := ctrl.catalogService.CreateColor(&model.Color{
		Name:      req.Name,
		ColorCode: req.ColorCode,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"color": color})
}

// PUT /api/v1/catalog/colors/:id
func (ctrl *CatalogController) UpdateColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var req ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	color, err := ctrl.catalogService.UpdateColor(&model.Color{
		ID:        id,
		Name:      req.Name,
		ColorCode: req.ColorCode,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"color": color})
}

// DELETE /api/v1/catalog/colors/:id
func (ctrl *CatalogController) DeleteColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteColor(id); err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Color deleted"})
}

// ---- variables ----

// GET /api/v1/catalog/variables
func (ctrl *CatalogController) ListVariables(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	variables, err := ctrl.catalogService.ListVariables()
	if err != nil {
		log.Error("Failed to fetch variables", err, nil)
		apperrors.InternalError(c, "Failed to fetch variables")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variables": variables,
		"count":     len(variables),
	})
}

// POST /api/v1/catalog/variables
func (ctrl *CatalogController) CreateVariable(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VariableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	variable, err := ctrl.catalogService.CreateVariable(&model.Variable{
		Name:           req.Name,
		CostAdjustment: req.CostAdjustment,
		Description:    req.Description,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"variable": variable})
}

// PUT /api/v1/catalog/variables/:id
func (ctrl *CatalogController) UpdateVariable(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	var req VariableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	variable, err := ctrl.catalogService.UpdateVariable(&model.Variable{
		ID:             id,
		Name:           req.Name,
		CostAdjustment: req.CostAdjustment,
		Description:    req.Description,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"variable": variable})
}

// DELETE /api/v1/catalog/variables/:id
func (ctrl *CatalogController) DeleteVariable(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteVariable(id); err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variable deleted"})
}

// ---- vendors ----

// GET /api/v1/catalog/fabric-vendors
func (ctrl *CatalogController) ListFabricVendors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendors, err := ctrl.catalogService.ListFabricVendors()
	if err != nil {
		log.Error("Failed to fetch fabric vendors", err, nil)
		apperrors.InternalError(c, "Failed to fetch fabric vendors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendors": vendors, "count": len(vendors)})
}

// POST /api/v1/catalog/fabric-vendors
func (ctrl *CatalogController) CreateFabricVendor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	vendor, err := ctrl.catalogService.CreateFabricVendor(&model.FabricVendor{
		Name:       req.Name,
		VendorCode: req.VendorCode,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vendor": vendor})
}

// GET /api/v1/catalog/notion-vendors
func (ctrl *CatalogController) ListNotionVendors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendors, err := ctrl.catalogService.ListNotionVendors()
	if err != nil {
		log.Error("Failed to fetch notion vendors", err, nil)
		apperrors.InternalError(c, "Failed to fetch notion vendors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendors": vendors, "count": len(vendors)})
}

// POST /api/v1/catalog/notion-vendors
func (ctrl *CatalogController) CreateNotionVendor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	vendor, err := ctrl.catalogService.CreateNotionVendor(&model.NotionVendor{
		Name:       req.Name,
		VendorCode: req.VendorCode,
	})
	if err != nil {
		ctrl.respondCatalogError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vendor": vendor})
}

func (ctrl *CatalogController) respondCatalogError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrComponentNotFound):
		apperrors.NotFound(c, apperrors.CatalogNotFound, "Catalog component not found")
	case errors.Is(err, service.ErrDuplicateCatalogName):
		apperrors.Conflict(c, apperrors.CatalogDuplicateName, "A catalog entry with this name already exists")
	case errors.Is(err, service.ErrInvalidCostKind):
		apperrors.BadRequest(c, apperrors.CatalogInvalidCostKind, "Cost kind must be hourly or fixed_per_unit")
	case errors.Is(err, service.ErrComponentInUse):
		apperrors.Conflict(c, apperrors.ResourceConflict, "Component is attached to one or more styles")
	default:
		log.Error("Catalog operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

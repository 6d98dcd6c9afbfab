package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jauniforms/pricing-backend/internal/app/service"
	apperrors "github.com/jauniforms/pricing-backend/internal/errors"
	"github.com/jauniforms/pricing-backend/internal/middleware"
	"github.com/jauniforms/pricing-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	exportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportCostSheet downloads one style's cost sheet workbook
// GET /api/v1/styles/:id/export
func (ctrl *ExportController) ExportCostSheet(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log)
	if !ok {
		return
	}

	buf, filename, err := ctrl.exportService.ExportStyleCostSheet(id)
	if err != nil {
		if errors.Is(err, service.ErrStyleNotFound) {
			apperrors.NotFound(c, apperrors.StyleNotFound, "Style not found")
			return
		}
		log.Error("Failed to export cost sheet", err, map[string]interface{}{
			"style_id": id,
		})
		apperrors.InternalError(c, "Export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportStyleList downloads the full style list workbook
// GET /api/v1/styles/export
func (ctrl *ExportController) ExportStyleList(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, filename, err := ctrl.exportService.ExportStyleList()
	if err != nil {
		log.Error("Failed to export style list", err, nil)
		apperrors.InternalError(c, "Export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func parseUintParam(c *gin.Context, log *logger.Logger, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		log.Warn("Invalid ID format", map[string]interface{}{
			"param": name,
			"value": raw,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(v), true
}

package service

import (
	"bytes"
	"fmt"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportService renders catalog data as XLSX workbooks for the sales team.
type ExportService interface {
	ExportStyleCostSheet(styleID uint) (*bytes.Buffer, string, error)
	ExportStyleList() (*bytes.Buffer, string, error)
}

type exportService struct {
	styleRepo repository.StyleRepository
	styles    StyleService
	pricing   PricingService
}

func NewExportService(styleRepo repository.StyleRepository, styles StyleService, pricing PricingService) ExportService {
	return &exportService{
		styleRepo: styleRepo,
		styles:    styles,
		pricing:   pricing,
	}
}

// ExportStyleCostSheet writes one style's full cost breakdown to a workbook.
// Returns the file contents and a suggested filename.
func (s *exportService) ExportStyleCostSheet(styleID uint) (*bytes.Buffer, string, error) {
	detail, err := s.styles.GetStyleDetail(styleID)
	if err != nil {
		return nil, "", err
	}
	style := detail.Style

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cost Sheet"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, "", err
	}

	f.SetCellValue(sheet, "A1", "Vendor Style")
	f.SetCellValue(sheet, "B1", style.VendorStyle)
	f.SetCellValue(sheet, "A2", "Style Name")
	f.SetCellValue(sheet, "B2", style.StyleName)
	f.SetCellValue(sheet, "A3", "Garment Type")
	f.SetCellValue(sheet, "B3", style.GarmentType)
	f.SetCellValue(sheet, "A4", "Gender")
	f.SetCellValue(sheet, "B4", string(style.Gender))
	f.SetCellStyle(sheet, "A1", "A4", headerStyle)

	row := 6
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Component")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Quantity")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Unit Cost")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Line Cost")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), headerStyle)
	row++

	for _, sf := range style.Fabrics {
		perYard := sf.Fabric.CostPerYard
		if sf.IsSublimation {
			perYard += SublimationUpchargePerYard
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Fabric: %s", sf.Fabric.Name))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sf.YardsRequired)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), perYard)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sf.YardsRequired*perYard)
		row++
	}
	for _, sn := range style.Notions {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Notion: %s", sn.Notion.Name))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sn.QuantityRequired)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sn.Notion.CostPerUnit)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sn.QuantityRequired*sn.Notion.CostPerUnit)
		row++
	}
	for _, sl := range style.Labor {
		quantity := sl.TimeHours
		if sl.LaborOperation.CostKind != model.LaborHourly {
			quantity = float64(sl.Quantity)
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Labor: %s", sl.LaborOperation.Name))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), quantity)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sl.LaborOperation.Rate)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), quantity*sl.LaborOperation.Rate)
		row++
	}
	for _, sv := range style.Variables {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Variable: %s", sv.Variable.Name))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sv.Variable.CostAdjustment)
		row++
	}

	row++
	breakdown := detail.Breakdown
	summary := []struct {
		label string
		value float64
	}{
		{"Fabric Cost", breakdown.FabricCost},
		{"Notion Cost", breakdown.NotionCost},
		{"Labor Cost", breakdown.LaborCost},
		{"Variable Cost", breakdown.VariableCost},
		{"Cleaning Cost", breakdown.CleaningCost},
		{"Label Cost", breakdown.LabelCost},
		{"Total Cost", breakdown.Total},
	}
	for _, line := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.label)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), line.value)
		row++
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Margin %")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), style.BaseMarginPercent)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Suggested Price")
	if style.SuggestedPrice != nil {
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), *style.SuggestedPrice)
	}

	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "B", "D", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render style cost sheet", err, map[string]interface{}{
			"style_id": styleID,
		})
		return nil, "", err
	}

	filename := fmt.Sprintf("cost-sheet-%s.xlsx", style.VendorStyle)
	return buf, filename, nil
}

// ExportStyleList writes every style with its current pricing to a workbook.
func (s *exportService) ExportStyleList() (*bytes.Buffer, string, error) {
	styles, _, err := s.styleRepo.FindWithFilter(repository.StyleFilter{})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Styles"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, "", err
	}

	headers := []string{"Vendor Style", "Style Name", "Gender", "Garment Type", "Size Range", "Margin %", "Suggested Price", "Active"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)

	for i, style := range styles {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), style.VendorStyle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), style.StyleName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(style.Gender))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), style.GarmentType)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), style.SizeRange)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), style.BaseMarginPercent)
		if style.SuggestedPrice != nil {
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), *style.SuggestedPrice)
		}
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), style.IsActive)
	}

	f.SetColWidth(sheet, "A", "E", 20)
	f.SetColWidth(sheet, "F", "H", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render style list export", err)
		return nil, "", err
	}

	return buf, "styles.xlsx", nil
}

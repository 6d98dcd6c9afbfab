package service

import (
	"testing"

	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupExportTest(t *testing.T) (ExportService, StyleService, styleFixture) {
	styleSvc, testDB, fx := setupStyleServiceTest(t)

	styleRepo := repository.NewStyleRepository(testDB)
	pricing := NewPricingService(testDB)
	exportSvc := NewExportService(styleRepo, styleSvc, pricing)
	return exportSvc, styleSvc, fx
}

func TestExportStyleCostSheet(t *testing.T) {
	exportSvc, styleSvc, fx := setupExportTest(t)

	style, err := styleSvc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	buf, filename, err := exportSvc.ExportStyleCostSheet(style.ID)
	require.NoError(t, err)
	assert.Equal(t, "cost-sheet-W2330.xlsx", filename)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	vendorStyle, err := f.GetCellValue("Cost Sheet", "B1")
	require.NoError(t, err)
	assert.Equal(t, "W2330", vendorStyle)

	styleName, err := f.GetCellValue("Cost Sheet", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Womens Polo", styleName)
}

func TestExportStyleCostSheet_NotFound(t *testing.T) {
	exportSvc, _, _ := setupExportTest(t)

	_, _, err := exportSvc.ExportStyleCostSheet(9999)
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestExportStyleList(t *testing.T) {
	exportSvc, styleSvc, fx := setupExportTest(t)

	_, err := styleSvc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	buf, filename, err := exportSvc.ExportStyleList()
	require.NoError(t, err)
	assert.Equal(t, "styles.xlsx", filename)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Styles", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Vendor Style", header)

	vendorStyle, err := f.GetCellValue("Styles", "A2")
	require.NoError(t, err)
	assert.Equal(t, "W2330", vendorStyle)
}

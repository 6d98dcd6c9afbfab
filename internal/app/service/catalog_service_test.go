package service

import (
	"testing"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (CatalogService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewCatalogService(
		testDB,
		repository.NewFabricRepository(testDB),
		repository.NewNotionRepository(testDB),
		repository.NewLaborRepository(testDB),
		repository.NewColorRepository(testDB),
		repository.NewVariableRepository(testDB),
	)
	return svc, testDB
}

func TestFabricCRUD(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	fabric, err := svc.CreateFabric(&model.Fabric{Name: "Ponte Knit", CostPerYard: 8.75})
	require.NoError(t, err)
	require.NotZero(t, fabric.ID)

	found, err := svc.GetFabric(fabric.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ponte Knit", found.Name)

	found.CostPerYard = 9.25
	updated, err := svc.UpdateFabric(found)
	require.NoError(t, err)
	assert.InDelta(t, 9.25, updated.CostPerYard, 1e-9)

	require.NoError(t, svc.DeleteFabric(fabric.ID))
	_, err = svc.GetFabric(fabric.ID)
	assert.ErrorIs(t, err, ErrComponentNotFound)
}

func TestLaborOperation_CostKindValidation(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	tests := []struct {
		name     string
		costKind model.LaborCostKind
		wantErr  error
	}{
		{"hourly", model.LaborHourly, nil},
		{"fixed per unit", model.LaborFixedPerUnit, nil},
		{"empty", "", ErrInvalidCostKind},
		{"unknown", "piecework", ErrInvalidCostKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateLaborOperation(&model.LaborOperation{
				Name:     "Op " + tt.name,
				CostKind: tt.costKind,
				Rate:     10,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateLaborOperation_RejectsInvalidCostKind(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	op, err := svc.CreateLaborOperation(&model.LaborOperation{
		Name:     "Hemming",
		CostKind: model.LaborHourly,
		Rate:     16.50,
		IsActive: true,
	})
	require.NoError(t, err)

	op.CostKind = "salaried"
	_, err = svc.UpdateLaborOperation(op)
	assert.ErrorIs(t, err, ErrInvalidCostKind)
}

func TestDeleteComponent_BlockedWhileAttached(t *testing.T) {
	svc, testDB := setupCatalogTest(t)

	fabric, err := svc.CreateFabric(&model.Fabric{Name: "Twill", CostPerYard: 5.50})
	require.NoError(t, err)

	style := model.Style{VendorStyle: "TW-1", StyleName: "Twill Pant"}
	require.NoError(t, testDB.Create(&style).Error)
	require.NoError(t, testDB.Create(&model.StyleFabric{
		StyleID:       style.ID,
		FabricID:      fabric.ID,
		YardsRequired: 1.5,
	}).Error)

	assert.ErrorIs(t, svc.DeleteFabric(fabric.ID), ErrComponentInUse)

	// Detached components delete normally
	require.NoError(t, testDB.Where("style_id = ?", style.ID).Delete(&model.StyleFabric{}).Error)
	assert.NoError(t, svc.DeleteFabric(fabric.ID))
}

func TestColorAndVariableCRUD(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	color, err := svc.CreateColor(&model.Color{Name: "Forest Green", ColorCode: "FGR"})
	require.NoError(t, err)

	colors, err := svc.ListColors()
	require.NoError(t, err)
	assert.Len(t, colors, 1)

	color.ColorCode = "FOR"
	_, err = svc.UpdateColor(color)
	require.NoError(t, err)

	variable, err := svc.CreateVariable(&model.Variable{Name: "Rhinestones", CostAdjustment: 3.25})
	require.NoError(t, err)

	found, err := svc.GetVariable(variable.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.25, found.CostAdjustment, 1e-9)

	require.NoError(t, svc.DeleteColor(color.ID))
	require.NoError(t, svc.DeleteVariable(variable.ID))
}

func TestDuplicateCatalogName(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	_, err := svc.CreateColor(&model.Color{Name: "Black"})
	require.NoError(t, err)

	_, err = svc.CreateColor(&model.Color{Name: "Black"})
	assert.ErrorIs(t, err, ErrDuplicateCatalogName)
}

func TestVendors(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	_, err := svc.CreateFabricVendor(&model.FabricVendor{Name: "Carr Textile", VendorCode: "CARR"})
	require.NoError(t, err)
	_, err = svc.CreateNotionVendor(&model.NotionVendor{Name: "Wawak", VendorCode: "WWK"})
	require.NoError(t, err)

	fabricVendors, err := svc.ListFabricVendors()
	require.NoError(t, err)
	assert.Len(t, fabricVendors, 1)

	notionVendors, err := svc.ListNotionVendors()
	require.NoError(t, err)
	assert.Len(t, notionVendors, 1)
}

func TestGetComponent_NotFound(t *testing.T) {
	svc, _ := setupCatalogTest(t)

	_, err := svc.GetFabric(42)
	assert.ErrorIs(t, err, ErrComponentNotFound)
	_, err = svc.GetNotion(42)
	assert.ErrorIs(t, err, ErrComponentNotFound)
	_, err = svc.GetLaborOperation(42)
	assert.ErrorIs(t, err, ErrComponentNotFound)
}

package service

import (
	"testing"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPricingTest(t *testing.T) (PricingService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return NewPricingService(testDB), testDB
}

func TestAggregateCosts_EmptyStyle(t *testing.T) {
	pricing, _ := setupPricingTest(t)

	style := &model.Style{StyleName: "Empty", VendorStyle: "E-1"}
	breakdown := pricing.AggregateCosts(style, nil, 0)

	assert.Zero(t, breakdown.FabricCost)
	assert.Zero(t, breakdown.NotionCost)
	assert.Zero(t, breakdown.LaborCost)
	assert.Zero(t, breakdown.VariableCost)
	assert.Zero(t, breakdown.CleaningCost)
	assert.Zero(t, breakdown.LabelCost)
	assert.Zero(t, breakdown.Total)
}

func TestAggregateCosts_CategoryBreakdown(t *testing.T) {
	pricing, _ := setupPricingTest(t)

	style := &model.Style{
		StyleName:   "Polo",
		VendorStyle: "P-100",
		GarmentType: "Top",
		Fabrics: []model.StyleFabric{
			{
				YardsRequired: 2,
				Fabric:        model.Fabric{Name: "Jersey", CostPerYard: 5.00},
			},
			{
				YardsRequired: 1,
				IsSublimation: true,
				Fabric:        model.Fabric{Name: "Sub Poly", CostPerYard: 4.00},
			},
		},
		Notions: []model.StyleNotion{
			{
				QuantityRequired: 4,
				Notion:           model.Notion{Name: "Button", CostPerUnit: 0.25},
			},
		},
		Labor: []model.StyleLabor{
			{
				TimeHours:      0.5,
				LaborOperation: model.LaborOperation{Name: "Sewing", CostKind: model.LaborHourly, Rate: 18.50},
			},
			{
				Quantity:       3,
				LaborOperation: model.LaborOperation{Name: "Button", CostKind: model.LaborFixedPerUnit, Rate: 0.40},
			},
		},
		Variables: []model.StyleVariable{
			{Variable: model.Variable{Name: "Contrast Panel", CostAdjustment: 1.50}},
		},
	}
	cleaning := &model.CleaningCost{GarmentType: "Top", FixedCost: 0.75}

	breakdown := pricing.AggregateCosts(style, cleaning, 0.20)

	// 2 × 5.00 plus 1 × (4.00 + 6.00 sublimation upcharge)
	assert.InDelta(t, 20.00, breakdown.FabricCost, 1e-9)
	assert.InDelta(t, 1.00, breakdown.NotionCost, 1e-9)
	// 0.5h × 18.50 plus 3 × 0.40
	assert.InDelta(t, 10.45, breakdown.LaborCost, 1e-9)
	assert.InDelta(t, 1.50, breakdown.VariableCost, 1e-9)
	assert.InDelta(t, 0.75, breakdown.CleaningCost, 1e-9)
	assert.InDelta(t, 0.20, breakdown.LabelCost, 1e-9)

	// Total always equals the sum of the six categories
	sum := breakdown.FabricCost + breakdown.NotionCost + breakdown.LaborCost +
		breakdown.VariableCost + breakdown.CleaningCost + breakdown.LabelCost
	assert.InDelta(t, sum, breakdown.Total, 1e-9)
	assert.InDelta(t, 33.90, breakdown.Total, 1e-9)
}

func TestComputeBreakdown_MissingCleaningAndLabel(t *testing.T) {
	pricing, _ := setupPricingTest(t)

	// No cleaning cost row for the garment type and no label setting:
	// both categories contribute zero, nothing errors.
	style := &model.Style{
		StyleName:   "Bare",
		VendorStyle: "B-1",
		GarmentType: "Skort",
	}
	breakdown, err := pricing.ComputeBreakdown(style)
	require.NoError(t, err)
	assert.Zero(t, breakdown.CleaningCost)
	assert.Zero(t, breakdown.LabelCost)
	assert.Zero(t, breakdown.Total)
}

func TestComputeBreakdown_ReadsCleaningAndLabel(t *testing.T) {
	pricing, testDB := setupPricingTest(t)

	require.NoError(t, testDB.Create(&model.CleaningCost{GarmentType: "Pant", FixedCost: 1.25, AvgMinutes: 4}).Error)
	require.NoError(t, testDB.Create(&model.GlobalSetting{SettingKey: model.SettingAvgLabelCost, SettingValue: 0.20}).Error)

	style := &model.Style{StyleName: "Pant", VendorStyle: "PT-1", GarmentType: "Pant"}
	breakdown, err := pricing.ComputeBreakdown(style)
	require.NoError(t, err)

	assert.InDelta(t, 1.25, breakdown.CleaningCost, 1e-9)
	assert.InDelta(t, 0.20, breakdown.LabelCost, 1e-9)
	assert.InDelta(t, 1.45, breakdown.Total, 1e-9)
}

func TestSuggestPrice(t *testing.T) {
	pricing, _ := setupPricingTest(t)

	tests := []struct {
		name      string
		totalCost float64
		margin    float64
		wantPrice float64
		wantOK    bool
	}{
		{"typical margin", 50.00, 60, 125.00, true},
		{"zero margin sells at cost", 10.00, 0, 10.00, true},
		{"rounds to cents", 10.00, 33, 14.93, true},
		{"zero cost", 0, 60, 0, false},
		{"negative cost", -5.00, 60, 0, false},
		{"margin at 100", 10.00, 100, 0, false},
		{"margin above 100", 10.00, 120, 0, false},
		{"negative margin", 10.00, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := pricing.SuggestPrice(tt.totalCost, tt.margin)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantPrice, price, 1e-9)
			}
		})
	}
}

func TestSuggestPrice_InverseMarginProperty(t *testing.T) {
	pricing, _ := setupPricingTest(t)

	// price × (1 - margin/100) recovers the cost to within a cent
	costs := []float64{0.01, 3.37, 50.00, 199.99, 1204.56}
	margins := []float64{0, 10, 33.3, 60, 99}

	for _, cost := range costs {
		for _, margin := range margins {
			price, ok := pricing.SuggestPrice(cost, margin)
			require.True(t, ok)
			assert.InDelta(t, cost, price*(1-margin/100), 0.01)
		}
	}
}

func TestSizePrices(t *testing.T) {
	pricing, _ := setupPricingTest(t)

	sizeRange := &model.SizeRange{
		Name:                  "Mens Standard",
		RegularSizes:          "S,M,L,XL",
		ExtendedSizes:         "2XL,3XL",
		ExtendedMarkupPercent: 15,
	}

	prices := pricing.SizePrices(100.00, sizeRange)

	assert.Len(t, prices, 6)
	assert.InDelta(t, 100.00, prices["M"], 1e-9)
	assert.InDelta(t, 100.00, prices["XL"], 1e-9)
	assert.InDelta(t, 115.00, prices["2XL"], 1e-9)
	assert.InDelta(t, 115.00, prices["3XL"], 1e-9)
}

func TestCostBreakdown_Rounded(t *testing.T) {
	breakdown := CostBreakdown{
		FabricCost: 10.005,
		LaborCost:  3.3333,
		Total:      13.3383,
	}

	rounded := breakdown.Rounded()
	assert.InDelta(t, 10.01, rounded.FabricCost, 1e-9)
	assert.InDelta(t, 3.33, rounded.LaborCost, 1e-9)
	assert.InDelta(t, 13.34, rounded.Total, 1e-9)
}

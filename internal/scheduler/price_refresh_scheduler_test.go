package scheduler

import (
	"testing"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/internal/app/service"
	"github.com/jauniforms/pricing-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshAll_RepricesActiveStyles(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	fabric := model.Fabric{Name: "Jersey", CostPerYard: 10.00}
	require.NoError(t, testDB.Create(&fabric).Error)

	styleRepo := repository.NewStyleRepository(testDB)
	settingsRepo := repository.NewSettingsRepository(testDB)
	pricing := service.NewPricingService(testDB)
	styleService := service.NewStyleService(testDB, styleRepo, settingsRepo, pricing, nil)

	margin := 50.0
	active, err := styleService.CreateStyle(&service.StyleInput{
		VendorStyle:       "A-1",
		StyleName:         "Active Style",
		BaseMarginPercent: &margin,
		Fabrics: []service.FabricAttachmentInput{
			{FabricID: fabric.ID, YardsRequired: 1, IsPrimary: true},
		},
	}, "tester")
	require.NoError(t, err)

	inactive := false
	retired, err := styleService.CreateStyle(&service.StyleInput{
		VendorStyle:       "R-1",
		StyleName:         "Retired Style",
		BaseMarginPercent: &margin,
		IsActive:          &inactive,
		Fabrics: []service.FabricAttachmentInput{
			{FabricID: fabric.ID, YardsRequired: 1, IsPrimary: true},
		},
	}, "tester")
	require.NoError(t, err)

	// Cost changes under both styles, but only the active one gets swept
	require.NoError(t, testDB.Model(&model.Fabric{}).Where("id = ?", fabric.ID).
		Update("cost_per_yard", 15.00).Error)

	s := NewPriceRefreshScheduler(styleService, "0 2 * * *")
	s.RefreshAll()

	refreshed, err := styleService.GetStyle(active.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed.SuggestedPrice)
	assert.InDelta(t, 30.00, *refreshed.SuggestedPrice, 1e-9)

	untouched, err := styleService.GetStyle(retired.ID)
	require.NoError(t, err)
	require.NotNil(t, untouched.SuggestedPrice)
	assert.InDelta(t, 20.00, *untouched.SuggestedPrice, 1e-9)
}

package service

import (
	"testing"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSettingsTest(t *testing.T) SettingsService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return NewSettingsService(repository.NewSettingsRepository(testDB))
}

func TestSetSetting_UpsertsByKey(t *testing.T) {
	svc := setupSettingsTest(t)

	_, err := svc.GetSetting(model.SettingAvgLabelCost)
	assert.ErrorIs(t, err, ErrSettingNotFound)

	created, err := svc.SetSetting(model.SettingAvgLabelCost, 0.18, "Average woven label cost")
	require.NoError(t, err)
	assert.InDelta(t, 0.18, created.SettingValue, 1e-9)

	// Writing the same key again overwrites instead of inserting
	updated, err := svc.SetSetting(model.SettingAvgLabelCost, 0.22, "Average woven label cost")
	require.NoError(t, err)
	assert.InDelta(t, 0.22, updated.SettingValue, 1e-9)

	settings, err := svc.ListSettings()
	require.NoError(t, err)
	assert.Len(t, settings, 1)
}

func TestSaveCleaningCost(t *testing.T) {
	svc := setupSettingsTest(t)

	created, err := svc.SaveCleaningCost(&model.CleaningCost{GarmentType: "Jacket", FixedCost: 2.50, AvgMinutes: 8})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// Saving the same garment type updates the existing row
	updated, err := svc.SaveCleaningCost(&model.CleaningCost{GarmentType: "Jacket", FixedCost: 2.75, AvgMinutes: 9})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.InDelta(t, 2.75, updated.FixedCost, 1e-9)

	costs, err := svc.ListCleaningCosts()
	require.NoError(t, err)
	assert.Len(t, costs, 1)

	require.NoError(t, svc.DeleteCleaningCost(created.ID))
	costs, err = svc.ListCleaningCosts()
	require.NoError(t, err)
	assert.Empty(t, costs)
}

func TestSaveSizeRange(t *testing.T) {
	svc := setupSettingsTest(t)

	created, err := svc.SaveSizeRange(&model.SizeRange{
		Name:                  "Mens Standard",
		RegularSizes:          "S,M,L,XL",
		ExtendedSizes:         "2XL,3XL",
		ExtendedMarkupPercent: 15,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	created.ExtendedMarkupPercent = 20
	updated, err := svc.SaveSizeRange(created)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	found, err := svc.GetSizeRange("Mens Standard")
	require.NoError(t, err)
	assert.InDelta(t, 20, found.ExtendedMarkupPercent, 1e-9)
	assert.Equal(t, []string{"S", "M", "L", "XL"}, found.RegularSizeList())
	assert.Equal(t, []string{"2XL", "3XL"}, found.ExtendedSizeList())

	_, err = svc.GetSizeRange("Kids")
	assert.ErrorIs(t, err, ErrSizeRangeNotFound)

	require.NoError(t, svc.DeleteSizeRange(created.ID))
	ranges, err := svc.ListSizeRanges()
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

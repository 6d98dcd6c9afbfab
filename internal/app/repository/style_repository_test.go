package repository

import (
	"testing"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStyleRepoTest(t *testing.T) (StyleRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return NewStyleRepository(testDB), testDB
}

func seedStyles(t *testing.T, testDB *gorm.DB) {
	price1, price2 := 48.00, 125.00
	styles := []model.Style{
		{VendorStyle: "M100", StyleName: "Mens Polo", Gender: model.GenderMens, GarmentType: "Top", SuggestedPrice: &price2, IsActive: true, IsFavorite: true, BaseMarginPercent: 60},
		{VendorStyle: "L200", StyleName: "Ladies Skort", Gender: model.GenderLadies, GarmentType: "Skort", SuggestedPrice: &price1, IsActive: true, BaseMarginPercent: 55},
		{VendorStyle: "L300", StyleName: "Ladies Jacket", Gender: model.GenderLadies, GarmentType: "Jacket", IsActive: false, BaseMarginPercent: 50},
	}
	for i := range styles {
		require.NoError(t, testDB.Create(&styles[i]).Error)
	}
}

func TestFindWithFilter(t *testing.T) {
	repo, testDB := setupStyleRepoTest(t)
	seedStyles(t, testDB)

	active := true
	favorite := true

	tests := []struct {
		name      string
		filter    StyleFilter
		wantTotal int64
		wantFirst string
	}{
		{"no filter sorts by name", StyleFilter{}, 3, "L300"},
		{"text search on name", StyleFilter{Query: "Polo"}, 1, "M100"},
		{"text search on vendor style", StyleFilter{Query: "L2"}, 1, "L200"},
		{"by gender", StyleFilter{Gender: model.GenderLadies}, 2, "L300"},
		{"by garment type", StyleFilter{GarmentType: "Skort"}, 1, "L200"},
		{"active only", StyleFilter{IsActive: &active}, 2, "L200"},
		{"favorites only", StyleFilter{IsFavorite: &favorite}, 1, "M100"},
		{"sort by price descending", StyleFilter{SortBy: "price", SortDesc: true}, 3, "M100"},
		{"sort by margin ascending", StyleFilter{SortBy: "margin"}, 3, "L300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			styles, total, err := repo.FindWithFilter(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			require.NotEmpty(t, styles)
			assert.Equal(t, tt.wantFirst, styles[0].VendorStyle)
		})
	}
}

func TestFindWithFilter_Pagination(t *testing.T) {
	repo, testDB := setupStyleRepoTest(t)
	seedStyles(t, testDB)

	styles, total, err := repo.FindWithFilter(StyleFilter{SortBy: "vendor_style", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, styles, 2)
	assert.Equal(t, "L200", styles[0].VendorStyle)

	styles, total, err = repo.FindWithFilter(StyleFilter{SortBy: "vendor_style", Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, styles, 1)
	assert.Equal(t, "M100", styles[0].VendorStyle)
}

func TestFindByVendorStyleAndName(t *testing.T) {
	repo, testDB := setupStyleRepoTest(t)
	seedStyles(t, testDB)

	style, err := repo.FindByVendorStyle("M100")
	require.NoError(t, err)
	assert.Equal(t, "Mens Polo", style.StyleName)

	style, err = repo.FindByName("mens polo")
	require.NoError(t, err)
	assert.Equal(t, "M100", style.VendorStyle)

	_, err = repo.FindByVendorStyle("NOPE")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindActiveIDs(t *testing.T) {
	repo, testDB := setupStyleRepoTest(t)
	seedStyles(t, testDB)

	ids, err := repo.FindActiveIDs()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestStats(t *testing.T) {
	repo, testDB := setupStyleRepoTest(t)
	seedStyles(t, testDB)

	stats, err := repo.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(1), stats.Favorites)
	assert.Equal(t, int64(2), stats.ByGender[string(model.GenderLadies)])
	assert.Equal(t, int64(1), stats.ByGender[string(model.GenderMens)])
	assert.Equal(t, int64(1), stats.ByGarmentType["Skort"])
}

func TestFindByIDPreloadsAttachments(t *testing.T) {
	repo, testDB := setupStyleRepoTest(t)

	fabric := model.Fabric{Name: "Jersey", CostPerYard: 5}
	require.NoError(t, testDB.Create(&fabric).Error)

	style := model.Style{VendorStyle: "P1", StyleName: "Preload Check", IsActive: true}
	require.NoError(t, testDB.Create(&style).Error)
	require.NoError(t, testDB.Create(&model.StyleFabric{
		StyleID:       style.ID,
		FabricID:      fabric.ID,
		YardsRequired: 2,
	}).Error)

	found, err := repo.FindByID(style.ID)
	require.NoError(t, err)
	require.Len(t, found.Fabrics, 1)
	assert.Equal(t, "Jersey", found.Fabrics[0].Fabric.Name)
	assert.InDelta(t, 5, found.Fabrics[0].Fabric.CostPerYard, 1e-9)
}

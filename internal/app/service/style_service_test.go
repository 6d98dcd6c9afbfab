package service

import (
	"testing"
	"time"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testClock = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

type styleFixture struct {
	fabric   model.Fabric
	notion   model.Notion
	hourly   model.LaborOperation
	perUnit  model.LaborOperation
	color    model.Color
	variable model.Variable
}

func setupStyleServiceTest(t *testing.T) (StyleService, *gorm.DB, styleFixture) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	fx := styleFixture{
		fabric:   model.Fabric{Name: "Poly Jersey", CostPerYard: 10.00},
		notion:   model.Notion{Name: "Button", CostPerUnit: 1.00, UnitType: "each"},
		hourly:   model.LaborOperation{Name: "Sewing", CostKind: model.LaborHourly, Rate: 20.00, IsActive: true},
		perUnit:  model.LaborOperation{Name: "Buttonhole", CostKind: model.LaborFixedPerUnit, Rate: 0.50, IsActive: true},
		color:    model.Color{Name: "Navy", ColorCode: "NVY"},
		variable: model.Variable{Name: "Contrast Panel", CostAdjustment: 2.50},
	}
	require.NoError(t, testDB.Create(&fx.fabric).Error)
	require.NoError(t, testDB.Create(&fx.notion).Error)
	require.NoError(t, testDB.Create(&fx.hourly).Error)
	require.NoError(t, testDB.Create(&fx.perUnit).Error)
	require.NoError(t, testDB.Create(&fx.color).Error)
	require.NoError(t, testDB.Create(&fx.variable).Error)

	styleRepo := repository.NewStyleRepository(testDB)
	settingsRepo := repository.NewSettingsRepository(testDB)
	pricing := NewPricingService(testDB)
	svc := NewStyleService(testDB, styleRepo, settingsRepo, pricing, func() time.Time { return testClock })

	return svc, testDB, fx
}

// fiftyDollarInput builds a style whose exact aggregate cost is 50.00:
// 2 yards at 10.00, 10 notions at 1.00, 1 hour of labor at 20.00.
func fiftyDollarInput(fx styleFixture, margin float64) *StyleInput {
	return &StyleInput{
		VendorStyle:       "W2330",
		StyleName:         "Womens Polo",
		Gender:            model.GenderLadies,
		GarmentType:       "Top",
		BaseMarginPercent: &margin,
		Fabrics: []FabricAttachmentInput{
			{FabricID: fx.fabric.ID, YardsRequired: 2, IsPrimary: true},
		},
		Notions: []NotionAttachmentInput{
			{NotionID: fx.notion.ID, QuantityRequired: 10},
		},
		Labor: []LaborAttachmentInput{
			{LaborOperationID: fx.hourly.ID, TimeHours: 1},
		},
	}
}

func TestCreateStyle_ComputesSuggestedPrice(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester@example.com")
	require.NoError(t, err)

	// 50.00 cost at 60% margin: 50 / 0.40 = 125.00
	require.NotNil(t, style.SuggestedPrice)
	assert.InDelta(t, 125.00, *style.SuggestedPrice, 1e-9)
	assert.Equal(t, "tester@example.com", style.LastModifiedBy)
	assert.True(t, style.IsActive)
	assert.Equal(t, testClock, style.UpdatedAt.UTC())
	assert.Len(t, style.Fabrics, 1)
	assert.Len(t, style.Notions, 1)
	assert.Len(t, style.Labor, 1)
}

func TestCreateStyle_NoAttachmentsLeavesPriceUnset(t *testing.T) {
	svc, _, _ := setupStyleServiceTest(t)

	margin := 60.0
	style, err := svc.CreateStyle(&StyleInput{
		VendorStyle:       "EMPTY-1",
		StyleName:         "Shell Only",
		BaseMarginPercent: &margin,
	}, "tester")
	require.NoError(t, err)

	// Zero cost is a degenerate pricing input: no price is written.
	assert.Nil(t, style.SuggestedPrice)
}

func TestCreateStyle_InvalidMargin(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	tests := []struct {
		name   string
		margin float64
	}{
		{"negative", -1},
		{"at 100", 100},
		{"above 100", 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateStyle(fiftyDollarInput(fx, tt.margin), "tester")
			assert.ErrorIs(t, err, ErrInvalidMargin)
		})
	}
}

func TestCreateStyle_DuplicateVendorStyle(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	_, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	input := fiftyDollarInput(fx, 60)
	input.StyleName = "Different Name"
	_, err = svc.CreateStyle(input, "tester")
	assert.ErrorIs(t, err, ErrDuplicateVendorStyle)
}

func TestCreateStyle_DuplicateStyleName(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	_, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	input := fiftyDollarInput(fx, 60)
	input.VendorStyle = "W2331"
	input.StyleName = "womens polo" // name match is case insensitive
	_, err = svc.CreateStyle(input, "tester")
	assert.ErrorIs(t, err, ErrDuplicateStyleName)
}

func TestCreateStyle_UnknownComponentRollsBack(t *testing.T) {
	svc, testDB, fx := setupStyleServiceTest(t)

	input := fiftyDollarInput(fx, 60)
	input.Notions = append(input.Notions, NotionAttachmentInput{NotionID: 9999, QuantityRequired: 1})

	_, err := svc.CreateStyle(input, "tester")
	assert.ErrorIs(t, err, ErrUnknownComponent)

	// Nothing from the failed create may persist
	var styleCount, fabricCount int64
	testDB.Model(&model.Style{}).Count(&styleCount)
	testDB.Model(&model.StyleFabric{}).Count(&fabricCount)
	assert.Zero(t, styleCount)
	assert.Zero(t, fabricCount)
}

func TestCreateStyle_DuplicateAttachmentInInput(t *testing.T) {
	svc, testDB, fx := setupStyleServiceTest(t)

	input := fiftyDollarInput(fx, 60)
	input.Fabrics = append(input.Fabrics, FabricAttachmentInput{FabricID: fx.fabric.ID, YardsRequired: 1})

	_, err := svc.CreateStyle(input, "tester")
	assert.ErrorIs(t, err, ErrDuplicateAttachment)

	var styleCount int64
	testDB.Model(&model.Style{}).Count(&styleCount)
	assert.Zero(t, styleCount)
}

func TestUpdateStyle_ReplacesAttachmentsAndReprices(t *testing.T) {
	svc, testDB, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	// Drop notions and labor, keep only the fabric: cost becomes 20.00
	margin := 60.0
	updated, err := svc.UpdateStyle(style.ID, &StyleInput{
		VendorStyle:       style.VendorStyle,
		StyleName:         style.StyleName,
		Gender:            style.Gender,
		GarmentType:       style.GarmentType,
		BaseMarginPercent: &margin,
		Fabrics: []FabricAttachmentInput{
			{FabricID: fx.fabric.ID, YardsRequired: 2, IsPrimary: true},
		},
	}, "tester")
	require.NoError(t, err)

	require.NotNil(t, updated.SuggestedPrice)
	assert.InDelta(t, 50.00, *updated.SuggestedPrice, 1e-9)
	assert.Empty(t, updated.Notions)
	assert.Empty(t, updated.Labor)

	var notionCount, laborCount int64
	testDB.Model(&model.StyleNotion{}).Where("style_id = ?", style.ID).Count(&notionCount)
	testDB.Model(&model.StyleLabor{}).Where("style_id = ?", style.ID).Count(&laborCount)
	assert.Zero(t, notionCount)
	assert.Zero(t, laborCount)
}

func TestUpdateStyle_NotFound(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	_, err := svc.UpdateStyle(9999, fiftyDollarInput(fx, 60), "tester")
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestAttachComponent_RecomputesPrice(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	// Add 2 buttonhole operations at 0.50 each: cost 50.00 -> 51.00
	updated, err := svc.AttachComponent(style.ID, &AttachmentInput{
		Category:    CategoryLabor,
		ComponentID: fx.perUnit.ID,
		Quantity:    2,
	}, "tester")
	require.NoError(t, err)

	require.NotNil(t, updated.SuggestedPrice)
	assert.InDelta(t, 127.50, *updated.SuggestedPrice, 1e-9)
	assert.Len(t, updated.Labor, 2)
}

func TestAttachComponent_DuplicateLeavesCountUnchanged(t *testing.T) {
	svc, testDB, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	_, err = svc.AttachComponent(style.ID, &AttachmentInput{
		Category:      CategoryFabric,
		ComponentID:   fx.fabric.ID,
		YardsRequired: 1,
	}, "tester")
	assert.ErrorIs(t, err, ErrDuplicateAttachment)

	var count int64
	testDB.Model(&model.StyleFabric{}).Where("style_id = ?", style.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAttachComponent_Errors(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	tests := []struct {
		name    string
		styleID uint
		input   *AttachmentInput
		wantErr error
	}{
		{
			"unknown style",
			9999,
			&AttachmentInput{Category: CategoryColor, ComponentID: fx.color.ID},
			ErrStyleNotFound,
		},
		{
			"unknown component",
			style.ID,
			&AttachmentInput{Category: CategoryColor, ComponentID: 9999},
			ErrUnknownComponent,
		},
		{
			"invalid category",
			style.ID,
			&AttachmentInput{Category: "trim", ComponentID: fx.color.ID},
			ErrInvalidCategory,
		},
		{
			"zero yards",
			style.ID,
			&AttachmentInput{Category: CategoryFabric, ComponentID: fx.fabric.ID},
			ErrInvalidAttachment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AttachComponent(tt.styleID, tt.input, "tester")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDetachComponent_RemovesAndReprices(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	// Remove the 20.00 labor line: cost 50.00 -> 30.00
	updated, err := svc.DetachComponent(style.ID, CategoryLabor, fx.hourly.ID, "tester")
	require.NoError(t, err)

	require.NotNil(t, updated.SuggestedPrice)
	assert.InDelta(t, 75.00, *updated.SuggestedPrice, 1e-9)
	assert.Empty(t, updated.Labor)
}

func TestDetachComponent_NotAttachedIsNoop(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	// The color was never attached; the call succeeds and nothing changes.
	updated, err := svc.DetachComponent(style.ID, CategoryColor, fx.color.ID, "tester")
	require.NoError(t, err)

	require.NotNil(t, updated.SuggestedPrice)
	assert.InDelta(t, 125.00, *updated.SuggestedPrice, 1e-9)
	assert.Len(t, updated.Fabrics, 1)
	assert.Len(t, updated.Notions, 1)
	assert.Len(t, updated.Labor, 1)
}

func TestDetachThenReattach(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	_, err = svc.DetachComponent(style.ID, CategoryNotion, fx.notion.ID, "tester")
	require.NoError(t, err)

	updated, err := svc.AttachComponent(style.ID, &AttachmentInput{
		Category:         CategoryNotion,
		ComponentID:      fx.notion.ID,
		QuantityRequired: 10,
	}, "tester")
	require.NoError(t, err)

	require.NotNil(t, updated.SuggestedPrice)
	assert.InDelta(t, 125.00, *updated.SuggestedPrice, 1e-9)
}

func TestRecomputePrice_Idempotent(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	first, err := svc.RecomputePrice(style.ID)
	require.NoError(t, err)
	require.NotNil(t, first.SuggestedPrice)
	assert.InDelta(t, 125.00, *first.SuggestedPrice, 1e-9)
	assert.False(t, first.PriceUpdated)

	second, err := svc.RecomputePrice(style.ID)
	require.NoError(t, err)
	require.NotNil(t, second.SuggestedPrice)
	assert.InDelta(t, 125.00, *second.SuggestedPrice, 1e-9)
	assert.False(t, second.PriceUpdated)
}

func TestRecomputePrice_DegenerateMarginKeepsStoredPrice(t *testing.T) {
	svc, testDB, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	// Force a margin the pricing rule rejects; validation prevents this through
	// the service, so write the column directly.
	require.NoError(t, testDB.Model(&model.Style{}).Where("id = ?", style.ID).
		Update("base_margin_percent", 100).Error)

	result, err := svc.RecomputePrice(style.ID)
	require.NoError(t, err)

	assert.False(t, result.PriceUpdated)
	require.NotNil(t, result.SuggestedPrice)
	assert.InDelta(t, 125.00, *result.SuggestedPrice, 1e-9)

	stored, err := svc.GetStyle(style.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SuggestedPrice)
	assert.InDelta(t, 125.00, *stored.SuggestedPrice, 1e-9)
}

func TestRecomputePrice_AfterCatalogCostChange(t *testing.T) {
	svc, testDB, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	// Fabric cost doubles: 2 yards go from 20.00 to 40.00, total 70.00
	require.NoError(t, testDB.Model(&model.Fabric{}).Where("id = ?", fx.fabric.ID).
		Update("cost_per_yard", 20.00).Error)

	result, err := svc.RecomputePrice(style.ID)
	require.NoError(t, err)

	assert.True(t, result.PriceUpdated)
	require.NotNil(t, result.SuggestedPrice)
	assert.InDelta(t, 175.00, *result.SuggestedPrice, 1e-9)
}

func TestRecomputePrice_NotFound(t *testing.T) {
	svc, _, _ := setupStyleServiceTest(t)

	_, err := svc.RecomputePrice(9999)
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestDeleteStyle_RemovesAllAttachments(t *testing.T) {
	svc, testDB, fx := setupStyleServiceTest(t)

	input := fiftyDollarInput(fx, 60)
	input.ColorIDs = []uint{fx.color.ID}
	input.VariableIDs = []uint{fx.variable.ID}
	style, err := svc.CreateStyle(input, "tester")
	require.NoError(t, err)

	_, err = svc.AddImage(style.ID, "https://cdn.example.com/a.jpg", "styles/a.jpg", true)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStyle(style.ID))

	for _, m := range []interface{}{
		&model.Style{},
		&model.StyleFabric{},
		&model.StyleNotion{},
		&model.StyleLabor{},
		&model.StyleColor{},
		&model.StyleVariable{},
		&model.StyleImage{},
	} {
		var count int64
		testDB.Model(m).Count(&count)
		assert.Zero(t, count)
	}
}

func TestDeleteStyle_NotFound(t *testing.T) {
	svc, _, _ := setupStyleServiceTest(t)

	assert.ErrorIs(t, svc.DeleteStyle(9999), ErrStyleNotFound)
}

func TestDuplicateStyle_CopiesAttachments(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	input := fiftyDollarInput(fx, 60)
	input.ColorIDs = []uint{fx.color.ID}
	input.VariableIDs = []uint{fx.variable.ID}
	source, err := svc.CreateStyle(input, "tester")
	require.NoError(t, err)

	copied, err := svc.DuplicateStyle(source.ID, "W2330-B", "", "tester")
	require.NoError(t, err)

	assert.Equal(t, "W2330-B", copied.VendorStyle)
	assert.Equal(t, "Womens Polo (Copy)", copied.StyleName)
	assert.Len(t, copied.Fabrics, 1)
	assert.Len(t, copied.Notions, 1)
	assert.Len(t, copied.Labor, 1)
	assert.Len(t, copied.Colors, 1)
	assert.Len(t, copied.Variables, 1)

	// The copy carries the variable's cost adjustment, so it prices higher
	require.NotNil(t, copied.SuggestedPrice)
	assert.InDelta(t, 131.25, *copied.SuggestedPrice, 1e-9)
}

func TestDuplicateStyle_RejectsTakenVendorStyle(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	source, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	_, err = svc.DuplicateStyle(source.ID, source.VendorStyle, "Another Name", "tester")
	assert.ErrorIs(t, err, ErrDuplicateVendorStyle)
}

func TestToggleFavorite(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)
	assert.False(t, style.IsFavorite)

	toggled, err := svc.ToggleFavorite(style.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = svc.ToggleFavorite(style.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
}

func TestGetStyleDetail(t *testing.T) {
	svc, testDB, fx := setupStyleServiceTest(t)

	require.NoError(t, testDB.Create(&model.SizeRange{
		Name:                  "Ladies Standard",
		RegularSizes:          "S,M,L",
		ExtendedSizes:         "2XL",
		ExtendedMarkupPercent: 20,
	}).Error)

	input := fiftyDollarInput(fx, 60)
	input.SizeRange = "Ladies Standard"
	style, err := svc.CreateStyle(input, "tester")
	require.NoError(t, err)

	detail, err := svc.GetStyleDetail(style.ID)
	require.NoError(t, err)

	assert.InDelta(t, 50.00, detail.Breakdown.Total, 1e-9)
	assert.InDelta(t, 20.00, detail.Breakdown.FabricCost, 1e-9)
	require.NotEmpty(t, detail.SizePrices)
	assert.InDelta(t, 125.00, detail.SizePrices["M"], 1e-9)
	assert.InDelta(t, 150.00, detail.SizePrices["2XL"], 1e-9)
}

func TestImages_AddPrimaryDemotesExisting(t *testing.T) {
	svc, testDB, fx := setupStyleServiceTest(t)

	style, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	first, err := svc.AddImage(style.ID, "https://cdn.example.com/1.jpg", "styles/1.jpg", true)
	require.NoError(t, err)
	second, err := svc.AddImage(style.ID, "https://cdn.example.com/2.jpg", "styles/2.jpg", true)
	require.NoError(t, err)

	var images []model.StyleImage
	require.NoError(t, testDB.Where("style_id = ?", style.ID).Order("id").Find(&images).Error)
	require.Len(t, images, 2)
	assert.Equal(t, first.ID, images[0].ID)
	assert.False(t, images[0].IsPrimary)
	assert.Equal(t, second.ID, images[1].ID)
	assert.True(t, images[1].IsPrimary)

	require.NoError(t, svc.DeleteImage(style.ID, first.ID))
	assert.ErrorIs(t, svc.DeleteImage(style.ID, first.ID), ErrStyleNotFound)
}

func TestActiveStyleIDs(t *testing.T) {
	svc, _, fx := setupStyleServiceTest(t)

	active, err := svc.CreateStyle(fiftyDollarInput(fx, 60), "tester")
	require.NoError(t, err)

	inactive := false
	input := fiftyDollarInput(fx, 60)
	input.VendorStyle = "W2331"
	input.StyleName = "Retired Polo"
	input.IsActive = &inactive
	_, err = svc.CreateStyle(input, "tester")
	require.NoError(t, err)

	ids, err := svc.ActiveStyleIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint{active.ID}, ids)
}

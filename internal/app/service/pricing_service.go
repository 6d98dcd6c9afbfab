package service

import (
	"errors"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"github.com/jauniforms/pricing-backend/pkg/util"
	"gorm.io/gorm"
)

// SublimationUpchargePerYard is added on top of the fabric's base cost for
// every yard flagged as sublimated.
const SublimationUpchargePerYard = 6.00

// CostBreakdown holds per-category subtotals in full float precision. Total is
// always the exact sum of the six categories; rounding happens only when a
// price is written or displayed.
type CostBreakdown struct {
	FabricCost   float64 `json:"fabric_cost"`
	NotionCost   float64 `json:"notion_cost"`
	LaborCost    float64 `json:"labor_cost"`
	VariableCost float64 `json:"variable_cost"`
	CleaningCost float64 `json:"cleaning_cost"`
	LabelCost    float64 `json:"label_cost"`
	Total        float64 `json:"total"`
}

// Rounded returns a copy with every category rounded to cents for display.
func (b CostBreakdown) Rounded() CostBreakdown {
	return CostBreakdown{
		FabricCost:   util.RoundCurrency(b.FabricCost),
		NotionCost:   util.RoundCurrency(b.NotionCost),
		LaborCost:    util.RoundCurrency(b.LaborCost),
		VariableCost: util.RoundCurrency(b.VariableCost),
		CleaningCost: util.RoundCurrency(b.CleaningCost),
		LabelCost:    util.RoundCurrency(b.LabelCost),
		Total:        util.RoundCurrency(b.Total),
	}
}

type PricingService interface {
	ComputeBreakdown(style *model.Style) (*CostBreakdown, error)
	ComputeBreakdownTx(tx *gorm.DB, style *model.Style) (*CostBreakdown, error)
	AggregateCosts(style *model.Style, cleaning *model.CleaningCost, labelCost float64) CostBreakdown
	SuggestPrice(totalCost float64, marginPercent float64) (float64, bool)
	SizePrices(basePrice float64, sizeRange *model.SizeRange) map[string]float64
}

type pricingService struct {
	db *gorm.DB
}

func NewPricingService(db *gorm.DB) PricingService {
	return &pricingService{db: db}
}

// ComputeBreakdown aggregates the style's cost from its preloaded attachments
// plus the current cleaning cost and label setting.
func (s *pricingService) ComputeBreakdown(style *model.Style) (*CostBreakdown, error) {
	return s.ComputeBreakdownTx(s.db, style)
}

// ComputeBreakdownTx is ComputeBreakdown running through an open transaction,
// so recomputation after an attachment edit sees the uncommitted rows.
func (s *pricingService) ComputeBreakdownTx(tx *gorm.DB, style *model.Style) (*CostBreakdown, error) {
	cleaning, err := s.cleaningCostFor(tx, style.GarmentType)
	if err != nil {
		return nil, err
	}

	labelCost, err := s.labelCost(tx)
	if err != nil {
		return nil, err
	}

	breakdown := s.AggregateCosts(style, cleaning, labelCost)
	return &breakdown, nil
}

// A garment type with no cleaning row contributes zero, it is not an error.
func (s *pricingService) cleaningCostFor(tx *gorm.DB, garmentType string) (*model.CleaningCost, error) {
	if garmentType == "" {
		return nil, nil
	}

	var cleaning model.CleaningCost
	err := tx.Where("LOWER(garment_type) = LOWER(?)", garmentType).First(&cleaning).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cleaning, nil
}

// The label setting is optional too; absent means no label cost.
func (s *pricingService) labelCost(tx *gorm.DB) (float64, error) {
	var setting model.GlobalSetting
	err := tx.Where("setting_key = ?", model.SettingAvgLabelCost).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return setting.SettingValue, nil
}

// AggregateCosts is the pure cost function: it reads only the attachments
// already loaded on the style and the two inputs passed in. A style with no
// attachments, no cleaning row and no label cost totals exactly zero.
func (s *pricingService) AggregateCosts(style *model.Style, cleaning *model.CleaningCost, labelCost float64) CostBreakdown {
	var breakdown CostBreakdown

	for _, sf := range style.Fabrics {
		perYard := sf.Fabric.CostPerYard
		if sf.IsSublimation {
			perYard += SublimationUpchargePerYard
		}
		breakdown.FabricCost += sf.YardsRequired * perYard
	}

	for _, sn := range style.Notions {
		breakdown.NotionCost += sn.QuantityRequired * sn.Notion.CostPerUnit
	}

	for _, sl := range style.Labor {
		switch sl.LaborOperation.CostKind {
		case model.LaborHourly:
			breakdown.LaborCost += sl.TimeHours * sl.LaborOperation.Rate
		case model.LaborFixedPerUnit:
			breakdown.LaborCost += float64(sl.Quantity) * sl.LaborOperation.Rate
		default:
			logger.Warn("Labor operation with unknown cost kind skipped", map[string]interface{}{
				"style_id":           style.ID,
				"labor_operation_id": sl.LaborOperationID,
				"cost_kind":          sl.LaborOperation.CostKind,
			})
		}
	}

	for _, sv := range style.Variables {
		breakdown.VariableCost += sv.Variable.CostAdjustment
	}

	if cleaning != nil {
		breakdown.CleaningCost = cleaning.FixedCost
	}
	breakdown.LabelCost = labelCost

	breakdown.Total = breakdown.FabricCost + breakdown.NotionCost + breakdown.LaborCost +
		breakdown.VariableCost + breakdown.CleaningCost + breakdown.LabelCost

	return breakdown
}

// SuggestPrice applies the margin rule price = cost / (1 - margin/100), rounded
// to cents. It reports ok=false for the degenerate inputs where no meaningful
// price exists: non-positive cost, negative margin, or margin at or above 100.
// Callers must leave any stored price untouched when ok is false.
func (s *pricingService) SuggestPrice(totalCost float64, marginPercent float64) (float64, bool) {
	if totalCost <= 0 {
		return 0, false
	}
	if marginPercent < 0 || marginPercent >= 100 {
		return 0, false
	}

	price := totalCost / (1 - marginPercent/100)
	return util.RoundCurrency(price), true
}

// SizePrices expands a base price across a size range. Regular sizes sell at
// the base price, extended sizes carry the range's percentage markup.
func (s *pricingService) SizePrices(basePrice float64, sizeRange *model.SizeRange) map[string]float64 {
	prices := make(map[string]float64)
	if sizeRange == nil {
		return prices
	}

	for _, size := range sizeRange.RegularSizeList() {
		prices[size] = util.RoundCurrency(basePrice)
	}

	extended := util.RoundCurrency(basePrice * (1 + sizeRange.ExtendedMarkupPercent/100))
	for _, size := range sizeRange.ExtendedSizeList() {
		prices[size] = extended
	}

	return prices
}

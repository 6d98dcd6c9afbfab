package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	apperrors "github.com/jauniforms/pricing-backend/internal/errors"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
)

// Errors the controllers translate into response codes
var (
	ErrStyleNotFound        = errors.New("style not found")
	ErrDuplicateVendorStyle = errors.New("vendor style code already in use")
	ErrDuplicateStyleName   = errors.New("style name already in use")
	ErrDuplicateAttachment  = errors.New("component already attached to style")
	ErrUnknownComponent     = errors.New("referenced catalog component does not exist")
	ErrInvalidMargin        = errors.New("margin percent must be at least 0 and below 100")
	ErrInvalidCategory      = errors.New("unknown attachment category")
	ErrInvalidGender        = errors.New("unknown gender")
	ErrInvalidAttachment    = errors.New("attachment quantity must be positive")
)

type AttachmentCategory string

const (
	CategoryFabric   AttachmentCategory = "fabric"
	CategoryNotion   AttachmentCategory = "notion"
	CategoryLabor    AttachmentCategory = "labor"
	CategoryColor    AttachmentCategory = "color"
	CategoryVariable AttachmentCategory = "variable"
)

func (c AttachmentCategory) Valid() bool {
	switch c {
	case CategoryFabric, CategoryNotion, CategoryLabor, CategoryColor, CategoryVariable:
		return true
	}
	return false
}

type FabricAttachmentInput struct {
	FabricID      uint    `json:"fabric_id" binding:"required"`
	YardsRequired float64 `json:"yards_required" binding:"required"`
	IsPrimary     bool    `json:"is_primary"`
	IsSublimation bool    `json:"is_sublimation"`
	Notes         string  `json:"notes"`
}

type NotionAttachmentInput struct {
	NotionID         uint    `json:"notion_id" binding:"required"`
	QuantityRequired float64 `json:"quantity_required" binding:"required"`
	Notes            string  `json:"notes"`
}

type LaborAttachmentInput struct {
	LaborOperationID uint    `json:"labor_operation_id" binding:"required"`
	TimeHours        float64 `json:"time_hours"`
	Quantity         int     `json:"quantity"`
	Notes            string  `json:"notes"`
}

// StyleInput carries a full style definition. On update the five attachment
// lists replace the stored sets wholesale.
type StyleInput struct {
	VendorStyle       string                  `json:"vendor_style" binding:"required"`
	StyleName         string                  `json:"style_name" binding:"required"`
	BaseItemNumber    string                  `json:"base_item_number"`
	VariantCode       string                  `json:"variant_code"`
	Gender            model.Gender            `json:"gender"`
	GarmentType       string                  `json:"garment_type"`
	SizeRange         string                  `json:"size_range"`
	BaseMarginPercent *float64                `json:"base_margin_percent"`
	Notes             string                  `json:"notes"`
	IsActive          *bool                   `json:"is_active"`
	Fabrics           []FabricAttachmentInput `json:"fabrics"`
	Notions           []NotionAttachmentInput `json:"notions"`
	Labor             []LaborAttachmentInput  `json:"labor"`
	ColorIDs          []uint                  `json:"color_ids"`
	VariableIDs       []uint                  `json:"variable_ids"`
}

// AttachmentInput adds a single component to a style. Only the fields for the
// named category are read.
type AttachmentInput struct {
	Category         AttachmentCategory `json:"category" binding:"required"`
	ComponentID      uint               `json:"component_id" binding:"required"`
	YardsRequired    float64            `json:"yards_required"`
	QuantityRequired float64            `json:"quantity_required"`
	TimeHours        float64            `json:"time_hours"`
	Quantity         int                `json:"quantity"`
	IsPrimary        bool               `json:"is_primary"`
	IsSublimation    bool               `json:"is_sublimation"`
	Notes            string             `json:"notes"`
}

// StyleDetail is a style plus its derived pricing view
type StyleDetail struct {
	Style      *model.Style       `json:"style"`
	Breakdown  CostBreakdown      `json:"breakdown"`
	SizePrices map[string]float64 `json:"size_prices,omitempty"`
}

// RecomputeResult reports one pricing pass over a style
type RecomputeResult struct {
	StyleID        uint          `json:"style_id"`
	Breakdown      CostBreakdown `json:"breakdown"`
	SuggestedPrice *float64      `json:"suggested_price"`
	PriceUpdated   bool          `json:"price_updated"`
}

type StyleService interface {
	CreateStyle(input *StyleInput, modifiedBy string) (*model.Style, error)
	UpdateStyle(id uint, input *StyleInput, modifiedBy string) (*model.Style, error)
	GetStyle(id uint) (*model.Style, error)
	GetStyleDetail(id uint) (*StyleDetail, error)
	ListStyles(filter repository.StyleFilter) ([]model.Style, int64, error)
	AttachComponent(styleID uint, input *AttachmentInput, modifiedBy string) (*model.Style, error)
	DetachComponent(styleID uint, category AttachmentCategory, componentID uint, modifiedBy string) (*model.Style, error)
	RecomputePrice(styleID uint) (*RecomputeResult, error)
	DeleteStyle(id uint) error
	DuplicateStyle(id uint, newVendorStyle string, newName string, modifiedBy string) (*model.Style, error)
	ToggleFavorite(id uint) (*model.Style, error)
	AddImage(styleID uint, fileURL string, fileKey string, isPrimary bool) (*model.StyleImage, error)
	DeleteImage(styleID uint, imageID uint) error
	ActiveStyleIDs() ([]uint, error)
	Stats() (*repository.StyleStats, error)
}

type styleService struct {
	db           *gorm.DB
	styleRepo    repository.StyleRepository
	settingsRepo repository.SettingsRepository
	pricing      PricingService
	now          func() time.Time
}

// NewStyleService wires the lifecycle manager. The clock is injected so tests
// can pin timestamps; pass nil to use time.Now.
func NewStyleService(db *gorm.DB, styleRepo repository.StyleRepository, settingsRepo repository.SettingsRepository, pricing PricingService, now func() time.Time) StyleService {
	if now == nil {
		now = time.Now
	}
	return &styleService{
		db:           db,
		styleRepo:    styleRepo,
		settingsRepo: settingsRepo,
		pricing:      pricing,
		now:          now,
	}
}

func (s *styleService) CreateStyle(input *StyleInput, modifiedBy string) (*model.Style, error) {
	if err := validateStyleInput(input); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.checkStyleUniqueness(tx, input.VendorStyle, input.StyleName, 0); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.verifyComponentsExist(tx, input); err != nil {
		tx.Rollback()
		return nil, err
	}

	now := s.now()
	style := &model.Style{
		VendorStyle:    input.VendorStyle,
		BaseItemNumber: input.BaseItemNumber,
		VariantCode:    input.VariantCode,
		StyleName:      input.StyleName,
		Gender:         input.Gender,
		GarmentType:    input.GarmentType,
		SizeRange:      input.SizeRange,
		Notes:          input.Notes,
		LastModifiedBy: modifiedBy,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	style.BaseMarginPercent = 60
	if input.BaseMarginPercent != nil {
		style.BaseMarginPercent = *input.BaseMarginPercent
	}
	if input.IsActive != nil {
		style.IsActive = *input.IsActive
	}

	if err := tx.Omit("Fabrics", "Notions", "Labor", "Colors", "Variables", "Images").Create(style).Error; err != nil {
		tx.Rollback()
		return nil, s.mapStorageError(err)
	}

	if err := s.insertAttachments(tx, style.ID, input); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.recomputeInTx(tx, style.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Style created", map[string]interface{}{
		"style_id":     style.ID,
		"vendor_style": style.VendorStyle,
		"modified_by":  modifiedBy,
	})

	return s.styleRepo.FindByID(style.ID)
}

func (s *styleService) UpdateStyle(id uint, input *StyleInput, modifiedBy string) (*model.Style, error) {
	if err := validateStyleInput(input); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var style model.Style
	if err := tx.First(&style, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStyleNotFound
		}
		return nil, err
	}

	if err := s.checkStyleUniqueness(tx, input.VendorStyle, input.StyleName, id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.verifyComponentsExist(tx, input); err != nil {
		tx.Rollback()
		return nil, err
	}

	style.VendorStyle = input.VendorStyle
	style.BaseItemNumber = input.BaseItemNumber
	style.VariantCode = input.VariantCode
	style.StyleName = input.StyleName
	style.Gender = input.Gender
	style.GarmentType = input.GarmentType
	style.SizeRange = input.SizeRange
	style.Notes = input.Notes
	style.LastModifiedBy = modifiedBy
	style.UpdatedAt = s.now()
	if input.BaseMarginPercent != nil {
		style.BaseMarginPercent = *input.BaseMarginPercent
	}
	if input.IsActive != nil {
		style.IsActive = *input.IsActive
	}

	if err := tx.Omit("Fabrics", "Notions", "Labor", "Colors", "Variables", "Images").Save(&style).Error; err != nil {
		tx.Rollback()
		return nil, s.mapStorageError(err)
	}

	// Replace all five attachment sets wholesale
	if err := s.deleteAttachments(tx, id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.insertAttachments(tx, id, input); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.recomputeInTx(tx, id); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Style updated", map[string]interface{}{
		"style_id":    id,
		"modified_by": modifiedBy,
	})

	return s.styleRepo.FindByID(id)
}

func (s *styleService) GetStyle(id uint) (*model.Style, error) {
	style, err := s.styleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStyleNotFound
		}
		return nil, err
	}
	return style, nil
}

func (s *styleService) GetStyleDetail(id uint) (*StyleDetail, error) {
	style, err := s.GetStyle(id)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.pricing.ComputeBreakdown(style)
	if err != nil {
		return nil, err
	}

	detail := &StyleDetail{
		Style:     style,
		Breakdown: breakdown.Rounded(),
	}

	if style.SuggestedPrice != nil && style.SizeRange != "" {
		sizeRange, err := s.settingsRepo.FindSizeRangeByName(style.SizeRange)
		if err == nil {
			detail.SizePrices = s.pricing.SizePrices(*style.SuggestedPrice, sizeRange)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return detail, nil
}

func (s *styleService) ListStyles(filter repository.StyleFilter) ([]model.Style, int64, error) {
	return s.styleRepo.FindWithFilter(filter)
}

func (s *styleService) AttachComponent(styleID uint, input *AttachmentInput, modifiedBy string) (*model.Style, error) {
	if !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if err := validateAttachmentInput(input); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.requireStyle(tx, styleID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.requireComponent(tx, input.Category, input.ComponentID); err != nil {
		tx.Rollback()
		return nil, err
	}

	attached, err := s.isAttached(tx, styleID, input.Category, input.ComponentID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if attached {
		tx.Rollback()
		return nil, ErrDuplicateAttachment
	}

	if err := s.insertAttachment(tx, styleID, input); err != nil {
		tx.Rollback()
		return nil, s.mapStorageError(err)
	}

	if err := s.touchStyle(tx, styleID, modifiedBy); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.recomputeInTx(tx, styleID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Component attached to style", map[string]interface{}{
		"style_id":     styleID,
		"category":     input.Category,
		"component_id": input.ComponentID,
	})

	return s.styleRepo.FindByID(styleID)
}

// DetachComponent removes one attachment. Detaching a component that is not
// attached succeeds without touching the style.
func (s *styleService) DetachComponent(styleID uint, category AttachmentCategory, componentID uint, modifiedBy string) (*model.Style, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.requireStyle(tx, styleID); err != nil {
		tx.Rollback()
		return nil, err
	}

	result := s.deleteAttachment(tx, styleID, category, componentID)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}

	if result.RowsAffected > 0 {
		if err := s.touchStyle(tx, styleID, modifiedBy); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := s.recomputeInTx(tx, styleID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if result.RowsAffected > 0 {
		logger.Info("Component detached from style", map[string]interface{}{
			"style_id":     styleID,
			"category":     category,
			"component_id": componentID,
		})
	}

	return s.styleRepo.FindByID(styleID)
}

func (s *styleService) RecomputePrice(styleID uint) (*RecomputeResult, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	style, err := s.styleRepo.FindByIDTx(tx, styleID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStyleNotFound
		}
		return nil, err
	}

	breakdown, err := s.pricing.ComputeBreakdownTx(tx, style)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	result := &RecomputeResult{
		StyleID:        styleID,
		Breakdown:      breakdown.Rounded(),
		SuggestedPrice: style.SuggestedPrice,
	}

	price, ok := s.pricing.SuggestPrice(breakdown.Total, style.BaseMarginPercent)
	if ok {
		err := tx.Model(&model.Style{}).Where("id = ?", styleID).
			Updates(map[string]interface{}{
				"suggested_price": price,
				"updated_at":      s.now(),
			}).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		result.SuggestedPrice = &price
		result.PriceUpdated = style.SuggestedPrice == nil || *style.SuggestedPrice != price
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (s *styleService) DeleteStyle(id uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.requireStyle(tx, id); err != nil {
		tx.Rollback()
		return err
	}

	// Attachment rows go first so the delete also works where the database
	// does not enforce cascades.
	if err := s.deleteAttachments(tx, id); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("style_id = ?", id).Delete(&model.StyleImage{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&model.Style{}, id).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	logger.Info("Style deleted", map[string]interface{}{
		"style_id": id,
	})
	return nil
}

func (s *styleService) DuplicateStyle(id uint, newVendorStyle string, newName string, modifiedBy string) (*model.Style, error) {
	source, err := s.GetStyle(id)
	if err != nil {
		return nil, err
	}
	if newVendorStyle == "" {
		return nil, ErrDuplicateVendorStyle
	}
	if newName == "" {
		newName = fmt.Sprintf("%s (Copy)", source.StyleName)
	}

	input := &StyleInput{
		VendorStyle:       newVendorStyle,
		StyleName:         newName,
		BaseItemNumber:    source.BaseItemNumber,
		VariantCode:       source.VariantCode,
		Gender:            source.Gender,
		GarmentType:       source.GarmentType,
		SizeRange:         source.SizeRange,
		BaseMarginPercent: &source.BaseMarginPercent,
		Notes:             source.Notes,
	}
	for _, sf := range source.Fabrics {
		input.Fabrics = append(input.Fabrics, FabricAttachmentInput{
			FabricID:      sf.FabricID,
			YardsRequired: sf.YardsRequired,
			IsPrimary:     sf.IsPrimary,
			IsSublimation: sf.IsSublimation,
			Notes:         sf.Notes,
		})
	}
	for _, sn := range source.Notions {
		input.Notions = append(input.Notions, NotionAttachmentInput{
			NotionID:         sn.NotionID,
			QuantityRequired: sn.QuantityRequired,
			Notes:            sn.Notes,
		})
	}
	for _, sl := range source.Labor {
		input.Labor = append(input.Labor, LaborAttachmentInput{
			LaborOperationID: sl.LaborOperationID,
			TimeHours:        sl.TimeHours,
			Quantity:         sl.Quantity,
			Notes:            sl.Notes,
		})
	}
	for _, sc := range source.Colors {
		input.ColorIDs = append(input.ColorIDs, sc.ColorID)
	}
	for _, sv := range source.Variables {
		input.VariableIDs = append(input.VariableIDs, sv.VariableID)
	}

	return s.CreateStyle(input, modifiedBy)
}

func (s *styleService) ToggleFavorite(id uint) (*model.Style, error) {
	var style model.Style
	if err := s.db.First(&style, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStyleNotFound
		}
		return nil, err
	}

	err := s.db.Model(&style).Updates(map[string]interface{}{
		"is_favorite": !style.IsFavorite,
		"updated_at":  s.now(),
	}).Error
	if err != nil {
		return nil, err
	}

	return s.styleRepo.FindByID(id)
}

// AddImage records an uploaded image against a style. A primary image demotes
// any existing primary.
func (s *styleService) AddImage(styleID uint, fileURL string, fileKey string, isPrimary bool) (*model.StyleImage, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := s.requireStyle(tx, styleID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if isPrimary {
		err := tx.Model(&model.StyleImage{}).Where("style_id = ?", styleID).
			Update("is_primary", false).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	image := &model.StyleImage{
		StyleID:   styleID,
		FileURL:   fileURL,
		FileKey:   fileKey,
		IsPrimary: isPrimary,
		CreatedAt: s.now(),
	}
	if err := tx.Create(image).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return image, nil
}

func (s *styleService) DeleteImage(styleID uint, imageID uint) error {
	result := s.db.Where("id = ? AND style_id = ?", imageID, styleID).Delete(&model.StyleImage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStyleNotFound
	}
	return nil
}

func (s *styleService) ActiveStyleIDs() ([]uint, error) {
	return s.styleRepo.FindActiveIDs()
}

func (s *styleService) Stats() (*repository.StyleStats, error) {
	return s.styleRepo.Stats()
}

// ---- internal helpers ----

func validateStyleInput(input *StyleInput) error {
	if input.Gender != "" && !input.Gender.Valid() {
		return ErrInvalidGender
	}
	if input.BaseMarginPercent != nil {
		if *input.BaseMarginPercent < 0 || *input.BaseMarginPercent >= 100 {
			return ErrInvalidMargin
		}
	}

	seen := make(map[uint]bool)
	for _, f := range input.Fabrics {
		if f.YardsRequired <= 0 {
			return ErrInvalidAttachment
		}
		if seen[f.FabricID] {
			return ErrDuplicateAttachment
		}
		seen[f.FabricID] = true
	}

	seen = make(map[uint]bool)
	for _, n := range input.Notions {
		if n.QuantityRequired <= 0 {
			return ErrInvalidAttachment
		}
		if seen[n.NotionID] {
			return ErrDuplicateAttachment
		}
		seen[n.NotionID] = true
	}

	seen = make(map[uint]bool)
	for _, l := range input.Labor {
		if l.TimeHours < 0 || l.Quantity < 0 {
			return ErrInvalidAttachment
		}
		if seen[l.LaborOperationID] {
			return ErrDuplicateAttachment
		}
		seen[l.LaborOperationID] = true
	}

	seen = make(map[uint]bool)
	for _, id := range input.ColorIDs {
		if seen[id] {
			return ErrDuplicateAttachment
		}
		seen[id] = true
	}

	seen = make(map[uint]bool)
	for _, id := range input.VariableIDs {
		if seen[id] {
			return ErrDuplicateAttachment
		}
		seen[id] = true
	}

	return nil
}

func validateAttachmentInput(input *AttachmentInput) error {
	switch input.Category {
	case CategoryFabric:
		if input.YardsRequired <= 0 {
			return ErrInvalidAttachment
		}
	case CategoryNotion:
		if input.QuantityRequired <= 0 {
			return ErrInvalidAttachment
		}
	case CategoryLabor:
		if input.TimeHours < 0 || input.Quantity < 0 {
			return ErrInvalidAttachment
		}
	}
	return nil
}

func (s *styleService) checkStyleUniqueness(tx *gorm.DB, vendorStyle string, styleName string, excludeID uint) error {
	var count int64
	query := tx.Model(&model.Style{}).Where("vendor_style = ?", vendorStyle)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateVendorStyle
	}

	query = tx.Model(&model.Style{}).Where("LOWER(style_name) = LOWER(?)", styleName)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateStyleName
	}

	return nil
}

func (s *styleService) verifyComponentsExist(tx *gorm.DB, input *StyleInput) error {
	fabricIDs := make([]uint, 0, len(input.Fabrics))
	for _, f := range input.Fabrics {
		fabricIDs = append(fabricIDs, f.FabricID)
	}
	notionIDs := make([]uint, 0, len(input.Notions))
	for _, n := range input.Notions {
		notionIDs = append(notionIDs, n.NotionID)
	}
	laborIDs := make([]uint, 0, len(input.Labor))
	for _, l := range input.Labor {
		laborIDs = append(laborIDs, l.LaborOperationID)
	}

	checks := []struct {
		model interface{}
		ids   []uint
	}{
		{&model.Fabric{}, fabricIDs},
		{&model.Notion{}, notionIDs},
		{&model.LaborOperation{}, laborIDs},
		{&model.Color{}, input.ColorIDs},
		{&model.Variable{}, input.VariableIDs},
	}

	for _, check := range checks {
		if len(check.ids) == 0 {
			continue
		}
		var count int64
		if err := tx.Model(check.model).Where("id IN ?", check.ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(check.ids)) {
			return ErrUnknownComponent
		}
	}

	return nil
}

func (s *styleService) insertAttachments(tx *gorm.DB, styleID uint, input *StyleInput) error {
	for _, f := range input.Fabrics {
		row := model.StyleFabric{
			StyleID:       styleID,
			FabricID:      f.FabricID,
			YardsRequired: f.YardsRequired,
			IsPrimary:     f.IsPrimary,
			IsSublimation: f.IsSublimation,
			Notes:         f.Notes,
		}
		if err := tx.Create(&row).Error; err != nil {
			return s.mapStorageError(err)
		}
	}

	for _, n := range input.Notions {
		row := model.StyleNotion{
			StyleID:          styleID,
			NotionID:         n.NotionID,
			QuantityRequired: n.QuantityRequired,
			Notes:            n.Notes,
		}
		if err := tx.Create(&row).Error; err != nil {
			return s.mapStorageError(err)
		}
	}

	for _, l := range input.Labor {
		quantity := l.Quantity
		if quantity == 0 {
			quantity = 1
		}
		row := model.StyleLabor{
			StyleID:          styleID,
			LaborOperationID: l.LaborOperationID,
			TimeHours:        l.TimeHours,
			Quantity:         quantity,
			Notes:            l.Notes,
		}
		if err := tx.Create(&row).Error; err != nil {
			return s.mapStorageError(err)
		}
	}

	for _, colorID := range input.ColorIDs {
		row := model.StyleColor{StyleID: styleID, ColorID: colorID}
		if err := tx.Create(&row).Error; err != nil {
			return s.mapStorageError(err)
		}
	}

	for _, variableID := range input.VariableIDs {
		row := model.StyleVariable{StyleID: styleID, VariableID: variableID}
		if err := tx.Create(&row).Error; err != nil {
			return s.mapStorageError(err)
		}
	}

	return nil
}

func (s *styleService) deleteAttachments(tx *gorm.DB, styleID uint) error {
	for _, m := range []interface{}{
		&model.StyleFabric{},
		&model.StyleNotion{},
		&model.StyleLabor{},
		&model.StyleColor{},
		&model.StyleVariable{},
	} {
		if err := tx.Where("style_id = ?", styleID).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *styleService) insertAttachment(tx *gorm.DB, styleID uint, input *AttachmentInput) error {
	switch input.Category {
	case CategoryFabric:
		return tx.Create(&model.StyleFabric{
			StyleID:       styleID,
			FabricID:      input.ComponentID,
			YardsRequired: input.YardsRequired,
			IsPrimary:     input.IsPrimary,
			IsSublimation: input.IsSublimation,
			Notes:         input.Notes,
		}).Error
	case CategoryNotion:
		return tx.Create(&model.StyleNotion{
			StyleID:          styleID,
			NotionID:         input.ComponentID,
			QuantityRequired: input.QuantityRequired,
			Notes:            input.Notes,
		}).Error
	case CategoryLabor:
		quantity := input.Quantity
		if quantity == 0 {
			quantity = 1
		}
		return tx.Create(&model.StyleLabor{
			StyleID:          styleID,
			LaborOperationID: input.ComponentID,
			TimeHours:        input.TimeHours,
			Quantity:         quantity,
			Notes:            input.Notes,
		}).Error
	case CategoryColor:
		return tx.Create(&model.StyleColor{StyleID: styleID, ColorID: input.ComponentID}).Error
	case CategoryVariable:
		return tx.Create(&model.StyleVariable{StyleID: styleID, VariableID: input.ComponentID}).Error
	}
	return ErrInvalidCategory
}

func (s *styleService) deleteAttachment(tx *gorm.DB, styleID uint, category AttachmentCategory, componentID uint) *gorm.DB {
	switch category {
	case CategoryFabric:
		return tx.Where("style_id = ? AND fabric_id = ?", styleID, componentID).Delete(&model.StyleFabric{})
	case CategoryNotion:
		return tx.Where("style_id = ? AND notion_id = ?", styleID, componentID).Delete(&model.StyleNotion{})
	case CategoryLabor:
		return tx.Where("style_id = ? AND labor_operation_id = ?", styleID, componentID).Delete(&model.StyleLabor{})
	case CategoryColor:
		return tx.Where("style_id = ? AND color_id = ?", styleID, componentID).Delete(&model.StyleColor{})
	case CategoryVariable:
		return tx.Where("style_id = ? AND variable_id = ?", styleID, componentID).Delete(&model.StyleVariable{})
	}
	_ = tx.AddError(ErrInvalidCategory)
	return tx
}

func (s *styleService) isAttached(tx *gorm.DB, styleID uint, category AttachmentCategory, componentID uint) (bool, error) {
	var count int64
	var err error
	switch category {
	case CategoryFabric:
		err = tx.Model(&model.StyleFabric{}).Where("style_id = ? AND fabric_id = ?", styleID, componentID).Count(&count).Error
	case CategoryNotion:
		err = tx.Model(&model.StyleNotion{}).Where("style_id = ? AND notion_id = ?", styleID, componentID).Count(&count).Error
	case CategoryLabor:
		err = tx.Model(&model.StyleLabor{}).Where("style_id = ? AND labor_operation_id = ?", styleID, componentID).Count(&count).Error
	case CategoryColor:
		err = tx.Model(&model.StyleColor{}).Where("style_id = ? AND color_id = ?", styleID, componentID).Count(&count).Error
	case CategoryVariable:
		err = tx.Model(&model.StyleVariable{}).Where("style_id = ? AND variable_id = ?", styleID, componentID).Count(&count).Error
	default:
		return false, ErrInvalidCategory
	}
	return count > 0, err
}

func (s *styleService) requireStyle(tx *gorm.DB, styleID uint) error {
	var count int64
	if err := tx.Model(&model.Style{}).Where("id = ?", styleID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrStyleNotFound
	}
	return nil
}

func (s *styleService) requireComponent(tx *gorm.DB, category AttachmentCategory, componentID uint) error {
	var m interface{}
	switch category {
	case CategoryFabric:
		m = &model.Fabric{}
	case CategoryNotion:
		m = &model.Notion{}
	case CategoryLabor:
		m = &model.LaborOperation{}
	case CategoryColor:
		m = &model.Color{}
	case CategoryVariable:
		m = &model.Variable{}
	default:
		return ErrInvalidCategory
	}

	var count int64
	if err := tx.Model(m).Where("id = ?", componentID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUnknownComponent
	}
	return nil
}

func (s *styleService) touchStyle(tx *gorm.DB, styleID uint, modifiedBy string) error {
	return tx.Model(&model.Style{}).Where("id = ?", styleID).
		Updates(map[string]interface{}{
			"last_modified_by": modifiedBy,
			"updated_at":       s.now(),
		}).Error
}

// recomputeInTx refreshes suggested_price from the attachments as they stand
// inside the transaction. Degenerate pricing inputs leave the stored price as
// it was.
func (s *styleService) recomputeInTx(tx *gorm.DB, styleID uint) error {
	style, err := s.styleRepo.FindByIDTx(tx, styleID)
	if err != nil {
		return err
	}

	breakdown, err := s.pricing.ComputeBreakdownTx(tx, style)
	if err != nil {
		return err
	}

	price, ok := s.pricing.SuggestPrice(breakdown.Total, style.BaseMarginPercent)
	if !ok {
		logger.Debug("Suggested price left unchanged", map[string]interface{}{
			"style_id":       styleID,
			"total_cost":     breakdown.Total,
			"margin_percent": style.BaseMarginPercent,
		})
		return nil
	}

	return tx.Model(&model.Style{}).Where("id = ?", styleID).
		Update("suggested_price", price).Error
}

// mapStorageError converts constraint violations the pre-checks missed, for
// example under concurrent edits, into the same sentinels the pre-checks use.
func (s *styleService) mapStorageError(err error) error {
	info := apperrors.ParseError(err, "style")
	switch info.Code {
	case apperrors.StyleDuplicateAttachment:
		return ErrDuplicateAttachment
	case apperrors.StyleDuplicateVendorCode:
		return ErrDuplicateVendorStyle
	case apperrors.StyleDuplicateName:
		return ErrDuplicateStyleName
	case apperrors.StyleUnknownComponent:
		return ErrUnknownComponent
	case apperrors.StyleNotFound:
		return ErrStyleNotFound
	}
	return err
}

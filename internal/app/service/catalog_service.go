package service

import (
	"errors"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	apperrors "github.com/jauniforms/pricing-backend/internal/errors"
	"github.com/jauniforms/pricing-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrComponentNotFound    = errors.New("catalog component not found")
	ErrDuplicateCatalogName = errors.New("catalog entry with this name already exists")
	ErrInvalidCostKind      = errors.New("cost kind must be hourly or fixed_per_unit")
	ErrComponentInUse       = errors.New("component is attached to one or more styles")
)

// CatalogService manages the priced component catalogs styles draw from.
// Changing a component's cost does not touch stored style prices; those go
// stale until the next recompute, which the nightly refresh guarantees.
type CatalogService interface {
	CreateFabric(fabric *model.Fabric) (*model.Fabric, error)
	GetFabric(id uint) (*model.Fabric, error)
	ListFabrics() ([]model.Fabric, error)
	UpdateFabric(fabric *model.Fabric) (*model.Fabric, error)
	DeleteFabric(id uint) error

	CreateNotion(notion *model.Notion) (*model.Notion, error)
	GetNotion(id uint) (*model.Notion, error)
	ListNotions() ([]model.Notion, error)
	UpdateNotion(notion *model.Notion) (*model.Notion, error)
	DeleteNotion(id uint) error

	CreateLaborOperation(op *model.LaborOperation) (*model.LaborOperation, error)
	GetLaborOperation(id uint) (*model.LaborOperation, error)
	ListLaborOperations() ([]model.LaborOperation, error)
	UpdateLaborOperation(op *model.LaborOperation) (*model.LaborOperation, error)
	DeleteLaborOperation(id uint) error

	CreateColor(color *model.Color) (*model.Color, error)
	GetColor(id uint) (*model.Color, error)
	ListColors() ([]model.Color, error)
	UpdateColor(color *model.Color) (*model.Color, error)
	DeleteColor(id uint) error

	CreateVariable(variable *model.Variable) (*model.Variable, error)
	GetVariable(id uint) (*model.Variable, error)
	ListVariables() ([]model.Variable, error)
	UpdateVariable(variable *model.Variable) (*model.Variable, error)
	DeleteVariable(id uint) error

	ListFabricVendors() ([]model.FabricVendor, error)
	CreateFabricVendor(vendor *model.FabricVendor) (*model.FabricVendor, error)
	ListNotionVendors() ([]model.NotionVendor, error)
	CreateNotionVendor(vendor *model.NotionVendor) (*model.NotionVendor, error)
}

type catalogService struct {
	db           *gorm.DB
	fabricRepo   repository.FabricRepository
	notionRepo   repository.NotionRepository
	laborRepo    repository.LaborRepository
	colorRepo    repository.ColorRepository
	variableRepo repository.VariableRepository
}

func NewCatalogService(
	db *gorm.DB,
	fabricRepo repository.FabricRepository,
	notionRepo repository.NotionRepository,
	laborRepo repository.LaborRepository,
	colorRepo repository.ColorRepository,
	variableRepo repository.VariableRepository,
) CatalogService {
	return &catalogService{
		db:           db,
		fabricRepo:   fabricRepo,
		notionRepo:   notionRepo,
		laborRepo:    laborRepo,
		colorRepo:    colorRepo,
		variableRepo: variableRepo,
	}
}

// ---- fabrics ----

func (s *catalogService) CreateFabric(fabric *model.Fabric) (*model.Fabric, error) {
	if err := s.fabricRepo.Create(fabric); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return fabric, nil
}

func (s *catalogService) GetFabric(id uint) (*model.Fabric, error) {
	fabric, err := s.fabricRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}
	return fabric, nil
}

func (s *catalogService) ListFabrics() ([]model.Fabric, error) {
	return s.fabricRepo.FindAll()
}

func (s *catalogService) UpdateFabric(fabric *model.Fabric) (*model.Fabric, error) {
	if _, err := s.GetFabric(fabric.ID); err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Update(fabric); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return fabric, nil
}

func (s *catalogService) DeleteFabric(id uint) error {
	if _, err := s.GetFabric(id); err != nil {
		return err
	}
	if err := s.requireUnused(&model.StyleFabric{}, "fabric_id", id); err != nil {
		return err
	}
	return s.fabricRepo.Delete(id)
}

// ---- notions ----

func (s *catalogService) CreateNotion(notion *model.Notion) (*model.Notion, error) {
	if err := s.notionRepo.Create(notion); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return notion, nil
}

func (s *catalogService) GetNotion(id uint) (*model.Notion, error) {
	notion, err := s.notionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}
	return notion, nil
}

func (s *catalogService) ListNotions() ([]model.Notion, error) {
	return s.notionRepo.FindAll()
}

func (s *catalogService) UpdateNotion(notion *model.Notion) (*model.Notion, error) {
	if _, err := s.GetNotion(notion.ID); err != nil {
		return nil, err
	}
	if err := s.notionRepo.Update(notion); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return notion, nil
}

func (s *catalogService) DeleteNotion(id uint) error {
	if _, err := s.GetNotion(id); err != nil {
		return err
	}
	if err := s.requireUnused(&model.StyleNotion{}, "notion_id", id); err != nil {
		return err
	}
	return s.notionRepo.Delete(id)
}

// ---- labor operations ----

func (s *catalogService) CreateLaborOperation(op *model.LaborOperation) (*model.LaborOperation, error) {
	if !op.CostKind.Valid() {
		return nil, ErrInvalidCostKind
	}
	if err := s.laborRepo.Create(op); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return op, nil
}

func (s *catalogService) GetLaborOperation(id uint) (*model.LaborOperation, error) {
	op, err := s.laborRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}
	return op, nil
}

func (s *catalogService) ListLaborOperations() ([]model.LaborOperation, error) {
	return s.laborRepo.FindAll()
}

func (s *catalogService) UpdateLaborOperation(op *model.LaborOperation) (*model.LaborOperation, error) {
	if !op.CostKind.Valid() {
		return nil, ErrInvalidCostKind
	}
	if _, err := s.GetLaborOperation(op.ID); err != nil {
		return nil, err
	}
	if err := s.laborRepo.Update(op); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return op, nil
}

func (s *catalogService) DeleteLaborOperation(id uint) error {
	if _, err := s.GetLaborOperation(id); err != nil {
		return err
	}
	if err := s.requireUnused(&model.StyleLabor{}, "labor_operation_id", id); err != nil {
		return err
	}
	return s.laborRepo.Delete(id)
}

// ---- colors ----

func (s *catalogService) CreateColor(color *model.Color) (*model.Color, error) {
	if err := s.colorRepo.Create(color); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return color, nil
}

func (s *catalogService) GetColor(id uint) (*model.Color, error) {
	color, err := s.colorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}
	return color, nil
}

func (s *catalogService) ListColors() ([]model.Color, error) {
	return s.colorRepo.FindAll()
}

func (s *catalogService) UpdateColor(color *model.Color) (*model.Color, error) {
	if _, err := s.GetColor(color.ID); err != nil {
		return nil, err
	}
	if err := s.colorRepo.Update(color); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return color, nil
}

func (s *catalogService) DeleteColor(id uint) error {
	if _, err := s.GetColor(id); err != nil {
		return err
	}
	if err := s.requireUnused(&model.StyleColor{}, "color_id", id); err != nil {
		return err
	}
	return s.colorRepo.Delete(id)
}

// ---- variables ----

func (s *catalogService) CreateVariable(variable *model.Variable) (*model.Variable, error) {
	if err := s.variableRepo.Create(variable); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return variable, nil
}

func (s *catalogService) GetVariable(id uint) (*model.Variable, error) {
	variable, err := s.variableRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}
	return variable, nil
}

func (s *catalogService) ListVariables() ([]model.Variable, error) {
	return s.variableRepo.FindAll()
}

func (s *catalogService) UpdateVariable(variable *model.Variable) (*model.Variable, error) {
	if _, err := s.GetVariable(variable.ID); err != nil {
		return nil, err
	}
	if err := s.variableRepo.Update(variable); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return variable, nil
}

func (s *catalogService) DeleteVariable(id uint) error {
	if _, err := s.GetVariable(id); err != nil {
		return err
	}
	if err := s.requireUnused(&model.StyleVariable{}, "variable_id", id); err != nil {
		return err
	}
	return s.variableRepo.Delete(id)
}

// ---- vendors ----

func (s *catalogService) ListFabricVendors() ([]model.FabricVendor, error) {
	return s.fabricRepo.FindAllVendors()
}

func (s *catalogService) CreateFabricVendor(vendor *model.FabricVendor) (*model.FabricVendor, error) {
	if err := s.fabricRepo.CreateVendor(vendor); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return vendor, nil
}

func (s *catalogService) ListNotionVendors() ([]model.NotionVendor, error) {
	return s.notionRepo.FindAllVendors()
}

func (s *catalogService) CreateNotionVendor(vendor *model.NotionVendor) (*model.NotionVendor, error) {
	if err := s.notionRepo.CreateVendor(vendor); err != nil {
		return nil, s.mapCatalogError(err)
	}
	return vendor, nil
}

// requireUnused blocks deletion of components still referenced by styles.
// Deleting through would silently change every referencing style's price.
func (s *catalogService) requireUnused(attachmentModel interface{}, column string, componentID uint) error {
	var count int64
	if err := s.db.Model(attachmentModel).Where(column+" = ?", componentID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Refusing to delete component still attached to styles", map[string]interface{}{
			"column":       column,
			"component_id": componentID,
			"style_count":  count,
		})
		return ErrComponentInUse
	}
	return nil
}

func (s *catalogService) mapCatalogError(err error) error {
	info := apperrors.ParseError(err, "catalog")
	switch info.Code {
	case apperrors.CatalogDuplicateName, apperrors.ResourceAlreadyExists:
		return ErrDuplicateCatalogName
	}
	return err
}

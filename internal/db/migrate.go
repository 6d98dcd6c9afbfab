package db

import (
	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.FabricVendor{},
		&model.NotionVendor{},
		&model.Fabric{},
		&model.Notion{},
		&model.LaborOperation{},
		&model.Color{},
		&model.Variable{},
		&model.CleaningCost{},
		&model.SizeRange{},
		&model.GlobalSetting{},
		&model.Style{},
		&model.StyleFabric{},
		&model.StyleNotion{},
		&model.StyleLabor{},
		&model.StyleColor{},
		&model.StyleVariable{},
		&model.StyleImage{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedGlobalSettings(); err != nil {
		logger.Error("Failed to seed global settings", err)
		return err
	}

	if err := seedLaborOperations(); err != nil {
		logger.Error("Failed to seed labor operations", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedGlobalSettings() error {
	var count int64
	if err := DB.Model(&model.GlobalSetting{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Global settings already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	settings := []model.GlobalSetting{
		{
			SettingKey:   model.SettingAvgLabelCost,
			SettingValue: 0.20,
			Description:  "Average label cost added to every style",
		},
	}

	for _, setting := range settings {
		if err := DB.Create(&setting).Error; err != nil {
			logger.Error("Failed to create global setting", err, map[string]interface{}{
				"setting_key": setting.SettingKey,
			})
			return err
		}
	}

	logger.Info("Global settings seeded successfully", map[string]interface{}{
		"count": len(settings),
	})
	return nil
}

// seedLaborOperations creates the shop's standard operations
func seedLaborOperations() error {
	var count int64
	if err := DB.Model(&model.LaborOperation{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Labor operations already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	operations := []model.LaborOperation{
		{Name: "Sewing", CostKind: model.LaborHourly, Rate: 18.50},
		{Name: "Fusion", CostKind: model.LaborFixedPerUnit, Rate: 2.25},
		{Name: "Marker + Cut", CostKind: model.LaborFixedPerUnit, Rate: 3.75},
		{Name: "Button", CostKind: model.LaborFixedPerUnit, Rate: 0.15},
		{Name: "Snap / Grommet", CostKind: model.LaborFixedPerUnit, Rate: 0.25},
	}

	for _, op := range operations {
		if err := DB.Create(&op).Error; err != nil {
			logger.Error("Failed to create labor operation", err, map[string]interface{}{
				"name": op.Name,
			})
			return err
		}
	}

	logger.Info("Labor operations seeded successfully", map[string]interface{}{
		"count": len(operations),
	})
	return nil
}

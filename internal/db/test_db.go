package db

import (
	"fmt"
	"log"

	"github.com/jauniforms/pricing-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	// Every pool connection to :memory: is a separate database; keep one.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
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
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}

// TruncateAllTables removes all data from tables
func TruncateAllTables(db *gorm.DB) error {
	tables := []string{
		"style_images", "style_variables", "style_colors", "style_labor",
		"style_notions", "style_fabrics", "styles",
		"global_settings", "size_ranges", "cleaning_costs",
		"variables", "colors", "labor_operations",
		"notions", "fabrics", "notion_vendors", "fabric_vendors", "users",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/jauniforms/pricing-backend/config"
	"github.com/jauniforms/pricing-backend/internal/app/model"
	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/internal/app/service"
	"github.com/jauniforms/pricing-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage:\n  go run cmd/seed/main.go colors <xlsx_file_path>\n  go run cmd/seed/main.go styles <count>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	switch os.Args[1] {
	case "colors":
		if len(os.Args) < 3 {
			log.Fatal("Usage: go run cmd/seed/main.go colors <xlsx_file_path>")
		}
		seedColors(os.Args[2])
	case "styles":
		count := 20
		if len(os.Args) >= 3 {
			if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
				count = n
			}
		}
		seedTestStyles(count)
	default:
		log.Fatalf("Unknown command %q", os.Args[1])
	}
}

// seedColors imports the color catalog from the first sheet of an XLSX file.
// Column A is the color name, column B an optional color code.
func seedColors(filePath string) {
	fmt.Printf("Reading XLSX file: %s\n", filePath)

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX file:", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		log.Fatal("No sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Fatal("Failed to read rows:", err)
	}
	if len(rows) == 0 {
		log.Fatal("No data found in XLSX file")
	}

	colorRepo := repository.NewColorRepository(db.GetDB())

	seen := make(map[string]bool)
	imported := 0
	skipped := 0

	for i, row := range rows {
		// Header row
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) == 0 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			skipped++
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		colorCode := ""
		if len(row) > 1 {
			colorCode = strings.TrimSpace(row[1])
		}

		if existing, err := colorRepo.FindByName(name); err == nil && existing != nil {
			skipped++
			continue
		}

		if err := colorRepo.Create(&model.Color{Name: name, ColorCode: colorCode}); err != nil {
			fmt.Printf("Failed to import color %q: %v\n", name, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Imported colors: %d\n", imported)
	fmt.Printf("  Skipped rows: %d\n", skipped)
}

// seedTestStyles generates random styles against the existing catalog so the
// pricing flow can be exercised without real data entry.
func seedTestStyles(count int) {
	gdb := db.GetDB()

	fabricRepo := repository.NewFabricRepository(gdb)
	notionRepo := repository.NewNotionRepository(gdb)
	laborRepo := repository.NewLaborRepository(gdb)
	styleRepo := repository.NewStyleRepository(gdb)
	settingsRepo := repository.NewSettingsRepository(gdb)

	fabrics, err := fabricRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to load fabrics:", err)
	}
	notions, err := notionRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to load notions:", err)
	}
	laborOps, err := laborRepo.FindActive()
	if err != nil {
		log.Fatal("Failed to load labor operations:", err)
	}

	if len(fabrics) == 0 {
		fabrics = seedSampleFabrics(fabricRepo)
	}
	if len(notions) == 0 {
		notions = seedSampleNotions(notionRepo)
	}
	if len(laborOps) == 0 {
		log.Fatal("No labor operations found; run migrations first")
	}

	pricingService := service.NewPricingService(gdb)
	styleService := service.NewStyleService(gdb, styleRepo, settingsRepo, pricingService, nil)

	garmentTypes := []string{"Top", "Pant", "Dress", "Skort", "Jacket"}
	genders := []model.Gender{model.GenderMens, model.GenderLadies, model.GenderUnisex}

	created := 0
	for i := 0; i < count; i++ {
		margin := 50 + rand.Float64()*25

		input := &service.StyleInput{
			VendorStyle:       fmt.Sprintf("TEST-%04d", rand.Intn(10000)),
			StyleName:         fmt.Sprintf("Test Style %d-%d", i+1, rand.Intn(1000)),
			Gender:            genders[rand.Intn(len(genders))],
			GarmentType:       garmentTypes[rand.Intn(len(garmentTypes))],
			BaseMarginPercent: &margin,
		}

		fabric := fabrics[rand.Intn(len(fabrics))]
		input.Fabrics = append(input.Fabrics, service.FabricAttachmentInput{
			FabricID:      fabric.ID,
			YardsRequired: 0.5 + rand.Float64()*2.5,
			IsPrimary:     true,
			IsSublimation: rand.Intn(4) == 0,
		})

		notion := notions[rand.Intn(len(notions))]
		input.Notions = append(input.Notions, service.NotionAttachmentInput{
			NotionID:         notion.ID,
			QuantityRequired: float64(1 + rand.Intn(8)),
		})

		op := laborOps[rand.Intn(len(laborOps))]
		labor := service.LaborAttachmentInput{LaborOperationID: op.ID}
		if op.CostKind == model.LaborHourly {
			labor.TimeHours = 0.2 + rand.Float64()*1.3
		} else {
			labor.Quantity = 1 + rand.Intn(6)
		}
		input.Labor = append(input.Labor, labor)

		style, err := styleService.CreateStyle(input, "seed")
		if err != nil {
			fmt.Printf("Skipped style %q: %v\n", input.StyleName, err)
			continue
		}

		created++
		if style.SuggestedPrice != nil {
			fmt.Printf("Created %s (%s) suggested price $%.2f\n", style.VendorStyle, style.StyleName, *style.SuggestedPrice)
		}
	}

	fmt.Printf("\nCreated %d of %d test styles\n", created, count)
}

func seedSampleFabrics(repo repository.FabricRepository) []model.Fabric {
	samples := []model.Fabric{
		{Name: "Poly Spandex Jersey", FabricCode: "PSJ", CostPerYard: 6.25, Color: "Heather"},
		{Name: "Performance Mesh", FabricCode: "PM", CostPerYard: 4.80, Color: "White"},
		{Name: "Stretch Woven", FabricCode: "SW", CostPerYard: 7.40, Color: "Navy"},
	}
	for i := range samples {
		if err := repo.Create(&samples[i]); err != nil {
			log.Fatal("Failed to seed sample fabric:", err)
		}
	}
	return samples
}

func seedSampleNotions(repo repository.NotionRepository) []model.Notion {
	samples := []model.Notion{
		{Name: "Button 18L", CostPerUnit: 0.08, UnitType: "each"},
		{Name: "Zipper 7in", CostPerUnit: 0.65, UnitType: "each"},
		{Name: "Elastic 1in", CostPerUnit: 0.22, UnitType: "yard"},
	}
	for i := range samples {
		if err := repo.Create(&samples[i]); err != nil {
			log.Fatal("Failed to seed sample notion:", err)
		}
	}
	return samples
}

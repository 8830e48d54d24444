package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"kondate/internal/config"
	"kondate/internal/db"
	"kondate/internal/recipes"
)

// Expected CSV columns:
//
//	title, description, cooking_time_minutes, servings, ingredients, instructions
//
// Ingredients are "name:amount:unit" triples separated by "|" (the unit may
// be omitted); instructions are steps separated by "|".
func main() {
	csvPath := "recipes.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}
	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	if err := config.LoadDotenv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	records, err := readCSV(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	store := recipes.NewStore(database)
	ctx := context.Background()

	imported := 0
	skipped := 0
	for idx, record := range records {
		raw, err := buildRawRecipe(record)
		if err != nil {
			fmt.Fprintf(os.Stderr, "row %d skipped: %v\n", idx+2, err)
			skipped++
			continue
		}

		payload, violations := recipes.ValidateCreate(raw)
		if len(violations) > 0 {
			fmt.Fprintf(os.Stderr, "row %d skipped: %s\n", idx+2, describeViolations(violations))
			skipped++
			continue
		}

		if _, err := store.Create(ctx, payload); err != nil {
			fmt.Fprintf(os.Stderr, "row %d skipped: %v\n", idx+2, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Printf("imported %d recipes, skipped %d\n", imported, skipped)
	return nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 6

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}
	// skip the header row
	return rows[1:], nil
}

func buildRawRecipe(record []string) (recipes.RawRecipe, error) {
	if len(record) != 6 {
		return recipes.RawRecipe{}, fmt.Errorf("expected 6 columns, got %d", len(record))
	}

	ingredients, err := parseIngredients(record[4])
	if err != nil {
		return recipes.RawRecipe{}, err
	}

	return recipes.RawRecipe{
		Title:              strings.TrimSpace(record[0]),
		Description:        strings.TrimSpace(record[1]),
		CookingTimeMinutes: strings.TrimSpace(record[2]),
		Servings:           strings.TrimSpace(record[3]),
		Ingredients:        ingredients,
		Instructions:       splitList(record[5]),
	}, nil
}

func parseIngredients(field string) ([]recipes.RawIngredient, error) {
	var parsed []recipes.RawIngredient
	for _, entry := range splitList(field) {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("ingredient %q must be name:amount or name:amount:unit", entry)
		}
		ing := recipes.RawIngredient{
			Name:   strings.TrimSpace(parts[0]),
			Amount: strings.TrimSpace(parts[1]),
		}
		if len(parts) == 3 {
			unit := strings.TrimSpace(parts[2])
			ing.Unit = &unit
		}
		parsed = append(parsed, ing)
	}
	return parsed, nil
}

func splitList(field string) []string {
	var values []string
	for _, part := range strings.Split(field, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}

func describeViolations(violations []recipes.Violation) string {
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return strings.Join(parts, "; ")
}

package mock

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "kondate/internal/log"
	"kondate/models"
)

// New returns an in-memory sqlite database seeded with a few representative
// recipes, for local runs without a postgres instance.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:kondate-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Recipe{},
		&models.Ingredient{},
	); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

type seedRecipe struct {
	title       string
	description string
	minutes     int
	servings    int
	steps       []string
	ingredients []models.Ingredient
}

func seed(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Recipe{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		applog.Debug(ctx, "mock database already seeded", "recipes", count)
		return nil
	}

	applog.Debug(ctx, "seeding mock database")

	recipes := []seedRecipe{
		{
			title:       "チャーハン",
			description: "基本的なチャーハンです",
			minutes:     15,
			servings:    2,
			steps:       []string{"卵を溶く", "フライパンを熱する", "ご飯を炒める", "調味料を加える"},
			ingredients: []models.Ingredient{
				{Name: "ご飯", Amount: "300", Unit: "g"},
				{Name: "卵", Amount: "2", Unit: "個"},
				{Name: "醤油", Amount: "大さじ1", Unit: ""},
				{Name: "長ねぎ", Amount: "1/2", Unit: "本"},
			},
		},
		{
			title:       "トマトパスタ",
			description: "シンプルなトマトソースのパスタ。",
			minutes:     20,
			servings:    2,
			steps:       []string{"パスタを茹でる", "トマトソースを作る", "パスタとソースを和える"},
			ingredients: []models.Ingredient{
				{Name: "パスタ", Amount: "200", Unit: "g"},
				{Name: "トマト缶", Amount: "1", Unit: "缶"},
				{Name: "オリーブオイル", Amount: "2", Unit: "大さじ"},
			},
		},
		{
			title:       "親子丼",
			description: "鶏肉と卵の定番丼もの。",
			minutes:     15,
			servings:    2,
			steps:       []string{"鶏肉を炒める", "だしで煮る", "卵でとじる", "ご飯にのせる"},
			ingredients: []models.Ingredient{
				{Name: "鶏もも肉", Amount: "150", Unit: "g"},
				{Name: "卵", Amount: "2", Unit: "個"},
				{Name: "玉ねぎ", Amount: "1/2", Unit: "個"},
				{Name: "ご飯", Amount: "2", Unit: "杯"},
			},
		},
	}

	for _, entry := range recipes {
		encoded, err := json.Marshal(entry.steps)
		if err != nil {
			return err
		}
		row := models.Recipe{
			Title:              entry.title,
			Description:        entry.description,
			CookingTimeMinutes: entry.minutes,
			Servings:           entry.servings,
			Instructions:       string(encoded),
			Ingredients:        entry.ingredients,
		}
		if err := db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}

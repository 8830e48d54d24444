package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kondate/models"
)

// Store errors. ErrNotFound is returned whenever the referenced recipe id has
// no matching row, including deletes of already-removed recipes.
var (
	ErrNotFound          = errors.New("recipe not found")
	ErrEmptyIngredients  = errors.New("recipe requires at least one ingredient")
	ErrEmptyInstructions = errors.New("recipe requires at least one instruction step")
)

// Store is the persistence gateway for recipes and their ingredient rows.
// Each operation is one atomic unit of work; concurrent edits to the same
// recipe are last-write-wins with no conflict detection.
type Store struct {
	db *gorm.DB
}

// NewStore wraps the shared gorm handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create inserts the recipe row and all of its ingredient rows in a single
// transaction. The structural invariants are re-checked here: the gateway
// does not trust callers to have run the schema first.
func (s *Store) Create(ctx context.Context, payload CreatePayload) (*Recipe, error) {
	if len(payload.Ingredients) == 0 {
		return nil, ErrEmptyIngredients
	}
	if len(payload.Instructions) == 0 {
		return nil, ErrEmptyInstructions
	}

	encoded, err := encodeInstructions(payload.Instructions)
	if err != nil {
		return nil, err
	}

	row := models.Recipe{
		Title:              payload.Title,
		Description:        payload.Description,
		CookingTimeMinutes: payload.CookingTimeMinutes,
		Servings:           payload.Servings,
		Instructions:       encoded,
		Ingredients:        make([]models.Ingredient, 0, len(payload.Ingredients)),
	}
	for _, ing := range payload.Ingredients {
		row.Ingredients = append(row.Ingredients, models.Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	return toRecipe(row)
}

// GetByID fetches a recipe with its ingredients in insertion order and the
// instruction list decoded.
func (s *Store) GetByID(ctx context.Context, id uint) (*Recipe, error) {
	var row models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load recipe %d: %w", id, err)
	}
	return toRecipe(row)
}

// ListAll returns every recipe, most recently created first, with
// ingredients included and instructions decoded.
func (s *Store) ListAll(ctx context.Context) ([]Recipe, error) {
	var rows []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Order("created_at desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	recipes := make([]Recipe, 0, len(rows))
	for _, row := range rows {
		recipe, err := toRecipe(row)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// Update writes the scalar fields and, when provided, replaces the
// ingredient set and instruction list in the same transaction.
func (s *Store) Update(ctx context.Context, id uint, params UpdateParams) (*Recipe, error) {
	if params.Ingredients != nil && len(params.Ingredients) == 0 {
		return nil, ErrEmptyIngredients
	}
	if params.Instructions != nil && len(params.Instructions) == 0 {
		return nil, ErrEmptyInstructions
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Recipe
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updates := map[string]any{
			"title":                params.Title,
			"description":          params.Description,
			"cooking_time_minutes": params.CookingTimeMinutes,
			"servings":             params.Servings,
		}
		if params.Instructions != nil {
			encoded, err := encodeInstructions(params.Instructions)
			if err != nil {
				return err
			}
			updates["instructions"] = encoded
		}
		if err := tx.Model(&row).Updates(updates).Error; err != nil {
			return err
		}

		if params.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
				return err
			}
			replacement := make([]models.Ingredient, 0, len(params.Ingredients))
			for _, ing := range params.Ingredients {
				replacement = append(replacement, models.Ingredient{
					RecipeID: id,
					Name:     ing.Name,
					Amount:   ing.Amount,
					Unit:     ing.Unit,
				})
			}
			if err := tx.Create(&replacement).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update recipe %d: %w", id, err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes the recipe and all of its ingredient rows in one
// transaction. A missing id is a not-found error, not a silent no-op.
func (s *Store) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return nil
}

func encodeInstructions(steps []string) (string, error) {
	encoded, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("encode instructions: %w", err)
	}
	return string(encoded), nil
}

func decodeInstructions(encoded string) ([]string, error) {
	var steps []string
	if err := json.Unmarshal([]byte(encoded), &steps); err != nil {
		return nil, fmt.Errorf("decode instructions: %w", err)
	}
	return steps, nil
}

func toRecipe(row models.Recipe) (*Recipe, error) {
	steps, err := decodeInstructions(row.Instructions)
	if err != nil {
		return nil, fmt.Errorf("recipe %d: %w", row.ID, err)
	}

	ingredients := make([]Ingredient, 0, len(row.Ingredients))
	for _, ing := range row.Ingredients {
		ingredients = append(ingredients, Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}

	return &Recipe{
		ID:                 row.ID,
		Title:              row.Title,
		Description:        row.Description,
		CookingTimeMinutes: row.CookingTimeMinutes,
		Servings:           row.Servings,
		Instructions:       steps,
		Ingredients:        ingredients,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}, nil
}

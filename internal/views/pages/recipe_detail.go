package pages

import (
	"context"
	"fmt"
	"io"

	templpkg "github.com/a-h/templ"

	"kondate/internal/recipes"
	"kondate/internal/views/layout"
)

// RecipeDetail renders a single recipe with its ingredient table and ordered
// preparation steps.
func RecipeDetail(recipe recipes.Recipe) templpkg.Component {
	return templpkg.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<article><h1>%s</h1><p>⏱️ %d分 👥 %d人分 📅 %s</p><p>%s</p>`,
			templpkg.EscapeString(recipe.Title),
			recipe.CookingTimeMinutes,
			recipe.Servings,
			recipe.CreatedAt.Format("2006/01/02"),
			templpkg.EscapeString(recipe.Description),
		); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<h2>材料</h2><ul>`); err != nil {
			return err
		}
		for _, ing := range recipe.Ingredients {
			if _, err := fmt.Fprintf(w, `<li>%s %s%s</li>`,
				templpkg.EscapeString(ing.Name),
				templpkg.EscapeString(ing.Amount),
				templpkg.EscapeString(ing.Unit),
			); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</ul><h2>手順</h2><ol>`); err != nil {
			return err
		}
		for _, step := range recipe.Instructions {
			if _, err := fmt.Fprintf(w, `<li>%s</li>`, templpkg.EscapeString(step)); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w,
			`</ol><p><a href="/recipes/%d/edit">編集</a></p>`+
				`<form method="post" action="/recipes/%d/delete"><button type="submit">削除</button></form></article>`,
			recipe.ID, recipe.ID,
		)
		return err
	})
}

// RecipeDetailPage wraps the detail fragment in the document chrome.
func RecipeDetailPage(recipe recipes.Recipe, flash string) templpkg.Component {
	return layout.Base(recipe.Title, flash, RecipeDetail(recipe))
}

// NotFoundPage renders the recipe-missing message distinctly from form
// validation errors.
func NotFoundPage() templpkg.Component {
	return layout.Base("レシピが見つかりません", "", templpkg.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p>レシピが見つかりません</p><p><a href="/recipes">レシピ一覧へ戻る</a></p>`)
		return err
	}))
}

package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	templpkg "github.com/a-h/templ"

	"kondate/internal/recipes"
	"kondate/internal/views/layout"
)

// RecipeList renders the filterable recipe listing fragment.
func RecipeList(all []recipes.Recipe, filters RecipeFilters) templpkg.Component {
	return templpkg.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		filtered := FilterRecipes(all, filters)

		andSelected, orSelected := "", " checked"
		if filters.Mode == MatchAll {
			andSelected, orSelected = " checked", ""
		}
		if _, err := fmt.Fprintf(w,
			`<section id="recipe-list"><h1>レシピ一覧</h1>`+
				`<form method="get" action="/recipes" hx-get="/recipes" hx-target="#recipe-list">`+
				`<input type="text" name="title" value="%s" placeholder="レシピ名で検索">`+
				`<input type="text" name="ingredient" value="%s" placeholder="材料名で検索">`+
				`<label><input type="radio" name="mode" value="AND"%s>AND検索</label>`+
				`<label><input type="radio" name="mode" value="OR"%s>OR検索</label>`+
				`<button type="submit">検索</button></form>`+
				`<p>検索結果: %d 件</p>`,
			templpkg.EscapeString(filters.Title),
			templpkg.EscapeString(filters.Ingredients),
			andSelected, orSelected,
			len(filtered),
		); err != nil {
			return err
		}

		if len(filtered) == 0 {
			if _, err := io.WriteString(w, `<p>該当するレシピはありません</p></section>`); err != nil {
				return err
			}
			return nil
		}

		for _, recipe := range filtered {
			names := make([]string, 0, len(recipe.Ingredients))
			for _, ing := range recipe.Ingredients {
				names = append(names, ing.Name)
			}
			if _, err := fmt.Fprintf(w,
				`<article><p>材料: %s</p><h2><a href="/recipes/%d">%s</a></h2>`+
					`<p>⏱️ %d分 👥 %d人分 📅 %s</p><p>%s</p>`+
					`<p><a href="/recipes/%d">詳細</a> <a href="/recipes/%d/edit">編集</a></p></article>`,
				templpkg.EscapeString(strings.Join(names, ", ")),
				recipe.ID,
				templpkg.EscapeString(recipe.Title),
				recipe.CookingTimeMinutes,
				recipe.Servings,
				recipe.CreatedAt.Format("2006/01/02"),
				templpkg.EscapeString(recipe.Description),
				recipe.ID, recipe.ID,
			); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// RecipeListPage wraps the listing fragment in the document chrome.
func RecipeListPage(all []recipes.Recipe, filters RecipeFilters, flash string) templpkg.Component {
	return layout.Base("レシピ一覧", flash, RecipeList(all, filters))
}

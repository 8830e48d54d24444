package pages

import (
	"context"
	"fmt"
	"io"

	templpkg "github.com/a-h/templ"

	"kondate/internal/views/layout"
)

// ImportForm renders the recipe-card upload form. A non-empty message shows
// the outcome of a previous attempt.
func ImportForm(message string) templpkg.Component {
	return layout.Base("レシピカードのインポート", "", templpkg.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>レシピカードのインポート</h1>`); err != nil {
			return err
		}
		if message != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templpkg.EscapeString(message)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w,
			`<form method="post" action="/recipes/import" enctype="multipart/form-data">`+
				`<label>ファイル（.txt / .pdf）<input type="file" name="recipe_card"></label>`+
				`<label>またはテキストを貼り付け<textarea name="recipe_text"></textarea></label>`+
				`<button type="submit">読み込む</button></form>`,
		)
		return err
	}))
}

package layout

import (
	"context"
	"fmt"
	"io"

	templpkg "github.com/a-h/templ"
)

// Base wraps page content in the shared document chrome: head, navigation
// and an optional one-shot flash message.
func Base(title string, flash string, content templpkg.Component) templpkg.Component {
	return templpkg.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="ja"><head><meta charset="utf-8"><title>%s - Kondate</title></head><body>`,
			templpkg.EscapeString(title),
		); err != nil {
			return err
		}
		if _, err := io.WriteString(w,
			`<nav><a href="/">ホーム</a> | <a href="/recipes">レシピ一覧</a> | <a href="/recipes/new">新規作成</a> | <a href="/recipes/import">インポート</a></nav>`,
		); err != nil {
			return err
		}
		if flash != "" {
			if _, err := fmt.Fprintf(w, `<p class="flash">%s</p>`, templpkg.EscapeString(flash)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main>`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

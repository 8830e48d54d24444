package pages

import (
	"context"
	"io"

	templpkg "github.com/a-h/templ"

	"kondate/internal/views/layout"
)

// Home renders the landing page.
func Home(flash string) templpkg.Component {
	return layout.Base("ホーム", flash, templpkg.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<h1>Kondate</h1><p>レシピの作成・検索・管理アプリ</p>`+
				`<p><a href="/recipes">レシピ一覧を見る</a></p>`,
		)
		return err
	}))
}

package layout

import (
	"context"
	"io"
	"strings"
	"testing"

	templpkg "github.com/a-h/templ"
)

func TestBaseEscapesTitleAndRendersContent(t *testing.T) {
	t.Parallel()

	content := templpkg.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>body</p>")
		return err
	})

	var sb strings.Builder
	if err := Base(`<script>`, "保存しました", content).Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	html := sb.String()
	if strings.Contains(html, "<script>") {
		t.Fatalf("title must be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped title, got %q", html)
	}
	if !strings.Contains(html, "<p>body</p>") {
		t.Fatalf("expected content rendered, got %q", html)
	}
	if !strings.Contains(html, "保存しました") {
		t.Fatalf("expected flash message rendered, got %q", html)
	}
}

func TestBaseOmitsFlashWhenEmpty(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := Base("ホーム", "", nil).Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(sb.String(), `class="flash"`) {
		t.Fatalf("expected no flash element, got %q", sb.String())
	}
}

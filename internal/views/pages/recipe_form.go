package pages

import (
	"context"
	"fmt"
	"io"

	templpkg "github.com/a-h/templ"

	"kondate/internal/recipes"
	"kondate/internal/views/layout"
)

// RecipeFormValues carries the raw field values a form redisplays after a
// rejected submission, in the same flat text shape the pipeline accepts.
type RecipeFormValues struct {
	Title              string
	Description        string
	CookingTimeMinutes string
	Servings           string
	Ingredients        string
	Instructions       string
}

// RecipeForm renders the create/edit form. A non-nil result re-renders the
// submitted values with inline field errors and the top-level summary.
func RecipeForm(heading, action string, values RecipeFormValues, result *recipes.SubmitResult) templpkg.Component {
	return templpkg.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templpkg.EscapeString(heading)); err != nil {
			return err
		}

		var fieldErrors map[string]string
		if result != nil && result.Error != "" {
			fieldErrors = result.FieldErrors
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templpkg.EscapeString(result.Error)); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<form method="post" action="%s">`, templpkg.EscapeString(action)); err != nil {
			return err
		}

		if err := textInput(w, "タイトル", "title", values.Title, fieldErrors); err != nil {
			return err
		}
		if err := textInput(w, "説明", "description", values.Description, fieldErrors); err != nil {
			return err
		}
		if err := textInput(w, "調理時間（分）", "cookingTimeMinutes", values.CookingTimeMinutes, fieldErrors); err != nil {
			return err
		}
		if err := textInput(w, "人数", "servings", values.Servings, fieldErrors); err != nil {
			return err
		}
		if err := textArea(w, "材料（JSON）", "ingredients", values.Ingredients, fieldErrors); err != nil {
			return err
		}
		if err := textArea(w, "手順（JSON）", "instructions", values.Instructions, fieldErrors); err != nil {
			return err
		}

		_, err := io.WriteString(w, `<button type="submit">保存</button></form>`)
		return err
	})
}

// RecipeFormPage wraps the form in the document chrome.
func RecipeFormPage(heading, action string, values RecipeFormValues, result *recipes.SubmitResult) templpkg.Component {
	return layout.Base(heading, "", RecipeForm(heading, action, values, result))
}

func textInput(w io.Writer, label, name, value string, fieldErrors map[string]string) error {
	if _, err := fmt.Fprintf(w,
		`<label>%s<input type="text" name="%s" value="%s"></label>`,
		templpkg.EscapeString(label), name, templpkg.EscapeString(value),
	); err != nil {
		return err
	}
	return inlineError(w, name, fieldErrors)
}

func textArea(w io.Writer, label, name, value string, fieldErrors map[string]string) error {
	if _, err := fmt.Fprintf(w,
		`<label>%s<textarea name="%s">%s</textarea></label>`,
		templpkg.EscapeString(label), name, templpkg.EscapeString(value),
	); err != nil {
		return err
	}
	return inlineError(w, name, fieldErrors)
}

func inlineError(w io.Writer, name string, fieldErrors map[string]string) error {
	message, ok := fieldErrors[name]
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(w, `<p class="field-error">%s</p>`, templpkg.EscapeString(message))
	return err
}

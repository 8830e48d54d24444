package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	applog "kondate/internal/log"
	"kondate/internal/recipes"
	"kondate/internal/views/pages"
)

const maxCardUploadSize = 5 << 20

// ImportRecipePage renders the recipe card upload form.
func ImportRecipePage(w http.ResponseWriter, r *http.Request) {
	renderComponent(w, r, pages.ImportForm(""))
}

// ImportRecipeCard accepts a recipe card as a text or PDF upload (or pasted
// text), extracts the plain text, and prefills the creation form with a
// best-effort parse. Nothing is persisted here; the user reviews and submits
// the form.
func ImportRecipeCard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCardUploadSize); err != nil {
		applog.Debug(r.Context(), "unparseable card upload", "error", err)
		renderComponentStatus(w, r, http.StatusBadRequest, pages.ImportForm("アップロードを読み込めませんでした。"))
		return
	}

	text, err := readCardUpload(r)
	if err != nil {
		applog.Debug(r.Context(), "card upload rejected", "error", err)
		renderComponentStatus(w, r, http.StatusBadRequest, pages.ImportForm("アップロードを読み込めませんでした。"))
		return
	}
	if strings.TrimSpace(text) == "" {
		text = r.FormValue("recipe_text")
	}
	if strings.TrimSpace(text) == "" {
		renderComponentStatus(w, r, http.StatusBadRequest, pages.ImportForm("レシピカードのファイルかテキストを入力してください。"))
		return
	}

	card := parseRecipeCard(text)
	applog.Info(r.Context(), "recipe card parsed", "title", card.Title,
		"ingredients", len(card.Ingredients), "instructions", len(card.Instructions))

	renderComponent(w, r, pages.RecipeFormPage("レシピを作成", "/recipes", formValuesFromCard(card), nil))
}

func readCardUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("recipe_card")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if header.Size > maxCardUploadSize {
		return "", fmt.Errorf("file exceeds %d bytes", maxCardUploadSize)
	}

	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, file); err != nil {
		return "", err
	}

	if isPDFUpload(header.Header.Get("Content-Type"), header.Filename) {
		return extractTextFromPDF(buf.Bytes())
	}
	return buf.String(), nil
}

func isPDFUpload(mime, name string) bool {
	if strings.Contains(strings.ToLower(mime), "pdf") {
		return true
	}
	return strings.ToLower(filepath.Ext(name)) == ".pdf"
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// recipeCard is the loosely structured result of parsing free-form card
// text.
type recipeCard struct {
	Title        string
	Description  string
	Ingredients  []recipes.RawIngredient
	Instructions []string
}

// parseRecipeCard splits card text into sections. The first non-empty line
// becomes the title, lines under a 材料 heading become ingredients, and lines
// under a 手順 or 作り方 heading become steps. Lines before the first heading
// after the title are treated as description.
func parseRecipeCard(text string) recipeCard {
	var card recipeCard
	var description []string
	section := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case isSectionHeading(line, "材料"):
			section = "ingredients"
			continue
		case isSectionHeading(line, "手順") || isSectionHeading(line, "作り方"):
			section = "instructions"
			continue
		}

		switch section {
		case "ingredients":
			card.Ingredients = append(card.Ingredients, parseIngredientLine(line))
		case "instructions":
			card.Instructions = append(card.Instructions, stripStepNumber(line))
		default:
			if card.Title == "" {
				card.Title = line
			} else {
				description = append(description, line)
			}
		}
	}

	card.Description = strings.Join(description, "\n")
	return card
}

func isSectionHeading(line, name string) bool {
	trimmed := strings.Trim(line, "【】[]:： ")
	return trimmed == name
}

// parseIngredientLine splits "名前 分量単位" style lines on the first run of
// whitespace or a full-width space. A line with no separator becomes a name
// with an empty amount, which the creation form will flag for review.
func parseIngredientLine(line string) recipes.RawIngredient {
	normalized := strings.ReplaceAll(line, "　", " ")
	normalized = strings.TrimLeft(normalized, "・- ")
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return recipes.RawIngredient{}
	}

	ing := recipes.RawIngredient{Name: fields[0]}
	if len(fields) > 1 {
		ing.Amount = strings.Join(fields[1:], " ")
	}
	return ing
}

// stripStepNumber drops a leading "1." / "1、" / "①" style marker.
func stripStepNumber(line string) string {
	runes := []rune(line)
	i := 0
	for i < len(runes) && (runes[i] >= '0' && runes[i] <= '9' || runes[i] >= '①' && runes[i] <= '⑳') {
		i++
	}
	if i == 0 {
		return line
	}
	rest := strings.TrimLeft(string(runes[i:]), ".、) 　")
	if rest == "" {
		return line
	}
	return rest
}

func formValuesFromCard(card recipeCard) pages.RecipeFormValues {
	values := pages.RecipeFormValues{
		Title:       card.Title,
		Description: card.Description,
	}
	if len(card.Ingredients) > 0 {
		encoded, _ := json.Marshal(card.Ingredients)
		values.Ingredients = string(encoded)
	}
	if len(card.Instructions) > 0 {
		encoded, _ := json.Marshal(card.Instructions)
		values.Instructions = string(encoded)
	}
	return values
}

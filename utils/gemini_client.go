package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/iCreativate/peboli-sub000/config"
)

var catalogCategories = []string{
	"electronics", "fashion", "home", "beauty", "sports", "baby", "liquor",
	"books", "automotive", "pets", "toys", "health", "office",
}

// SuggestCategory asks Gemini to classify a product into one of the canonical
// catalog categories. Used by the admin UI when the pipeline's heuristics
// come up empty; never called automatically.
func SuggestCategory(ctx context.Context, title, description string) (string, error) {
	if config.GeminiAPIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-flash")

	prompt := fmt.Sprintf(`Classify this product into exactly one of these categories: %s.
Answer with the category name only, nothing else.

Title: %s
Description: %s`, strings.Join(catalogCategories, ", "), title, description)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %v", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	answer, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}

	suggestion := strings.ToLower(strings.TrimSpace(string(answer)))
	for _, category := range catalogCategories {
		if suggestion == category || strings.Contains(suggestion, category) {
			return category, nil
		}
	}
	return "", fmt.Errorf("model returned unknown category %q", suggestion)
}

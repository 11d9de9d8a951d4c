// Package usecase implements the AI gateway for the marketplace.
// Callers pass typed requests; prompt construction is an implementation
// detail of this package and never leaks to callers.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxImageSize is the upper bound for product images sent to the
	// annotator and generator (10MB).
	MaxImageSize = 10 * 1024 * 1024

	// maxSuggestions caps search-suggestion results.
	maxSuggestions = 4
)

// ErrAssistantUnavailable is returned when the underlying model cannot be
// reached or produced nothing usable. Callers are expected to degrade to
// their non-AI fallbacks.
var ErrAssistantUnavailable = errors.New("assistant unavailable")

// SuggestionKind selects the prompt family for SourcedIDs.
type SuggestionKind string

const (
	KindProductSearch            SuggestionKind = "productSearch"
	KindProductSuggestion        SuggestionKind = "productSuggestion"
	KindConnectionRecommendation SuggestionKind = "connectionRecommendation"
)

// Candidate is a summarized record the model chooses from. Only the fields
// relevant to the request kind are populated; empty fields are omitted from
// the prompt payload.
type Candidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Description string  `json:"description,omitempty"`
	Specialty   string  `json:"specialty,omitempty"`
	Location    string  `json:"location,omitempty"`
	Experience  string  `json:"experience,omitempty"`
}

// SuggestionRequest is the typed request for ID-returning assistant calls.
type SuggestionRequest struct {
	Kind               SuggestionKind
	Query              string
	RequesterName      string // connection recommendations only
	RequesterSpecialty string // connection recommendations only
	Candidates         []Candidate
}

// DescriptionRequest asks for a marketing description of a product image.
type DescriptionRequest struct {
	ImageURL  string
	Keywords  string
	CraftType string
}

// TextGenerator abstracts the generative model.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TextGenerator interface {
	// Generate produces text from a prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateWithImage produces text from a prompt plus an inline image.
	GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// ImageAnnotator extracts label hints from an image.
type ImageAnnotator interface {
	Labels(ctx context.Context, image []byte) ([]string, error)
}

// ImageFetcher downloads an image by URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, mimeType string, err error)
}

// AssistantUsecase implements the AI gateway operations.
type AssistantUsecase struct {
	generator TextGenerator
	annotator ImageAnnotator
	fetcher   ImageFetcher
}

// NewAssistantUsecase creates a new AssistantUsecase. The annotator may be
// nil, in which case description generation skips label hints.
func NewAssistantUsecase(generator TextGenerator, annotator ImageAnnotator, fetcher ImageFetcher) *AssistantUsecase {
	return &AssistantUsecase{generator: generator, annotator: annotator, fetcher: fetcher}
}

// GenerateDescription produces a listing description for a product image.
// Vision label hints are best-effort; a failed annotation never fails the
// whole request.
func (u *AssistantUsecase) GenerateDescription(ctx context.Context, req DescriptionRequest) (string, error) {
	if req.ImageURL == "" {
		return "", fmt.Errorf("image URL is required")
	}

	image, mimeType, err := u.fetcher.Fetch(ctx, req.ImageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch product image: %w", err)
	}
	if len(image) > MaxImageSize {
		return "", fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	}

	labelHint := ""
	if u.annotator != nil {
		if labels, err := u.annotator.Labels(ctx, image); err == nil && len(labels) > 0 {
			labelHint = fmt.Sprintf("\nDetected subjects in the image: %s.", strings.Join(labels, ", "))
		}
	}

	prompt := fmt.Sprintf(`You are a marketing expert for an online artisan marketplace.
Generate a compelling, SEO-friendly product description for a new listing.
Be evocative, detailed, and focus on the craftsmanship.

Craft Type: %s
Keywords to include: %s%s

Based on the image provided, write a description that includes:
1. A catchy title (start with "Title:").
2. A main description (2-3 paragraphs).
3. A bulleted list of key features (materials, dimensions if inferable, unique aspects).

Do not add any other formatting like markdown headers.`, req.CraftType, req.Keywords, labelHint)

	text, err := u.generator.GenerateWithImage(ctx, prompt, image, mimeType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	return text, nil
}

// BusinessSuggestions produces personalized growth suggestions for an
// artisan. The response is split on newlines with blanks dropped.
func (u *AssistantUsecase) BusinessSuggestions(ctx context.Context, name, specialty string) ([]string, error) {
	prompt := fmt.Sprintf(`You are a business mentor for independent artists on an e-commerce platform.
Your client is %s, who specializes in %s.
Provide 3-4 actionable, creative, and personalized suggestions to help them grow their business.
Focus on these areas:
- A new product idea based on current trends relevant to their specialty.
- A marketing or social media tip.
- A collaboration idea with another type of artisan.

Format the response as a simple list. Start each suggestion with a relevant emoji. Do not use markdown.`, name, specialty)

	text, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	return splitLines(text), nil
}

// SourcedIDs asks the model to pick matching ids from the candidates.
// A non-JSON response degrades to newline-separated parsing rather than
// surfacing a parse error; only transport failures surface as
// ErrAssistantUnavailable.
func (u *AssistantUsecase) SourcedIDs(ctx context.Context, req SuggestionRequest) ([]string, error) {
	prompt, err := buildSuggestionPrompt(req)
	if err != nil {
		return nil, err
	}

	text, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	return parseIDList(text), nil
}

// buildSuggestionPrompt assembles the prompt for an ID-returning request.
func buildSuggestionPrompt(req SuggestionRequest) (string, error) {
	switch req.Kind {
	case KindProductSearch:
		payload, err := json.Marshal(req.Candidates)
		if err != nil {
			return "", fmt.Errorf("failed to encode candidates: %w", err)
		}
		return fmt.Sprintf(`You are a smart search assistant for an artisan marketplace.
Analyze the user's query: %q
And search through the following products:
%s
Return a JSON array of product IDs that best match the query.
Only return the JSON array, nothing else. Example: ["prod1", "prod7"]`, req.Query, payload), nil

	case KindProductSuggestion:
		payload, err := json.Marshal(req.Candidates)
		if err != nil {
			return "", fmt.Errorf("failed to encode candidates: %w", err)
		}
		return fmt.Sprintf(`You are a personal shopping assistant for an artisan marketplace.
The user recently viewed: %s.
Pick up to %d products from the following catalog that the user is most likely to enjoy next:
%s
Return a JSON array of product IDs.
Only return the JSON array, nothing else. Example: ["prod2", "prod5"]`, req.Query, maxSuggestions, payload), nil

	case KindConnectionRecommendation:
		if req.RequesterName == "" {
			return "", fmt.Errorf("requester is required for connection recommendations")
		}
		payload, err := json.Marshal(req.Candidates)
		if err != nil {
			return "", fmt.Errorf("failed to encode candidates: %w", err)
		}
		return fmt.Sprintf(`You are a networking assistant for an artisan marketplace.
The current user is %s, a specialist in %s.
The user is searching for other artisans with the query: %q.
Here is a list of available artisans:
%s
Return a JSON array of artisan IDs that would be a good connection or collaboration match.
Only return the JSON array of IDs. Example: ["user2", "user4"]`, req.RequesterName, req.RequesterSpecialty, req.Query, payload), nil

	default:
		return "", fmt.Errorf("unknown suggestion kind %q", req.Kind)
	}
}

// parseIDList extracts a string list from a model response. Valid JSON
// arrays are preferred; anything else is treated as newline-separated text.
func parseIDList(text string) []string {
	trimmed := strings.TrimSpace(text)

	// Models occasionally wrap JSON in a code fence.
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var ids []string
	if err := json.Unmarshal([]byte(trimmed), &ids); err == nil {
		return ids
	}
	return splitLines(trimmed)
}

// splitLines splits text on newlines, trimming and dropping blanks.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

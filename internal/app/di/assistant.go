package di

import (
	"context"
	"fmt"
	"time"

	"artisan_backend/internal/feature/assistant/adapters/gemini"
	"artisan_backend/internal/feature/assistant/adapters/imagefetch"
	"artisan_backend/internal/feature/assistant/adapters/vision"
	"artisan_backend/internal/feature/assistant/usecase"
	infrahttp "artisan_backend/internal/platform/http"
	"artisan_backend/internal/shared/ratelimiter"
)

// NewAssistantUsecase assembles the AI gateway: a rate-limited Gemini
// client, the Vision label annotator and the image fetcher. Vision is
// optional; without it descriptions are generated from the image alone.
func NewAssistantUsecase(ctx context.Context, model string, requestsPerMinute int, fetchTimeout time.Duration) (*usecase.AssistantUsecase, error) {
	limiter := ratelimiter.NewRateLimiter(requestsPerMinute, time.Minute)
	generator, err := gemini.NewGeminiGenerator(ctx, model, limiter)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	var annotator usecase.ImageAnnotator
	if v, err := vision.NewVisionAnnotator(ctx); err == nil {
		annotator = v
	}

	fetcher := imagefetch.NewFetcher(infrahttp.NewHTTPClient(fetchTimeout))
	return usecase.NewAssistantUsecase(generator, annotator, fetcher), nil
}

package di

import (
	"context"

	"swing_backend/internal/feature/analysis/adapters/gemini"
)

// NewResearcher creates a Gemini-backed swing researcher using application
// default credentials.
func NewResearcher(ctx context.Context) (*gemini.GeminiResearcher, error) {
	return gemini.NewGeminiResearcher(ctx)
}

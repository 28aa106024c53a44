// Package gemini はGoogle Gemini APIを使用したスイング原因調査クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"math"

	"google.golang.org/genai"

	"swing_backend/internal/feature/analysis/domain/entity"
	"swing_backend/internal/feature/analysis/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// promptTemplate はスイング原因調査のプロンプトテンプレートです。
	// 50語以内の指示はプロバイダへの依頼であり、超過時の切り詰めは
	// オーケストレーター側の安全網が行います。
	promptTemplate = "In 50 words or less, explain the most likely cause of %s stock %s %.1f%% between %s and %s. Name the specific company or market event if one exists."
)

// GeminiResearcher はGoogle Gemini APIを使用してスイングの原因説明を生成します。
type GeminiResearcher struct {
	client *genai.Client
	model  string
}

// GeminiResearcherがResearcherを実装していることをコンパイル時に検証します。
var _ usecase.Researcher = (*GeminiResearcher)(nil)

// NewGeminiResearcher はADCを使用してGeminiResearcherの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiResearcher(ctx context.Context) (*GeminiResearcher, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiResearcher{client: client, model: DefaultModel}, nil
}

// Explain は1件のスイングイベントについて原因説明を生成します。
func (g *GeminiResearcher) Explain(ctx context.Context, ticker string, event entity.MovementEvent) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(ticker, event)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}

// BuildPrompt はスイングイベントから調査プロンプトを構築します。
func BuildPrompt(ticker string, event entity.MovementEvent) string {
	direction := "rising"
	if event.Type == entity.MovementDown {
		direction = "falling"
	}
	return fmt.Sprintf(promptTemplate,
		ticker,
		direction,
		math.Abs(event.PercentageChange),
		event.StartDate.Format("2006-01-02"),
		event.EndDate.Format("2006-01-02"),
	)
}

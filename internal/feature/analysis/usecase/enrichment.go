package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"swing_backend/internal/feature/analysis/domain/entity"
)

const (
	// DefaultEnrichmentCap は1回の分析で発行する説明リクエストの上限です。
	DefaultEnrichmentCap = 15
	// MaxExplanationWords は説明文の最大語数です。プロバイダが自身の
	// 長さ指示を無視した場合の安全網として、応答へ一律に適用されます。
	MaxExplanationWords = 50

	// FallbackResearchFailed はリクエスト失敗時に設定される固定文言です。
	FallbackResearchFailed = "research failed for this period"
	// FallbackNoEventData は空応答時に設定される固定文言です。
	FallbackNoEventData = "no specific event data identified"
)

// Researcher は1件のスイングイベントに対する原因説明を取得するリポジトリ
// インターフェースです。Goの慣例に従い、インターフェースは利用者（usecase）
// 側で定義します。
type Researcher interface {
	// Explain は指定銘柄のスイングイベントについて短い説明文を返します。
	Explain(ctx context.Context, ticker string, event entity.MovementEvent) (string, error)
}

// EnrichmentOrchestrator は検出済みスイングへの説明付与を統括します。
// 上限までの各イベントに対して独立したゴルーチンを起動し、完了チャネルを
// 単一の消費ループで排水してResultStoreへマージします。ストアへの書き込みは
// この消費ループだけが行うため、スロット単位のロックは不要です。
type EnrichmentOrchestrator struct {
	researcher Researcher
	store      *ResultStore
	limit      int
}

// NewEnrichmentOrchestrator はEnrichmentOrchestratorの新しいインスタンスを
// 生成します。limitが0以下の場合はDefaultEnrichmentCapを使用します。
func NewEnrichmentOrchestrator(researcher Researcher, store *ResultStore, limit int) *EnrichmentOrchestrator {
	if limit <= 0 {
		limit = DefaultEnrichmentCap
	}
	return &EnrichmentOrchestrator{researcher: researcher, store: store, limit: limit}
}

// completion は1件の説明リクエストの結果です。完了順は不定のため、
// マージはインデックス指定の書き込みで行います。
type completion struct {
	index int
	text  string
	err   error
}

// Enrich は先頭limit件のイベントそれぞれに1回だけ説明リクエストを発行し、
// 到着順にResultStoreへマージします。全リクエストが成否を問わず確定する
// まで（未完了カウンタが0になるまで）ブロックします。
//
// 1件の失敗は当該イベントのフォールバック文言に解決されるだけで、他の
// リクエストには影響しません。リトライは行いません。
func (o *EnrichmentOrchestrator) Enrich(ctx context.Context, runID uint64, ticker string, events []entity.MovementEvent) {
	n := len(events)
	if n > o.limit {
		n = o.limit
	}
	if n == 0 {
		return
	}

	done := make(chan completion, n)
	for i := 0; i < n; i++ {
		go func(i int, ev entity.MovementEvent) {
			text, err := o.researcher.Explain(ctx, ticker, ev)
			done <- completion{index: i, text: text, err: err}
		}(i, events[i])
	}

	// 単一消費ループ: 到着順にマージし、1完了につきカウンタを1減らす
	for k := 0; k < n; k++ {
		c := <-done
		if c.err != nil {
			slog.Warn("explanation request failed", "ticker", ticker, "index", c.index, "error", c.err)
		}
		if !o.store.Merge(runID, c.index, resolveContext(c)) {
			// 新しい分析に置き換えられた古い実行の完了は破棄する
			slog.Debug("discarded stale enrichment", "ticker", ticker, "index", c.index, "run_id", runID)
		}
	}
}

// CapFallback は上限を超えたイベントに設定する固定文言を返します。
func (o *EnrichmentOrchestrator) CapFallback() string {
	return fmt.Sprintf("context limited to first %d swings", o.limit)
}

// Limit は説明リクエストの上限件数を返します。
func (o *EnrichmentOrchestrator) Limit() int {
	return o.limit
}

// resolveContext は1件の完了結果をイベントに設定する文字列へ解決します。
func resolveContext(c completion) string {
	if c.err != nil {
		return FallbackResearchFailed
	}
	text := strings.TrimSpace(c.text)
	if text == "" {
		return FallbackNoEventData
	}
	return TruncateWords(text, MaxExplanationWords)
}

// TruncateWords はテキストを先頭limit語に切り詰め、切り詰めた場合は
// 末尾に省略記号を付けます。
func TruncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ") + "..."
}

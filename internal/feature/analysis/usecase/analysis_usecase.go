package usecase

import (
	"context"

	"swing_backend/internal/feature/analysis/domain/entity"
	pricesentity "swing_backend/internal/feature/prices/domain/entity"
)

const (
	// MinTargetPercentage は許容される最小の閾値（パーセント）です。
	// これ未満の入力はセグメンテーション前にこの値へクランプされます。
	MinTargetPercentage = 2.0
)

// HistoryProvider は分析対象の日足系列を取得するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type HistoryProvider interface {
	// GetDailyHistory は指定銘柄・年の正規化済み日足系列を返します。
	GetDailyHistory(ctx context.Context, ticker string, year int) ([]pricesentity.PricePoint, error)
}

// analysisUsecase はスイング分析の実行ユースケースを実装します。
// セグメンテーションは同期的に完了して結果を即時公開し、エンリッチメントは
// バックグラウンドで進行します。
type analysisUsecase struct {
	history      HistoryProvider
	store        *ResultStore
	orchestrator *EnrichmentOrchestrator
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(history HistoryProvider, store *ResultStore, orchestrator *EnrichmentOrchestrator) *analysisUsecase {
	return &analysisUsecase{history: history, store: store, orchestrator: orchestrator}
}

// Analyze は1回の分析を実行します。
//
//  1. 閾値を下限2%にクランプ
//  2. 日足系列を取得（失敗は実行全体の失敗、結果は公開されない）
//  3. セグメンテーションを同期実行（データ不足も同様に公開前に失敗）
//  4. 上限を超えるイベントへ固定フォールバックを先に設定して結果を公開
//  5. エンリッチメントをバックグラウンドで開始
//
// 戻り値はエンリッチメント開始直後のスナップショットとrunIDです。呼び出し側は
// 以降Snapshotをポーリングして段階的に埋まるコンテキストを観測できます。
func (u *analysisUsecase) Analyze(ctx context.Context, ticker string, year int, targetPercentage float64) (*entity.AnalysisResult, uint64, error) {
	if targetPercentage < MinTargetPercentage {
		targetPercentage = MinTargetPercentage
	}

	series, err := u.history.GetDailyHistory(ctx, ticker, year)
	if err != nil {
		return nil, 0, err
	}

	events, err := Segment(series, targetPercentage/100)
	if err != nil {
		return nil, 0, err
	}

	// 上限を超えたイベントは説明リクエストの対象外。固定文言を公開前に設定する
	for i := u.orchestrator.Limit(); i < len(events); i++ {
		events[i].Context = u.orchestrator.CapFallback()
	}

	pending := len(events)
	if pending > u.orchestrator.Limit() {
		pending = u.orchestrator.Limit()
	}

	result := &entity.AnalysisResult{
		Ticker:           ticker,
		Year:             year,
		TargetPercentage: targetPercentage,
		Data:             series,
		Movements:        events,
	}
	runID := u.store.Publish(result, pending)

	// リクエストコンテキストはハンドラ終了時に破棄されるため、
	// バックグラウンドのエンリッチメントは独立したコンテキストで実行する
	go u.orchestrator.Enrich(context.WithoutCancel(ctx), runID, ticker, events)

	snapshot, _ := u.store.Snapshot()
	return snapshot, runID, nil
}

// CurrentSnapshot は最新の分析結果のコピーと未完了エンリッチメント数を返します。
func (u *analysisUsecase) CurrentSnapshot() (*entity.AnalysisResult, int) {
	return u.store.Snapshot()
}

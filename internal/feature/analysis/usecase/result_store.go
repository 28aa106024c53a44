package usecase

import (
	"sync"

	"swing_backend/internal/feature/analysis/domain/entity"
)

// ResultStore は現在の分析結果を保持するプロセスローカルな単一スロットの
// ストアです。結果はセグメンテーション完了直後にPublishで公開され、
// エンリッチメントの完了ごとにMergeで段階的に埋まります。
//
// 書き込みはオーケストレーター（Merge）のみが行い、各Movementスロットへの
// 書き込みは高々1回です。新しい分析が始まると結果は丸ごと差し替えられ、
// 古い実行のrunIDを持つMergeは破棄されます（stale write防止）。
type ResultStore struct {
	mu          sync.RWMutex
	runID       uint64
	result      *entity.AnalysisResult
	outstanding int
}

// NewResultStore はResultStoreの新しいインスタンスを生成します。
func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// Publish は新しい分析結果を公開し、未完了エンリッチメント数を設定して、
// この実行を識別するrunIDを返します。以前の結果と実行は破棄されます。
func (s *ResultStore) Publish(result *entity.AnalysisResult, outstanding int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID++
	s.result = result
	s.outstanding = outstanding
	return s.runID
}

// Merge は指定インデックスのMovementにコンテキストを書き込み、未完了数を
// 1減らします。runIDが現在の実行と一致しない場合は何もせずfalseを返します。
func (s *ResultStore) Merge(runID uint64, index int, context string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if runID != s.runID || s.result == nil {
		return false
	}
	if index < 0 || index >= len(s.result.Movements) {
		return false
	}
	s.result.Movements[index].Context = context
	if s.outstanding > 0 {
		s.outstanding--
	}
	return true
}

// Snapshot は現在の結果のディープコピーと未完了エンリッチメント数を返します。
// 結果が未公開の場合はnilと0を返します。
func (s *ResultStore) Snapshot() (*entity.AnalysisResult, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, 0
	}
	cp := *s.result
	cp.Data = append(cp.Data[:0:0], s.result.Data...)
	cp.Movements = append(cp.Movements[:0:0], s.result.Movements...)
	return &cp, s.outstanding
}

// RunID は現在の実行のIDを返します。未公開の場合は0です。
func (s *ResultStore) RunID() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runID
}

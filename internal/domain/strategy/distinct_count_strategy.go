package strategy

import (
	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/service"
)

// DistinctCountStrategy はセル内のレコードIDの一意数を数える戦略
// 同一IDが複数回現れても1として数える（プライバシー配慮の密度集計向け）
type DistinctCountStrategy struct{}

// NewDistinctCountStrategy 新しいDistinctCountStrategyインスタンスを作成
func NewDistinctCountStrategy() *DistinctCountStrategy {
	return &DistinctCountStrategy{}
}

func (s *DistinctCountStrategy) Name() string {
	return model.ReductionDistinctCount
}

func (s *DistinctCountStrategy) Reduce(points []service.AssignedPoint) int {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		seen[p.Record.ID] = struct{}{}
	}
	return len(seen)
}

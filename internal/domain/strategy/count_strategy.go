package strategy

import (
	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/service"
)

// CountStrategy はセル内のレコード件数をそのまま数える戦略（デフォルト）
// 同一地点の重複レコードも通常どおり数える
type CountStrategy struct{}

// NewCountStrategy 新しいCountStrategyインスタンスを作成
func NewCountStrategy() *CountStrategy {
	return &CountStrategy{}
}

func (s *CountStrategy) Name() string {
	return model.ReductionCount
}

func (s *CountStrategy) Reduce(points []service.AssignedPoint) int {
	return len(points)
}

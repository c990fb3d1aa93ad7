package strategy

import (
	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/service"
)

// ReductionStrategy は、セルに属するレコード群から集計値を求める戦略のインターフェース
type ReductionStrategy interface {
	// 戦略名を取得（リクエストのreduction指定と対応）
	Name() string

	// セル1つ分のレコード群から集計値を計算する
	Reduce(points []service.AssignedPoint) int
}

// ForName 指定された名前に対応する戦略を取得する
// 空文字列の場合はデフォルト（件数カウント）を返す
func ForName(name string) (ReductionStrategy, error) {
	switch name {
	case "", model.ReductionCount:
		return NewCountStrategy(), nil
	case model.ReductionDistinctCount:
		return NewDistinctCountStrategy(), nil
	default:
		return nil, &model.ValidationError{
			Field:   "reduction",
			Message: "reductionは'count'または'distinct_count'を指定してください: " + name,
		}
	}
}

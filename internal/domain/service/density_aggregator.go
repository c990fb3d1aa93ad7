package service

import (
	"DensityMap-App/internal/domain/helper"
	"DensityMap-App/internal/domain/model"
)

// Reducer セル1つ分のレコード群から集計値を求めるインターフェース
// 実装は internal/domain/strategy が提供する
type Reducer interface {
	Name() string
	Reduce(points []AssignedPoint) int
}

// DensityAggregator セル識別子でグループ化して集計するサービス
type DensityAggregator struct {
	reducer Reducer
}

// NewDensityAggregator 新しいDensityAggregatorインスタンスを作成
func NewDensityAggregator(reducer Reducer) *DensityAggregator {
	return &DensityAggregator{
		reducer: reducer,
	}
}

// Aggregate セル識別子ごとにレコードをグループ化し、集計値を計算する
// グループ化は順序に依存しないが、出力は集計値の降順・セルID昇順で返す
func (a *DensityAggregator) Aggregate(assigned []AssignedPoint) []model.CellAggregate {
	groups := make(map[model.CellID][]AssignedPoint)
	for _, point := range assigned {
		groups[point.CellID] = append(groups[point.CellID], point)
	}

	aggregates := make([]model.CellAggregate, 0, len(groups))
	for cellID, points := range groups {
		aggregates = append(aggregates, model.CellAggregate{
			CellID: cellID,
			Count:  a.reducer.Reduce(points),
		})
	}

	helper.SortCellAggregates(aggregates)
	return aggregates
}

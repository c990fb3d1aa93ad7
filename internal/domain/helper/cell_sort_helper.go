package helper

import (
	"sort"

	"DensityMap-App/internal/domain/model"
)

// SortCellAggregates はセル集計結果を表示・テストしやすい決定的な順序に並べる
// 集計値の降順、同値の場合はセルIDの昇順（安定ソート）
func SortCellAggregates(aggregates []model.CellAggregate) {
	sort.SliceStable(aggregates, func(i, j int) bool {
		if aggregates[i].Count != aggregates[j].Count {
			return aggregates[i].Count > aggregates[j].Count
		}
		return aggregates[i].CellID < aggregates[j].CellID
	})
}

// SortDensityCells は境界付きのセル集計結果を同じ順序で並べる
func SortDensityCells(cells []model.DensityCell) {
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].Count != cells[j].Count {
			return cells[i].Count > cells[j].Count
		}
		return cells[i].CellID < cells[j].CellID
	})
}

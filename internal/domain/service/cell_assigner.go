package service

import (
	"fmt"

	"DensityMap-App/internal/domain/model"
)

// CellAssigner 各レコードにセル識別子を割り当てるサービス
type CellAssigner struct {
	indexProvider CellIndexProvider
}

// NewCellAssigner 新しいCellAssignerインスタンスを作成
func NewCellAssigner(indexProvider CellIndexProvider) *CellAssigner {
	return &CellAssigner{
		indexProvider: indexProvider,
	}
}

// AssignedPoint セル識別子を付与したレコード
type AssignedPoint struct {
	Record model.PointRecord
	CellID model.CellID
}

// Assign 入力レコード列と同じ順序でセル識別子を割り当てる
// 最初のエラーで全体を失敗させる（リトライしても同じ入力は同じ結果になるため）
func (a *CellAssigner) Assign(records []model.PointRecord, resolution int) ([]AssignedPoint, error) {
	if err := model.ValidateResolution(resolution); err != nil {
		return nil, err
	}

	assigned := make([]AssignedPoint, 0, len(records))
	for i, record := range records {
		cellID, err := a.indexProvider.CellFor(record.Location.Latitude, record.Location.Longitude, resolution)
		if err != nil {
			return nil, fmt.Errorf("レコード%d (id=%s) のセル割り当て失敗: %w", i, record.ID, err)
		}
		assigned = append(assigned, AssignedPoint{
			Record: record,
			CellID: cellID,
		})
	}

	return assigned, nil
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DensityMap-App/internal/domain/model"
)

func makeRecords(coords ...[2]float64) []model.PointRecord {
	records := make([]model.PointRecord, 0, len(coords))
	for i, c := range coords {
		records = append(records, model.PointRecord{
			ID: string(rune('a' + i)),
			Location: model.Location{
				Latitude:  c[0],
				Longitude: c[1],
			},
		})
	}
	return records
}

func TestCellAssigner_Assign(t *testing.T) {
	t.Run("入力順を保持してセルを割り当てる", func(t *testing.T) {
		provider := newFakeIndexProvider()
		assigner := NewCellAssigner(provider)

		records := makeRecords([2]float64{0, 0}, [2]float64{10, 10}, [2]float64{0, 0})
		assigned, err := assigner.Assign(records, 5)
		require.NoError(t, err)
		require.Len(t, assigned, 3)

		assert.Equal(t, records[0].ID, assigned[0].Record.ID)
		assert.Equal(t, records[1].ID, assigned[1].Record.ID)
		assert.Equal(t, records[2].ID, assigned[2].Record.ID)

		// 同一座標・同一解像度は同一セルID
		assert.Equal(t, assigned[0].CellID, assigned[2].CellID)
		assert.NotEqual(t, assigned[0].CellID, assigned[1].CellID)
	})

	t.Run("同一入力に対して決定的", func(t *testing.T) {
		provider := newFakeIndexProvider()
		assigner := NewCellAssigner(provider)

		records := makeRecords([2]float64{35.0, 135.7})
		first, err := assigner.Assign(records, 9)
		require.NoError(t, err)
		second, err := assigner.Assign(records, 9)
		require.NoError(t, err)

		assert.Equal(t, first[0].CellID, second[0].CellID)
	})

	t.Run("解像度が範囲外の場合はエラー", func(t *testing.T) {
		assigner := NewCellAssigner(newFakeIndexProvider())

		_, err := assigner.Assign(makeRecords([2]float64{0, 0}), 16)
		require.Error(t, err)

		var validationErr *model.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("インデックス機構の拒否は最初のエラーで全体を失敗させる", func(t *testing.T) {
		provider := newFakeIndexProvider()
		failLat := 10.0
		provider.failOnLat = &failLat
		assigner := NewCellAssigner(provider)

		records := makeRecords([2]float64{0, 0}, [2]float64{10, 10}, [2]float64{20, 20})
		_, err := assigner.Assign(records, 5)
		require.Error(t, err)

		var indexingErr *model.IndexingError
		assert.ErrorAs(t, err, &indexingErr)
		assert.Equal(t, 10.0, indexingErr.Lat)
	})

	t.Run("空入力は空の結果を返す", func(t *testing.T) {
		assigner := NewCellAssigner(newFakeIndexProvider())

		assigned, err := assigner.Assign(nil, 5)
		require.NoError(t, err)
		assert.Empty(t, assigned)
	})
}

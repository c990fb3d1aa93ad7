package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DensityMap-App/internal/domain/model"
)

func TestGeometryEmitter_Emit(t *testing.T) {
	t.Run("各セルに閉じた境界リングを結合する", func(t *testing.T) {
		provider := newFakeIndexProvider()
		emitter := NewGeometryEmitter(provider)

		aggregates := []model.CellAggregate{
			{CellID: "cell_a", Count: 3},
			{CellID: "cell_b", Count: 1},
		}

		cells, err := emitter.Emit(aggregates)
		require.NoError(t, err)
		require.Len(t, cells, 2)

		for _, cell := range cells {
			polygon := model.CellPolygon{CellID: cell.CellID, Boundary: cell.Boundary}
			assert.True(t, polygon.IsClosed(), "境界リングが閉じていること")
			assert.GreaterOrEqual(t, len(cell.Boundary), 4)
			require.NotNil(t, cell.Center)
		}

		assert.Equal(t, 3, cells[0].Count)
		assert.Equal(t, 1, cells[1].Count)
	})

	t.Run("同一セルの境界取得はメモ化される", func(t *testing.T) {
		provider := newFakeIndexProvider()
		emitter := NewGeometryEmitter(provider)

		aggregates := []model.CellAggregate{{CellID: "cell_a", Count: 1}}

		_, err := emitter.Emit(aggregates)
		require.NoError(t, err)
		_, err = emitter.Emit(aggregates)
		require.NoError(t, err)

		assert.Equal(t, int64(1), provider.boundaryForCalls.Load())
	})

	t.Run("不正なセルIDはIndexingErrorを返す", func(t *testing.T) {
		provider := newFakeIndexProvider()
		emitter := NewGeometryEmitter(provider)

		_, err := emitter.Emit([]model.CellAggregate{{CellID: "", Count: 1}})
		require.Error(t, err)

		var indexingErr *model.IndexingError
		assert.ErrorAs(t, err, &indexingErr)
	})

	t.Run("空の集計は空の結果を返す", func(t *testing.T) {
		emitter := NewGeometryEmitter(newFakeIndexProvider())

		cells, err := emitter.Emit(nil)
		require.NoError(t, err)
		assert.Empty(t, cells)
	})
}

func TestGeometryEmitter_ToFeatureCollection(t *testing.T) {
	provider := newFakeIndexProvider()
	emitter := NewGeometryEmitter(provider)

	cells, err := emitter.Emit([]model.CellAggregate{
		{CellID: "cell_a", Count: 5},
		{CellID: "cell_b", Count: 2},
	})
	require.NoError(t, err)

	fc := emitter.ToFeatureCollection(cells)
	require.Len(t, fc.Features, 2)

	assert.Equal(t, "cell_a", fc.Features[0].Properties["cell_id"])
	assert.Equal(t, 5, fc.Features[0].Properties["count"])

	// コロプレス描画ツールにそのまま渡せるJSONであること
	data, err := fc.MarshalJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])
}

func TestCloseRing(t *testing.T) {
	t.Run("開いたリングは先頭の頂点で閉じる", func(t *testing.T) {
		open := []model.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 0}}
		closed := CloseRing(open)
		require.Len(t, closed, 4)
		assert.Equal(t, closed[0], closed[len(closed)-1])
	})

	t.Run("閉じたリングはそのまま返す", func(t *testing.T) {
		ring := []model.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 0}, {Lat: 0, Lng: 0}}
		assert.Len(t, CloseRing(ring), 4)
	})

	t.Run("空のリングはそのまま返す", func(t *testing.T) {
		assert.Empty(t, CloseRing(nil))
	})
}

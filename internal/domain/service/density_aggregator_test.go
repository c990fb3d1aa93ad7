package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DensityMap-App/internal/domain/model"
)

// countReducer テスト用の件数カウントReducer
type countReducer struct{}

func (countReducer) Name() string { return model.ReductionCount }

func (countReducer) Reduce(points []AssignedPoint) int { return len(points) }

func TestDensityAggregator_Aggregate(t *testing.T) {
	aggregator := NewDensityAggregator(countReducer{})

	t.Run("同一セルの重複地点は通常どおり数える", func(t *testing.T) {
		provider := newFakeIndexProvider()
		assigner := NewCellAssigner(provider)

		// (0,0)が2件、(10,10)が1件 → 2セル、件数は2と1
		records := makeRecords([2]float64{0, 0}, [2]float64{0, 0}, [2]float64{10, 10})
		assigned, err := assigner.Assign(records, 5)
		require.NoError(t, err)

		aggregates := aggregator.Aggregate(assigned)
		require.Len(t, aggregates, 2)
		assert.Equal(t, 2, aggregates[0].Count)
		assert.Equal(t, 1, aggregates[1].Count)
	})

	t.Run("件数の合計は有効な入力レコード数と一致する", func(t *testing.T) {
		provider := newFakeIndexProvider()
		assigner := NewCellAssigner(provider)

		records := makeRecords(
			[2]float64{0, 0}, [2]float64{0.5, 0.5}, [2]float64{10, 10},
			[2]float64{10.2, 10.2}, [2]float64{-45, 90}, [2]float64{0, 0},
		)
		assigned, err := assigner.Assign(records, 5)
		require.NoError(t, err)

		aggregates := aggregator.Aggregate(assigned)

		total := 0
		for _, agg := range aggregates {
			total += agg.Count
		}
		assert.Equal(t, len(records), total)
	})

	t.Run("件数の降順・セルID昇順で返す", func(t *testing.T) {
		assigned := []AssignedPoint{
			{CellID: "cell_b"},
			{CellID: "cell_a"},
			{CellID: "cell_c"},
			{CellID: "cell_c"},
			{CellID: "cell_a"},
		}

		aggregates := aggregator.Aggregate(assigned)
		require.Len(t, aggregates, 3)

		assert.Equal(t, model.CellID("cell_a"), aggregates[0].CellID)
		assert.Equal(t, 2, aggregates[0].Count)
		assert.Equal(t, model.CellID("cell_c"), aggregates[1].CellID)
		assert.Equal(t, 2, aggregates[1].Count)
		assert.Equal(t, model.CellID("cell_b"), aggregates[2].CellID)
		assert.Equal(t, 1, aggregates[2].Count)
	})

	t.Run("空入力は空の集計を返す", func(t *testing.T) {
		aggregates := aggregator.Aggregate(nil)
		assert.Empty(t, aggregates)
	})
}

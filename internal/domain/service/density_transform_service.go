package service

import (
	"errors"
	"fmt"

	"DensityMap-App/internal/domain/model"
)

// ErrNotFitted Fitを呼ぶ前にTransformを呼んだ場合のエラー
var ErrNotFitted = errors.New("transformの前にfitを呼び出してください")

// DensityTransformService 密度集計パイプラインの本体
// Loader → セル割り当て → 集計 → 境界結合 を左から右に1パスで流す
// 段階間の共有状態はfit結果の受け渡しのみで、1回の実行内での並行呼び出しは想定しない
type DensityTransformService struct {
	assigner *ParallelCellAssigner
	emitter  *GeometryEmitter

	fitted     bool
	resolution int
	assigned   []AssignedPoint
}

// NewDensityTransformService 新しいDensityTransformServiceインスタンスを作成
func NewDensityTransformService(indexProvider CellIndexProvider) *DensityTransformService {
	return &DensityTransformService{
		assigner: NewParallelCellAssigner(indexProvider),
		emitter:  NewGeometryEmitter(indexProvider),
	}
}

// Fit 入力レコードに指定解像度のセル識別子を割り当てる
// 空入力は有効（Transformが空の結果を返すだけでエラーにはしない）
func (s *DensityTransformService) Fit(records []model.PointRecord, resolution int) error {
	assigned, err := s.assigner.Assign(records, resolution)
	if err != nil {
		return err
	}

	s.assigned = assigned
	s.resolution = resolution
	s.fitted = true
	return nil
}

// Transform fit済みのレコードをセル単位に集計し、境界ポリゴンを結合して返す
// 対応モードはaggのみ（extrapolateは予約のみで未対応）
func (s *DensityTransformService) Transform(mode string, reducer Reducer) ([]model.DensityCell, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	if mode != model.ModeAgg {
		return nil, &model.ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("modeは'%s'を指定してください: %s", model.ModeAgg, mode),
		}
	}

	aggregator := NewDensityAggregator(reducer)
	aggregates := aggregator.Aggregate(s.assigned)

	return s.emitter.Emit(aggregates)
}

// FeatureCollection 境界付きセル集計をGeoJSONに変換する
func (s *DensityTransformService) FeatureCollection(cells []model.DensityCell) ([]byte, error) {
	fc := s.emitter.ToFeatureCollection(cells)
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("GeoJSONのマーシャル失敗: %w", err)
	}
	return data, nil
}

// PointCount fit済みの有効レコード数を取得する
func (s *DensityTransformService) PointCount() int {
	return len(s.assigned)
}

// Resolution fit済みの解像度を取得する
func (s *DensityTransformService) Resolution() int {
	return s.resolution
}

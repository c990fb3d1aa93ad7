package service

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"DensityMap-App/internal/domain/model"
)

// GeometryEmitter セル集計結果に境界ポリゴンを結合するサービス
// 同一セルIDの境界は1回の実行内でメモ化する
// （集計後はセルIDが重複しないため実質的には将来の増分更新向けの備え）
type GeometryEmitter struct {
	indexProvider CellIndexProvider
	boundaryCache map[model.CellID][]model.LatLng
}

// NewGeometryEmitter 新しいGeometryEmitterインスタンスを作成
func NewGeometryEmitter(indexProvider CellIndexProvider) *GeometryEmitter {
	return &GeometryEmitter{
		indexProvider: indexProvider,
		boundaryCache: make(map[model.CellID][]model.LatLng),
	}
}

// Emit 各セル集計に境界ポリゴンとセル中心を結合して返す
func (e *GeometryEmitter) Emit(aggregates []model.CellAggregate) ([]model.DensityCell, error) {
	cells := make([]model.DensityCell, 0, len(aggregates))
	for _, agg := range aggregates {
		boundary, err := e.boundaryFor(agg.CellID)
		if err != nil {
			return nil, fmt.Errorf("セル %s の境界取得失敗: %w", agg.CellID, err)
		}

		center := RingCentroid(boundary)
		cells = append(cells, model.DensityCell{
			CellID:   agg.CellID,
			Count:    agg.Count,
			Boundary: boundary,
			Center:   &center,
		})
	}
	return cells, nil
}

// boundaryFor メモ化付きで境界ポリゴンを取得する
func (e *GeometryEmitter) boundaryFor(cellID model.CellID) ([]model.LatLng, error) {
	if cached, ok := e.boundaryCache[cellID]; ok {
		return cached, nil
	}

	boundary, err := e.indexProvider.BoundaryFor(cellID)
	if err != nil {
		return nil, err
	}

	boundary = CloseRing(boundary)
	e.boundaryCache[cellID] = boundary
	return boundary, nil
}

// CloseRing リングが閉じていなければ先頭の頂点を末尾に追加して閉じる
func CloseRing(boundary []model.LatLng) []model.LatLng {
	if len(boundary) == 0 {
		return boundary
	}
	first := boundary[0]
	last := boundary[len(boundary)-1]
	if first.Lat == last.Lat && first.Lng == last.Lng {
		return boundary
	}
	return append(boundary, first)
}

// RingCentroid 閉じたリングの重心を計算する
// 集計結果の座標はセル中心に置き換えて個々の位置を出さない
func RingCentroid(boundary []model.LatLng) model.LatLng {
	ring := toOrbRing(boundary)
	centroid, _ := planar.CentroidArea(orb.Polygon{ring})
	return model.LatLng{
		Lat: centroid.Lat(),
		Lng: centroid.Lon(),
	}
}

// ToFeatureCollection 境界付きセル集計をGeoJSON FeatureCollectionに変換する
// コロプレス描画ツールへの受け渡し用（描画自体はこのリポジトリの範囲外）
func (e *GeometryEmitter) ToFeatureCollection(cells []model.DensityCell) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, cell := range cells {
		feature := geojson.NewFeature(orb.Polygon{toOrbRing(cell.Boundary)})
		feature.ID = cell.CellID.String()
		feature.Properties["cell_id"] = cell.CellID.String()
		feature.Properties["count"] = cell.Count
		if cell.Center != nil {
			feature.Properties["center_lat"] = cell.Center.Lat
			feature.Properties["center_lng"] = cell.Center.Lng
		}
		fc.Append(feature)
	}
	return fc
}

// toOrbRing LatLng列をorb.Ringに変換する（orbは [lng, lat] 順）
func toOrbRing(boundary []model.LatLng) orb.Ring {
	ring := make(orb.Ring, 0, len(boundary))
	for _, vertex := range boundary {
		ring = append(ring, orb.Point{vertex.Lng, vertex.Lat})
	}
	return ring
}

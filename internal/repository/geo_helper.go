package repository

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"

	"DensityMap-App/internal/domain/model"
)

// GeoPolygon GeoJSON Polygon の JSON 表現（DB保存用）
type GeoPolygon struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// BoundaryToGeoPolygon 境界リングを GeoJSON Polygon 形式に変換
func BoundaryToGeoPolygon(boundary []model.LatLng) *GeoPolygon {
	if len(boundary) == 0 {
		return nil
	}

	// orb.Ring を作成（orbは [lng, lat] 順）
	ring := make(orb.Ring, 0, len(boundary))
	for _, vertex := range boundary {
		ring = append(ring, orb.Point{vertex.Lng, vertex.Lat})
	}

	coordinates := make([][]float64, 0, len(ring))
	for _, point := range ring {
		coordinates = append(coordinates, []float64{point.Lon(), point.Lat()})
	}

	return &GeoPolygon{
		Type:        "Polygon",
		Coordinates: [][][]float64{coordinates},
	}
}

// GeoPolygonToBoundary GeoJSON Polygon から境界リングに変換
func GeoPolygonToBoundary(polygon *GeoPolygon) []model.LatLng {
	if polygon == nil || len(polygon.Coordinates) == 0 {
		return nil
	}

	outer := polygon.Coordinates[0]
	boundary := make([]model.LatLng, 0, len(outer))
	for _, pair := range outer {
		if len(pair) < 2 {
			continue
		}
		point := orb.Point{pair[0], pair[1]}
		boundary = append(boundary, model.LatLng{
			Lat: point.Lat(),
			Lng: point.Lon(),
		})
	}
	return boundary
}

// BoundaryToJSON 境界リングをDB保存用のGeoJSON文字列に変換
func BoundaryToJSON(boundary []model.LatLng) (string, error) {
	polygon := BoundaryToGeoPolygon(boundary)
	data, err := json.Marshal(polygon)
	if err != nil {
		return "", fmt.Errorf("境界のJSONマーシャル失敗: %w", err)
	}
	return string(data), nil
}

// JSONToBoundary GeoJSON文字列から境界リングに変換
func JSONToBoundary(data string) ([]model.LatLng, error) {
	var polygon GeoPolygon
	if err := json.Unmarshal([]byte(data), &polygon); err != nil {
		return nil, fmt.Errorf("境界のJSONアンマーシャル失敗: %w", err)
	}
	return GeoPolygonToBoundary(&polygon), nil
}

// BoundingBoxFromCorners 2点から境界ボックスを作成する
// orb.Bound を使用して正しい最小・最大に正規化する
func BoundingBoxFromCorners(minLng, minLat, maxLng, maxLat float64) orb.Bound {
	bound := orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}
	bound = bound.Extend(orb.Point{minLng, minLat}).Extend(orb.Point{maxLng, maxLat})
	return bound
}

package model

import (
	"fmt"
	"math"
	"time"
)

// LatLng 緯度経度を表す基本的な型（セル割り当てなどで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location 入力座標を表すモデル
type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// ToLatLng Location を LatLng 型に変換
func (l *Location) ToLatLng() LatLng {
	return LatLng{
		Lat: l.Latitude,
		Lng: l.Longitude,
	}
}

// Validate 緯度経度の範囲チェックを行う
func (l *Location) Validate() error {
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return &ValidationError{Field: "location", Message: "緯度経度にNaNは指定できません"}
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return &ValidationError{
			Field:   "latitude",
			Message: fmt.Sprintf("緯度は-90から90の範囲で指定してください: %f", l.Latitude),
		}
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return &ValidationError{
			Field:   "longitude",
			Message: fmt.Sprintf("経度は-180から180の範囲で指定してください: %f", l.Longitude),
		}
	}
	return nil
}

// PointRecord 位置記録1件を表すモデル
// ロード時に一度だけ作成され、以降は変更されない
type PointRecord struct {
	ID         string     `json:"id"`                    // レコードID（GBFSならbike_id）
	Location   Location   `json:"location"`              // 位置情報
	RecordedAt *time.Time `json:"recorded_at,omitempty"` // 記録時刻（入力にあれば）
}

// ToGeometry PointRecord の位置を GeoJSON Point 形式に変換
func (p *PointRecord) ToGeometry() *Geometry {
	return &Geometry{
		Type:        "Point",
		Coordinates: []float64{p.Location.Longitude, p.Location.Latitude},
	}
}

// Geometry GeoJSON ジオメトリに対応する構造体
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
}

package service

import (
	"DensityMap-App/internal/domain/model"
)

// CellIndexProvider 六角形グリッドインデックス機構への窓口
// 実装はH3などの外部ライブラリに委ねる（グリッド数学自体はこのリポジトリの範囲外）
type CellIndexProvider interface {
	// CellFor 座標と解像度からセル識別子を計算する
	// 同一の入力に対しては常に同一のIDを返すこと
	CellFor(lat, lng float64, resolution int) (model.CellID, error)

	// BoundaryFor セル識別子から境界ポリゴンを取得する
	// 返されるリングは閉じていること（先頭 == 末尾）
	BoundaryFor(cellID model.CellID) ([]model.LatLng, error)
}

package h3

import (
	"math"

	h3lib "github.com/uber/h3-go/v4"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/service"
)

// H3IndexProvider はUberのH3ライブラリを使用したCellIndexProviderの実装
// グリッドの数学（セル境界・階層・近傍計算）はすべてライブラリ側に委ねる
type H3IndexProvider struct{}

// NewH3IndexProvider 新しいプロバイダを生成する
func NewH3IndexProvider() service.CellIndexProvider {
	return &H3IndexProvider{}
}

// CellFor 座標と解像度からH3セル識別子を計算する
func (p *H3IndexProvider) CellFor(lat, lng float64, resolution int) (model.CellID, error) {
	if err := model.ValidateResolution(resolution); err != nil {
		return "", err
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return "", &model.IndexingError{
			Lat:     lat,
			Lng:     lng,
			Message: "座標が数値として不正です",
		}
	}

	cell := h3lib.LatLngToCell(h3lib.NewLatLng(lat, lng), resolution)
	if !cell.IsValid() {
		return "", &model.IndexingError{
			Lat:     lat,
			Lng:     lng,
			Message: "H3ライブラリが座標を拒否しました",
		}
	}

	return model.CellID(cell.String()), nil
}

// BoundaryFor H3セル識別子から境界ポリゴンを取得する
// 返すリングは閉じている（先頭 == 末尾）
func (p *H3IndexProvider) BoundaryFor(cellID model.CellID) ([]model.LatLng, error) {
	cell := h3lib.Cell(h3lib.IndexFromString(cellID.String()))
	if !cell.IsValid() {
		return nil, &model.IndexingError{
			CellID:  cellID.String(),
			Message: "H3セル識別子として解釈できません",
		}
	}

	cellBoundary := cell.Boundary()
	if len(cellBoundary) == 0 {
		return nil, &model.IndexingError{
			CellID:  cellID.String(),
			Message: "境界の取得に失敗しました",
		}
	}

	boundary := make([]model.LatLng, 0, len(cellBoundary)+1)
	for _, vertex := range cellBoundary {
		boundary = append(boundary, model.LatLng{
			Lat: vertex.Lat,
			Lng: vertex.Lng,
		})
	}
	// H3は開いたリングを返すため、先頭の頂点を末尾に追加して閉じる
	boundary = append(boundary, boundary[0])

	return boundary, nil
}

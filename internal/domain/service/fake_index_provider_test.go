package service

import (
	"fmt"
	"math"
	"sync/atomic"

	"DensityMap-App/internal/domain/model"
)

// fakeIndexProvider テスト用の決定的なCellIndexProvider実装
// 緯度経度を解像度に応じた格子に切り捨ててセルIDを合成する
// 並行セル割り当てからも呼ばれるため、呼び出し回数はatomicで数える
type fakeIndexProvider struct {
	cellForCalls     atomic.Int64
	boundaryForCalls atomic.Int64
	failOnLat        *float64 // 指定された緯度でIndexingErrorを返す
}

func newFakeIndexProvider() *fakeIndexProvider {
	return &fakeIndexProvider{}
}

func (f *fakeIndexProvider) CellFor(lat, lng float64, resolution int) (model.CellID, error) {
	f.cellForCalls.Add(1)

	if math.IsNaN(lat) || math.IsNaN(lng) {
		return "", &model.IndexingError{Lat: lat, Lng: lng, Message: "座標が数値として不正です"}
	}
	if f.failOnLat != nil && lat == *f.failOnLat {
		return "", &model.IndexingError{Lat: lat, Lng: lng, Message: "テスト用の失敗"}
	}

	return model.CellID(fmt.Sprintf("cell_r%d_%d_%d", resolution, int(math.Floor(lat)), int(math.Floor(lng)))), nil
}

func (f *fakeIndexProvider) BoundaryFor(cellID model.CellID) ([]model.LatLng, error) {
	f.boundaryForCalls.Add(1)

	if cellID == "" {
		return nil, &model.IndexingError{CellID: cellID.String(), Message: "セル識別子が空です"}
	}

	// 開いた正方形リングを返す（閉じる処理はEmitter側の責務）
	return []model.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 1, Lng: 1},
		{Lat: 1, Lng: 0},
	}, nil
}

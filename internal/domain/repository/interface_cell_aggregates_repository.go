package repository

import (
	"context"

	"DensityMap-App/internal/domain/model"
)

// CellAggregatesRepository セル集計結果の永続化リポジトリ
type CellAggregatesRepository interface {
	// SaveSnapshot スナップショット1回分のセル集計を保存する
	SaveSnapshot(ctx context.Context, snapshotID string, resolution int, cells []model.DensityCell) error

	// GetBySnapshotID スナップショットIDでセル集計一覧を取得する
	GetBySnapshotID(ctx context.Context, snapshotID string) ([]model.DensityCell, error)

	// GetByBoundingBox 境界ボックス内（セル中心基準）のセル集計一覧を取得する
	GetByBoundingBox(ctx context.Context, snapshotID string, minLng, minLat, maxLng, maxLat float64) ([]model.DensityCell, error)

	// DeleteBySnapshotID スナップショットIDでセル集計を削除する
	DeleteBySnapshotID(ctx context.Context, snapshotID string) error
}

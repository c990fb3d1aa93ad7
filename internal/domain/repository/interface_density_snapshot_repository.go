package repository

import (
	"context"

	"DensityMap-App/internal/domain/model"
)

// DensitySnapshotRepository 密度スナップショットのキャッシュリポジトリ
type DensitySnapshotRepository interface {
	// SaveSnapshot スナップショットを保存し、生成したsnapshot_idを返す
	SaveSnapshot(ctx context.Context, snapshot *model.DensitySnapshot, ttlHours int) (string, error)

	// GetSnapshot 指定されたsnapshot_idのスナップショットを取得する
	// 有効期限切れは見つからない扱いとする
	GetSnapshot(ctx context.Context, snapshotID string) (*model.DensitySnapshot, error)

	// DeleteSnapshot 指定されたsnapshot_idのスナップショットを削除する
	DeleteSnapshot(ctx context.Context, snapshotID string) error
}

package application

import (
	"context"
	"fmt"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/repository"
)

// DensitiesService 永続化されたセル集計に関するビジネスロジックを提供するサービス
type DensitiesService interface {
	// PersistSnapshot Firestore上のスナップショットをPostgreSQL側に永続化する
	PersistSnapshot(ctx context.Context, snapshotID string) (int, error)

	// GetCellsByBoundingBox 境界ボックス内のセル集計一覧を取得
	GetCellsByBoundingBox(ctx context.Context, snapshotID string, minLng, minLat, maxLng, maxLat float64) ([]model.DensityCell, error)

	// DeleteSnapshot 永続化済みのセル集計を削除
	DeleteSnapshot(ctx context.Context, snapshotID string) error
}

// densitiesServiceImpl DensitiesServiceの実装
type densitiesServiceImpl struct {
	snapshotRepo   repository.DensitySnapshotRepository
	aggregatesRepo repository.CellAggregatesRepository
}

// NewDensitiesService DensitiesServiceの新しいインスタンスを作成
func NewDensitiesService(
	snapshotRepo repository.DensitySnapshotRepository,
	aggregatesRepo repository.CellAggregatesRepository,
) DensitiesService {
	return &densitiesServiceImpl{
		snapshotRepo:   snapshotRepo,
		aggregatesRepo: aggregatesRepo,
	}
}

// PersistSnapshot Firestore上のスナップショットをPostgreSQL側に永続化する
// 保存したセル数を返す
func (s *densitiesServiceImpl) PersistSnapshot(ctx context.Context, snapshotID string) (int, error) {
	if snapshotID == "" {
		return 0, &model.ValidationError{Field: "snapshot_id", Message: "snapshot_idは必須です"}
	}

	snapshot, err := s.snapshotRepo.GetSnapshot(ctx, snapshotID)
	if err != nil {
		return 0, fmt.Errorf("スナップショットの取得失敗: %w", err)
	}

	if err := s.aggregatesRepo.SaveSnapshot(ctx, snapshot.SnapshotID, snapshot.Resolution, snapshot.Cells); err != nil {
		return 0, fmt.Errorf("セル集計の永続化失敗: %w", err)
	}

	return len(snapshot.Cells), nil
}

// GetCellsByBoundingBox 境界ボックス内のセル集計一覧を取得
func (s *densitiesServiceImpl) GetCellsByBoundingBox(ctx context.Context, snapshotID string, minLng, minLat, maxLng, maxLat float64) ([]model.DensityCell, error) {
	if err := s.validateBoundingBox(minLng, minLat, maxLng, maxLat); err != nil {
		return nil, fmt.Errorf("境界ボックスの検証失敗: %w", err)
	}

	cells, err := s.aggregatesRepo.GetByBoundingBox(ctx, snapshotID, minLng, minLat, maxLng, maxLat)
	if err != nil {
		return nil, fmt.Errorf("セル集計の取得失敗: %w", err)
	}

	return cells, nil
}

// DeleteSnapshot 永続化済みのセル集計を削除
func (s *densitiesServiceImpl) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	if snapshotID == "" {
		return &model.ValidationError{Field: "snapshot_id", Message: "snapshot_idは必須です"}
	}

	if err := s.aggregatesRepo.DeleteBySnapshotID(ctx, snapshotID); err != nil {
		return fmt.Errorf("セル集計の削除失敗: %w", err)
	}

	return nil
}

// validateBoundingBox 境界ボックスの妥当性をチェックする
func (s *densitiesServiceImpl) validateBoundingBox(minLng, minLat, maxLng, maxLat float64) error {
	corners := []model.Location{
		{Latitude: minLat, Longitude: minLng},
		{Latitude: maxLat, Longitude: maxLng},
	}
	for _, corner := range corners {
		if err := corner.Validate(); err != nil {
			return err
		}
	}

	if minLat > maxLat {
		return &model.ValidationError{Field: "bbox", Message: "min_latはmax_lat以下で指定してください"}
	}
	if minLng > maxLng {
		return &model.ValidationError{Field: "bbox", Message: "min_lngはmax_lng以下で指定してください"}
	}

	return nil
}

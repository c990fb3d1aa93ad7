package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/repository"
	"DensityMap-App/internal/domain/service"
	"DensityMap-App/internal/domain/strategy"
	"DensityMap-App/internal/infrastructure/feeds"
	"DensityMap-App/internal/infrastructure/loader"
)

// defaultTTLHours スナップショットのデフォルト有効期限
const defaultTTLHours = 24

type DensityUseCase interface {
	// ComputeDensity は入力ソースから密度集計を実行し、Firestoreに保存してレスポンスを返す
	ComputeDensity(ctx context.Context, req *model.DensityComputeRequest) (*model.DensityComputeResponse, error)

	// GetDensitySnapshot は指定されたsnapshot_idのスナップショットをFirestoreから取得する
	GetDensitySnapshot(ctx context.Context, snapshotID string) (*model.DensitySnapshot, error)

	// GetDensityGeoJSON はスナップショットをGeoJSON FeatureCollectionとして取得する
	GetDensityGeoJSON(ctx context.Context, snapshotID string) ([]byte, error)
}

// densityUseCaseImpl はDensityUseCaseの実装
type densityUseCaseImpl struct {
	indexProvider service.CellIndexProvider
	snapshotRepo  repository.DensitySnapshotRepository
}

// NewDensityUseCase 新しいDensityUseCaseインスタンスを作成
func NewDensityUseCase(
	indexProvider service.CellIndexProvider,
	snapshotRepo repository.DensitySnapshotRepository,
) DensityUseCase {
	return &densityUseCaseImpl{
		indexProvider: indexProvider,
		snapshotRepo:  snapshotRepo,
	}
}

// ComputeDensity は入力ソースから密度集計を実行し、Firestoreに保存してレスポンスを返す
func (u *densityUseCaseImpl) ComputeDensity(ctx context.Context, req *model.DensityComputeRequest) (*model.DensityComputeResponse, error) {
	log.Printf("🚀 密度集計開始 (解像度: %d, ソース: %s)", req.Resolution, req.Source)

	// Step 1: 入力ソースからレコードをロード
	pointsLoader, err := u.loaderFor(req)
	if err != nil {
		return nil, err
	}

	records, err := pointsLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("レコードのロードに失敗: %w", err)
	}
	log.Printf("✅ %d件のレコードをロード", len(records))

	// Step 2: 集計方法を解決
	reducer, err := strategy.ForName(req.Reduction)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = model.ModeAgg
	}

	// Step 3: パイプライン実行（セル割り当て → 集計 → 境界結合）
	transform := service.NewDensityTransformService(u.indexProvider)
	if err := transform.Fit(records, req.Resolution); err != nil {
		return nil, fmt.Errorf("セル割り当てに失敗: %w", err)
	}

	cells, err := transform.Transform(mode, reducer)
	if err != nil {
		return nil, fmt.Errorf("密度集計に失敗: %w", err)
	}
	log.Printf("✅ %dセルに集計", len(cells))

	snapshot := &model.DensitySnapshot{
		Resolution:  transform.Resolution(),
		Reduction:   reducer.Name(),
		TotalPoints: transform.PointCount(),
		Cells:       cells,
		GeneratedAt: time.Now(),
	}

	// Step 4: Firestoreに保存してIDを取得
	ttlHours := req.TTLHours
	if ttlHours <= 0 {
		ttlHours = defaultTTLHours
	}

	snapshotID, err := u.snapshotRepo.SaveSnapshot(ctx, snapshot, ttlHours)
	if err != nil {
		return nil, fmt.Errorf("スナップショットの保存に失敗: %w", err)
	}
	snapshot.SnapshotID = snapshotID

	return &model.DensityComputeResponse{
		SnapshotID: snapshotID,
		Snapshot:   snapshot,
	}, nil
}

// GetDensitySnapshot は指定されたsnapshot_idのスナップショットをFirestoreから取得する
func (u *densityUseCaseImpl) GetDensitySnapshot(ctx context.Context, snapshotID string) (*model.DensitySnapshot, error) {
	return u.snapshotRepo.GetSnapshot(ctx, snapshotID)
}

// GetDensityGeoJSON はスナップショットをGeoJSON FeatureCollectionとして取得する
func (u *densityUseCaseImpl) GetDensityGeoJSON(ctx context.Context, snapshotID string) ([]byte, error) {
	snapshot, err := u.snapshotRepo.GetSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	transform := service.NewDensityTransformService(u.indexProvider)
	data, err := transform.FeatureCollection(snapshot.Cells)
	if err != nil {
		return nil, fmt.Errorf("GeoJSONへの変換に失敗: %w", err)
	}
	return data, nil
}

// loaderFor リクエストの入力ソースに対応するPointsLoaderを選択する
func (u *densityUseCaseImpl) loaderFor(req *model.DensityComputeRequest) (repository.PointsLoader, error) {
	source := req.Source
	if source == "" {
		source = model.SourceInline
	}

	switch source {
	case model.SourceInline:
		return loader.NewMemoryLoader(req.Points), nil
	case model.SourceGBFS:
		return feeds.NewGBFSProvider(req.FeedURLs), nil
	default:
		return nil, &model.ValidationError{
			Field:   "source",
			Message: "sourceは'inline'または'gbfs'を指定してください: " + source,
		}
	}
}

package test

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/infrastructure/firestore"
	h3provider "DensityMap-App/internal/infrastructure/h3"
	"DensityMap-App/internal/repository"
	"DensityMap-App/internal/usecase"
)

// TestDensityComputeFullIntegration 密度集計の全工程（ロード → セル割り当て → 集計 → 保存 → 取得）を検証する
func TestDensityComputeFullIntegration(t *testing.T) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		t.Skip("GOOGLE_CLOUD_PROJECTが設定されていないためスキップします")
	}

	ctx := context.Background()
	client, err := firestore.NewFirestoreClient(ctx, projectID)
	if err != nil {
		t.Fatalf("Firestoreクライアントの初期化に失敗: %v", err)
	}
	defer client.Close()

	snapshotRepo := repository.NewFirestoreDensitySnapshotRepository(client.GetClient())
	densityUseCase := usecase.NewDensityUseCase(h3provider.NewH3IndexProvider(), snapshotRepo)

	// ロサンゼルス周辺の座標で密度集計を実行
	req := &model.DensityComputeRequest{
		Resolution: 7,
		Source:     model.SourceInline,
		Points: []model.InlinePoint{
			{ID: "bike-1", Latitude: 34.0500, Longitude: -118.2500},
			{ID: "bike-2", Latitude: 34.0501, Longitude: -118.2501},
			{ID: "bike-3", Latitude: 34.1000, Longitude: -118.3000},
		},
		TTLHours: 1,
	}

	response, err := densityUseCase.ComputeDensity(ctx, req)
	if err != nil {
		t.Fatalf("密度集計の実行に失敗: %v", err)
	}
	log.Printf("✅ 密度集計成功: %s (%dセル)", response.SnapshotID, len(response.Snapshot.Cells))

	if response.Snapshot.TotalPoints != 3 {
		t.Errorf("総件数が一致しません: expected 3, got %d", response.Snapshot.TotalPoints)
	}

	// 件数保存則: セルごとの件数の合計は入力件数と一致する
	total := 0
	for _, cell := range response.Snapshot.Cells {
		total += cell.Count
	}
	if total != 3 {
		t.Errorf("セル件数の合計が入力件数と一致しません: expected 3, got %d", total)
	}

	// スナップショットの取得テスト
	snapshot, err := densityUseCase.GetDensitySnapshot(ctx, response.SnapshotID)
	if err != nil {
		t.Fatalf("スナップショットの取得に失敗: %v", err)
	}
	if len(snapshot.Cells) != len(response.Snapshot.Cells) {
		t.Errorf("セル数が一致しません: expected %d, got %d", len(response.Snapshot.Cells), len(snapshot.Cells))
	}

	// GeoJSONの取得テスト
	geojsonData, err := densityUseCase.GetDensityGeoJSON(ctx, response.SnapshotID)
	if err != nil {
		t.Fatalf("GeoJSONの取得に失敗: %v", err)
	}
	if !strings.Contains(string(geojsonData), "FeatureCollection") {
		t.Errorf("GeoJSONがFeatureCollectionではありません")
	}
	log.Printf("✅ GeoJSON取得成功 (%d bytes)", len(geojsonData))

	// 後片付け
	if err := snapshotRepo.DeleteSnapshot(ctx, response.SnapshotID); err != nil {
		t.Errorf("スナップショットの削除に失敗: %v", err)
	}
	log.Println("🗑️ テストデータ削除完了")

	log.Println("✅ 密度集計フル統合テスト完了")
}

package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/repository"
)

// snapshotCollection Firestore上のスナップショットコレクション名
const snapshotCollection = "densitySnapshots"

// FirestoreDensitySnapshotRepository Firestoreを使用した密度スナップショットのキャッシュリポジトリ
type FirestoreDensitySnapshotRepository struct {
	client *firestore.Client
}

// NewFirestoreDensitySnapshotRepository 新しいFirestoreDensitySnapshotRepositoryインスタンスを作成
func NewFirestoreDensitySnapshotRepository(client *firestore.Client) repository.DensitySnapshotRepository {
	return &FirestoreDensitySnapshotRepository{
		client: client,
	}
}

// SaveSnapshot スナップショットをFirestoreに保存し、snapshot_idを生成して返す
func (r *FirestoreDensitySnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *model.DensitySnapshot, ttlHours int) (string, error) {
	snapshotID := fmt.Sprintf("density_snap_%s", uuid.New().String())

	firestoreData := snapshot.ToFirestoreDensitySnapshot(ttlHours)

	_, err := r.client.Collection(snapshotCollection).Doc(snapshotID).Set(ctx, firestoreData)
	if err != nil {
		log.Printf("❌ Failed to save density snapshot %s: %v", snapshotID, err)
		return "", fmt.Errorf("密度スナップショットの保存に失敗しました: %w", err)
	}

	log.Printf("✅ Density snapshot saved: %s (%dセル, expires in %d hours)", snapshotID, len(snapshot.Cells), ttlHours)
	return snapshotID, nil
}

// GetSnapshot 指定されたsnapshot_idのスナップショットをFirestoreから取得する
// 有効期限切れは見つからない扱いとする
func (r *FirestoreDensitySnapshotRepository) GetSnapshot(ctx context.Context, snapshotID string) (*model.DensitySnapshot, error) {
	doc, err := r.client.Collection(snapshotCollection).Doc(snapshotID).Get(ctx)
	if err != nil {
		// Firestoreのエラータイプをチェック
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, fmt.Errorf("密度スナップショットが見つかりません（有効期限切れまたは無効なID）: %s", snapshotID)
		}
		return nil, fmt.Errorf("密度スナップショットの取得に失敗しました: %w", err)
	}

	var firestoreData model.FirestoreDensitySnapshot
	if err := doc.DataTo(&firestoreData); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	if firestoreData.IsExpired(time.Now()) {
		return nil, fmt.Errorf("密度スナップショットが見つかりません（有効期限切れまたは無効なID）: %s", snapshotID)
	}

	log.Printf("✅ Density snapshot retrieved: %s", snapshotID)
	return firestoreData.ToDensitySnapshot(snapshotID), nil
}

// DeleteSnapshot 指定されたsnapshot_idのスナップショットを削除する
func (r *FirestoreDensitySnapshotRepository) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	_, err := r.client.Collection(snapshotCollection).Doc(snapshotID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("密度スナップショットの削除に失敗しました: %w", err)
	}

	log.Printf("🗑️ Density snapshot deleted: %s", snapshotID)
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/repository"
	"DensityMap-App/internal/infrastructure/database"
)

type PostgresCellAggregatesRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresCellAggregatesRepository(client *database.PostgreSQLClient) repository.CellAggregatesRepository {
	return &PostgresCellAggregatesRepository{
		client: client,
	}
}

// CellAggregateResult クエリ結果を受け取るための構造体
type CellAggregateResult struct {
	CellID    string
	Count     int
	CenterLat sql.NullFloat64
	CenterLng sql.NullFloat64
	Boundary  string
}

// ToDensityCell CellAggregateResultをmodel.DensityCellに変換
func (cr *CellAggregateResult) ToDensityCell() (*model.DensityCell, error) {
	boundary, err := JSONToBoundary(cr.Boundary)
	if err != nil {
		return nil, fmt.Errorf("boundary GeoJSONパースエラー: %w", err)
	}

	cell := &model.DensityCell{
		CellID:   model.CellID(cr.CellID),
		Count:    cr.Count,
		Boundary: boundary,
	}

	if cr.CenterLat.Valid && cr.CenterLng.Valid {
		cell.Center = &model.LatLng{
			Lat: cr.CenterLat.Float64,
			Lng: cr.CenterLng.Float64,
		}
	}

	return cell, nil
}

// SaveSnapshot スナップショット1回分のセル集計を保存する
// 同一 (snapshot_id, cell_id) はUPSERTで上書きする
func (r *PostgresCellAggregatesRepository) SaveSnapshot(ctx context.Context, snapshotID string, resolution int, cells []model.DensityCell) error {
	query := `
		INSERT INTO cell_aggregates (snapshot_id, cell_id, resolution, count, center_lat, center_lng, boundary)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
		ON CONFLICT (snapshot_id, cell_id)
		DO UPDATE SET count = EXCLUDED.count, boundary = EXCLUDED.boundary
	`

	for _, cell := range cells {
		boundaryJSON, err := BoundaryToJSON(cell.Boundary)
		if err != nil {
			return err
		}

		var centerLat, centerLng sql.NullFloat64
		if cell.Center != nil {
			centerLat = sql.NullFloat64{Float64: cell.Center.Lat, Valid: true}
			centerLng = sql.NullFloat64{Float64: cell.Center.Lng, Valid: true}
		}

		_, err = r.client.DB.ExecContext(ctx, query,
			snapshotID, cell.CellID.String(), resolution, cell.Count, centerLat, centerLng, boundaryJSON)
		if err != nil {
			return fmt.Errorf("セル集計 %s の保存失敗: %w", cell.CellID, err)
		}
	}

	return nil
}

// GetBySnapshotID スナップショットIDでセル集計一覧を取得する
func (r *PostgresCellAggregatesRepository) GetBySnapshotID(ctx context.Context, snapshotID string) ([]model.DensityCell, error) {
	query := `
		SELECT cell_id, count, center_lat, center_lng, boundary
		FROM cell_aggregates
		WHERE snapshot_id = $1
		ORDER BY count DESC, cell_id ASC
	`

	rows, err := r.client.DB.QueryContext(ctx, query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("スナップショット %s のセル集計取得失敗: %w", snapshotID, err)
	}
	defer rows.Close()

	return r.scanCells(rows)
}

// GetByBoundingBox 境界ボックス内（セル中心基準）のセル集計一覧を取得する
func (r *PostgresCellAggregatesRepository) GetByBoundingBox(ctx context.Context, snapshotID string, minLng, minLat, maxLng, maxLat float64) ([]model.DensityCell, error) {
	bound := BoundingBoxFromCorners(minLng, minLat, maxLng, maxLat)

	query := `
		SELECT cell_id, count, center_lat, center_lng, boundary
		FROM cell_aggregates
		WHERE snapshot_id = $1
		  AND center_lng BETWEEN $2 AND $3
		  AND center_lat BETWEEN $4 AND $5
		ORDER BY count DESC, cell_id ASC
	`

	rows, err := r.client.DB.QueryContext(ctx, query, snapshotID,
		bound.Min.Lon(), bound.Max.Lon(), bound.Min.Lat(), bound.Max.Lat())
	if err != nil {
		return nil, fmt.Errorf("境界ボックス内セル集計の取得失敗: %w", err)
	}
	defer rows.Close()

	return r.scanCells(rows)
}

// DeleteBySnapshotID スナップショットIDでセル集計を削除する
func (r *PostgresCellAggregatesRepository) DeleteBySnapshotID(ctx context.Context, snapshotID string) error {
	query := `DELETE FROM cell_aggregates WHERE snapshot_id = $1`

	if _, err := r.client.DB.ExecContext(ctx, query, snapshotID); err != nil {
		return fmt.Errorf("スナップショット %s のセル集計削除失敗: %w", snapshotID, err)
	}
	return nil
}

// scanCells クエリ結果をDensityCell列に変換する
func (r *PostgresCellAggregatesRepository) scanCells(rows *sql.Rows) ([]model.DensityCell, error) {
	var cells []model.DensityCell
	for rows.Next() {
		var result CellAggregateResult
		err := rows.Scan(&result.CellID, &result.Count, &result.CenterLat, &result.CenterLng, &result.Boundary)
		if err != nil {
			return nil, fmt.Errorf("セル集計データスキャンエラー: %w", err)
		}

		cell, err := result.ToDensityCell()
		if err != nil {
			return nil, err
		}
		cells = append(cells, *cell)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return cells, nil
}

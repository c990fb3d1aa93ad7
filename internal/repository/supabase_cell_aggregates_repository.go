package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"DensityMap-App/internal/database"
	"DensityMap-App/internal/domain/helper"
	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/repository"
	rowmodel "DensityMap-App/model"
)

// SupabaseCellAggregatesRepository Supabase REST API経由のセル集計リポジトリ
// PostgreSQL直接接続が使えない環境向けの代替実装
type SupabaseCellAggregatesRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseCellAggregatesRepository(client *database.SupabaseClient) repository.CellAggregatesRepository {
	return &SupabaseCellAggregatesRepository{
		client: client,
	}
}

// SaveSnapshot スナップショット1回分のセル集計を保存する
func (r *SupabaseCellAggregatesRepository) SaveSnapshot(ctx context.Context, snapshotID string, resolution int, cells []model.DensityCell) error {
	rows := make([]rowmodel.CellAggregateRow, 0, len(cells))
	for _, cell := range cells {
		boundaryJSON, err := BoundaryToJSON(cell.Boundary)
		if err != nil {
			return err
		}

		row := rowmodel.CellAggregateRow{
			SnapshotID: snapshotID,
			CellID:     cell.CellID.String(),
			Resolution: resolution,
			Count:      cell.Count,
			Boundary:   boundaryJSON,
		}
		if cell.Center != nil {
			lat := cell.Center.Lat
			lng := cell.Center.Lng
			row.CenterLat = &lat
			row.CenterLng = &lng
		}
		rows = append(rows, row)
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("セル集計データのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("cell_aggregates").Insert(string(data), true, "snapshot_id,cell_id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("セル集計データの作成失敗: %w", err)
	}

	return nil
}

// GetBySnapshotID スナップショットIDでセル集計一覧を取得する
func (r *SupabaseCellAggregatesRepository) GetBySnapshotID(ctx context.Context, snapshotID string) ([]model.DensityCell, error) {
	data, _, err := r.client.GetClient().From("cell_aggregates").Select("*", "exact", false).Eq("snapshot_id", snapshotID).Execute()
	if err != nil {
		return nil, fmt.Errorf("セル集計データの取得失敗: %w", err)
	}

	return r.unmarshalCells(data)
}

// GetByBoundingBox 境界ボックス内（セル中心基準）のセル集計一覧を取得する
// REST API側に範囲フィルタを委ねず、取得後にセル中心でフィルタリングする
func (r *SupabaseCellAggregatesRepository) GetByBoundingBox(ctx context.Context, snapshotID string, minLng, minLat, maxLng, maxLat float64) ([]model.DensityCell, error) {
	cells, err := r.GetBySnapshotID(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("境界ボックス内セル集計の取得失敗: %w", err)
	}

	bound := BoundingBoxFromCorners(minLng, minLat, maxLng, maxLat)

	var filtered []model.DensityCell
	for _, cell := range cells {
		if cell.Center == nil {
			continue
		}
		if cell.Center.Lng >= bound.Min.Lon() && cell.Center.Lng <= bound.Max.Lon() &&
			cell.Center.Lat >= bound.Min.Lat() && cell.Center.Lat <= bound.Max.Lat() {
			filtered = append(filtered, cell)
		}
	}

	return filtered, nil
}

// DeleteBySnapshotID スナップショットIDでセル集計を削除する
func (r *SupabaseCellAggregatesRepository) DeleteBySnapshotID(ctx context.Context, snapshotID string) error {
	_, _, err := r.client.GetClient().From("cell_aggregates").Delete("", "").Eq("snapshot_id", snapshotID).Execute()
	if err != nil {
		return fmt.Errorf("セル集計データの削除失敗: %w", err)
	}

	return nil
}

// unmarshalCells Supabaseのレスポンスを DensityCell 列に変換する
func (r *SupabaseCellAggregatesRepository) unmarshalCells(data []byte) ([]model.DensityCell, error) {
	var rows []rowmodel.CellAggregateRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("セル集計データのJSONアンマーシャル失敗: %w", err)
	}

	cells := make([]model.DensityCell, 0, len(rows))
	for _, row := range rows {
		boundary, err := JSONToBoundary(row.Boundary)
		if err != nil {
			return nil, err
		}

		cell := model.DensityCell{
			CellID:   model.CellID(row.CellID),
			Count:    row.Count,
			Boundary: boundary,
		}
		if row.CenterLat != nil && row.CenterLng != nil {
			cell.Center = &model.LatLng{
				Lat: *row.CenterLat,
				Lng: *row.CenterLng,
			}
		}
		cells = append(cells, cell)
	}

	// REST API側はORDER BYを指定していないため、ここで順序を揃える
	helper.SortDensityCells(cells)
	return cells, nil
}

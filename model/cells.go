package model

// CellAggregateRow Supabaseのcell_aggregatesテーブル1行に対応する構造体
type CellAggregateRow struct {
	SnapshotID string   `json:"snapshot_id" db:"snapshot_id"` // スナップショットID
	CellID     string   `json:"cell_id" db:"cell_id"`         // H3セル識別子
	Resolution int      `json:"resolution" db:"resolution"`   // H3解像度
	Count      int      `json:"count" db:"count"`             // 集計値
	CenterLat  *float64 `json:"center_lat" db:"center_lat"`   // セル中心緯度（NULLABLE）
	CenterLng  *float64 `json:"center_lng" db:"center_lng"`   // セル中心経度（NULLABLE）
	Boundary   string   `json:"boundary" db:"boundary"`       // 境界ポリゴン（GeoJSON文字列）
}

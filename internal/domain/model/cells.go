package model

import "time"

// CellID 六角形セルの識別子（H3インデックスの文字列表現）
// 同一の (緯度, 経度, 解像度) からは常に同一のIDが得られる
type CellID string

// String CellID を文字列として取得
func (c CellID) String() string {
	return string(c)
}

// CellAggregate セルごとの集計結果を表すモデル
type CellAggregate struct {
	CellID CellID  `json:"cell_id" db:"cell_id"` // セル識別子
	Count  int     `json:"count" db:"count"`     // 集計値（件数または一意ID数）
	Center *LatLng `json:"center,omitempty"`     // セル中心（表示用、任意）
}

// CellPolygon セルの境界ポリゴンを表すモデル
// CellID から常に再計算可能なため、単独では永続化しない
type CellPolygon struct {
	CellID   CellID   `json:"cell_id"`
	Boundary []LatLng `json:"boundary"` // 閉じたリング（先頭 == 末尾）
}

// IsClosed 境界リングが閉じているかチェック
func (p *CellPolygon) IsClosed() bool {
	if len(p.Boundary) < 4 {
		return false
	}
	first := p.Boundary[0]
	last := p.Boundary[len(p.Boundary)-1]
	return first.Lat == last.Lat && first.Lng == last.Lng
}

// DensityCell 集計値と境界を結合した出力1行分のモデル
type DensityCell struct {
	CellID   CellID   `json:"cell_id"`
	Count    int      `json:"count"`
	Boundary []LatLng `json:"boundary"`
	Center   *LatLng  `json:"center,omitempty"`
}

// DensitySnapshot 1回のパイプライン実行結果を表すモデル
type DensitySnapshot struct {
	SnapshotID  string        `json:"snapshot_id"`
	Resolution  int           `json:"resolution"`
	Reduction   string        `json:"reduction"`    // 使用した集計方法（count / distinct_count）
	TotalPoints int           `json:"total_points"` // 有効な入力レコード数
	Cells       []DensityCell `json:"cells"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// FirestoreDensitySnapshot Firestore保存用のスナップショット構造体
type FirestoreDensitySnapshot struct {
	Resolution  int           `firestore:"resolution"`
	Reduction   string        `firestore:"reduction"`
	TotalPoints int           `firestore:"total_points"`
	Cells       []DensityCell `firestore:"cells"`
	GeneratedAt time.Time     `firestore:"generated_at"`
	ExpiresAt   time.Time     `firestore:"expires_at"`
}

// ToFirestoreDensitySnapshot DensitySnapshot を Firestore 保存用に変換
func (s *DensitySnapshot) ToFirestoreDensitySnapshot(ttlHours int) *FirestoreDensitySnapshot {
	return &FirestoreDensitySnapshot{
		Resolution:  s.Resolution,
		Reduction:   s.Reduction,
		TotalPoints: s.TotalPoints,
		Cells:       s.Cells,
		GeneratedAt: s.GeneratedAt,
		ExpiresAt:   s.GeneratedAt.Add(time.Duration(ttlHours) * time.Hour),
	}
}

// ToDensitySnapshot Firestore構造体から DensitySnapshot に変換
func (f *FirestoreDensitySnapshot) ToDensitySnapshot(snapshotID string) *DensitySnapshot {
	return &DensitySnapshot{
		SnapshotID:  snapshotID,
		Resolution:  f.Resolution,
		Reduction:   f.Reduction,
		TotalPoints: f.TotalPoints,
		Cells:       f.Cells,
		GeneratedAt: f.GeneratedAt,
	}
}

// IsExpired スナップショットが有効期限切れかチェック
func (f *FirestoreDensitySnapshot) IsExpired(now time.Time) bool {
	return now.After(f.ExpiresAt)
}

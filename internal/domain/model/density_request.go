package model

// 集計モードの定数
const (
	// ModeAgg セル単位の集計モード
	ModeAgg = "agg"
	// ModeExtrapolate 外挿モード（予約のみ、現状未対応）
	ModeExtrapolate = "extrapolate"
)

// Reduction（集計方法）の定数
const (
	// ReductionCount レコード件数をそのまま数える（デフォルト）
	ReductionCount = "count"
	// ReductionDistinctCount レコードIDの一意数を数える
	ReductionDistinctCount = "distinct_count"
)

// 入力ソースの定数
const (
	SourceInline = "inline"
	SourceGBFS   = "gbfs"
)

// InlinePoint リクエストボディに直接埋め込む座標1件
type InlinePoint struct {
	ID        string  `json:"id,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DensityComputeRequest 密度集計APIのリクエスト
type DensityComputeRequest struct {
	Resolution int           `json:"resolution"`           // H3解像度（0..15）
	Mode       string        `json:"mode,omitempty"`       // 集計モード（デフォルト: agg）
	Reduction  string        `json:"reduction,omitempty"`  // 集計方法（デフォルト: count）
	Source     string        `json:"source,omitempty"`     // 入力ソース（inline / gbfs）
	Points     []InlinePoint `json:"points,omitempty"`     // inlineソース用の座標列
	FeedURLs   []string      `json:"feed_urls,omitempty"`  // gbfsソース用のフィードURL（省略時はデフォルト）
	TTLHours   int           `json:"ttl_hours,omitempty"`  // スナップショットの有効期限（デフォルト: 24時間）
}

// DensityComputeResponse 密度集計APIのレスポンス
type DensityComputeResponse struct {
	SnapshotID string           `json:"snapshot_id"`
	Snapshot   *DensitySnapshot `json:"snapshot"`
}

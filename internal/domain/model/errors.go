package model

import "fmt"

// SchemaError 入力に必須カラムが存在しない場合のエラー
// 即時に致命的エラーとして呼び出し元へ返す（リトライなし）
type SchemaError struct {
	Column  string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("スキーマエラー (%s): %s", e.Column, e.Message)
}

// ValidationError 座標などの入力値が範囲外の場合のエラー
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IndexingError 外部インデックス機構が入力を拒否した場合のエラー
// 問題のあったレコードの情報を保持して呼び出し元へ返す
type IndexingError struct {
	CellID  string // セルID起因の場合のみ設定
	Lat     float64
	Lng     float64
	Message string
}

func (e *IndexingError) Error() string {
	if e.CellID != "" {
		return fmt.Sprintf("インデックスエラー (cell_id=%s): %s", e.CellID, e.Message)
	}
	return fmt.Sprintf("インデックスエラー (lat=%f, lng=%f): %s", e.Lat, e.Lng, e.Message)
}

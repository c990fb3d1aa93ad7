package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/repository"
)

// CSVLoaderOptions CSVローダーの動作設定
type CSVLoaderOptions struct {
	LatColumn string // 緯度カラム名（デフォルト: lat）
	LngColumn string // 経度カラム名（デフォルト: lng）
	IDColumn  string // レコードIDカラム名（省略時は行番号をIDとする）

	// DropInvalidRows trueの場合、範囲外座標の行をエラーにせず警告ログを残して捨てる
	// デフォルトはfalse（ValidationErrorで全体を失敗させる）
	DropInvalidRows bool
}

// CSVLoader はCSVファイルから位置記録を読み込むPointsLoaderの実装
type CSVLoader struct {
	path    string
	options CSVLoaderOptions
}

// NewCSVLoader 新しいCSVLoaderインスタンスを作成
func NewCSVLoader(path string, options CSVLoaderOptions) repository.PointsLoader {
	if options.LatColumn == "" {
		options.LatColumn = "lat"
	}
	if options.LngColumn == "" {
		options.LngColumn = "lng"
	}
	return &CSVLoader{
		path:    path,
		options: options,
	}
}

// Load CSVファイルを読み込んでPointRecord列を返す
// 必須カラムが無い場合はSchemaError、座標が範囲外の場合はValidationError
func (l *CSVLoader) Load(ctx context.Context) ([]model.PointRecord, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("CSVファイルのオープンに失敗: %w", err)
	}
	defer file.Close()

	return l.parse(ctx, file)
}

// parse ヘッダー行からカラム位置を特定し、各行をPointRecordに変換する
func (l *CSVLoader) parse(ctx context.Context, r io.Reader) ([]model.PointRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		// 空ファイルは空の結果として扱う
		return []model.PointRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("CSVヘッダーの読み込みに失敗: %w", err)
	}

	latIdx, lngIdx, idIdx, err := l.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []model.PointRecord
	rowNum := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV行の読み込みに失敗: %w", err)
		}
		rowNum++

		record, err := l.parseRow(row, rowNum, latIdx, lngIdx, idIdx)
		if err != nil {
			if l.options.DropInvalidRows {
				log.Printf("⚠️ 不正な行をスキップ (行%d): %v", rowNum, err)
				continue
			}
			return nil, err
		}
		records = append(records, *record)
	}

	return records, nil
}

// resolveColumns ヘッダーから必須カラムの位置を特定する
func (l *CSVLoader) resolveColumns(header []string) (latIdx, lngIdx, idIdx int, err error) {
	latIdx, lngIdx, idIdx = -1, -1, -1
	for i, name := range header {
		switch name {
		case l.options.LatColumn:
			latIdx = i
		case l.options.LngColumn:
			lngIdx = i
		case l.options.IDColumn:
			idIdx = i
		}
	}

	if latIdx < 0 {
		return 0, 0, 0, &model.SchemaError{
			Column:  l.options.LatColumn,
			Message: "緯度カラムが見つかりません",
		}
	}
	if lngIdx < 0 {
		return 0, 0, 0, &model.SchemaError{
			Column:  l.options.LngColumn,
			Message: "経度カラムが見つかりません",
		}
	}
	if l.options.IDColumn != "" && idIdx < 0 {
		return 0, 0, 0, &model.SchemaError{
			Column:  l.options.IDColumn,
			Message: "IDカラムが見つかりません",
		}
	}

	return latIdx, lngIdx, idIdx, nil
}

// parseRow CSV1行をPointRecordに変換する
func (l *CSVLoader) parseRow(row []string, rowNum, latIdx, lngIdx, idIdx int) (*model.PointRecord, error) {
	if latIdx >= len(row) || lngIdx >= len(row) {
		return nil, &model.ValidationError{
			Field:   "row",
			Message: fmt.Sprintf("行%dのカラム数が不足しています", rowNum),
		}
	}

	lat, err := strconv.ParseFloat(row[latIdx], 64)
	if err != nil {
		return nil, &model.ValidationError{
			Field:   l.options.LatColumn,
			Message: fmt.Sprintf("行%dの緯度を数値として解釈できません: %s", rowNum, row[latIdx]),
		}
	}
	lng, err := strconv.ParseFloat(row[lngIdx], 64)
	if err != nil {
		return nil, &model.ValidationError{
			Field:   l.options.LngColumn,
			Message: fmt.Sprintf("行%dの経度を数値として解釈できません: %s", rowNum, row[lngIdx]),
		}
	}

	record := model.PointRecord{
		ID: strconv.Itoa(rowNum),
		Location: model.Location{
			Latitude:  lat,
			Longitude: lng,
		},
	}
	if idIdx >= 0 && idIdx < len(row) {
		record.ID = row[idIdx]
	}

	if err := record.Location.Validate(); err != nil {
		return nil, err
	}

	return &record, nil
}

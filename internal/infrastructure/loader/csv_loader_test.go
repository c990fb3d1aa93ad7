package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DensityMap-App/internal/domain/model"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVLoader_Load(t *testing.T) {
	t.Run("基本的な読み込み", func(t *testing.T) {
		path := writeCSV(t, "lat,lng\n34.05,-118.25\n35.68,139.69\n")
		csvLoader := NewCSVLoader(path, CSVLoaderOptions{})

		records, err := csvLoader.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "1", records[0].ID)
		assert.Equal(t, 34.05, records[0].Location.Latitude)
		assert.Equal(t, -118.25, records[0].Location.Longitude)
		assert.Equal(t, "2", records[1].ID)
	})

	t.Run("IDカラムを指定できる", func(t *testing.T) {
		path := writeCSV(t, "bike_id,lat,lng\nbike-7,34.05,-118.25\n")
		csvLoader := NewCSVLoader(path, CSVLoaderOptions{IDColumn: "bike_id"})

		records, err := csvLoader.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "bike-7", records[0].ID)
	})

	t.Run("カラム名を変更できる", func(t *testing.T) {
		path := writeCSV(t, "latitude,longitude\n34.05,-118.25\n")
		csvLoader := NewCSVLoader(path, CSVLoaderOptions{
			LatColumn: "latitude",
			LngColumn: "longitude",
		})

		records, err := csvLoader.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("緯度カラムが無い場合はSchemaError", func(t *testing.T) {
		path := writeCSV(t, "x,lng\n34.05,-118.25\n")
		csvLoader := NewCSVLoader(path, CSVLoaderOptions{})

		_, err := csvLoader.Load(context.Background())
		require.Error(t, err)

		var schemaErr *model.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "lat", schemaErr.Column)
	})

	t.Run("範囲外の座標はValidationError", func(t *testing.T) {
		path := writeCSV(t, "lat,lng\n91.0,0.0\n")
		csvLoader := NewCSVLoader(path, CSVLoaderOptions{})

		_, err := csvLoader.Load(context.Background())
		require.Error(t, err)

		var validationErr *model.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("数値として解釈できない座標はValidationError", func(t *testing.T) {
		path := writeCSV(t, "lat,lng\nabc,0.0\n")
		csvLoader := NewCSVLoader(path, CSVLoaderOptions{})

		_, err := csvLoader.Load(context.Background())
		require.Error(t, err)

		var validationErr *model.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("DropInvalidRowsで不正な行をスキップできる", func(t *testing.T) {
		path := writeCSV(t, "lat,lng\n34.05,-118.25\n91.0,0.0\n35.68,139.69\n")
		csvLoader := NewCSVLoader(path, CSVLoaderOptions{DropInvalidRows: true})

		records, err := csvLoader.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 34.05, records[0].Location.Latitude)
		assert.Equal(t, 35.68, records[1].Location.Latitude)
	})

	t.Run("空ファイルは空の結果", func(t *testing.T) {
		path := writeCSV(t, "")
		csvLoader := NewCSVLoader(path, CSVLoaderOptions{})

		records, err := csvLoader.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("ヘッダーのみのファイルは空の結果", func(t *testing.T) {
		path := writeCSV(t, "lat,lng\n")
		csvLoader := NewCSVLoader(path, CSVLoaderOptions{})

		records, err := csvLoader.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("存在しないファイルはエラー", func(t *testing.T) {
		csvLoader := NewCSVLoader(filepath.Join(t.TempDir(), "missing.csv"), CSVLoaderOptions{})

		_, err := csvLoader.Load(context.Background())
		assert.Error(t, err)
	})
}

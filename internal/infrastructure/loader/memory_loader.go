package loader

import (
	"context"
	"strconv"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/repository"
)

// MemoryLoader はリクエストに埋め込まれた座標列を読み込むPointsLoaderの実装
type MemoryLoader struct {
	points []model.InlinePoint
}

// NewMemoryLoader 新しいMemoryLoaderインスタンスを作成
func NewMemoryLoader(points []model.InlinePoint) repository.PointsLoader {
	return &MemoryLoader{
		points: points,
	}
}

// Load 埋め込み座標列をPointRecord列に変換する
// IDが無い場合は入力順の連番を割り当てる
func (l *MemoryLoader) Load(ctx context.Context) ([]model.PointRecord, error) {
	records := make([]model.PointRecord, 0, len(l.points))
	for i, point := range l.points {
		record := model.PointRecord{
			ID: point.ID,
			Location: model.Location{
				Latitude:  point.Latitude,
				Longitude: point.Longitude,
			},
		}
		if record.ID == "" {
			record.ID = strconv.Itoa(i + 1)
		}

		if err := record.Location.Validate(); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

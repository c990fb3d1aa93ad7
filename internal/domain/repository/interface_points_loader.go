package repository

import (
	"context"

	"DensityMap-App/internal/domain/model"
)

// PointsLoader 位置記録の入力ソースを表すインターフェース
// ロードされた PointRecord は入力順を保持し、以降変更されない
type PointsLoader interface {
	Load(ctx context.Context) ([]model.PointRecord, error)
}

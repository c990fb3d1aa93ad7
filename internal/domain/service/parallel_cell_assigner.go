package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"DensityMap-App/internal/domain/model"
)

// ParallelCellAssigner 入力を分割して並行でセル割り当てを行う高速化版
// セル割り当ては行単位の純粋関数のため、分割間の調整は不要で
// 結果を入力順に連結するだけでよい
type ParallelCellAssigner struct {
	assigner      *CellAssigner
	maxGoroutines int
	minBatchSize  int
}

// NewParallelCellAssigner 新しい並行セル割り当てインスタンスを作成
func NewParallelCellAssigner(indexProvider CellIndexProvider) *ParallelCellAssigner {
	return &ParallelCellAssigner{
		assigner:      NewCellAssigner(indexProvider),
		maxGoroutines: 5,    // 同時実行数を制限
		minBatchSize:  1000, // これ未満は直列で処理
	}
}

// partitionResult 分割1つ分の割り当て結果
type partitionResult struct {
	index    int
	assigned []AssignedPoint
	err      error
}

// Assign レコード列を分割して並行でセル割り当てを行い、入力順に連結して返す
func (p *ParallelCellAssigner) Assign(records []model.PointRecord, resolution int) ([]AssignedPoint, error) {
	if len(records) < p.minBatchSize {
		return p.assigner.Assign(records, resolution)
	}

	if err := model.ValidateResolution(resolution); err != nil {
		return nil, err
	}

	partitions := p.partition(records)
	log.Printf("🚀 並行セル割り当て開始: %dレコードを%d分割で処理", len(records), len(partitions))
	start := time.Now()

	// セマフォを使用して同時実行数を制限
	semaphore := make(chan struct{}, p.maxGoroutines)
	results := make(chan partitionResult, len(partitions))
	var wg sync.WaitGroup

	for i, part := range partitions {
		wg.Add(1)
		go func(partIndex int, partRecords []model.PointRecord) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			assigned, err := p.assigner.Assign(partRecords, resolution)
			results <- partitionResult{
				index:    partIndex,
				assigned: assigned,
				err:      err,
			}
		}(i, part)
	}

	wg.Wait()
	close(results)

	// 分割番号順に並べ直して入力順を復元する
	ordered := make([][]AssignedPoint, len(partitions))
	for result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("分割%dのセル割り当て失敗: %w", result.index, result.err)
		}
		ordered[result.index] = result.assigned
	}

	assigned := make([]AssignedPoint, 0, len(records))
	for _, part := range ordered {
		assigned = append(assigned, part...)
	}

	log.Printf("✅ 並行セル割り当て完了: %dレコード (%v)", len(assigned), time.Since(start))
	return assigned, nil
}

// partition レコード列をほぼ均等なバッチに分割する
func (p *ParallelCellAssigner) partition(records []model.PointRecord) [][]model.PointRecord {
	batchSize := (len(records) + p.maxGoroutines - 1) / p.maxGoroutines
	if batchSize < p.minBatchSize {
		batchSize = p.minBatchSize
	}

	var partitions [][]model.PointRecord
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		partitions = append(partitions, records[start:end])
	}
	return partitions
}

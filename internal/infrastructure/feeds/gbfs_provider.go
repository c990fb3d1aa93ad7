package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/domain/repository"
)

// DefaultFeedURLs デフォルトで参照するGBFS free_bike_statusフィード
var DefaultFeedURLs = []string{
	"https://mds.bird.co/gbfs/v2/public/los-angeles/free_bike_status.json",
	"https://s3.amazonaws.com/lyft-lastmile-production-iad/lbs/lax/free_bike_status.json",
	"https://gbfs.spin.pm/api/gbfs/v2_2/los_angeles/free_bike_status",
}

// GBFSProvider はGBFS free_bike_statusフィードから車両位置を取得するPointsLoaderの実装
// フィード単位の失敗はログを残してスキップし、取得できたフィードだけで続行する
type GBFSProvider struct {
	feedURLs   []string
	httpClient *http.Client
}

// NewGBFSProvider 新しいプロバイダを生成する
// URL省略時はGBFS_FEED_URLS環境変数（カンマ区切り）、それも無ければデフォルトフィードを使用
func NewGBFSProvider(feedURLs []string) repository.PointsLoader {
	if len(feedURLs) == 0 {
		if envURLs := os.Getenv("GBFS_FEED_URLS"); envURLs != "" {
			for _, u := range strings.Split(envURLs, ",") {
				if trimmed := strings.TrimSpace(u); trimmed != "" {
					feedURLs = append(feedURLs, trimmed)
				}
			}
		}
	}
	if len(feedURLs) == 0 {
		feedURLs = DefaultFeedURLs
	}
	return &GBFSProvider{
		feedURLs:   feedURLs,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Load 全フィードから車両位置を取得してPointRecord列に変換する
func (g *GBFSProvider) Load(ctx context.Context) ([]model.PointRecord, error) {
	var records []model.PointRecord

	for _, feedURL := range g.feedURLs {
		bikes, err := g.fetchFeed(ctx, feedURL)
		if err != nil {
			log.Printf("⚠️ フィード取得失敗のためスキップ: %s (%v)", feedURL, err)
			continue
		}

		for _, bike := range bikes {
			record := model.PointRecord{
				ID: bike.BikeID,
				Location: model.Location{
					Latitude:  bike.Lat,
					Longitude: bike.Lon,
				},
			}
			if err := record.Location.Validate(); err != nil {
				return nil, fmt.Errorf("フィード %s の座標が不正: %w", feedURL, err)
			}
			records = append(records, record)
		}
		log.Printf("✅ フィード取得完了: %s (%d台)", feedURL, len(bikes))
	}

	return records, nil
}

// fetchFeed フィード1件を取得してbike一覧を返す
func (g *GBFSProvider) fetchFeed(ctx context.Context, feedURL string) ([]gbfsBike, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("フィードへの接続に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("フィードからエラーステータスが返されました: %s", resp.Status)
	}

	var feedResp gbfsFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feedResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if feedResp.Data.Bikes == nil {
		return nil, fmt.Errorf("フィードにbike一覧が含まれていません")
	}

	return feedResp.Data.Bikes, nil
}

// --- GBFSフィードのレスポンスをパースするための構造体 ---

type gbfsFeedResponse struct {
	LastUpdated int64    `json:"last_updated"`
	Data        gbfsData `json:"data"`
}

type gbfsData struct {
	Bikes []gbfsBike `json:"bikes"`
}

type gbfsBike struct {
	BikeID string  `json:"bike_id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

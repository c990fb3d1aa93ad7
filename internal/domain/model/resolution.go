package model

import "fmt"

// MinResolution H3グリッドの最小解像度
const MinResolution = 0

// MaxResolution H3グリッドの最大解像度
const MaxResolution = 15

// resolutionValues インデックスが解像度番号に対応する (面積km2, 平均辺長km) のテーブル
// https://h3geo.org/docs/core-library/restable/ より
var resolutionValues = [16][2]float64{
	{4250546.8477000, 1107.712591000},
	{607220.9782429, 418.676005500},
	{86745.8540347, 158.244655800},
	{12392.2648621, 59.810857940},
	{1770.3235517, 22.606379400},
	{252.9033645, 8.544408276},
	{36.1290521, 3.229482772},
	{5.1612932, 1.220629759},
	{0.7373276, 0.461354684},
	{0.1053325, 0.174375668},
	{0.0150475, 0.065907807},
	{0.0021496, 0.024910561},
	{0.0003071, 0.009415526},
	{0.0000439, 0.003559893},
	{0.0000063, 0.001348575},
	{0.0000009, 0.000509713},
}

// H3Resolution H3解像度テーブルの1行を表すモデル
type H3Resolution struct {
	Resolution   int     `json:"resolution"`      // 解像度番号（0..15）
	AreaKm2      float64 `json:"area_km2"`        // 六角形ポリゴンがカバーする面積（km²）
	AvgEdgeLenKm float64 `json:"avg_edge_len_km"` // 六角形の辺の平均長（km）
}

// NewH3Resolution 解像度番号から H3Resolution を作成
func NewH3Resolution(res int) (*H3Resolution, error) {
	if err := ValidateResolution(res); err != nil {
		return nil, err
	}
	values := resolutionValues[res]
	return &H3Resolution{
		Resolution:   res,
		AreaKm2:      values[0],
		AvgEdgeLenKm: values[1],
	}, nil
}

// ValidateResolution 解像度が有効範囲内かチェック
func ValidateResolution(res int) error {
	if res < MinResolution || res > MaxResolution {
		return &ValidationError{
			Field:   "resolution",
			Message: fmt.Sprintf("解像度は%dから%dの範囲で指定してください: %d", MinResolution, MaxResolution, res),
		}
	}
	return nil
}

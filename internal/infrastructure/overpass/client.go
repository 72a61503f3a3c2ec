package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint Overpass APIのデフォルトエンドポイント
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// requestTimeout Overpassへの問い合わせの上限時間
// これを超えた場合はエラーとして呼び出し側へ伝播する
const requestTimeout = 30 * time.Second

// OverpassResponse Overpass APIのレスポンス
type OverpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}

// OverpassCenter way/relation要素の代表座標
type OverpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OverpassElement Overpass APIの個々の要素
// node要素は直接lat/lonを持ち、way/relation要素はcenterを持つ
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *OverpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Client Overpass APIクライアント
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient は新しいOverpassクライアントを生成する
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// FetchBicycleRentals は指定座標の周辺にあるバイクシェアステーションを検索する
// way要素の代表座標も取得できるよう "out center" を使用する
func (c *Client) FetchBicycleRentals(ctx context.Context, lat, lng float64, radiusMeters int) ([]OverpassElement, error) {
	query := fmt.Sprintf(
		`[out:json];(node(around:%d,%.6f,%.6f)["amenity"="bicycle_rental"];way(around:%d,%.6f,%.6f)["amenity"="bicycle_rental"];);out center;`,
		radiusMeters, lat, lng, radiusMeters, lat, lng,
	)

	reqURL := c.endpoint + "?data=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Overpass APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Overpass APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	return apiResp.Elements, nil
}

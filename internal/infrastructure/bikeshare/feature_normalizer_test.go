package bikeshare

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poi-radar/internal/domain/model"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "id": "stn-001",
      "geometry": {"type": "Point", "coordinates": [135.7681, 35.0116]},
      "properties": {
        "name": "Karasuma Dock",
        "capacity": "45",
        "operator": "KyotoCycle",
        "network": "kyoto-bike"
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [135.7595, 34.9871]},
      "properties": {"capacity": 10}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[135.0, 35.0], [135.1, 35.1]]},
      "properties": {"name": "not a station"}
    }
  ]
}`

func TestFeatureNormalizer(t *testing.T) {
	normalizer := NewFeatureNormalizer()

	t.Run("Pointフィーチャのみ正規化しLineStringはスキップ", func(t *testing.T) {
		pois, err := normalizer.NormalizeBytes([]byte(sampleGeoJSON))
		require.NoError(t, err)
		require.Len(t, pois, 2)

		for _, poi := range pois {
			assert.Equal(t, model.CategoryPublicTransport, poi.Category)
			assert.Equal(t, model.SourceBikeShareGeoJSON, poi.Source)
			assert.True(t, poi.IsActive)
		}
	})

	t.Run("容量45は優先度2・半径75m", func(t *testing.T) {
		pois, err := normalizer.NormalizeBytes([]byte(sampleGeoJSON))
		require.NoError(t, err)

		station := pois[0]
		assert.Equal(t, "Karasuma Dock", station.Name)
		assert.Equal(t, 2, station.Priority)
		assert.Equal(t, 75, station.NotificationRadius)
		assert.InDelta(t, 35.0116, station.Location.Latitude, 1e-9)
		assert.InDelta(t, 135.7681, station.Location.Longitude, 1e-9)
	})

	t.Run("容量10は優先度0・半径40m", func(t *testing.T) {
		pois, err := normalizer.NormalizeBytes([]byte(sampleGeoJSON))
		require.NoError(t, err)

		station := pois[1]
		assert.Equal(t, 0, station.Priority)
		assert.Equal(t, 40, station.NotificationRadius)
	})

	t.Run("名前のないステーションは連番フォールバック", func(t *testing.T) {
		pois, err := normalizer.NormalizeBytes([]byte(sampleGeoJSON))
		require.NoError(t, err)

		// 2件目のPointフィーチャなので #2
		assert.Equal(t, "Bike Station #2", pois[1].Name)
	})

	t.Run("スキップされたフィーチャは連番を消費しない", func(t *testing.T) {
		payload := `{
		  "type": "FeatureCollection",
		  "features": [
		    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[135.0, 35.0], [135.1, 35.1]]}, "properties": {}},
		    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [135.0, 35.0]}, "properties": {}}
		  ]
		}`
		pois, err := normalizer.NormalizeBytes([]byte(payload))
		require.NoError(t, err)
		require.Len(t, pois, 1)
		// 先頭のLineStringは番号を消費しないので最初のステーションは #1
		assert.Equal(t, "Bike Station #1", pois[0].Name)
	})

	t.Run("フィーチャIDから決定的なPOI IDを生成", func(t *testing.T) {
		first, err := normalizer.NormalizeBytes([]byte(sampleGeoJSON))
		require.NoError(t, err)
		second, err := normalizer.NormalizeBytes([]byte(sampleGeoJSON))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(first[0].ID, string(model.SourceBikeShareGeoJSON)+"_"))
		// 再インポートしても同じIDになる（冪等な取り込みの前提）
		assert.Equal(t, first[0].ID, second[0].ID)
	})

	t.Run("説明文は運営者・ドック数・ネットワークの合成", func(t *testing.T) {
		pois, err := normalizer.NormalizeBytes([]byte(sampleGeoJSON))
		require.NoError(t, err)

		assert.Equal(t, "KyotoCycle, 45 docks, kyoto-bike", pois[0].Description)
		// 容量のみのステーションはドック数だけ
		assert.Equal(t, "10 docks", pois[1].Description)
	})

	t.Run("プロパティが全て欠落していれば汎用ラベル", func(t *testing.T) {
		payload := `{
		  "type": "FeatureCollection",
		  "features": [
		    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [135.0, 35.0]}, "properties": {}}
		  ]
		}`
		pois, err := normalizer.NormalizeBytes([]byte(payload))
		require.NoError(t, err)
		require.Len(t, pois, 1)
		assert.Equal(t, "Bike sharing station", pois[0].Description)
	})

	t.Run("タグにはソースのプロパティを保持", func(t *testing.T) {
		pois, err := normalizer.NormalizeBytes([]byte(sampleGeoJSON))
		require.NoError(t, err)

		tags := pois[0].Tags
		assert.Equal(t, "45", tags["capacity"])
		assert.Equal(t, "KyotoCycle", tags["operator"])
		assert.Equal(t, "kyoto-bike", tags["network"])
	})

	t.Run("壊れたGeoJSONはエラー", func(t *testing.T) {
		_, err := normalizer.NormalizeBytes([]byte(`{"type": "FeatureCollection", "features": [`))
		assert.Error(t, err)
	})
}

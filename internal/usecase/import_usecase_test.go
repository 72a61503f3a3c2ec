package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poi-radar/internal/domain/model"
	repoimpl "poi-radar/internal/repository"
)

const importTestGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="poi-radar-test">
  <wpt lat="35.0116" lon="135.7681">
    <name>Kyoto Station</name>
    <type>station</type>
  </wpt>
  <wpt lat="35.0041" lon="135.7781">
    <name>Gion Corner</name>
    <type>tourist</type>
  </wpt>
</gpx>`

const importTestGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "id": "stn-001",
      "geometry": {"type": "Point", "coordinates": [135.7681, 35.0116]},
      "properties": {"name": "Karasuma Dock", "capacity": 45}
    }
  ]
}`

func TestImportUseCaseImportGPX(t *testing.T) {
	ctx := context.Background()

	t.Run("取り込み件数を返しレジストリへ登録する", func(t *testing.T) {
		repo := repoimpl.NewMemoryPOIsRepository()
		uc := NewImportUseCase(repo, nil)

		count, err := uc.ImportGPX(ctx, strings.NewReader(importTestGPX))
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		for _, poi := range all {
			assert.Equal(t, model.SourceGPX, poi.Source)
		}
	})

	t.Run("再取り込みでソーススコープが置き換わる", func(t *testing.T) {
		repo := repoimpl.NewMemoryPOIsRepository()
		uc := NewImportUseCase(repo, nil)

		_, err := uc.ImportGPX(ctx, strings.NewReader(importTestGPX))
		require.NoError(t, err)

		// 1件だけのGPXで取り込み直す
		single := `<?xml version="1.0"?><gpx><wpt lat="35.0" lon="135.0"><name>Only</name></wpt></gpx>`
		count, err := uc.ImportGPX(ctx, strings.NewReader(single))
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		all, _ := repo.GetAll(ctx)
		assert.Len(t, all, 1)
		assert.Equal(t, "Only", all[0].Name)
	})

	t.Run("他ソースのPOIは置き換えの影響を受けない", func(t *testing.T) {
		repo := repoimpl.NewMemoryPOIsRepository()
		uc := NewImportUseCase(repo, nil)

		_, err := uc.ImportBikeShareGeoJSON(ctx, []byte(importTestGeoJSON))
		require.NoError(t, err)
		_, err = uc.ImportGPX(ctx, strings.NewReader(importTestGPX))
		require.NoError(t, err)
		_, err = uc.ImportGPX(ctx, strings.NewReader(importTestGPX))
		require.NoError(t, err)

		stats, err := uc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalCount)
	})

	t.Run("壊れたGPXはエラーで0件", func(t *testing.T) {
		repo := repoimpl.NewMemoryPOIsRepository()
		uc := NewImportUseCase(repo, nil)

		count, err := uc.ImportGPX(ctx, strings.NewReader("<gpx><wpt"))
		assert.Error(t, err)
		assert.Equal(t, 0, count)

		// パース失敗時は既存データに触れない
		all, _ := repo.GetAll(ctx)
		assert.Empty(t, all)
	})
}

func TestImportUseCaseImportBikeShareGeoJSON(t *testing.T) {
	ctx := context.Background()
	repo := repoimpl.NewMemoryPOIsRepository()
	uc := NewImportUseCase(repo, nil)

	count, err := uc.ImportBikeShareGeoJSON(ctx, []byte(importTestGeoJSON))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, _ := repo.GetAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "Karasuma Dock", all[0].Name)
	assert.Equal(t, model.SourceBikeShareGeoJSON, all[0].Source)
	assert.Equal(t, 2, all[0].Priority)
	assert.Equal(t, 75, all[0].NotificationRadius)
}

func TestImportUseCaseCreateManualPOI(t *testing.T) {
	ctx := context.Background()

	t.Run("手動POIの登録", func(t *testing.T) {
		repo := repoimpl.NewMemoryPOIsRepository()
		uc := NewImportUseCase(repo, nil)

		poi, err := uc.CreateManualPOI(ctx, "Fushimi Inari Shrine", "Torii gates", model.Location{Latitude: 34.9671, Longitude: 135.7727}, 0)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(poi.ID, "manual_"))
		assert.Equal(t, model.SourceManual, poi.Source)
		assert.Equal(t, model.CategoryHistoric, poi.Category)
		assert.Equal(t, model.DefaultNotificationRadiusMeters, poi.NotificationRadius)

		got, err := repo.GetByID(ctx, poi.ID)
		require.NoError(t, err)
		assert.Equal(t, "Fushimi Inari Shrine", got.Name)
	})

	t.Run("名前なしはエラー", func(t *testing.T) {
		uc := NewImportUseCase(repoimpl.NewMemoryPOIsRepository(), nil)
		_, err := uc.CreateManualPOI(ctx, "", "", model.Location{Latitude: 35.0, Longitude: 135.0}, 50)
		assert.Error(t, err)
	})

	t.Run("範囲外の座標はエラー", func(t *testing.T) {
		uc := NewImportUseCase(repoimpl.NewMemoryPOIsRepository(), nil)
		_, err := uc.CreateManualPOI(ctx, "bad", "", model.Location{Latitude: 91.0, Longitude: 135.0}, 50)
		assert.Error(t, err)
	})
}

func TestImportUseCaseDeleteSource(t *testing.T) {
	ctx := context.Background()
	repo := repoimpl.NewMemoryPOIsRepository()
	uc := NewImportUseCase(repo, nil)

	_, err := uc.ImportGPX(ctx, strings.NewReader(importTestGPX))
	require.NoError(t, err)

	t.Run("ソース単位で削除", func(t *testing.T) {
		deleted, err := uc.DeleteSource(ctx, model.SourceGPX)
		require.NoError(t, err)
		assert.Equal(t, 2, deleted)

		stats, _ := uc.Stats(ctx)
		assert.Equal(t, 0, stats.TotalCount)
	})

	t.Run("不明なソースはエラー", func(t *testing.T) {
		_, err := uc.DeleteSource(ctx, model.POISource("bogus"))
		assert.Error(t, err)
	})
}

package model

// POISource POIの取り込み元ソースを表す閉じた型
// ソース単位の一括削除・再取り込みのスコープに使用するため、
// 自由な文字列ではなく定義済みの値のみを許可する
type POISource string

const (
	SourceGPX              POISource = "gpx"
	SourceBikeShareGeoJSON POISource = "bikeshare_geojson"
	SourceOverpass         POISource = "overpass"
	SourceManual           POISource = "manual"
)

// AllPOISources は全ソースの一覧を取得する
func AllPOISources() []POISource {
	return []POISource{
		SourceGPX,
		SourceBikeShareGeoJSON,
		SourceOverpass,
		SourceManual,
	}
}

// IsValid ソースが定義済みかチェック
func (s POISource) IsValid() bool {
	for _, src := range AllPOISources() {
		if s == src {
			return true
		}
	}
	return false
}

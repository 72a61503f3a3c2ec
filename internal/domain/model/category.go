package model

// Category POIのカテゴリを表す閉じた列挙型
type Category string

const (
	CategoryShop              Category = "SHOP"
	CategoryRestaurant        Category = "RESTAURANT"
	CategoryTouristAttraction Category = "TOURIST_ATTRACTION"
	CategoryPublicTransport   Category = "PUBLIC_TRANSPORT"
	CategoryAmenity           Category = "AMENITY"
	CategoryHistoric          Category = "HISTORIC"
	CategoryNatural           Category = "NATURAL"
	CategoryInfrastructure    Category = "INFRASTRUCTURE"
	CategoryUnknown           Category = "UNKNOWN"
)

// AllCategories は全カテゴリの一覧を取得する
func AllCategories() []Category {
	return []Category{
		CategoryShop,
		CategoryRestaurant,
		CategoryTouristAttraction,
		CategoryPublicTransport,
		CategoryAmenity,
		CategoryHistoric,
		CategoryNatural,
		CategoryInfrastructure,
		CategoryUnknown,
	}
}

// IsValid カテゴリが定義済みかチェック
func (c Category) IsValid() bool {
	for _, cat := range AllCategories() {
		if c == cat {
			return true
		}
	}
	return false
}

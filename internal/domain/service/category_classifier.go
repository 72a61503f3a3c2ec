package service

import (
	"strings"

	"poi-radar/internal/domain/model"
)

// categoryRule カテゴリ判定のルール（キーワード群とカテゴリの組）
type categoryRule struct {
	keywords []string
	category model.Category
}

// categoryRuleTable カテゴリ判定のルールテーブル
// 上から順に評価し、最初にマッチしたルールのカテゴリを採用する。
// 複数ルールにマッチし得る曖昧なテキストもテーブルの並び順で
// 決定的に解決されるため、並び順そのものが仕様である。
// 新しいカテゴリは行を追加するだけで対応できる
var categoryRuleTable = []categoryRule{
	{keywords: []string{"shop", "store", "supermarket", "ショップ", "商店"}, category: model.CategoryShop},
	{keywords: []string{"restaurant", "cafe", "food", "レストラン", "カフェ"}, category: model.CategoryRestaurant},
	{keywords: []string{"tourist", "attraction", "monument", "viewpoint", "観光"}, category: model.CategoryTouristAttraction},
	{keywords: []string{"transport", "station", "stop", "bus", "bicycle_rental", "駅"}, category: model.CategoryPublicTransport},
	{keywords: []string{"amenity", "toilet", "parking", "drinking_water"}, category: model.CategoryAmenity},
	{keywords: []string{"historic", "castle", "church", "shrine", "temple", "史跡"}, category: model.CategoryHistoric},
	{keywords: []string{"natural", "park", "peak", "forest", "公園"}, category: model.CategoryNatural},
	{keywords: []string{"infrastructure", "bridge", "tower", "dam"}, category: model.CategoryInfrastructure},
}

// CategoryClassifier 自由テキストのヒントからPOIカテゴリを判定する
type CategoryClassifier struct{}

// NewCategoryClassifier CategoryClassifierの新しいインスタンスを作成
func NewCategoryClassifier() *CategoryClassifier {
	return &CategoryClassifier{}
}

// Classify はタイプヒントと名前ヒントからカテゴリを判定する
// 大文字小文字を区別しない部分一致で、マッチしない場合はUNKNOWN
func (c *CategoryClassifier) Classify(typeHint, nameHint string) model.Category {
	text := strings.ToLower(strings.TrimSpace(typeHint + " " + nameHint))
	if text == "" {
		return model.CategoryUnknown
	}

	for _, rule := range categoryRuleTable {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}

	return model.CategoryUnknown
}

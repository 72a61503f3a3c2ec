package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"poi-radar/internal/domain/model"
)

func TestCategoryClassifier(t *testing.T) {
	classifier := NewCategoryClassifier()

	t.Run("タイプヒントからの判定", func(t *testing.T) {
		assert.Equal(t, model.CategoryRestaurant, classifier.Classify("restaurant", "とある店"))
		assert.Equal(t, model.CategoryShop, classifier.Classify("shop", ""))
		assert.Equal(t, model.CategoryPublicTransport, classifier.Classify("bicycle_rental", ""))
	})

	t.Run("名前ヒントからの判定", func(t *testing.T) {
		assert.Equal(t, model.CategoryHistoric, classifier.Classify("", "Himeji Castle"))
		assert.Equal(t, model.CategoryNatural, classifier.Classify("", "Central Park"))
	})

	t.Run("大文字小文字を区別しない", func(t *testing.T) {
		assert.Equal(t, model.CategoryRestaurant, classifier.Classify("RESTAURANT", ""))
		assert.Equal(t, model.CategoryTouristAttraction, classifier.Classify("", "Tourist Information"))
	})

	t.Run("マッチしない場合はUNKNOWN", func(t *testing.T) {
		assert.Equal(t, model.CategoryUnknown, classifier.Classify("", "xyzzy"))
		assert.Equal(t, model.CategoryUnknown, classifier.Classify("", ""))
	})

	t.Run("複数ルールにマッチする場合はテーブルの並び順で解決", func(t *testing.T) {
		// "shop" と "restaurant" の両方を含むテキストはテーブル上位のSHOPが勝つ
		assert.Equal(t, model.CategoryShop, classifier.Classify("shop", "restaurant"))
		// "station" と "park" では PUBLIC_TRANSPORT が上位
		assert.Equal(t, model.CategoryPublicTransport, classifier.Classify("station", "park"))
	})

	t.Run("タイプが解決できれば名前の無関係な語は影響しない", func(t *testing.T) {
		assert.Equal(t, model.CategoryRestaurant, classifier.Classify("restaurant", "qwerty"))
	})
}

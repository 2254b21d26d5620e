package catalog

import (
	"testing"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount int
		want     string
	}{
		{"no discount", "599.00", 0, "599.00"},
		{"fifteen percent", "100.00", 15, "85.00"},
		{"full discount", "49.99", 100, "0.00"},
		{"odd price", "33.33", 10, "30.00"},
		{"repeating fraction rounds", "10.00", 33, "6.70"},
		{"zero price", "0.00", 50, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountedPrice(d(tt.price), tt.discount)
			assert.True(t, got.Equal(d(tt.want)),
				"DiscountedPrice(%s, %d) = %s, want %s", tt.price, tt.discount, got, tt.want)
		})
	}
}

func TestDiscountedPriceNeverExceedsPrice(t *testing.T) {
	price := d("123.45")
	for discount := 0; discount <= 100; discount++ {
		got := DiscountedPrice(price, discount)
		require.True(t, got.LessThanOrEqual(price),
			"discount %d produced %s above price", discount, got)
	}
}

func TestTruncatePrice(t *testing.T) {
	assert.True(t, TruncatePrice(d("19.999")).Equal(d("19.99")))
	assert.True(t, TruncatePrice(d("19.99")).Equal(d("19.99")))
	assert.True(t, TruncatePrice(d("19")).Equal(d("19")))
}

func TestStockBucket(t *testing.T) {
	assert.Equal(t, models.StockBucketOut, StockBucket(0))
	assert.Equal(t, models.StockBucketLow, StockBucket(1))
	assert.Equal(t, models.StockBucketLow, StockBucket(10))
	assert.Equal(t, models.StockBucketIn, StockBucket(11))
	assert.Equal(t, models.StockBucketIn, StockBucket(5000))
}

func TestStockSummary(t *testing.T) {
	stats := StockSummary([]int{0, 1, 5, 10, 11, 250, 0})

	assert.Equal(t, 7, stats.TotalLive)
	assert.Equal(t, 3, stats.LowStock)
	assert.Equal(t, 2, stats.OutOfStock)

	empty := StockSummary(nil)
	assert.Zero(t, empty.TotalLive)
	assert.Zero(t, empty.LowStock)
	assert.Zero(t, empty.OutOfStock)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Luxury Wingback Chair", "luxury-wingback-chair"},
		{"  Luxury   Wingback Chair  ", "luxury-wingback-chair"},
		{"Kids' T-Shirt (Red)", "kids-t-shirt-red"},
		{"UPPER case", "upper-case"},
	}

	for _, tt := range tests {
		got := Slugify(tt.name)
		assert.Equal(t, tt.want, got)
		// Deterministic: same input, same slug.
		assert.Equal(t, got, Slugify(tt.name))
	}
}

func TestDerive(t *testing.T) {
	p := models.Product{Price: d("599.00"), Discount: 0, Stock: 12}
	Derive(&p)

	assert.True(t, p.FinalPrice.Equal(d("599.00")))
	assert.Equal(t, models.StockBucketIn, p.StockBucket)

	p = models.Product{Price: d("100.00"), Discount: 15, Stock: 0}
	Derive(&p)

	assert.True(t, p.FinalPrice.Equal(d("85.00")))
	assert.Equal(t, models.StockBucketOut, p.StockBucket)
}

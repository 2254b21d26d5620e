package catalog

import (
	"regexp"
	"strings"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// DiscountedPrice applies an integer discount percentage to a price,
// rounded to two fractional digits. A zero discount returns the price
// unchanged.
func DiscountedPrice(price decimal.Decimal, discount int) decimal.Decimal {
	if discount <= 0 {
		return price
	}
	cut := price.Mul(decimal.NewFromInt(int64(discount))).Div(hundred)
	return price.Sub(cut).Round(2)
}

// TruncatePrice truncates a price to two fractional digits, the form in
// which all prices are persisted.
func TruncatePrice(price decimal.Decimal) decimal.Decimal {
	return price.Truncate(2)
}

// StockBucket maps a stock count onto its display bucket.
func StockBucket(stock int) string {
	switch {
	case stock <= 0:
		return models.StockBucketOut
	case stock <= 10:
		return models.StockBucketLow
	default:
		return models.StockBucketIn
	}
}

// StockStats aggregates stock levels across the whole catalog.
type StockStats struct {
	TotalLive  int `json:"total_products"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// StockSummary derives the stock stat counts from an unpaginated scan of
// every product's stock value.
func StockSummary(stocks []int) StockStats {
	var s StockStats
	for _, stock := range stocks {
		if stock >= 0 {
			s.TotalLive++
		}
		if stock > 0 && stock <= 10 {
			s.LowStock++
		}
		if stock == 0 {
			s.OutOfStock++
		}
	}
	return s
}

// Slugify derives the human-facing lookup key from a product name:
// lowercased, non-word characters stripped, whitespace collapsed to hyphens.
// The same name always produces the same slug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	return s
}

// Derive fills in the computed display fields on a product.
func Derive(p *models.Product) {
	p.FinalPrice = DiscountedPrice(p.Price, p.Discount)
	p.StockBucket = StockBucket(p.Stock)
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/catalog"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"

	"github.com/shopspring/decimal"
)

// productRow is the raw shape of a products row. The list columns are
// JSON-encoded text with historically inconsistent contents, so they are
// scanned as bytes and normalized once, here at the store boundary.
type productRow struct {
	ID            int64           `db:"id"`
	Slug          string          `db:"slug"`
	Name          string          `db:"name"`
	Brand         string          `db:"brand"`
	Description   string          `db:"description"`
	SKU           string          `db:"sku"`
	Category      string          `db:"category"`
	Status        string          `db:"status"`
	Price         decimal.Decimal `db:"price"`
	Discount      int             `db:"discount"`
	DiscountPrice decimal.Decimal `db:"discount_price"`
	Stock         int             `db:"stock"`
	CareInfo      sql.NullString  `db:"care_instructions"`
	Sizes         []byte          `db:"sizes"`
	Materials     []byte          `db:"materials"`
	Colors        []byte          `db:"colors"`
	ImageURLs     []byte          `db:"image_urls"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (r *productRow) toProduct() models.Product {
	return models.Product{
		ID:            r.ID,
		Slug:          r.Slug,
		Name:          r.Name,
		Brand:         r.Brand,
		Description:   r.Description,
		SKU:           r.SKU,
		Category:      r.Category,
		Status:        r.Status,
		Price:         r.Price,
		Discount:      r.Discount,
		DiscountPrice: r.DiscountPrice,
		Stock:         r.Stock,
		CareInfo:      r.CareInfo.String,
		Sizes:         catalog.NormalizeStringList(r.Sizes),
		Materials:     catalog.NormalizeStringList(r.Materials),
		Colors:        catalog.NormalizeColors(r.Colors),
		Images:        catalog.NormalizeImageList(r.ImageURLs),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ProductQuery describes one page of the product list.
type ProductQuery struct {
	Offset int
	Limit  int
	Search string
	Status string
}

// ListProducts returns one page of products, newest first, plus the total
// count of rows matching the filters.
func (s *Store) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, int, error) {
	var conds []string
	var args []interface{}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if q.Status != "" && q.Status != "all" {
		args = append(args, q.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toProduct())
	}
	return products, total, nil
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	p := row.toProduct()
	return &p, nil
}

// GetProductBySlug retrieves a product by its slug, the human-facing key.
func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM products WHERE slug = $1", slug)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	p := row.toProduct()
	return &p, nil
}

// CreateProduct inserts a product and fills in its assigned id and timestamps.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	sizes, materials, colors, images, err := encodeLists(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products
			(slug, name, brand, description, sku, category, status, price,
			 discount, discount_price, stock, care_instructions,
			 sizes, materials, colors, image_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`

	row := s.db.QueryRowxContext(ctx, query,
		p.Slug, p.Name, p.Brand, p.Description, p.SKU, p.Category, p.Status,
		p.Price, p.Discount, p.DiscountPrice, p.Stock, p.CareInfo,
		sizes, materials, colors, images)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// UpdateProduct rewrites an existing product row.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	sizes, materials, colors, images, err := encodeLists(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE products SET
			slug = $1, name = $2, brand = $3, description = $4, sku = $5,
			category = $6, status = $7, price = $8, discount = $9,
			discount_price = $10, stock = $11, care_instructions = $12,
			sizes = $13, materials = $14, colors = $15, image_urls = $16,
			updated_at = NOW()
		WHERE id = $17`

	res, err := s.db.ExecContext(ctx, query,
		p.Slug, p.Name, p.Brand, p.Description, p.SKU, p.Category, p.Status,
		p.Price, p.Discount, p.DiscountPrice, p.Stock, p.CareInfo,
		sizes, materials, colors, images, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

// DeleteProduct removes a product by id.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetProductStocks returns the stock value of every product, unpaginated.
// Feeds the catalog stock summary.
func (s *Store) GetProductStocks(ctx context.Context) ([]int, error) {
	var stocks []int
	err := s.db.SelectContext(ctx, &stocks, "SELECT stock FROM products")
	return stocks, err
}

func encodeLists(p *models.Product) (sizes, materials, colors, images []byte, err error) {
	if sizes, err = json.Marshal(emptyIfNil(p.Sizes)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode sizes: %w", err)
	}
	if materials, err = json.Marshal(emptyIfNil(p.Materials)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode materials: %w", err)
	}
	cs := p.Colors
	if cs == nil {
		cs = []models.Color{}
	}
	if colors, err = json.Marshal(cs); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode colors: %w", err)
	}
	if images, err = json.Marshal(emptyIfNil(p.Images)); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode image urls: %w", err)
	}
	return sizes, materials, colors, images, nil
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

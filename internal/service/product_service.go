package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/broker"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/cache"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/catalog"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/storage"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/store"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MinProductImages is the fewest listing images a product may carry.
const MinProductImages = 3

// ProductService handles catalog business logic: the list/filter/paginate
// pipeline, derived display fields, and the two-phase create/update flow.
type ProductService struct {
	store    *store.Store
	cache    *cache.Cache
	uploader *storage.Uploader
	events   *broker.EventPublisher
	logger   *zap.Logger
	pageSize int
}

// NewProductService creates a new product service
func NewProductService(
	store *store.Store,
	cache *cache.Cache,
	uploader *storage.Uploader,
	events *broker.EventPublisher,
	pageSize int,
) *ProductService {
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &ProductService{
		store:    store,
		cache:    cache,
		uploader: uploader,
		events:   events,
		logger:   util.GetLogger(),
		pageSize: pageSize,
	}
}

// ProductListParams is the logical list request: one page of the catalog
// under a search/status filter.
type ProductListParams struct {
	Page   int
	Search string
	Status string
}

// ProductListResult is one page of shaped products.
type ProductListResult struct {
	Products   []models.Product `json:"products"`
	TotalCount int              `json:"total_count"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
}

// List serves one page of the product list, newest first, from cache when
// fresh. Derived fields are filled in on every product.
func (s *ProductService) List(ctx context.Context, p ProductListParams) (*ProductListResult, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.List")
	defer span.End()

	if p.Page < 1 {
		p.Page = 1
	}
	if p.Status == "" {
		p.Status = "all"
	}

	key := cache.ProductListKey(p.Page, s.pageSize, p.Search, p.Status)
	var result ProductListResult
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &result); err == nil && hit {
			util.CacheHitsTotal.WithLabelValues("products").Inc()
			return &result, nil
		}
		util.CacheMissesTotal.WithLabelValues("products").Inc()
	}

	offset, limit := catalog.Window(p.Page, s.pageSize)
	products, total, err := s.store.ListProducts(ctx, store.ProductQuery{
		Offset: offset,
		Limit:  limit,
		Search: p.Search,
		Status: p.Status,
	})
	if err != nil {
		return nil, err
	}

	for i := range products {
		catalog.Derive(&products[i])
	}

	result = ProductListResult{
		Products:   products,
		TotalCount: total,
		TotalPages: catalog.TotalPages(total, limit),
		Page:       p.Page,
	}

	util.ProductListQueries.Inc()
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, cache.ListFreshness); err != nil {
			s.logger.Warn("Failed to cache product list", zap.Error(err))
		}
	}
	return &result, nil
}

// StockStats serves the catalog-wide stock counts, cached independently of
// the paginated list for five minutes.
func (s *ProductService) StockStats(ctx context.Context) (*catalog.StockStats, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.StockStats")
	defer span.End()

	var stats catalog.StockStats
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cache.ProductStocksKey, &stats); err == nil && hit {
			util.CacheHitsTotal.WithLabelValues("product_stats").Inc()
			return &stats, nil
		}
		util.CacheMissesTotal.WithLabelValues("product_stats").Inc()
	}

	stocks, err := s.store.GetProductStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock levels: %w", err)
	}

	stats = catalog.StockSummary(stocks)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ProductStocksKey, stats, cache.StatsFreshness); err != nil {
			s.logger.Warn("Failed to cache stock stats", zap.Error(err))
		}
	}
	return &stats, nil
}

// GetByID retrieves one product with derived fields.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	catalog.Derive(p)
	return p, nil
}

// GetBySlug retrieves one product by its human-facing key.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	p, err := s.store.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	catalog.Derive(p)
	return p, nil
}

// ColorInput is one colorway with its image file to upload.
type ColorInput struct {
	Name  string
	Image storage.File
}

// CreateProductInput carries the add-product form.
type CreateProductInput struct {
	Name        string
	Brand       string
	Description string
	SKU         string
	Category    string
	Status      string
	CareInfo    string
	Price       decimal.Decimal
	Discount    int
	Stock       int
	Sizes       []string
	Materials   []string
	Images      []storage.File
	Colors      []ColorInput
}

func (in *CreateProductInput) validate() error {
	if err := validateProductFields(in.Name, in.Category, in.Price, in.Discount, in.Stock); err != nil {
		return err
	}
	if len(in.Images) < MinProductImages {
		return fmt.Errorf("upload at least %d images", MinProductImages)
	}
	return nil
}

func validateProductFields(name, category string, price decimal.Decimal, discount, stock int) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if category == "" {
		return fmt.Errorf("category is required")
	}
	if price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if discount < 0 || discount > 100 {
		return fmt.Errorf("discount must be between 0 and 100")
	}
	if stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}

// Create runs the two-phase add-product flow: stage every image upload,
// then write the row referencing only confirmed URLs. If the row write
// fails the staged objects are removed so nothing is orphaned.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Create")
	defer span.End()

	if err := in.validate(); err != nil {
		util.ProductWritesFailed.WithLabelValues("validation").Inc()
		return nil, err
	}

	imageURLs, colors, err := s.stageUploads(ctx, in.Images, in.Colors)
	if err != nil {
		util.ProductWritesFailed.WithLabelValues("upload").Inc()
		return nil, err
	}

	price := catalog.TruncatePrice(in.Price)
	product := &models.Product{
		Slug:          catalog.Slugify(in.Name),
		Name:          in.Name,
		Brand:         in.Brand,
		Description:   in.Description,
		SKU:           in.SKU,
		Category:      in.Category,
		Status:        defaultStatus(in.Status),
		Price:         price,
		Discount:      in.Discount,
		DiscountPrice: catalog.DiscountedPrice(price, in.Discount),
		Stock:         in.Stock,
		CareInfo:      in.CareInfo,
		Sizes:         in.Sizes,
		Materials:     in.Materials,
		Colors:        colors,
		Images:        imageURLs,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		util.ProductWritesFailed.WithLabelValues("db_error").Inc()
		s.cleanupStaged(imageURLs, colors)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("slug", product.Slug))

	s.publishProductEvent(ctx, models.EventTypeProductCreated, product)
	s.invalidateCatalog(ctx)

	catalog.Derive(product)
	return product, nil
}

// UpdateProductInput carries the edit-product form. KeepImageURLs are the
// already-persisted URLs the edit retained; new files are staged next to
// them using the same upload-then-substitute flow.
type UpdateProductInput struct {
	Name          string
	Brand         string
	Description   string
	SKU           string
	Category      string
	Status        string
	CareInfo      string
	Price         decimal.Decimal
	Discount      int
	Stock         int
	Sizes         []string
	Materials     []string
	KeepImageURLs []string
	NewImages     []storage.File
	KeepColors    []models.Color
	NewColors     []ColorInput
}

// Update rewrites a product, preserving any image URLs not replaced.
func (s *ProductService) Update(ctx context.Context, id int64, in UpdateProductInput) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Update")
	defer span.End()

	if _, err := s.store.GetProductByID(ctx, id); err != nil {
		return nil, err
	}

	if err := validateProductFields(in.Name, in.Category, in.Price, in.Discount, in.Stock); err != nil {
		util.ProductWritesFailed.WithLabelValues("validation").Inc()
		return nil, err
	}
	if len(in.KeepImageURLs)+len(in.NewImages) < MinProductImages {
		util.ProductWritesFailed.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("a product needs at least %d images", MinProductImages)
	}

	newURLs, newColors, err := s.stageUploads(ctx, in.NewImages, in.NewColors)
	if err != nil {
		util.ProductWritesFailed.WithLabelValues("upload").Inc()
		return nil, err
	}

	price := catalog.TruncatePrice(in.Price)
	product := &models.Product{
		ID:            id,
		Slug:          catalog.Slugify(in.Name),
		Name:          in.Name,
		Brand:         in.Brand,
		Description:   in.Description,
		SKU:           in.SKU,
		Category:      in.Category,
		Status:        defaultStatus(in.Status),
		Price:         price,
		Discount:      in.Discount,
		DiscountPrice: catalog.DiscountedPrice(price, in.Discount),
		Stock:         in.Stock,
		CareInfo:      in.CareInfo,
		Sizes:         in.Sizes,
		Materials:     in.Materials,
		Colors:        append(in.KeepColors, newColors...),
		Images:        append(in.KeepImageURLs, newURLs...),
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		util.ProductWritesFailed.WithLabelValues("db_error").Inc()
		s.cleanupStaged(newURLs, newColors)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	util.ProductsUpdatedTotal.Inc()
	s.logger.Info("Product updated", zap.Int64("product_id", id))

	s.publishProductEvent(ctx, models.EventTypeProductUpdated, product)
	s.invalidateCatalog(ctx)

	catalog.Derive(product)
	return product, nil
}

// Delete removes a product by id. A failed delete leaves cached lists
// untouched.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "ProductService.Delete")
	defer span.End()

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		util.ProductWritesFailed.WithLabelValues("delete").Inc()
		return err
	}

	util.ProductsDeletedTotal.Inc()
	s.logger.Info("Product deleted", zap.Int64("product_id", id))

	if s.events != nil {
		event := &models.ProductDeletedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeProductDeleted,
				Timestamp: time.Now(),
			},
			ProductID: id,
		}
		if err := s.events.PublishProductDeleted(ctx, event); err != nil {
			s.logger.Error("Failed to publish ProductDeleted event", zap.Error(err))
		}
	}

	s.invalidateCatalog(ctx)
	return nil
}

// stageUploads writes listing and colorway images concurrently and returns
// the confirmed URLs. Batches clean up after themselves on failure; a
// color-batch failure additionally unwinds the listing batch.
func (s *ProductService) stageUploads(ctx context.Context, images []storage.File, colors []ColorInput) ([]string, []models.Color, error) {
	start := time.Now()
	defer func() {
		util.ImageUploadLatency.Observe(time.Since(start).Seconds())
	}()

	var imageURLs []string
	if len(images) > 0 {
		urls, err := s.uploader.UploadAll(ctx, storage.FolderProducts, images)
		if err != nil {
			return nil, nil, fmt.Errorf("image upload failed: %w", err)
		}
		imageURLs = urls
	}

	withURLs := make([]models.Color, 0, len(colors))
	if len(colors) > 0 {
		files := make([]storage.File, len(colors))
		for i, c := range colors {
			files[i] = c.Image
		}
		urls, err := s.uploader.UploadAll(ctx, storage.FolderColors, files)
		if err != nil {
			s.uploader.Remove(context.Background(), imageURLs)
			return nil, nil, fmt.Errorf("color image upload failed: %w", err)
		}
		for i, c := range colors {
			withURLs = append(withURLs, models.Color{Name: c.Name, Image: urls[i]})
		}
	}

	return imageURLs, withURLs, nil
}

func (s *ProductService) cleanupStaged(imageURLs []string, colors []models.Color) {
	urls := append([]string{}, imageURLs...)
	for _, c := range colors {
		urls = append(urls, c.Image)
	}
	s.uploader.Remove(context.Background(), urls)
}

func (s *ProductService) publishProductEvent(ctx context.Context, eventType string, p *models.Product) {
	if s.events == nil {
		return
	}
	base := models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
	var err error
	switch eventType {
	case models.EventTypeProductCreated:
		err = s.events.PublishProductCreated(ctx, &models.ProductCreatedEvent{
			BaseEvent: base, ProductID: p.ID, Slug: p.Slug, Name: p.Name,
		})
	case models.EventTypeProductUpdated:
		err = s.events.PublishProductUpdated(ctx, &models.ProductUpdatedEvent{
			BaseEvent: base, ProductID: p.ID, Slug: p.Slug, Name: p.Name,
		})
	}
	if err != nil {
		s.logger.Error("Failed to publish product event",
			zap.String("type", eventType),
			zap.Error(err))
	}
}

func (s *ProductService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cache.ProductKeyPrefix+"*"); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, cache.DashboardStatsKey); err != nil {
		s.logger.Warn("Failed to invalidate dashboard stats", zap.Error(err))
	}
}

func defaultStatus(status string) string {
	if status == "" {
		return models.ProductStatusActive
	}
	return status
}

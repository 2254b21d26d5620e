package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/board"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/service"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/storage"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/store"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const maxUploadBytes = 32 << 20

// Handler contains HTTP handlers
type Handler struct {
	products *service.ProductService
	orders   *service.OrderService
	boards   *service.BoardService
	stats    *service.StatsService
	store    *store.Store
	pageSize int
}

// NewHandler creates a new HTTP handler
func NewHandler(
	products *service.ProductService,
	orders *service.OrderService,
	boards *service.BoardService,
	stats *service.StatsService,
	st *store.Store,
	pageSize int,
) *Handler {
	return &Handler{
		products: products,
		orders:   orders,
		boards:   boards,
		stats:    stats,
		store:    st,
		pageSize: pageSize,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(RequireAdmin(h.store))
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:key", h.getProduct)
		v1.POST("/products", h.createProduct)
		v1.PUT("/products/:key", h.updateProduct)
		v1.DELETE("/products/:key", h.deleteProduct)

		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.PATCH("/orders/:id/status", h.updateOrderStatus)

		v1.GET("/board", h.getBoard)
		v1.POST("/board/move", h.moveBoardCard)

		v1.GET("/customers", h.listCustomers)

		v1.GET("/stats/dashboard", h.dashboardStats)
		v1.GET("/stats/products", h.productStats)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listProducts serves one page of the product list.
func (h *Handler) listProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.products.List(c.Request.Context(), service.ProductListParams{
		Page:   page,
		Search: c.Query("search"),
		Status: c.DefaultQuery("status", "all"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getProduct looks a product up by numeric id or by slug.
func (h *Handler) getProduct(c *gin.Context) {
	key := c.Param("key")

	var product *models.Product
	var err error
	if id, parseErr := strconv.ParseInt(key, 10, 64); parseErr == nil {
		product, err = h.products.GetByID(c.Request.Context(), id)
	} else {
		product, err = h.products.GetBySlug(c.Request.Context(), key)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Product not found", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// createProduct handles the add-product form (multipart).
func (h *Handler) createProduct(c *gin.Context) {
	input, err := parseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form", "details": err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), *input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Failed to add product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// updateProduct handles the edit-product form (multipart).
func (h *Handler) updateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("key"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	input, err := parseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form", "details": err.Error()})
		return
	}

	update := service.UpdateProductInput{
		Name:          input.Name,
		Brand:         input.Brand,
		Description:   input.Description,
		SKU:           input.SKU,
		Category:      input.Category,
		Status:        input.Status,
		CareInfo:      input.CareInfo,
		Price:         input.Price,
		Discount:      input.Discount,
		Stock:         input.Stock,
		Sizes:         input.Sizes,
		Materials:     input.Materials,
		KeepImageURLs: c.PostFormArray("keep_image_urls"),
		NewImages:     input.Images,
		NewColors:     input.Colors,
	}
	for _, pair := range c.PostFormArray("keep_colors") {
		if color, ok := splitColorPair(pair); ok {
			update.KeepColors = append(update.KeepColors, color)
		}
	}

	product, err := h.products.Update(c.Request.Context(), id, update)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to update product", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// deleteProduct removes a product by id.
func (h *Handler) deleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("key"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to delete product", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// listOrders serves one page of the order list.
func (h *Handler) listOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.orders.List(c.Request.Context(), service.OrderListParams{
		Page:    page,
		Search:  c.Query("search"),
		Status:  c.DefaultQuery("status", "all"),
		Payment: c.DefaultQuery("payment", "all"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load orders",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, items, err := h.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Order not found", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": items,
	})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateOrderStatus transitions an order to a new status.
func (h *Handler) updateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to update order status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

// getBoard serves the kanban board.
func (h *Handler) getBoard(c *gin.Context) {
	view, err := h.boards.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load board",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

type moveCardRequest struct {
	OrderID int64  `json:"order_id" binding:"required"`
	Column  string `json:"column" binding:"required"`
}

// moveBoardCard persists a card drop onto a column.
func (h *Handler) moveBoardCard(c *gin.Context) {
	var req moveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	card, err := h.boards.Move(c.Request.Context(), req.OrderID, board.Column(req.Column))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to move card", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, card)
}

// listCustomers serves one page of the customer list.
func (h *Handler) listCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.stats.Customers(c.Request.Context(), page, c.Query("search"), h.pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load customers",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// dashboardStats serves the dashboard widgets.
func (h *Handler) dashboardStats(c *gin.Context) {
	stats, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load stats",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// productStats serves the catalog-wide stock counts.
func (h *Handler) productStats(c *gin.Context) {
	stats, err := h.products.StockStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load product stats",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// parseProductForm decodes the shared multipart fields of the add/edit
// product forms.
func parseProductForm(c *gin.Context) (*service.CreateProductInput, error) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(c.DefaultPostForm("price", "0"))
	if err != nil {
		return nil, err
	}
	discount, _ := strconv.Atoi(c.DefaultPostForm("discount", "0"))
	stock, _ := strconv.Atoi(c.DefaultPostForm("stock", "0"))

	input := &service.CreateProductInput{
		Name:        c.PostForm("name"),
		Brand:       c.PostForm("brand"),
		Description: c.PostForm("description"),
		SKU:         c.PostForm("sku"),
		Category:    c.PostForm("category"),
		Status:      c.PostForm("status"),
		CareInfo:    c.PostForm("care_instructions"),
		Price:       price,
		Discount:    discount,
		Stock:       stock,
		Sizes:       c.PostFormArray("sizes"),
		Materials:   c.PostFormArray("materials"),
	}

	images, err := readFormFiles(c, "images")
	if err != nil {
		return nil, err
	}
	input.Images = images

	colorNames := c.PostFormArray("color_names")
	colorFiles, err := readFormFiles(c, "color_images")
	if err != nil {
		return nil, err
	}
	for i, f := range colorFiles {
		name := ""
		if i < len(colorNames) {
			name = colorNames[i]
		}
		input.Colors = append(input.Colors, service.ColorInput{Name: name, Image: f})
	}

	return input, nil
}

// splitColorPair decodes a kept colorway sent as "name|url".
func splitColorPair(pair string) (models.Color, bool) {
	name, url, found := strings.Cut(pair, "|")
	if !found || url == "" {
		return models.Color{}, false
	}
	return models.Color{Name: name, Image: url}, true
}

func readFormFiles(c *gin.Context, field string) ([]storage.File, error) {
	form := c.Request.MultipartForm
	if form == nil {
		return nil, nil
	}

	var files []storage.File
	for _, header := range form.File[field] {
		f, err := readFormFile(header)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func readFormFile(header *multipart.FileHeader) (storage.File, error) {
	src, err := header.Open()
	if err != nil {
		return storage.File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return storage.File{}, err
	}

	return storage.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/cache"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/models"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/store"
	"github.com/kelashcheehal/rozana-bazar-admin-panel/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	recentOrdersCount = 5
	revenueMonths     = 6
)

// StatsService serves the dashboard widgets: headline counts, revenue,
// recent orders, and the trailing revenue-by-month chart.
type StatsService struct {
	store  *store.Store
	cache  *cache.Cache
	logger *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(store *store.Store, cache *cache.Cache) *StatsService {
	return &StatsService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// MonthRevenue is one bar of the revenue chart.
type MonthRevenue struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// DashboardStats is everything the dashboard landing page renders.
type DashboardStats struct {
	Products       int             `json:"products"`
	Orders         int             `json:"orders"`
	Customers      int             `json:"customers"`
	Revenue        decimal.Decimal `json:"revenue"`
	RecentOrders   []models.Order  `json:"recent_orders"`
	RevenueByMonth []MonthRevenue  `json:"revenue_by_month"`
}

// Dashboard serves the dashboard aggregates, cached for five minutes.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	ctx, span := util.StartSpan(ctx, "StatsService.Dashboard")
	defer span.End()

	var stats DashboardStats
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cache.DashboardStatsKey, &stats); err == nil && hit {
			util.CacheHitsTotal.WithLabelValues("dashboard").Inc()
			return &stats, nil
		}
		util.CacheMissesTotal.WithLabelValues("dashboard").Inc()
	}

	products, err := s.store.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	orders, err := s.store.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	customers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	recent, err := s.store.GetRecentOrders(ctx, recentOrdersCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	totals, err := s.store.GetOrderTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order totals: %w", err)
	}

	revenue := decimal.Zero
	for _, t := range totals {
		revenue = revenue.Add(t.Amount)
	}

	stats = DashboardStats{
		Products:       products,
		Orders:         orders,
		Customers:      customers,
		Revenue:        revenue,
		RecentOrders:   recent,
		RevenueByMonth: RevenueByMonth(totals, time.Now(), revenueMonths),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.DashboardStatsKey, stats, cache.StatsFreshness); err != nil {
			s.logger.Warn("Failed to cache dashboard stats", zap.Error(err))
		}
	}
	return &stats, nil
}

// CustomerListResult is one page of the customer list.
type CustomerListResult struct {
	Customers  []models.User `json:"customers"`
	TotalCount int           `json:"total_count"`
	TotalPages int           `json:"total_pages"`
	Page       int           `json:"page"`
}

// Customers serves one page of the customer list, newest first.
func (s *StatsService) Customers(ctx context.Context, page int, search string, pageSize int) (*CustomerListResult, error) {
	ctx, span := util.StartSpan(ctx, "StatsService.Customers")
	defer span.End()

	if page < 1 {
		page = 1
	}

	key := cache.CustomerListKey(page, pageSize, search)
	var result CustomerListResult
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &result); err == nil && hit {
			util.CacheHitsTotal.WithLabelValues("customers").Inc()
			return &result, nil
		}
		util.CacheMissesTotal.WithLabelValues("customers").Inc()
	}

	offset := (page - 1) * pageSize
	users, total, err := s.store.ListUsers(ctx, store.UserQuery{
		Offset: offset,
		Limit:  pageSize,
		Search: search,
	})
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	result = CustomerListResult{
		Customers:  users,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, cache.ListFreshness); err != nil {
			s.logger.Warn("Failed to cache customer list", zap.Error(err))
		}
	}
	return &result, nil
}

// RevenueByMonth buckets order amounts into the trailing months up to now,
// oldest first. Months with no orders render as zero bars.
func RevenueByMonth(totals []store.OrderTotal, now time.Time, months int) []MonthRevenue {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := make([]MonthRevenue, 0, months)
	index := make(map[string]int, months)
	for i := months - 1; i >= 0; i-- {
		m := firstOfMonth.AddDate(0, -i, 0)
		index[m.Format("2006-01")] = len(out)
		out = append(out, MonthRevenue{Name: m.Format("Jan"), Value: decimal.Zero})
	}

	for _, t := range totals {
		key := t.CreatedAt.Format("2006-01")
		if i, ok := index[key]; ok {
			out[i].Value = out[i].Value.Add(t.Amount)
		}
	}
	return out
}

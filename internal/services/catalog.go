package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/window"
	"github.com/aaravmahajanofficial/storefront/pkg/shopapi"
)

// Storefront sections served as carousel windows.
const (
	SectionFeatured    = "featured"
	SectionBestSelling = "best-selling"
	SectionFlashSale   = "flash-sale"
	SectionExplore     = "explore"
	SectionCategories  = "categories"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type CatalogService interface {
	ListProducts(ctx context.Context, query models.ProductQuery) (*models.PaginatedResponse, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	Section(ctx context.Context, name string, start, size, step int) (*models.SectionResponse, error)
	FlashSale(ctx context.Context, start, size, step int) (*models.FlashSaleResponse, error)
	Countries(ctx context.Context) ([]models.Country, error)
}

type catalogService struct {
	api   shopapi.API
	cache cache.Cache
	cfg   *config.Config
	now   func() time.Time
}

func NewCatalogService(cfg *config.Config, api shopapi.API, c cache.Cache) CatalogService {
	return &catalogService{api: api, cache: c, cfg: cfg, now: time.Now}
}

// ListProducts pages through the catalog. Searches and category filters are
// served by their dedicated backend endpoints and paged here.
func (s *catalogService) ListProducts(ctx context.Context, query models.ProductQuery) (*models.PaginatedResponse, error) {

	query.Search = utils.Sanitize(query.Search)
	query.Category = utils.Sanitize(query.Category)

	if query.Page < 1 {
		query.Page = 1
	}

	if query.PageSize < 1 {
		query.PageSize = defaultPageSize
	}

	query.PageSize = min(query.PageSize, maxPageSize)

	var (
		products []models.Product
		err      error
	)

	switch {
	case query.Search != "":
		products, err = s.api.SearchProducts(ctx, query.Search)
	case query.Category != "":
		products, err = s.api.ProductsByCategory(ctx, query.Category)
	default:
		page, err := s.api.ListProducts(ctx, query)
		if err != nil {
			return nil, upstreamError(err, "Failed to fetch products")
		}

		return &models.PaginatedResponse{
			Data:     nonNil(page.Products),
			Total:    page.Total,
			Page:     query.Page,
			PageSize: query.PageSize,
		}, nil
	}

	if err != nil {
		return nil, upstreamError(err, "Failed to fetch products")
	}

	if query.Search != "" && query.Category != "" {
		products = slices.DeleteFunc(products, func(p models.Product) bool {
			return !strings.EqualFold(p.Category, query.Category)
		})
	}

	from := min((query.Page-1)*query.PageSize, len(products))
	to := min(from+query.PageSize, len(products))

	return &models.PaginatedResponse{
		Data:     nonNil(products[from:to]),
		Total:    len(products),
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.BadRequestError("Product id is required")
	}

	product, err := cached(ctx, s.cache, cache.Key(cache.ProductKeyPrefix, id), s.cfg.Cache.ProductTTL,
		func(ctx context.Context) (*models.Product, error) {
			return s.api.GetProduct(ctx, id)
		})
	if err != nil {
		if shopapi.IsNotFound(err) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, upstreamError(err, "Failed to fetch product")
	}

	return product, nil
}

func (s *catalogService) Section(ctx context.Context, name string, start, size, step int) (*models.SectionResponse, error) {

	if size <= 0 {
		size = s.cfg.Storefront.SectionSize
	}

	if name == SectionCategories {
		products, err := s.allProducts(ctx)
		if err != nil {
			return nil, err
		}

		return sectionOf(name, window.Of(categoriesOf(products), start, size, step)), nil
	}

	var (
		products []models.Product
		err      error
	)

	switch name {
	case SectionFeatured:
		products, err = cached(ctx, s.cache, cache.Key(cache.CatalogKeyPrefix, SectionFeatured), s.cfg.Cache.ProductTTL,
			func(ctx context.Context) ([]models.Product, error) {
				return s.api.FeaturedProducts(ctx)
			})
		if err != nil {
			return nil, upstreamError(err, "Failed to fetch featured products")
		}
	case SectionBestSelling:
		products, err = s.allProducts(ctx)
		products = bestSelling(products)
	case SectionFlashSale:
		products, err = s.allProducts(ctx)
		products = flashSale(products)
	case SectionExplore:
		products, err = s.allProducts(ctx)
	default:
		return nil, errors.NotFoundError("Unknown storefront section").WithDetail(name)
	}

	if err != nil {
		return nil, err
	}

	return sectionOf(name, window.Of(nonNil(products), start, size, step)), nil
}

// FlashSale is the flash-sale section together with the time left on the sale.
func (s *catalogService) FlashSale(ctx context.Context, start, size, step int) (*models.FlashSaleResponse, error) {

	section, err := s.Section(ctx, SectionFlashSale, start, size, step)
	if err != nil {
		return nil, err
	}

	return &models.FlashSaleResponse{
		Countdown: models.NewCountdown(s.cfg.Storefront.FlashSaleEndsAt, s.now()),
		Window:    section,
	}, nil
}

func (s *catalogService) Countries(ctx context.Context) ([]models.Country, error) {

	countries, err := cached(ctx, s.cache, cache.Key(cache.CountryKeyPrefix, "all"), s.cfg.Cache.DefaultTTL,
		func(ctx context.Context) ([]models.Country, error) {
			return s.api.Countries(ctx)
		})
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch countries")
	}

	return nonNil(countries), nil
}

func (s *catalogService) allProducts(ctx context.Context) ([]models.Product, error) {

	products, err := cached(ctx, s.cache, cache.Key(cache.CatalogKeyPrefix, "all"), s.cfg.Cache.ProductTTL,
		func(ctx context.Context) ([]models.Product, error) {
			return shopapi.AllProducts(ctx, s.api, shopapi.CatalogPageSize)
		})
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch products")
	}

	return products, nil
}

// bestSelling orders by units sold, highest first, keeping catalog order on ties.
func bestSelling(products []models.Product) []models.Product {
	out := slices.Clone(products)
	slices.SortStableFunc(out, func(a, b models.Product) int {
		return cmp.Compare(b.Sold, a.Sold)
	})

	return out
}

// flashSale keeps discounted products, deepest discount first.
func flashSale(products []models.Product) []models.Product {
	out := slices.DeleteFunc(slices.Clone(products), func(p models.Product) bool {
		return !p.HasDiscount()
	})
	slices.SortStableFunc(out, func(a, b models.Product) int {
		return b.Discount.Cmp(a.Discount)
	})

	return out
}

func categoriesOf(products []models.Product) []models.Category {
	counts := make(map[string]int)
	for _, p := range products {
		if p.Category != "" {
			counts[p.Category]++
		}
	}

	categories := make([]models.Category, 0, len(counts))
	for name, count := range counts {
		categories = append(categories, models.Category{Name: name, Count: count})
	}

	slices.SortFunc(categories, func(a, b models.Category) int {
		return strings.Compare(a.Name, b.Name)
	})

	return categories
}

func sectionOf[T any](name string, w window.Window[T]) *models.SectionResponse {
	return &models.SectionResponse{
		Section: name,
		Items:   w.Items,
		Start:   w.Start,
		Next:    w.Next,
		Prev:    w.Prev,
		Size:    w.Size,
		Total:   w.Total,
	}
}

// cached reads key from c, falling back to load and storing its result.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {

	logger := middleware.LoggerFromContext(ctx)

	var value T

	found, err := c.Get(ctx, key, &value)
	if err != nil {
		logger.Warn("Cache read failed", "key", key, "error", err)
	}

	if found {
		return value, nil
	}

	value, err = load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("Cache write failed", "key", key, "error", err)
	}

	return value, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}

package shopapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

const (
	// CatalogPageSize is the page size AllProducts asks for.
	CatalogPageSize = 1000
	// maxCatalogPages stops AllProducts when a backend's total never converges.
	maxCatalogPages = 100
)

// ProductPage is the paged product listing.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

func (c *Client) ListProducts(ctx context.Context, query models.ProductQuery) (*ProductPage, error) {
	q := url.Values{}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(query.PageSize))
	}
	if query.Category != "" {
		q.Set("category", query.Category)
	}
	if query.Search != "" {
		q.Set("search", query.Search)
	}

	var page ProductPage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products", query: q}, &page); err != nil {
		return nil, err
	}

	if page.Products == nil {
		page.Products = []models.Product{}
	}

	return &page, nil
}

// AllProducts reads the whole catalog page by page until the backend's total
// is reached or a page comes back empty.
func AllProducts(ctx context.Context, api API, pageSize int) ([]models.Product, error) {
	if pageSize <= 0 {
		pageSize = CatalogPageSize
	}

	products := []models.Product{}

	for page := 1; page <= maxCatalogPages; page++ {
		res, err := api.ListProducts(ctx, models.ProductQuery{Page: page, PageSize: pageSize})
		if err != nil {
			return nil, err
		}

		products = append(products, res.Products...)

		if len(res.Products) == 0 || len(products) >= res.Total {
			break
		}
	}

	return products, nil
}

func (c *Client) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return c.productList(ctx, request{method: http.MethodGet, path: "/products/featured"})
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return c.productList(ctx, request{method: http.MethodGet, path: "/products/category/" + url.PathEscape(category)})
}

func (c *Client) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	return c.productList(ctx, request{method: http.MethodGet, path: "/products/search", query: url.Values{"q": {term}}})
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products/" + url.PathEscape(id)}, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// productList accepts a bare array as well as {"products": [...]}.
func (c *Client) productList(ctx context.Context, req request) ([]models.Product, error) {
	var raw rawList
	if err := c.do(ctx, req, &raw); err != nil {
		return nil, err
	}

	var products []models.Product
	if err := raw.into("products", &products); err != nil {
		return nil, err
	}

	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Pages through the catalog. search and category narrow the list; both may be combined.
//	@Tags			Products
//	@Produce		json
//	@Param			page		query		int													false	"Page number (default: 1)"					minimum(1)
//	@Param			pageSize	query		int													false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Param			category	query		string												false	"Category name"
//	@Param			search		query		string												false	"Free text search"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Product}	"Products"
//	@Failure		502			{object}	response.ErrorResponse								"Commerce backend error"
//	@Router			/products [get]
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		query := models.ProductQuery{
			Page:     queryInt(r, "page", 1),
			PageSize: queryInt(r, "pageSize", 0),
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("search"),
		}

		products, err := h.catalogService.ListProducts(r.Context(), query)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// GetProduct godoc
//	@Summary		Get a product
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		502	{object}	response.ErrorResponse	"Commerce backend error"
//	@Router			/products/{id} [get]
func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		product, err := h.catalogService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// Section godoc
//	@Summary		Get a storefront section
//	@Description	Returns one carousel window of a home page section. Pass the returned next (or prev) as start to move; it wraps at either end.
//	@Tags			Storefront
//	@Produce		json
//	@Param			section	path		string					true	"Section"	Enums(featured, best-selling, flash-sale, explore, categories)
//	@Param			start	query		int						false	"Window start index (default: 0)"
//	@Param			size	query		int						false	"Window size (default: configured section size)"
//	@Param			step	query		int						false	"Items to advance by (default: a full window)"
//	@Success		200		{object}	models.SectionResponse	"Section window"
//	@Failure		404		{object}	response.ErrorResponse	"Unknown section"
//	@Failure		502		{object}	response.ErrorResponse	"Commerce backend error"
//	@Router			/storefront/sections/{section} [get]
func (h *CatalogHandler) Section() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		name := r.PathValue("section")

		section, err := h.catalogService.Section(r.Context(), name,
			queryInt(r, "start", 0), queryInt(r, "size", 0), queryInt(r, "step", 0))
		if err != nil {
			logger.Warn("Failed to get section", slog.String("section", name), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, section)
	}
}

// FlashSale godoc
//	@Summary		Get the flash sale
//	@Description	Discounted products with the time left until the sale ends.
//	@Tags			Storefront
//	@Produce		json
//	@Param			start	query		int							false	"Window start index (default: 0)"
//	@Param			size	query		int							false	"Window size"
//	@Param			step	query		int							false	"Items to advance by"
//	@Success		200		{object}	models.FlashSaleResponse	"Flash sale"
//	@Failure		502		{object}	response.ErrorResponse		"Commerce backend error"
//	@Router			/storefront/flash-sale [get]
func (h *CatalogHandler) FlashSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sale, err := h.catalogService.FlashSale(r.Context(),
			queryInt(r, "start", 0), queryInt(r, "size", 0), queryInt(r, "step", 0))
		if err != nil {
			logger.Error("Failed to get flash sale", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sale)
	}
}

// Countries godoc
//	@Summary		List shipping countries
//	@Tags			Storefront
//	@Produce		json
//	@Success		200	{array}		models.Country			"Countries"
//	@Failure		502	{object}	response.ErrorResponse	"Commerce backend error"
//	@Router			/countries [get]
func (h *CatalogHandler) Countries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		countries, err := h.catalogService.Countries(r.Context())
		if err != nil {
			logger.Error("Failed to list countries", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, countries)
	}
}

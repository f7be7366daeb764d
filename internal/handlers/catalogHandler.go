package handlers

import (
	"errors"
	"net/http"

	"github.com/swippe/quickcommerce/internal/catalog"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	_catalog *catalog.Service
	logCH    *logger_i.Logger
)

func InitCatalogHandler(catalogService *catalog.Service) {
	_catalog = catalogService
	logCH = logger_i.NewLogger("CatalogHandler")
}

// ListProductsHandler godoc
// @Summary      Browse the catalog
// @Description  Lists products filtered by category, brand and a name search, best rated first.
// @Tags         Catalog
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        brand     query     string  false  "Brand filter"
// @Param        search    query     string  false  "Name or brand contains"
// @Success      200       {array}   catalogModel.Product
// @Router       /api/products [get]
func ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := _catalog.ListProducts(r.Context(), q.Get("category"), q.Get("brand"), q.Get("search"))
	if err != nil {
		logCH.Error("Product listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list products")
		return
	}
	writeJsonResponse(w, http.StatusOK, products)
}

// GetProductHandler godoc
// @Summary      Product detail
// @Description  One product plus related items from the same category.
// @Tags         Catalog
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  catalog.ProductDetail
// @Failure      404  {object}  handlers.errorBody
// @Router       /api/products/{id} [get]
func GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	detail, err := _catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		logCH.Error("Product lookup failed", "productId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load product")
		return
	}
	writeJsonResponse(w, http.StatusOK, detail)
}

// SearchHandler godoc
// @Summary      Keyword product search
// @Description  Relevance-ranked LIKE search over names, brands and categories.
// @Tags         Catalog
// @Produce      json
// @Param        q    query     string  true  "Search query"
// @Success      200  {array}   catalogModel.Product
// @Failure      400  {object}  handlers.errorBody
// @Router       /api/search [get]
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	results, err := _catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, catalog.ErrQueryTooShort) {
			writeError(w, http.StatusBadRequest, "search query too short")
			return
		}
		logCH.Error("Search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, results)
}

// CategoriesHandler godoc
// @Summary      List categories
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/categories [get]
func CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := _catalog.Categories(r.Context())
	if err != nil {
		logCH.Error("Category listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list categories")
		return
	}
	writeJsonResponse(w, http.StatusOK, categories)
}

// BrandsHandler godoc
// @Summary      List brands
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/brands [get]
func BrandsHandler(w http.ResponseWriter, r *http.Request) {
	brands, err := _catalog.Brands(r.Context())
	if err != nil {
		logCH.Error("Brand listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list brands")
		return
	}
	writeJsonResponse(w, http.StatusOK, brands)
}

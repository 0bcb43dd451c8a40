package controllers

import (
	"net/http"
	"strconv"

	"go-storefront/catalog"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// ProductController handles product-related requests
type ProductController struct {
	Catalog *catalog.Catalog
	log     zerolog.Logger
}

// NewProductController creates a new ProductController
func NewProductController(c *catalog.Catalog, log zerolog.Logger) *ProductController {
	return &ProductController{Catalog: c, log: log}
}

// GetProducts lists the shop, filtered by category and search and sorted
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	featured, _ := strconv.ParseBool(q.Get("featured"))

	products, err := pc.Catalog.List(r.Context(), catalog.Query{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Featured: featured,
		Limit:    limit,
		Sort:     q.Get("sort"),
	})
	if err != nil {
		respondError(w, pc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, products)
}

// GetFeatured lists featured products for the home page
func (pc *ProductController) GetFeatured(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	products, err := pc.Catalog.Featured(r.Context(), limit)
	if err != nil {
		respondError(w, pc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	detail, err := pc.Catalog.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, pc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, detail)
}

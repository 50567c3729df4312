package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"figure-forge-backend/internal/models"
	"figure-forge-backend/internal/supabase"
)

const defaultProductLimit = 24

// ProductsHandler serves the read-only catalog: active products and
// categories. Listing is a plain query; the interesting write path lives in
// the publication saga.
type ProductsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewProductsHandler(dbClient *supabase.DatabaseClient) *ProductsHandler {
	return &ProductsHandler{
		dbClient: dbClient,
	}
}

// List godoc
// @Summary     List active products
// @Tags        products
// @Produce     json
// @Param       category_id query int false "Filter by category"
// @Param       limit query int false "Max results (default 24)"
// @Success     200 {object} models.ProductListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("category_id"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		limit = defaultProductLimit
	}

	products, err := h.dbClient.ListActiveProducts(categoryID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list products", Message: err.Error()})
		return
	}

	resp := models.ProductListResponse{Products: make([]models.ProductResponse, len(products))}
	for i := range products {
		resp.Products[i] = productResponse(&products[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary     Get one product
// @Tags        products
// @Produce     json
// @Param       product_id path string true "Product ID (UUID)"
// @Success     200 {object} models.ProductResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /products/{product_id} [get]
func (h *ProductsHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.dbClient.GetProduct(productID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get product", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, productResponse(product))
}

// ListCategories godoc
// @Summary     List categories
// @Tags        products
// @Produce     json
// @Success     200 {object} models.CategoryListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /categories [get]
func (h *ProductsHandler) ListCategories(c *gin.Context) {
	categories, err := h.dbClient.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list categories", Message: err.Error()})
		return
	}

	resp := models.CategoryListResponse{Categories: make([]models.CategoryResponse, len(categories))}
	for i, category := range categories {
		resp.Categories[i] = models.CategoryResponse{
			ID:   category.ID,
			Name: category.Name,
		}
		if category.Description.Valid {
			resp.Categories[i].Description = category.Description.String
		}
	}
	c.JSON(http.StatusOK, resp)
}

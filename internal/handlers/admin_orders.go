package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"figure-forge-backend/internal/models"
	"figure-forge-backend/internal/services"
)

// AdminOrdersHandler exposes the operator actions: quoting, status changes,
// completed-image upload, and publication of a completed order as a catalog
// product. All routes sit behind the admin-role middleware; the services
// check the operator flag again themselves.
type AdminOrdersHandler struct {
	workflow    *services.OrderWorkflowService
	publication *services.PublicationService
}

func NewAdminOrdersHandler(workflow *services.OrderWorkflowService, publication *services.PublicationService) *AdminOrdersHandler {
	return &AdminOrdersHandler{
		workflow:    workflow,
		publication: publication,
	}
}

// List godoc
// @Summary     List custom orders (operator)
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       status query string false "Filter by status"
// @Success     200 {object} models.OrderListResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /admin/orders [get]
func (h *AdminOrdersHandler) List(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	orders, err := h.workflow.ListOrders(actorFromContext(c), status)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.OrderListResponse{Orders: make([]models.OrderResponse, len(orders))}
	for i := range orders {
		resp.Orders[i] = orderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, resp)
}

// ProvideQuote godoc
// @Summary     Provide a quote for an order
// @Description Sets the quoted price and moves the order to quote_provided. No status precondition applies.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.ProvideQuoteRequest true "Quoted price"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id}/quote [post]
func (h *AdminOrdersHandler) ProvideQuote(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	var req models.ProvideQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.workflow.ProvideQuote(actorFromContext(c), orderID, req.QuotedPrice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse(order))
}

// UpdateStatus godoc
// @Summary     Change an order's status
// @Description Moves the order to any member of the status enumeration; no transition graph is enforced.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.UpdateStatusRequest true "New status"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id}/status [put]
func (h *AdminOrdersHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.workflow.SetStatus(actorFromContext(c), orderID, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse(order))
}

// CompleteWithImages godoc
// @Summary     Upload completed images
// @Description Uploads 1-5 completed images (overwrite allowed) and unconditionally moves the order to completed.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       images formData file true "Completed images (1-5, max 6MB each)"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id}/completed-images [post]
func (h *AdminOrdersHandler) CompleteWithImages(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse multipart form", Message: err.Error()})
		return
	}

	images, err := readImageFiles(c.Request.MultipartForm.File["images"])
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read images", Message: err.Error()})
		return
	}

	order, err := h.workflow.CompleteWithImages(actorFromContext(c), orderID, images)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse(order))
}

// Publish godoc
// @Summary     Publish a completed order as a catalog product
// @Description Creates the product, uploads its images, backfills the image list, then best-effort links the order. A failed link still returns the product id, with a warning.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       name formData string true "Product name"
// @Param       description formData string true "Product description"
// @Param       base_price formData string true "Base price (> 0)"
// @Param       painting_price formData string true "Painting price (>= 0)"
// @Param       stock_quantity formData int true "Stock quantity (>= 0)"
// @Param       category_id formData int true "Category id"
// @Param       images formData file true "Product images (1-5, max 6MB each)"
// @Success     201 {object} models.PublishResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /admin/orders/{order_id}/publish [post]
func (h *AdminOrdersHandler) Publish(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse multipart form", Message: err.Error()})
		return
	}

	var req models.PublishProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid form fields", Message: err.Error()})
		return
	}

	basePrice, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid base_price", Message: err.Error()})
		return
	}
	paintingPrice := decimal.Zero
	if req.PaintingPrice != "" {
		paintingPrice, err = decimal.NewFromString(req.PaintingPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid painting_price", Message: err.Error()})
			return
		}
	}

	images, err := readImageFiles(c.Request.MultipartForm.File["images"])
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read images", Message: err.Error()})
		return
	}

	result, err := h.publication.Publish(actorFromContext(c), orderID, services.PublishProductInput{
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     basePrice,
		PaintingPrice: paintingPrice,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		Images:        images,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.PublishResponse{
		ProductID: result.ProductID.String(),
		Warnings:  result.Warnings,
	})
}

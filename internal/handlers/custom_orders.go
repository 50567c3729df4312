package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"figure-forge-backend/internal/config"
	"figure-forge-backend/internal/models"
	"figure-forge-backend/internal/services"
)

type CustomOrdersHandler struct {
	intake   *services.IntakeService
	workflow *services.OrderWorkflowService
	cfg      *config.Config
}

func NewCustomOrdersHandler(intake *services.IntakeService, workflow *services.OrderWorkflowService, cfg *config.Config) *CustomOrdersHandler {
	return &CustomOrdersHandler{
		intake:   intake,
		workflow: workflow,
		cfg:      cfg,
	}
}

// Submit godoc
// @Summary     Submit a custom fabrication order
// @Description Uploads the source image and optional reference images, then creates the order with status pending_review.
// @Tags        custom-orders
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       description formData string true "What to fabricate (min 10 characters)"
// @Param       size_preference formData string true "Preferred size"
// @Param       source_image formData file true "Source image (max 6MB)"
// @Param       reference_images formData file false "Optional reference images (max 6MB each)"
// @Success     201 {object} models.SubmitOrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /custom-orders [post]
func (h *CustomOrdersHandler) Submit(c *gin.Context) {
	actor := actorFromContext(c)

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}
	form := c.Request.MultipartForm

	sourceHeaders := form.File["source_image"]
	if len(sourceHeaders) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "source_image file is required"})
		return
	}
	sourceImage, err := readImageFile(sourceHeaders[0])
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read source image", Message: err.Error()})
		return
	}

	referenceImages, err := readImageFiles(form.File["reference_images"])
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read reference images", Message: err.Error()})
		return
	}

	orderID, err := h.intake.Submit(services.SubmitOrderInput{
		RequesterID:     actor.ID,
		Description:     c.PostForm("description"),
		SizePreference:  c.PostForm("size_preference"),
		SourceImage:     sourceImage,
		ReferenceImages: referenceImages,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SubmitOrderResponse{
		OrderID: orderID.String(),
		Status:  string(models.StatusPendingReview),
	})
}

// List godoc
// @Summary     List own custom orders
// @Tags        custom-orders
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OrderListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /custom-orders [get]
func (h *CustomOrdersHandler) List(c *gin.Context) {
	actor := actorFromContext(c)
	// Requesters always get their own orders here, operator or not.
	orders, err := h.workflow.ListOrders(services.Actor{ID: actor.ID}, "")
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

// Get godoc
// @Summary     Get one custom order
// @Tags        custom-orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.OrderResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /custom-orders/{order_id} [get]
func (h *CustomOrdersHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.workflow.GetOrder(actorFromContext(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse(order))
}

// Images godoc
// @Summary     Signed read URLs for an order's images
// @Description Issues time-limited read URLs for the order's source, reference, and completed images.
// @Tags        custom-orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.OrderImagesResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /custom-orders/{order_id}/images [get]
func (h *CustomOrdersHandler) Images(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	source, reference, completed, err := h.workflow.OrderImages(actorFromContext(c), orderID, h.cfg.SignedURLTTLSeconds)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.OrderImagesResponse{
		OrderID: orderID.String(),
		Source:  models.SignedImageResponse{Path: source.Path, SignedURL: source.SignedURL},
	}
	for _, img := range reference {
		resp.Reference = append(resp.Reference, models.SignedImageResponse{Path: img.Path, SignedURL: img.SignedURL})
	}
	for _, img := range completed {
		resp.Completed = append(resp.Completed, models.SignedImageResponse{Path: img.Path, SignedURL: img.SignedURL})
	}
	c.JSON(http.StatusOK, resp)
}

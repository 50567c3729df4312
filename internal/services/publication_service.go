package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"figure-forge-backend/internal/models"
	"figure-forge-backend/internal/supabase"
)

// PublicationService converts a completed custom order into a catalog
// product. The saga's compensation policy is asymmetric on purpose:
//
//   - product creation and image uploads roll back together (a failed upload
//     deletes the product row);
//   - the image-list backfill fails forward (a half-linked product beats
//     losing uploaded assets);
//   - the order cross-link is best effort (the product is independently
//     valid in the catalog, so a failed link is a warning, not a failure).
type PublicationService struct {
	store    ObjectStore
	orders   OrderStore
	products ProductStore
	notifier OrderNotifier
	ids      func() uuid.UUID
}

func NewPublicationService(store ObjectStore, orders OrderStore, products ProductStore, notifier OrderNotifier) *PublicationService {
	return &PublicationService{
		store:    store,
		orders:   orders,
		products: products,
		notifier: notifier,
		ids:      uuid.New,
	}
}

type PublishProductInput struct {
	Name          string
	Description   string
	BasePrice     decimal.Decimal
	PaintingPrice decimal.Decimal
	StockQuantity int
	CategoryID    int
	Images        []ImageFile
}

// PublishResult carries the created product id plus warnings from
// best-effort steps. A non-empty Warnings still means the publication
// succeeded.
type PublishResult struct {
	ProductID uuid.UUID
	Warnings  []string
}

func (s *PublicationService) Publish(actor Actor, orderID uuid.UUID, in PublishProductInput) (*PublishResult, error) {
	if !actor.IsOperator {
		return nil, &AuthorizationError{Reason: "operator role required"}
	}

	// Preconditions, checked before any effect.
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		if isNoRow(err) {
			return nil, &NotFoundError{Entity: "order", ID: orderID.String()}
		}
		return nil, &PersistenceError{Op: "order lookup", Err: err}
	}
	if order.Status != models.StatusCompleted {
		return nil, &PreconditionError{Check: "order status must be completed, is " + string(order.Status)}
	}
	if order.LinkedProductID.Valid {
		return nil, &PreconditionError{Check: "order is already linked to product " + order.LinkedProductID.UUID.String()}
	}

	if err := validatePublishInput(in); err != nil {
		return nil, err
	}
	exists, err := s.products.CategoryExists(in.CategoryID)
	if err != nil {
		return nil, &PersistenceError{Op: "category lookup", Err: err}
	}
	if !exists {
		return nil, &ValidationError{Field: "category_id", Reason: "category does not exist"}
	}

	productID := s.ids()
	product := &models.Product{
		ID:            productID,
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Price:         in.BasePrice.Add(in.PaintingPrice),
		BasePrice:     in.BasePrice,
		PaintingPrice: in.PaintingPrice,
		StockQuantity: in.StockQuantity,
		CategoryID:    in.CategoryID,
		ImagePaths:    []string{},
		IsActive:      true,
	}

	uploadedPaths := make([]string, 0, len(in.Images))

	steps := []sagaStep{
		{
			name: "create product record",
			run: func() error {
				if err := s.products.InsertProduct(product); err != nil {
					return &PersistenceError{Op: "product insert", Err: err}
				}
				return nil
			},
			compensate: func() error {
				return s.products.DeleteProduct(productID)
			},
		},
	}

	for i, img := range in.Images {
		img := img
		path := fmt.Sprintf("products/%s/images/%d_%s", productID, i, img.Filename)
		// No per-image compensation: a failed upload unwinds the product row
		// only, and images uploaded earlier in this step are left behind.
		steps = append(steps, sagaStep{
			name: fmt.Sprintf("upload product image %d", i+1),
			run: func() error {
				if err := s.store.Upload(path, img.Data, img.ContentType, true); err != nil {
					return &UploadError{Path: path, Err: err}
				}
				uploadedPaths = append(uploadedPaths, path)
				return nil
			},
		})
	}

	steps = append(steps,
		sagaStep{
			name:    "backfill product image list",
			forward: true,
			run: func() error {
				if err := s.products.SetProductImagePaths(productID, uploadedPaths); err != nil {
					return &PersistenceError{Op: "product image list update", Err: err}
				}
				return nil
			},
		},
		sagaStep{
			name:       "link product to order",
			bestEffort: true,
			run: func() error {
				return s.orders.LinkProduct(orderID, productID)
			},
		},
	)

	warnings, err := runSaga(steps)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.PublishOrderEvent(orderID, "product_published",
			supabase.ProductPublishedPayload(orderID, productID))
	}

	return &PublishResult{ProductID: productID, Warnings: warnings}, nil
}

func validatePublishInput(in PublishProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return &ValidationError{Field: "description", Reason: "description is required"}
	}
	if !in.BasePrice.IsPositive() {
		return &ValidationError{Field: "base_price", Reason: "base price must be greater than zero"}
	}
	if in.PaintingPrice.IsNegative() {
		return &ValidationError{Field: "painting_price", Reason: "painting price must not be negative"}
	}
	if in.StockQuantity < 0 {
		return &ValidationError{Field: "stock_quantity", Reason: "stock quantity must not be negative"}
	}
	if in.CategoryID <= 0 {
		return &ValidationError{Field: "category_id", Reason: "category is required"}
	}
	if len(in.Images) == 0 {
		return &ValidationError{Field: "images", Reason: "at least one product image is required"}
	}
	if len(in.Images) > MaxProductImages {
		return &ValidationError{Field: "images", Reason: fmt.Sprintf("at most %d product images are allowed", MaxProductImages)}
	}
	for i, img := range in.Images {
		if err := validateImage(img, fmt.Sprintf("product image %d", i+1)); err != nil {
			return err
		}
	}
	return nil
}

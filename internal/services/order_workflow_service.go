package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"figure-forge-backend/internal/models"
	"figure-forge-backend/internal/supabase"
)

// TransitionPolicy is an optional hook for vetting status changes. The stock
// workflow installs none: the status field is a permissive label, and any
// status may move to any other status.
type TransitionPolicy func(from, to models.OrderStatus) error

// OrderWorkflowService holds the operator actions on an order's lifecycle:
// quoting, status changes, and completed-image upload. Each operation is
// independently invocable and guarded only by the operator role check.
type OrderWorkflowService struct {
	store    ObjectStore
	orders   OrderStore
	notifier OrderNotifier
	policy   TransitionPolicy
}

func NewOrderWorkflowService(store ObjectStore, orders OrderStore, notifier OrderNotifier) *OrderWorkflowService {
	return &OrderWorkflowService{
		store:    store,
		orders:   orders,
		notifier: notifier,
	}
}

// SetTransitionPolicy installs a status-change validator. Passing nil
// restores the default permissive behavior.
func (s *OrderWorkflowService) SetTransitionPolicy(policy TransitionPolicy) {
	s.policy = policy
}

// ProvideQuote sets the quoted price and moves the order to quote_provided.
// Any current status can be quoted; the missing guard matches observed
// behavior and is intentional.
func (s *OrderWorkflowService) ProvideQuote(actor Actor, orderID uuid.UUID, price decimal.Decimal) (*models.CustomOrder, error) {
	if !actor.IsOperator {
		return nil, &AuthorizationError{Reason: "operator role required"}
	}
	if !price.IsPositive() {
		return nil, &ValidationError{Field: "quoted_price", Reason: "quoted price must be greater than zero"}
	}

	order, err := s.orders.SetQuote(orderID, price)
	if err != nil {
		if isNoRow(err) {
			return nil, &NotFoundError{Entity: "order", ID: orderID.String()}
		}
		return nil, &PersistenceError{Op: "quote update", Err: err}
	}

	if s.notifier != nil {
		_ = s.notifier.PublishOrderEvent(orderID, "quote_provided",
			supabase.QuoteProvidedPayload(orderID, price.String()))
	}
	return order, nil
}

// SetStatus moves the order to newStatus. Membership in the status
// enumeration is the only built-in check; a TransitionPolicy, when installed,
// may additionally reject the change.
func (s *OrderWorkflowService) SetStatus(actor Actor, orderID uuid.UUID, newStatus models.OrderStatus) (*models.CustomOrder, error) {
	if !actor.IsOperator {
		return nil, &AuthorizationError{Reason: "operator role required"}
	}
	if !newStatus.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unknown status " + string(newStatus)}
	}

	if s.policy != nil {
		order, err := s.orders.GetOrder(orderID)
		if err != nil {
			if isNoRow(err) {
				return nil, &NotFoundError{Entity: "order", ID: orderID.String()}
			}
			return nil, &PersistenceError{Op: "order lookup", Err: err}
		}
		if err := s.policy(order.Status, newStatus); err != nil {
			return nil, &PreconditionError{Check: err.Error()}
		}
	}

	order, err := s.orders.SetOrderStatus(orderID, newStatus)
	if err != nil {
		if isNoRow(err) {
			return nil, &NotFoundError{Entity: "order", ID: orderID.String()}
		}
		return nil, &PersistenceError{Op: "status update", Err: err}
	}

	if s.notifier != nil {
		_ = s.notifier.PublishOrderEvent(orderID, "status_changed",
			supabase.StatusChangedPayload(orderID, string(newStatus)))
	}
	return order, nil
}

// CompleteWithImages uploads 1-5 completed images and unconditionally moves
// the order to completed, whatever its prior status. Completed uploads may
// overwrite earlier completed images at the same path. A failure after some
// uploads deletes the objects written in this invocation.
func (s *OrderWorkflowService) CompleteWithImages(actor Actor, orderID uuid.UUID, images []ImageFile) (*models.CustomOrder, error) {
	if !actor.IsOperator {
		return nil, &AuthorizationError{Reason: "operator role required"}
	}
	if len(images) == 0 {
		return nil, &ValidationError{Field: "images", Reason: "at least one completed image is required"}
	}
	if len(images) > MaxCompletedImages {
		return nil, &ValidationError{Field: "images", Reason: fmt.Sprintf("at most %d completed images are allowed", MaxCompletedImages)}
	}
	for i, img := range images {
		if err := validateImage(img, fmt.Sprintf("completed image %d", i+1)); err != nil {
			return nil, err
		}
	}

	existing, err := s.orders.GetOrder(orderID)
	if err != nil {
		if isNoRow(err) {
			return nil, &NotFoundError{Entity: "order", ID: orderID.String()}
		}
		return nil, &PersistenceError{Op: "order lookup", Err: err}
	}

	prefix := fmt.Sprintf("%s/custom-orders/%s/completed", existing.RequesterID, orderID)
	paths := make([]string, len(images))

	// Paths still referenced by the stored record. On re-completion an upload
	// overwrites these in place; compensation must not delete them, or the
	// record's completed set would dangle.
	prior := make(map[string]bool, len(existing.CompletedImagePaths))
	for _, p := range existing.CompletedImagePaths {
		prior[p] = true
	}

	var steps []sagaStep
	for i, img := range images {
		img := img
		path := fmt.Sprintf("%s/%d_%s", prefix, i, img.Filename)
		paths[i] = path
		steps = append(steps, sagaStep{
			name: fmt.Sprintf("upload completed image %d", i+1),
			run: func() error {
				if err := s.store.Upload(path, img.Data, img.ContentType, true); err != nil {
					return &UploadError{Path: path, Err: err}
				}
				return nil
			},
			compensate: func() error {
				if prior[path] {
					return nil
				}
				return s.store.Remove([]string{path})
			},
		})
	}

	var order *models.CustomOrder
	steps = append(steps, sagaStep{
		name: "save completed images",
		run: func() error {
			updated, err := s.orders.SetCompletedImages(orderID, paths)
			if err != nil {
				if isNoRow(err) {
					return &NotFoundError{Entity: "order", ID: orderID.String()}
				}
				return &PersistenceError{Op: "completed images update", Err: err}
			}
			order = updated
			return nil
		},
	})

	if _, err := runSaga(steps); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.PublishOrderEvent(orderID, "completed",
			supabase.OrderCompletedPayload(orderID, len(paths)))
	}
	return order, nil
}

// GetOrder returns one order. Requesters see only their own orders;
// operators see all.
func (s *OrderWorkflowService) GetOrder(actor Actor, orderID uuid.UUID) (*models.CustomOrder, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		if isNoRow(err) {
			return nil, &NotFoundError{Entity: "order", ID: orderID.String()}
		}
		return nil, &PersistenceError{Op: "order lookup", Err: err}
	}
	if !actor.IsOperator && order.RequesterID != actor.ID {
		return nil, &NotFoundError{Entity: "order", ID: orderID.String()}
	}
	return order, nil
}

// ListOrders returns the requester's own orders, or, for operators, all
// orders optionally filtered by status.
func (s *OrderWorkflowService) ListOrders(actor Actor, status models.OrderStatus) ([]models.CustomOrder, error) {
	if !actor.IsOperator {
		orders, err := s.orders.ListOrdersByRequester(actor.ID)
		if err != nil {
			return nil, &PersistenceError{Op: "order list", Err: err}
		}
		return orders, nil
	}
	if status != "" && !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unknown status " + string(status)}
	}
	orders, err := s.orders.ListOrdersByStatus(status)
	if err != nil {
		return nil, &PersistenceError{Op: "order list", Err: err}
	}
	return orders, nil
}

// SignedImage pairs a storage path with a time-limited read URL.
type SignedImage struct {
	Path      string
	SignedURL string
}

// OrderImages issues signed read URLs for every image stored on an order.
func (s *OrderWorkflowService) OrderImages(actor Actor, orderID uuid.UUID, ttlSeconds int) (source SignedImage, reference, completed []SignedImage, err error) {
	order, err := s.GetOrder(actor, orderID)
	if err != nil {
		return SignedImage{}, nil, nil, err
	}

	sign := func(path string) (SignedImage, error) {
		url, err := s.store.SignedURL(path, ttlSeconds)
		if err != nil {
			return SignedImage{}, &UploadError{Path: path, Err: err}
		}
		return SignedImage{Path: path, SignedURL: url}, nil
	}

	if source, err = sign(order.SourceImagePath); err != nil {
		return SignedImage{}, nil, nil, err
	}
	for _, path := range order.ReferenceImagePaths {
		img, err := sign(path)
		if err != nil {
			return SignedImage{}, nil, nil, err
		}
		reference = append(reference, img)
	}
	for _, path := range order.CompletedImagePaths {
		img, err := sign(path)
		if err != nil {
			return SignedImage{}, nil, nil, err
		}
		completed = append(completed, img)
	}
	return source, reference, completed, nil
}

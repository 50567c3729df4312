package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"figure-forge-backend/internal/models"
)

// Actor is the caller identity handed in by the auth boundary. The services
// do not authenticate; operator-only operations just check IsOperator.
type Actor struct {
	ID         string
	IsOperator bool
}

// ObjectStore is the blob-store boundary. Paths are caller-chosen; Upload
// with overwrite false fails when the path already exists. Remove is used
// only for compensation.
type ObjectStore interface {
	Upload(path string, data []byte, contentType string, overwrite bool) error
	Remove(paths []string) error
	SignedURL(path string, ttlSeconds int) (string, error)
}

// OrderStore is the relational boundary for custom orders. Every update is a
// single-row, all-or-nothing write; concurrent writers race last-write-wins.
type OrderStore interface {
	UpsertRequester(requesterID string) error
	InsertOrder(order *models.CustomOrder) error
	GetOrder(orderID uuid.UUID) (*models.CustomOrder, error)
	ListOrdersByRequester(requesterID string) ([]models.CustomOrder, error)
	ListOrdersByStatus(status models.OrderStatus) ([]models.CustomOrder, error)
	SetQuote(orderID uuid.UUID, price decimal.Decimal) (*models.CustomOrder, error)
	SetOrderStatus(orderID uuid.UUID, status models.OrderStatus) (*models.CustomOrder, error)
	SetCompletedImages(orderID uuid.UUID, paths []string) (*models.CustomOrder, error)
	LinkProduct(orderID, productID uuid.UUID) error
}

type ProductStore interface {
	InsertProduct(product *models.Product) error
	SetProductImagePaths(productID uuid.UUID, paths []string) error
	DeleteProduct(productID uuid.UUID) error
	GetProduct(productID uuid.UUID) (*models.Product, error)
	ListActiveProducts(categoryID, limit int) ([]models.Product, error)
	CategoryExists(categoryID int) (bool, error)
	ListCategories() ([]models.Category, error)
}

// OrderNotifier publishes order lifecycle events. Notification failures never
// fail an operation.
type OrderNotifier interface {
	PublishOrderEvent(orderID uuid.UUID, event string, payload map[string]interface{}) error
}

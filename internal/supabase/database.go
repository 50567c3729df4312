package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"figure-forge-backend/internal/models"
)

// DatabaseClient holds the direct Postgres connection. Every update is a
// single-row statement; the store's row-level atomicity is the only
// concurrency guarantee (last writer wins).
type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

const orderColumns = `id, requester_id, description, size_preference, source_image_path,
		reference_image_paths, status, quoted_price, completed_image_paths,
		linked_product_id, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.CustomOrder, error) {
	var order models.CustomOrder
	var status string
	err := row.Scan(
		&order.ID, &order.RequesterID, &order.Description, &order.SizePreference,
		&order.SourceImagePath, pq.Array(&order.ReferenceImagePaths), &status,
		&order.QuotedPrice, pq.Array(&order.CompletedImagePaths),
		&order.LinkedProductID, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatus(status)
	return &order, nil
}

// UpsertRequester makes sure a requester row exists before an order insert
// references it. Idempotent, keyed by the auth subject.
func (d *DatabaseClient) UpsertRequester(requesterID string) error {
	_, err := d.db.Exec(`
		INSERT INTO users (id)
		VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, requesterID)
	if err != nil {
		return fmt.Errorf("failed to upsert requester: %w", err)
	}
	return nil
}

func (d *DatabaseClient) InsertOrder(order *models.CustomOrder) error {
	err := d.db.QueryRow(`
		INSERT INTO custom_orders (id, requester_id, description, size_preference, source_image_path, reference_image_paths, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, order.ID, order.RequesterID, order.Description, order.SizePreference,
		order.SourceImagePath, pq.Array(order.ReferenceImagePaths), string(order.Status),
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetOrder(orderID uuid.UUID) (*models.CustomOrder, error) {
	order, err := scanOrder(d.db.QueryRow(`
		SELECT `+orderColumns+`
		FROM custom_orders
		WHERE id = $1
	`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) ListOrdersByRequester(requesterID string) ([]models.CustomOrder, error) {
	rows, err := d.db.Query(`
		SELECT `+orderColumns+`
		FROM custom_orders
		WHERE requester_id = $1
		ORDER BY created_at DESC
	`, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return collectOrders(rows)
}

// ListOrdersByStatus returns every order when status is empty.
func (d *DatabaseClient) ListOrdersByStatus(status models.OrderStatus) ([]models.CustomOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM custom_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`
	rows, err := d.db.Query(query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]models.CustomOrder, error) {
	defer rows.Close()

	var orders []models.CustomOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (d *DatabaseClient) SetQuote(orderID uuid.UUID, price decimal.Decimal) (*models.CustomOrder, error) {
	order, err := scanOrder(d.db.QueryRow(`
		UPDATE custom_orders
		SET quoted_price = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+orderColumns+`
	`, price, string(models.StatusQuoteProvided), orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set quote: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) SetOrderStatus(orderID uuid.UUID, status models.OrderStatus) (*models.CustomOrder, error) {
	order, err := scanOrder(d.db.QueryRow(`
		UPDATE custom_orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+orderColumns+`
	`, string(status), orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set status: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) SetCompletedImages(orderID uuid.UUID, paths []string) (*models.CustomOrder, error) {
	order, err := scanOrder(d.db.QueryRow(`
		UPDATE custom_orders
		SET completed_image_paths = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+orderColumns+`
	`, pq.Array(paths), string(models.StatusCompleted), orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set completed images: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) LinkProduct(orderID, productID uuid.UUID) error {
	res, err := d.db.Exec(`
		UPDATE custom_orders
		SET linked_product_id = $1, updated_at = NOW()
		WHERE id = $2
	`, productID, orderID)
	if err != nil {
		return fmt.Errorf("failed to link product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (d *DatabaseClient) InsertProduct(product *models.Product) error {
	err := d.db.QueryRow(`
		INSERT INTO products (id, name, description, price, base_price, painting_price, stock_quantity, category_id, image_paths, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, product.ID, product.Name, product.Description, product.Price,
		product.BasePrice, product.PaintingPrice, product.StockQuantity,
		product.CategoryID, pq.Array(product.ImagePaths), product.IsActive,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (d *DatabaseClient) SetProductImagePaths(productID uuid.UUID, paths []string) error {
	res, err := d.db.Exec(`
		UPDATE products
		SET image_paths = $1, updated_at = NOW()
		WHERE id = $2
	`, pq.Array(paths), productID)
	if err != nil {
		return fmt.Errorf("failed to set product images: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (d *DatabaseClient) DeleteProduct(productID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM products
		WHERE id = $1
	`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

const productColumns = `id, name, description, price, base_price, painting_price,
		stock_quantity, category_id, image_paths, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var product models.Product
	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.Price,
		&product.BasePrice, &product.PaintingPrice, &product.StockQuantity,
		&product.CategoryID, pq.Array(&product.ImagePaths), &product.IsActive,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (d *DatabaseClient) GetProduct(productID uuid.UUID) (*models.Product, error) {
	product, err := scanProduct(d.db.QueryRow(`
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListActiveProducts returns active products, newest first. A zero categoryID
// means all categories.
func (d *DatabaseClient) ListActiveProducts(categoryID, limit int) ([]models.Product, error) {
	rows, err := d.db.Query(`
		SELECT `+productColumns+`
		FROM products
		WHERE is_active = TRUE AND ($1 = 0 OR category_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (d *DatabaseClient) CategoryExists(categoryID int) (bool, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM categories WHERE id = $1
	`, categoryID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return count > 0, nil
}

func (d *DatabaseClient) ListCategories() ([]models.Category, error) {
	rows, err := d.db.Query(`
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

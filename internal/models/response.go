package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type OrderResponse struct {
	ID                  string    `json:"order_id"`
	RequesterID         string    `json:"requester_id"`
	Description         string    `json:"description"`
	SizePreference      string    `json:"size_preference"`
	SourceImagePath     string    `json:"source_image_path"`
	ReferenceImagePaths []string  `json:"reference_image_paths,omitempty"`
	Status              string    `json:"status"`
	QuotedPrice         string    `json:"quoted_price,omitempty"`
	CompletedImagePaths []string  `json:"completed_image_paths,omitempty"`
	LinkedProductID     string    `json:"linked_product_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type SubmitOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type PublishResponse struct {
	ProductID string   `json:"product_id"`
	Warnings  []string `json:"warnings,omitempty"`
}

type ProductResponse struct {
	ID            string    `json:"product_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	BasePrice     string    `json:"base_price"`
	PaintingPrice string    `json:"painting_price"`
	StockQuantity int       `json:"stock_quantity"`
	CategoryID    int       `json:"category_id"`
	ImagePaths    []string  `json:"image_paths"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

type CategoryResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type SignedImageResponse struct {
	Path      string `json:"path"`
	SignedURL string `json:"signed_url"`
}

type OrderImagesResponse struct {
	OrderID   string                `json:"order_id"`
	Source    SignedImageResponse   `json:"source"`
	Reference []SignedImageResponse `json:"reference,omitempty"`
	Completed []SignedImageResponse `json:"completed,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

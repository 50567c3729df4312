package models

import "github.com/shopspring/decimal"

type ProvideQuoteRequest struct {
	QuotedPrice decimal.Decimal `json:"quoted_price"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" example:"in_progress"`
}

// PublishProductRequest carries the product fields for converting a completed
// order into a catalog listing. Images travel in the same multipart form
// under the "images" field.
type PublishProductRequest struct {
	Name          string `form:"name"`
	Description   string `form:"description"`
	BasePrice     string `form:"base_price"`
	PaintingPrice string `form:"painting_price"`
	StockQuantity int    `form:"stock_quantity"`
	CategoryID    int    `form:"category_id"`
}

package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing. Price is derived and stored:
// Price = BasePrice + PaintingPrice. ImagePaths is created empty and
// backfilled after the product's images are uploaded.
type Product struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Price         decimal.Decimal
	BasePrice     decimal.Decimal
	PaintingPrice decimal.Decimal
	StockQuantity int
	CategoryID    int
	ImagePaths    []string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Category struct {
	ID          int
	Name        string
	Description sql.NullString
	CreatedAt   time.Time
}

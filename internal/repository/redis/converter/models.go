package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRedisModel — представление товара в кэше. Цена хранится строкой, чтобы не терять точность.
type ProductRedisModel struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantity_in_stock"`
	SupplierID      int64           `json:"supplier_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

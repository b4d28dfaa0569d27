package domain

import (
	"math"
	"strings"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// maxPrice: первое значение, не помещающееся в NUMERIC(14, 2).
var maxPrice = decimal.New(1, 12)

// Product описывает товар на складе
type Product struct {
	ID              int64
	Name            string
	Description     string
	Price           decimal.Decimal
	QuantityInStock int
	SupplierID      int64 // ссылка на поставщика из supplier-service, внешний ключ не проверяется
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

func NewProduct(name, description string, price decimal.Decimal, quantity int, supplierID int64) *Product {
	return &Product{
		Name:            name,
		Description:     description,
		Price:           price,
		QuantityInStock: quantity,
		SupplierID:      supplierID,
	}
}

// Validate проверяет изменяемые поля товара.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return e.ErrNameRequired
	}

	if p.Price.IsNegative() {
		return e.ErrInvalidPrice
	}

	if p.Price.GreaterThanOrEqual(maxPrice) {
		return e.ErrPriceTooLarge
	}

	if p.Price.Exponent() < -2 && !p.Price.Equal(p.Price.Round(2)) {
		return e.ErrPricePrecision
	}

	if p.QuantityInStock < 0 {
		return e.ErrNegativeQuantity
	}

	// остаток хранится в INTEGER
	if p.QuantityInStock > math.MaxInt32 {
		return e.ErrStockOverflow
	}

	if p.SupplierID <= 0 {
		return e.ErrInvalidSupplierID
	}

	return nil
}

// DecreaseStock списывает amount единиц. При нехватке остатка товар не изменяется.
func (p *Product) DecreaseStock(amount int) error {
	if amount <= 0 {
		return e.ErrAmountMustBePositive
	}

	if p.QuantityInStock < amount {
		return e.ErrInsufficientStock
	}

	p.QuantityInStock -= amount
	return nil
}

// IncreaseStock добавляет amount единиц.
func (p *Product) IncreaseStock(amount int) error {
	if amount <= 0 {
		return e.ErrAmountMustBePositive
	}

	if p.QuantityInStock > math.MaxInt32-amount {
		return e.ErrStockOverflow
	}

	p.QuantityInStock += amount
	return nil
}

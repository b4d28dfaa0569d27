package domain

import "time"

type StockOperation string

const (
	StockDecrease StockOperation = "decrease"
	StockIncrease StockOperation = "increase"
)

// StockChange — факт изменения остатка товара, публикуется во внешние системы.
type StockChange struct {
	ProductID  int64
	Operation  StockOperation
	Amount     int
	Quantity   int // остаток после изменения
	OccurredAt time.Time
}

func NewStockChange(productID int64, op StockOperation, amount, quantity int) *StockChange {
	return &StockChange{
		ProductID:  productID,
		Operation:  op,
		Amount:     amount,
		Quantity:   quantity,
		OccurredAt: time.Now().UTC(),
	}
}

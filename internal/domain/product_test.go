package domain

import (
	"math"
	"testing"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(quantity int) *Product {
	return NewProduct("Laptop Screen", "15 inch display", decimal.RequireFromString("120.50"), quantity, 1)
}

func TestProduct_DecreaseStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		amount   int
		want     int
		wantErr  error
	}{
		{name: "partial", quantity: 50, amount: 5, want: 45},
		{name: "exact", quantity: 5, amount: 5, want: 0},
		{name: "insufficient", quantity: 5, amount: 10, want: 5, wantErr: e.ErrInsufficientStock},
		{name: "zero amount", quantity: 5, amount: 0, want: 5, wantErr: e.ErrAmountMustBePositive},
		{name: "negative amount", quantity: 5, amount: -3, want: 5, wantErr: e.ErrAmountMustBePositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProduct(tt.quantity)
			err := p.DecreaseStock(tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, p.QuantityInStock)
		})
	}
}

func TestProduct_IncreaseStock(t *testing.T) {
	p := newTestProduct(10)
	require.NoError(t, p.IncreaseStock(20))
	assert.Equal(t, 30, p.QuantityInStock)

	assert.ErrorIs(t, p.IncreaseStock(0), e.ErrAmountMustBePositive)
	assert.Equal(t, 30, p.QuantityInStock)

	p.QuantityInStock = math.MaxInt32 - 1
	assert.ErrorIs(t, p.IncreaseStock(2), e.ErrStockOverflow)
	assert.Equal(t, math.MaxInt32-1, p.QuantityInStock)
}

func TestProduct_DecreaseThenIncreaseRestoresQuantity(t *testing.T) {
	for _, amount := range []int{1, 7, 50} {
		p := newTestProduct(50)
		require.NoError(t, p.DecreaseStock(amount))
		require.NoError(t, p.IncreaseStock(amount))
		assert.Equal(t, 50, p.QuantityInStock)
	}
}

func TestProduct_Validate(t *testing.T) {
	assert.NoError(t, newTestProduct(0).Validate())

	p := newTestProduct(1)
	p.Name = "  "
	assert.ErrorIs(t, p.Validate(), e.ErrNameRequired)

	p = newTestProduct(1)
	p.Price = decimal.RequireFromString("-0.01")
	assert.ErrorIs(t, p.Validate(), e.ErrInvalidPrice)

	p = newTestProduct(1)
	p.Price = decimal.RequireFromString("1.001")
	assert.ErrorIs(t, p.Validate(), e.ErrPricePrecision)

	p = newTestProduct(1)
	p.Price = decimal.RequireFromString("1.500")
	assert.NoError(t, p.Validate())

	p = newTestProduct(-1)
	assert.ErrorIs(t, p.Validate(), e.ErrNegativeQuantity)
	assert.ErrorIs(t, p.Validate(), e.ErrInvalidArgument)
}

func TestProduct_ValidateBounds(t *testing.T) {
	assert.NoError(t, newTestProduct(math.MaxInt32).Validate())

	// 4294967301 после приведения к int32 превратился бы в 5
	p := newTestProduct(4294967301)
	assert.ErrorIs(t, p.Validate(), e.ErrStockOverflow)

	p = newTestProduct(math.MaxInt32 + 1)
	assert.ErrorIs(t, p.Validate(), e.ErrStockOverflow)

	p = newTestProduct(1)
	p.Price = decimal.RequireFromString("999999999999.99")
	assert.NoError(t, p.Validate())

	p = newTestProduct(1)
	p.Price = decimal.New(1, 12)
	assert.ErrorIs(t, p.Validate(), e.ErrPriceTooLarge)

	p = newTestProduct(1)
	p.Price = decimal.RequireFromString("10000000000000")
	assert.ErrorIs(t, p.Validate(), e.ErrPriceTooLarge)
	assert.ErrorIs(t, p.Validate(), e.ErrInvalidArgument)

	for _, supplierID := range []int64{0, -7} {
		p = newTestProduct(1)
		p.SupplierID = supplierID
		assert.ErrorIs(t, p.Validate(), e.ErrInvalidSupplierID)
	}
}

func TestSupplier_Validate(t *testing.T) {
	s := NewSupplier("TechParts Inc.", "Alice Smith", "555-0100", "alice@techparts.com")
	assert.NoError(t, s.Validate())

	s.Email = ""
	assert.ErrorIs(t, s.Validate(), e.ErrEmailRequired)

	s.Name = ""
	assert.ErrorIs(t, s.Validate(), e.ErrNameRequired)
}

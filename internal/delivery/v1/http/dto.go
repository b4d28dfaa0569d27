package http

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductRequest — тело POST/PUT /api/products. Цена принимается числом или строкой.
type ProductRequest struct {
	Name            string           `json:"name" validate:"required,max=255"`
	Description     string           `json:"description" validate:"max=2000"`
	Price           *decimal.Decimal `json:"price" validate:"required" swaggertype:"number"`
	QuantityInStock int              `json:"quantityInStock" validate:"gte=0,lte=2147483647"`
	SupplierID      int64            `json:"supplierId" validate:"gt=0"`
}

func (p *ProductRequest) toUseCase() *usecase.ProductReq {
	return usecase.NewProductReq(p.Name, p.Description, *p.Price, p.QuantityInStock, p.SupplierID)
}

type ProductResponse struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Price           json.Number `json:"price" swaggertype:"number"`
	QuantityInStock int         `json:"quantityInStock"`
	SupplierID      int64       `json:"supplierId"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       *time.Time  `json:"updatedAt,omitempty"`
}

func newProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           json.Number(p.Price.StringFixed(2)),
		QuantityInStock: p.QuantityInStock,
		SupplierID:      p.SupplierID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func newProductResponses(products []domain.Product) []*ProductResponse {
	res := make([]*ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, newProductResponse(&products[i]))
	}

	return res
}

// StockRequest описывает тело decreaseStock/increaseStock.
type StockRequest struct {
	Amount *int `json:"amount" validate:"required,gt=0"`
}

type SupplierRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	ContactPerson string `json:"contactPerson" validate:"max=255"`
	Phone         string `json:"phone" validate:"max=64"`
	Email         string `json:"email" validate:"required,email,max=255"`
}

func (s *SupplierRequest) toUseCase() *usecase.SupplierReq {
	return usecase.NewSupplierReq(s.Name, s.ContactPerson, s.Phone, s.Email)
}

type SupplierResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ContactPerson string     `json:"contactPerson"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func newSupplierResponse(s *domain.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func newSupplierResponses(suppliers []domain.Supplier) []*SupplierResponse {
	res := make([]*SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		res = append(res, newSupplierResponse(&suppliers[i]))
	}

	return res
}

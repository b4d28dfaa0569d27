package usecase

import (
	"context"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
)

type ProductUC interface {
	CreateProduct(ctx context.Context, req *ProductReq) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *ProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	DecreaseStock(ctx context.Context, id int64, amount int) (*domain.Product, error)
	IncreaseStock(ctx context.Context, id int64, amount int) (*domain.Product, error)
	GetProductSupplierDetails(ctx context.Context, id int64) (*SupplierInfo, error)
}

type SupplierUC interface {
	CreateSupplier(ctx context.Context, req *SupplierReq) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, req *SupplierReq) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}

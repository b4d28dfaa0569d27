package http

import (
	"context"
	"errors"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type mockProductUC struct {
	mock.Mock
}

func (m *mockProductUC) CreateProduct(ctx context.Context, req *usecase.ProductReq) (*domain.Product, error) {
	args := m.Called(ctx, req)
	return productArg(args, 0), args.Error(1)
}

func (m *mockProductUC) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *mockProductUC) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	return productArg(args, 0), args.Error(1)
}

func (m *mockProductUC) UpdateProduct(ctx context.Context, id int64, req *usecase.ProductReq) (*domain.Product, error) {
	args := m.Called(ctx, id, req)
	return productArg(args, 0), args.Error(1)
}

func (m *mockProductUC) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductUC) DecreaseStock(ctx context.Context, id int64, amount int) (*domain.Product, error) {
	args := m.Called(ctx, id, amount)
	return productArg(args, 0), args.Error(1)
}

func (m *mockProductUC) IncreaseStock(ctx context.Context, id int64, amount int) (*domain.Product, error) {
	args := m.Called(ctx, id, amount)
	return productArg(args, 0), args.Error(1)
}

func (m *mockProductUC) GetProductSupplierDetails(ctx context.Context, id int64) (*usecase.SupplierInfo, error) {
	args := m.Called(ctx, id)
	info, _ := args.Get(0).(*usecase.SupplierInfo)
	return info, args.Error(1)
}

func productArg(args mock.Arguments, i int) *domain.Product {
	p, _ := args.Get(i).(*domain.Product)
	return p
}

type mockSupplierUC struct {
	mock.Mock
}

func (m *mockSupplierUC) CreateSupplier(ctx context.Context, req *usecase.SupplierReq) (*domain.Supplier, error) {
	args := m.Called(ctx, req)
	return supplierArg(args, 0), args.Error(1)
}

func (m *mockSupplierUC) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	suppliers, _ := args.Get(0).([]domain.Supplier)
	return suppliers, args.Error(1)
}

func (m *mockSupplierUC) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	args := m.Called(ctx, id)
	return supplierArg(args, 0), args.Error(1)
}

func (m *mockSupplierUC) UpdateSupplier(ctx context.Context, id int64, req *usecase.SupplierReq) (*domain.Supplier, error) {
	args := m.Called(ctx, id, req)
	return supplierArg(args, 0), args.Error(1)
}

func (m *mockSupplierUC) DeleteSupplier(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func supplierArg(args mock.Arguments, i int) *domain.Supplier {
	s, _ := args.Get(i).(*domain.Supplier)
	return s
}

type stubHealth struct {
	err error
}

func (s stubHealth) Ping(context.Context) error { return s.err }

var errDBDown = errors.New("db down")

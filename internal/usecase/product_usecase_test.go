package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	store   *memStore
	tx      *memTx
	client  *mockSupplierClient
	outbox  *memOutboxRepo
	metrics *recordingMetrics
	uc      *ProductUseCase
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	store := newMemStore()
	f := &productFixture{
		store:   store,
		tx:      &memTx{store: store},
		client:  &mockSupplierClient{},
		outbox:  &memOutboxRepo{},
		metrics: newRecordingMetrics(),
	}
	f.uc = NewProductUC(&memProductRepo{s: store}, f.tx, f.client, nil, f.outbox, f.metrics, logger.NewNopLogger())
	return f
}

func (f *productFixture) createProduct(t *testing.T, quantity int) *domain.Product {
	t.Helper()
	p, err := f.uc.CreateProduct(context.Background(),
		NewProductReq("Laptop Screen", "15 inch display", decimal.RequireFromString("120.50"), quantity, 1))
	require.NoError(t, err)
	return p
}

func (f *productFixture) quantity(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.uc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p.QuantityInStock
}

func TestProductUseCase_CreateValidates(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.CreateProduct(context.Background(),
		NewProductReq("", "", decimal.NewFromInt(1), 1, 1))
	assert.ErrorIs(t, err, e.ErrNameRequired)

	_, err = f.uc.CreateProduct(context.Background(),
		NewProductReq("Cable", "", decimal.NewFromInt(-1), 1, 1))
	assert.ErrorIs(t, err, e.ErrInvalidArgument)

	products, err := f.uc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductUseCase_RejectsValuesOutsideColumnRange(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateProduct(ctx, NewProductReq("Cable", "", decimal.NewFromInt(1), 4294967301, 1))
	assert.ErrorIs(t, err, e.ErrStockOverflow)

	_, err = f.uc.CreateProduct(ctx, NewProductReq("Cable", "", decimal.RequireFromString("10000000000000"), 1, 1))
	assert.ErrorIs(t, err, e.ErrPriceTooLarge)

	_, err = f.uc.CreateProduct(ctx, NewProductReq("Cable", "", decimal.NewFromInt(1), 1, 0))
	assert.ErrorIs(t, err, e.ErrInvalidSupplierID)

	products, err := f.uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	p := f.createProduct(t, 10)
	_, err = f.uc.UpdateProduct(ctx, p.ID, NewProductReq("Cable", "", decimal.NewFromInt(1), 4294967301, 1))
	assert.ErrorIs(t, err, e.ErrStockOverflow)
	assert.Equal(t, 10, f.quantity(t, p.ID))
}

func TestProductUseCase_UpdateAndDelete(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, 10)

	updated, err := f.uc.UpdateProduct(ctx, p.ID,
		NewProductReq("Laptop Screen v2", "16 inch", decimal.RequireFromString("130"), 7, 2))
	require.NoError(t, err)
	assert.Equal(t, "Laptop Screen v2", updated.Name)
	assert.Equal(t, 7, updated.QuantityInStock)
	assert.Equal(t, int64(2), updated.SupplierID)

	_, err = f.uc.UpdateProduct(ctx, 999, NewProductReq("X", "", decimal.Zero, 0, 1))
	assert.ErrorIs(t, err, e.ErrNotFound)

	require.NoError(t, f.uc.DeleteProduct(ctx, p.ID))
	require.NoError(t, f.uc.DeleteProduct(ctx, p.ID), "delete must be idempotent")

	_, err = f.uc.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestProductUseCase_DecreaseStock(t *testing.T) {
	f := newProductFixture(t)
	p := f.createProduct(t, 50)

	updated, err := f.uc.DecreaseStock(context.Background(), p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 45, updated.QuantityInStock)
	assert.Equal(t, 45, f.quantity(t, p.ID))

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, StockChanged, f.outbox.events[0].EventType)
	assert.JSONEq(t,
		fmt.Sprintf(`{"eventId":%q,"productId":%d,"operation":"decrease","amount":5,"quantity":45,"occurredAt":%q}`,
			f.outbox.events[0].EventID, p.ID, f.outbox.events[0].CreatedAt.Format(time.RFC3339Nano)),
		string(f.outbox.events[0].Payload))
	assert.Equal(t, 1, f.metrics.stock["decrease/ok"])
}

func TestProductUseCase_DecreaseStockInsufficientLeavesQuantity(t *testing.T) {
	f := newProductFixture(t)
	p := f.createProduct(t, 5)

	_, err := f.uc.DecreaseStock(context.Background(), p.ID, 10)
	assert.ErrorIs(t, err, e.ErrInsufficientStock)
	assert.Equal(t, 5, f.quantity(t, p.ID))
	assert.Empty(t, f.outbox.events)
	assert.Equal(t, 1, f.metrics.stock["decrease/insufficient_stock"])
}

func TestProductUseCase_StockAdjustmentErrors(t *testing.T) {
	f := newProductFixture(t)
	p := f.createProduct(t, 5)
	ctx := context.Background()

	_, err := f.uc.DecreaseStock(ctx, 404, 1)
	assert.ErrorIs(t, err, e.ErrNotFound)

	_, err = f.uc.IncreaseStock(ctx, 404, 1)
	assert.ErrorIs(t, err, e.ErrNotFound)

	_, err = f.uc.DecreaseStock(ctx, p.ID, 0)
	assert.ErrorIs(t, err, e.ErrInvalidArgument)

	_, err = f.uc.IncreaseStock(ctx, p.ID, -4)
	assert.ErrorIs(t, err, e.ErrInvalidArgument)

	assert.Equal(t, 5, f.quantity(t, p.ID))
	assert.Equal(t, 2, f.tx.calls, "invalid amounts must not open a transaction")
}

func TestProductUseCase_OutboxFailureRollsBack(t *testing.T) {
	f := newProductFixture(t)
	p := f.createProduct(t, 5)
	f.outbox.failErr = errors.New("outbox insert failed")

	_, err := f.uc.IncreaseStock(context.Background(), p.ID, 3)
	assert.Error(t, err)
	assert.Equal(t, 5, f.quantity(t, p.ID))
	assert.Equal(t, 1, f.metrics.stock["increase/error"])
}

func TestProductUseCase_IncreaseStockAddsExactAmount(t *testing.T) {
	f := newProductFixture(t)
	p := f.createProduct(t, 3)

	for i, amount := range []int{1, 10, 250} {
		before := f.quantity(t, p.ID)
		updated, err := f.uc.IncreaseStock(context.Background(), p.ID, amount)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, before+amount, updated.QuantityInStock)
	}
}

func TestProductUseCase_DecreaseThenIncreaseRoundTrip(t *testing.T) {
	f := newProductFixture(t)
	p := f.createProduct(t, 40)

	for _, amount := range []int{1, 17, 40} {
		_, err := f.uc.DecreaseStock(context.Background(), p.ID, amount)
		require.NoError(t, err)
		_, err = f.uc.IncreaseStock(context.Background(), p.ID, amount)
		require.NoError(t, err)
		assert.Equal(t, 40, f.quantity(t, p.ID))
	}
}

func TestProductUseCase_ConcurrentDecreasesNeverOverdraw(t *testing.T) {
	f := newProductFixture(t)
	f.store.readDelay = time.Millisecond
	p := f.createProduct(t, 10)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		start     = make(chan struct{})
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.uc.DecreaseStock(context.Background(), p.ID, 6)
			if err == nil {
				succeeded.Add(1)
				return
			}
			assert.ErrorIs(t, err, e.ErrInsufficientStock)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, 4, f.quantity(t, p.ID))
}

func TestProductUseCase_ConcurrentStress(t *testing.T) {
	const (
		initial = 20
		callers = 50
	)

	f := newProductFixture(t)
	p := f.createProduct(t, initial)

	var (
		wg           sync.WaitGroup
		succeeded    atomic.Int32
		insufficient atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.DecreaseStock(context.Background(), p.ID, 1)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, e.ErrInsufficientStock):
				insufficient.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(initial), succeeded.Load())
	assert.Equal(t, int32(callers-initial), insufficient.Load())
	assert.Equal(t, 0, f.quantity(t, p.ID))
	assert.Len(t, f.outbox.events, initial)
}

func TestProductUseCase_Scenario(t *testing.T) {
	store := newMemStore()
	supplierStore := newMemStore()
	supplierUC := NewSupplierUC(&memSupplierRepo{s: supplierStore}, &memTx{store: supplierStore}, true, logger.NewNopLogger())
	supplier, err := supplierUC.CreateSupplier(context.Background(),
		NewSupplierReq("TechParts Inc.", "Alice Smith", "555-0100", "alice@techparts.com"))
	require.NoError(t, err)

	client := &mockSupplierClient{}
	client.On("GetSupplier", mock.Anything, supplier.ID).Return(&SupplierInfo{
		ID: supplier.ID, Name: supplier.Name, ContactPerson: supplier.ContactPerson,
		Phone: supplier.Phone, Email: supplier.Email,
	}, nil)

	uc := NewProductUC(&memProductRepo{s: store}, &memTx{store: store}, client, nil, nil, nil, logger.NewNopLogger())
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, NewProductReq("Laptop Screen", "15 inch display",
		decimal.RequireFromString("120.50"), 50, supplier.ID))
	require.NoError(t, err)

	info, err := uc.GetProductSupplierDetails(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "TechParts Inc.", info.Name)

	after, err := uc.DecreaseStock(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 45, after.QuantityInStock)

	after, err = uc.IncreaseStock(ctx, p.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 50-5+20, after.QuantityInStock)
}

func TestProductUseCase_GetProductSupplierDetailsDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name      string
		clientErr error
		result    string
	}{
		{name: "supplier absent", clientErr: e.Wrap("client", e.ErrNotFound), result: "not_found"},
		{name: "service unreachable", clientErr: e.Wrap("client", e.ErrSupplierServiceUnavailable), result: "unavailable"},
		{name: "timeout", clientErr: e.Wrap("client", context.DeadlineExceeded), result: "timeout"},
		{name: "5xx", clientErr: e.Wrap("client", e.ErrUnexpectedStatus), result: "bad_status"},
		{name: "garbage body", clientErr: e.Wrap("client", e.ErrMalformedResponse), result: "malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProductFixture(t)
			p := f.createProduct(t, 1)
			f.client.On("GetSupplier", mock.Anything, p.SupplierID).Return(nil, tt.clientErr).Once()

			info, err := f.uc.GetProductSupplierDetails(context.Background(), p.ID)
			assert.Nil(t, info)
			assert.ErrorIs(t, err, e.ErrNotFound)
			assert.Equal(t, 1, f.metrics.lookups[tt.result])
			f.client.AssertExpectations(t)
		})
	}
}

func TestProductUseCase_GetProductSupplierDetailsProductAbsent(t *testing.T) {
	f := newProductFixture(t)

	info, err := f.uc.GetProductSupplierDetails(context.Background(), 77)
	assert.Nil(t, info)
	assert.ErrorIs(t, err, e.ErrNotFound)
	f.client.AssertNotCalled(t, "GetSupplier", mock.Anything, mock.Anything)
}

func TestProductUseCase_GetProductSupplierDetailsWithoutSupplier(t *testing.T) {
	f := newProductFixture(t)
	stored, err := (&memProductRepo{s: f.store}).Create(context.Background(),
		domain.NewProduct("Legacy", "", decimal.NewFromInt(1), 1, 0))
	require.NoError(t, err)

	info, err := f.uc.GetProductSupplierDetails(context.Background(), stored.ID)
	assert.Nil(t, info)
	assert.ErrorIs(t, err, e.ErrNotFound)
	assert.Equal(t, 1, f.metrics.lookups["not_found"])
	f.client.AssertNotCalled(t, "GetSupplier", mock.Anything, mock.Anything)
}

func TestProductUseCase_CacheAside(t *testing.T) {
	store := newMemStore()
	cache := &mockCacheRepo{}
	uc := NewProductUC(&memProductRepo{s: store}, &memTx{store: store}, &mockSupplierClient{}, cache, nil, nil, logger.NewNopLogger())
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, NewProductReq("Cable", "", decimal.NewFromInt(3), 4, 1))
	require.NoError(t, err)

	cached := *p
	cached.Name = "Cable (cached)"
	cache.On("GetProduct", mock.Anything, p.ID).Return(&cached, true, nil).Once()
	got, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cable (cached)", got.Name)

	setDone := make(chan struct{})
	cache.On("GetProduct", mock.Anything, p.ID).Return(nil, false, errors.New("redis down")).Once()
	cache.On("SetProduct", mock.Anything, mock.MatchedBy(func(pr *domain.Product) bool { return pr.ID == p.ID })).
		Run(func(mock.Arguments) { close(setDone) }).Return(nil).Once()
	got, err = uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cable", got.Name)
	select {
	case <-setDone:
	case <-time.After(time.Second):
		t.Fatal("product was not cached in background")
	}

	cache.On("DeleteProducts", mock.Anything, []int64{p.ID}).Return(nil).Once()
	_, err = uc.DecreaseStock(ctx, p.ID, 1)
	require.NoError(t, err)

	cache.AssertExpectations(t)
}

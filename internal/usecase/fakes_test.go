package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/stretchr/testify/mock"
)

type inTxKey struct{}

var errNoTx = errors.New("called outside of transaction")

// memStore — хранилище в памяти. memTx сериализует транзакции одним мьютексом,
// что эквивалентно блокировке строки на всё время read-check-write.
type memStore struct {
	txMu sync.Mutex

	mu        sync.Mutex
	nextID    int64
	products  map[int64]domain.Product
	suppliers map[int64]domain.Supplier
	readDelay time.Duration
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[int64]domain.Product),
		suppliers: make(map[int64]domain.Supplier),
	}
}

func (s *memStore) snapshot() (map[int64]domain.Product, map[int64]domain.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make(map[int64]domain.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	suppliers := make(map[int64]domain.Supplier, len(s.suppliers))
	for k, v := range s.suppliers {
		suppliers[k] = v
	}
	return products, suppliers
}

func (s *memStore) restore(products map[int64]domain.Product, suppliers map[int64]domain.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.suppliers = suppliers
}

type memTx struct {
	store *memStore
	calls int
	mu    sync.Mutex
}

func (m *memTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	products, suppliers := m.store.snapshot()
	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		m.store.restore(products, suppliers)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(inTxKey{}).(bool)
	return v
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextID++
	p := *product
	p.ID = r.s.nextID
	p.CreatedAt = time.Now()
	r.s.products[p.ID] = p
	return &p, nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &p, nil
}

func (r *memProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make([]domain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *memProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.products[product.ID]
	if !ok {
		return nil, e.ErrNotFound
	}
	p := *product
	p.CreatedAt = old.CreatedAt
	r.s.products[p.ID] = p
	return &p, nil
}

func (r *memProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	if !inTx(ctx) {
		return nil, errNoTx
	}
	if r.s.readDelay > 0 {
		time.Sleep(r.s.readDelay)
	}
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	if !inTx(ctx) {
		return nil, errNoTx
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	p.QuantityInStock = quantity
	r.s.products[id] = p
	return &p, nil
}

type memSupplierRepo struct {
	s      *memStore
	locked int
}

func (r *memSupplierRepo) Create(_ context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextID++
	s := *supplier
	s.ID = r.s.nextID
	r.s.suppliers[s.ID] = s
	return &s, nil
}

func (r *memSupplierRepo) GetByID(_ context.Context, id int64) (*domain.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	s, ok := r.s.suppliers[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &s, nil
}

func (r *memSupplierRepo) List(_ context.Context) ([]domain.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make([]domain.Supplier, 0, len(r.s.suppliers))
	for _, s := range r.s.suppliers {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *memSupplierRepo) Update(_ context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return nil, e.ErrNotFound
	}
	s := *supplier
	r.s.suppliers[s.ID] = s
	return &s, nil
}

func (r *memSupplierRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.suppliers, id)
	return nil
}

func (r *memSupplierRepo) LockUniqueness(ctx context.Context) error {
	if !inTx(ctx) {
		return errNoTx
	}
	r.locked++
	return nil
}

func (r *memSupplierRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	return r.exists(func(s domain.Supplier) bool { return s.Name == name && s.ID != excludeID }), nil
}

func (r *memSupplierRepo) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(func(s domain.Supplier) bool { return s.Email == email && s.ID != excludeID }), nil
}

func (r *memSupplierRepo) exists(match func(domain.Supplier) bool) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, s := range r.s.suppliers {
		if match(s) {
			return true
		}
	}
	return false
}

type memOutboxRepo struct {
	mu      sync.Mutex
	events  []*OutboxEvent
	failErr error
}

func (r *memOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if !inTx(ctx) {
		return nil, errNoTx
	}
	if r.failErr != nil {
		return nil, r.failErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return event, nil
}

func (r *memOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r *memOutboxRepo) MarkAsProcessed(context.Context, int64) error { return nil }

func (r *memOutboxRepo) MarkAsPending(context.Context, int64) error { return nil }

type mockSupplierClient struct{ mock.Mock }

func (m *mockSupplierClient) GetSupplier(ctx context.Context, id int64) (*SupplierInfo, error) {
	args := m.Called(ctx, id)
	info, _ := args.Get(0).(*SupplierInfo)
	return info, args.Error(1)
}

type mockCacheRepo struct{ mock.Mock }

func (m *mockCacheRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, bool, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Bool(1), args.Error(2)
}

func (m *mockCacheRepo) SetProduct(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	return m.Called(ctx, ids).Error(0)
}

type recordingMetrics struct {
	mu      sync.Mutex
	stock   map[string]int
	lookups map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{stock: map[string]int{}, lookups: map[string]int{}}
}

func (m *recordingMetrics) StockAdjusted(operation, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[operation+"/"+result]++
}

func (m *recordingMetrics) SupplierLookup(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups[result]++
}

package usecase

import (
	"context"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
)

// ProductRepository хранит товары inventory-service.
// Методы GetForUpdate и UpdateQuantity требуют транзакцию в контексте.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	GetForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) (*domain.Product, error)
}

// SupplierRepository хранит поставщиков supplier-service.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	List(ctx context.Context) ([]domain.Supplier, error)
	Update(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error)
	Delete(ctx context.Context, id int64) error
	// LockUniqueness сериализует проверки уникальности до конца текущей транзакции.
	LockUniqueness(ctx context.Context) error
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
}

// CacheRepository кэширует товары. Ошибки кэша не должны ломать основной сценарий.
type CacheRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, bool, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

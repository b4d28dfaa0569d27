package usecase

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

const (
	resultOK                = "ok"
	resultNotFound          = "not_found"
	resultInsufficientStock = "insufficient_stock"
	resultInvalid           = "invalid"
	resultError             = "error"
	resultTimeout           = "timeout"
	resultBadStatus         = "bad_status"
	resultMalformed         = "malformed"
	resultUnavailable       = "unavailable"
)

// ProductUseCase реализует бизнес-логику inventory-service: CRUD товаров,
// изменение остатков и обогащение товара данными поставщика.
type ProductUseCase struct {
	productRepo    ProductRepository
	txManager      TxManager
	supplierClient SupplierClient
	cacheRepo      CacheRepository  // может быть nil, если кэш выключен
	outboxRepo     OutboxRepository // может быть nil, если события выключены
	metrics        Metrics
	logger         logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	txManager TxManager,
	supplierClient SupplierClient,
	cacheRepo CacheRepository,
	outboxRepo OutboxRepository,
	metrics Metrics,
	logger logger.Logger,
) *ProductUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &ProductUseCase{
		productRepo:    productRepo,
		txManager:      txManager,
		supplierClient: supplierClient,
		cacheRepo:      cacheRepo,
		outboxRepo:     outboxRepo,
		metrics:        metrics,
		logger:         logger,
	}
}

// CreateProduct сохраняет новый товар.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *ProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	product := req.ToDomain()
	if err := product.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := p.productRepo.Create(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

func (p *ProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct возвращает товар, сначала пытаясь прочитать его из кэша.
func (p *ProductUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	if p.cacheRepo != nil {
		cached, ok, err := p.cacheRepo.GetProduct(ctx, id)
		if err != nil {
			p.logger.Warnf("Failed to read product from cache: %v", e.Wrap(op, err))
		} else if ok {
			return cached, nil
		}
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if p.cacheRepo != nil {
		// Фоновое добавление товара в кэш
		cp := *product
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := p.cacheRepo.SetProduct(bgCtx, &cp); err != nil {
				p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
			}
		}()
	}

	return product, nil
}

// UpdateProduct полностью заменяет изменяемые поля товара.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id int64, req *ProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	product := req.ToDomain()
	product.ID = id
	if err := product.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := p.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, op, id)
	return updated, nil
}

// DeleteProduct удаляет товар. Удаление отсутствующего товара не является ошибкой.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "ProductUseCase.DeleteProduct"

	if err := p.productRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidate(ctx, op, id)
	return nil
}

// DecreaseStock списывает amount единиц товара.
// Если остатка не хватает, возвращается e.ErrInsufficientStock и состояние не меняется.
func (p *ProductUseCase) DecreaseStock(ctx context.Context, id int64, amount int) (*domain.Product, error) {
	return p.adjustStock(ctx, "ProductUseCase.DecreaseStock", id, amount, domain.StockDecrease)
}

// IncreaseStock добавляет amount единиц товара.
func (p *ProductUseCase) IncreaseStock(ctx context.Context, id int64, amount int) (*domain.Product, error) {
	return p.adjustStock(ctx, "ProductUseCase.IncreaseStock", id, amount, domain.StockIncrease)
}

// adjustStock выполняет read-check-write остатка в одной транзакции.
// Строка товара блокируется (SELECT ... FOR UPDATE) до коммита, поэтому параллельные
// списания не могут пройти проверку по устаревшему остатку.
func (p *ProductUseCase) adjustStock(ctx context.Context, op string, id int64, amount int, operation domain.StockOperation) (*domain.Product, error) {
	if amount <= 0 {
		p.metrics.StockAdjusted(string(operation), resultInvalid)
		return nil, e.Wrap(op, e.ErrAmountMustBePositive)
	}

	var result *domain.Product
	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		product, err := p.productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		switch operation {
		case domain.StockDecrease:
			err = product.DecreaseStock(amount)
		default:
			err = product.IncreaseStock(amount)
		}
		if err != nil {
			return err
		}

		updated, err := p.productRepo.UpdateQuantity(ctx, id, product.QuantityInStock)
		if err != nil {
			return err
		}

		if p.outboxRepo != nil {
			event, err := NewStockChangedEvent(domain.NewStockChange(id, operation, amount, updated.QuantityInStock))
			if err != nil {
				return err
			}

			if _, err := p.outboxRepo.Create(ctx, event); err != nil {
				return err
			}
		}

		result = updated
		return nil
	})
	if err != nil {
		p.metrics.StockAdjusted(string(operation), stockResult(err))
		return nil, e.Wrap(op, err)
	}

	p.metrics.StockAdjusted(string(operation), resultOK)
	p.invalidate(ctx, op, id)

	p.logger.Debugf("stock %s: product_id=%d amount=%d quantity=%d", operation, id, amount, result.QuantityInStock)
	return result, nil
}

// GetProductSupplierDetails возвращает поставщика товара, запрашивая supplier-service.
// Любая ошибка удалённого вызова (сеть, таймаут, не-2xx, битый JSON, 404) логируется и
// превращается в e.ErrNotFound: вызывающий не отличает отсутствие товара от недоступности сервиса.
func (p *ProductUseCase) GetProductSupplierDetails(ctx context.Context, id int64) (*SupplierInfo, error) {
	const op = "ProductUseCase.GetProductSupplierDetails"

	product, err := p.GetProduct(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// строки, сохранённые до проверки supplierId, в supplier-service не ходят
	if product.SupplierID <= 0 {
		p.metrics.SupplierLookup(resultNotFound)
		p.logger.Warnf("Product has no supplier, product_id: %d, supplier_id: %d", product.ID, product.SupplierID)
		return nil, e.Wrap(op, e.ErrNotFound)
	}

	supplier, err := p.supplierClient.GetSupplier(ctx, product.SupplierID)
	if err != nil {
		result := lookupResult(err)
		p.metrics.SupplierLookup(result)
		p.logger.Warnf(
			"Error fetching supplier details, product_id: %d, supplier_id: %d, reason: %s, error: %v",
			product.ID, product.SupplierID, result, e.Wrap(op, err),
		)
		return nil, e.Wrap(op, e.ErrNotFound)
	}

	p.metrics.SupplierLookup(resultOK)
	return supplier, nil
}

// invalidate удаляет товар из кэша после успешного коммита.
func (p *ProductUseCase) invalidate(ctx context.Context, op string, id int64) {
	if p.cacheRepo == nil {
		return
	}

	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to delete product from cache: %v", e.Wrap(op, err))
	}
}

func stockResult(err error) string {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return resultNotFound
	case errors.Is(err, e.ErrInsufficientStock):
		return resultInsufficientStock
	case errors.Is(err, e.ErrInvalidArgument):
		return resultInvalid
	default:
		return resultError
	}
}

func lookupResult(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, e.ErrNotFound):
		return resultNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return resultTimeout
	case errors.Is(err, e.ErrUnexpectedStatus):
		return resultBadStatus
	case errors.Is(err, e.ErrMalformedResponse):
		return resultMalformed
	default:
		return resultUnavailable
	}
}

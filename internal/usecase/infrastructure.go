package usecase

import "context"

// TxManager выполняет fn в одной транзакции БД; транзакция передаётся через контекст.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SupplierClient синхронно запрашивает supplier-service.
type SupplierClient interface {
	GetSupplier(ctx context.Context, id int64) (*SupplierInfo, error)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// Metrics собирает бизнес-метрики usecase-ов.
type Metrics interface {
	StockAdjusted(operation string, result string)
	SupplierLookup(result string)
}

type nopMetrics struct{}

func (nopMetrics) StockAdjusted(string, string) {}
func (nopMetrics) SupplierLookup(string)        {}

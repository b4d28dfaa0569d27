package usecase

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PRODUCT USECASE

// ProductReq — значения изменяемых полей товара при создании и полной замене.
type ProductReq struct {
	Name            string
	Description     string
	Price           decimal.Decimal
	QuantityInStock int
	SupplierID      int64
}

// SupplierInfo — данные поставщика, полученные из supplier-service.
type SupplierInfo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// SUPPLIER USECASE

// SupplierReq — значения изменяемых полей поставщика.
type SupplierReq struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const StockChanged OutboxEventType = "stock.changed"

// OutboxEvent — событие, записанное в одной транзакции с изменением остатка.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ProductID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// StockChangedPayload — JSON-представление события stock.changed в Kafka.
type StockChangedPayload struct {
	EventID    string    `json:"eventId"`
	ProductID  int64     `json:"productId"`
	Operation  string    `json:"operation"`
	Amount     int       `json:"amount"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurredAt"`
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	ProductID int64
	Payload   []byte
}

// MAPPERS

func NewProductReq(name, description string, price decimal.Decimal, quantity int, supplierID int64) *ProductReq {
	return &ProductReq{
		Name:            name,
		Description:     description,
		Price:           price,
		QuantityInStock: quantity,
		SupplierID:      supplierID,
	}
}

func (r *ProductReq) ToDomain() *domain.Product {
	return domain.NewProduct(r.Name, r.Description, r.Price, r.QuantityInStock, r.SupplierID)
}

func NewSupplierReq(name, contactPerson, phone, email string) *SupplierReq {
	return &SupplierReq{
		Name:          name,
		ContactPerson: contactPerson,
		Phone:         phone,
		Email:         email,
	}
}

func (r *SupplierReq) ToDomain() *domain.Supplier {
	return domain.NewSupplier(r.Name, r.ContactPerson, r.Phone, r.Email)
}

func NewWriteRawMessageReq(productID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}

// NewStockChangedEvent формирует outbox-событие по факту изменения остатка.
func NewStockChangedEvent(change *domain.StockChange) (*OutboxEvent, error) {
	eventID := uuid.NewString()

	payload, err := json.Marshal(StockChangedPayload{
		EventID:    eventID,
		ProductID:  change.ProductID,
		Operation:  string(change.Operation),
		Amount:     change.Amount,
		Quantity:   change.Quantity,
		OccurredAt: change.OccurredAt,
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   eventID,
		EventType: StockChanged,
		ProductID: change.ProductID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: change.OccurredAt,
	}, nil
}

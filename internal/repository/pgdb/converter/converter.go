package converter

import (
	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

// SupplierConverter преобразует сущности Supplier между domain и моделью PostgreSQL.
type SupplierConverter interface {
	ToModel(entity *domain.Supplier) *SupplierModel
	ToEntity(model *SupplierModel) *domain.Supplier
	ToArrEntity(models []SupplierModel) []domain.Supplier
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl { return &ProductConverterImpl{} }

func (ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}
	return &ProductModel{
		ID:              entity.ID,
		Name:            entity.Name,
		Description:     entity.Description,
		Price:           entity.Price,
		QuantityInStock: int32(entity.QuantityInStock),
		SupplierID:      entity.SupplierID,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
	}
}

func (ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}
	return &domain.Product{
		ID:              model.ID,
		Name:            model.Name,
		Description:     model.Description,
		Price:           model.Price,
		QuantityInStock: int(model.QuantityInStock),
		SupplierID:      model.SupplierID,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func (c ProductConverterImpl) ToArrEntity(models []ProductModel) []domain.Product {
	res := make([]domain.Product, 0, len(models))
	for i := range models {
		res = append(res, *c.ToEntity(&models[i]))
	}
	return res
}

type SupplierConverterImpl struct{}

func NewSupplierConverterImpl() *SupplierConverterImpl { return &SupplierConverterImpl{} }

func (SupplierConverterImpl) ToModel(entity *domain.Supplier) *SupplierModel {
	if entity == nil {
		return nil
	}
	return &SupplierModel{
		ID:            entity.ID,
		Name:          entity.Name,
		ContactPerson: entity.ContactPerson,
		Phone:         entity.Phone,
		Email:         entity.Email,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}
}

func (SupplierConverterImpl) ToEntity(model *SupplierModel) *domain.Supplier {
	if model == nil {
		return nil
	}
	return &domain.Supplier{
		ID:            model.ID,
		Name:          model.Name,
		ContactPerson: model.ContactPerson,
		Phone:         model.Phone,
		Email:         model.Email,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func (c SupplierConverterImpl) ToArrEntity(models []SupplierModel) []domain.Supplier {
	res := make([]domain.Supplier, 0, len(models))
	for i := range models {
		res = append(res, *c.ToEntity(&models[i]))
	}
	return res
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl { return &OutboxEventConverterImpl{} }

func (OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		ProductID:   entity.ProductID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		ProductID:   model.ProductID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	res := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		res = append(res, c.ToEntity(m))
	}
	return res
}

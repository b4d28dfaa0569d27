package usecase

import (
	"context"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

// SupplierUseCase реализует CRUD поставщиков.
// При enforceUnique создание и изменение отклоняют повтор имени или email.
type SupplierUseCase struct {
	supplierRepo  SupplierRepository
	txManager     TxManager
	enforceUnique bool
	logger        logger.Logger
}

func NewSupplierUC(supplierRepo SupplierRepository, txManager TxManager, enforceUnique bool, logger logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{
		supplierRepo:  supplierRepo,
		txManager:     txManager,
		enforceUnique: enforceUnique,
		logger:        logger,
	}
}

func (s *SupplierUseCase) CreateSupplier(ctx context.Context, req *SupplierReq) (*domain.Supplier, error) {
	const op = "SupplierUseCase.CreateSupplier"

	supplier := req.ToDomain()
	if err := supplier.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	var created *domain.Supplier
	err := s.withUniqueness(ctx, supplier, func(ctx context.Context) error {
		var err error
		created, err = s.supplierRepo.Create(ctx, supplier)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

func (s *SupplierUseCase) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	const op = "SupplierUseCase.ListSuppliers"

	suppliers, err := s.supplierRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return suppliers, nil
}

func (s *SupplierUseCase) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	const op = "SupplierUseCase.GetSupplier"

	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return supplier, nil
}

// UpdateSupplier полностью заменяет изменяемые поля поставщика.
func (s *SupplierUseCase) UpdateSupplier(ctx context.Context, id int64, req *SupplierReq) (*domain.Supplier, error) {
	const op = "SupplierUseCase.UpdateSupplier"

	supplier := req.ToDomain()
	supplier.ID = id
	if err := supplier.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	var updated *domain.Supplier
	err := s.withUniqueness(ctx, supplier, func(ctx context.Context) error {
		var err error
		updated, err = s.supplierRepo.Update(ctx, supplier)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// DeleteSupplier идемпотентно удаляет поставщика. Товары inventory-service не затрагиваются.
func (s *SupplierUseCase) DeleteSupplier(ctx context.Context, id int64) error {
	const op = "SupplierUseCase.DeleteSupplier"

	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// withUniqueness выполняет write в транзакции после проверки уникальности.
// Если политика выключена, write выполняется без проверок.
func (s *SupplierUseCase) withUniqueness(ctx context.Context, supplier *domain.Supplier, write func(ctx context.Context) error) error {
	if !s.enforceUnique {
		return write(ctx)
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.supplierRepo.LockUniqueness(ctx); err != nil {
			return err
		}

		exists, err := s.supplierRepo.ExistsByEmail(ctx, supplier.Email, supplier.ID)
		if err != nil {
			return err
		}
		if exists {
			s.logger.Infof("supplier with email %s already exists", supplier.Email)
			return e.ErrDuplicateEmail
		}

		exists, err = s.supplierRepo.ExistsByName(ctx, supplier.Name, supplier.ID)
		if err != nil {
			return err
		}
		if exists {
			s.logger.Infof("supplier with name %s already exists", supplier.Name)
			return e.ErrDuplicateName
		}

		return write(ctx)
	})
}

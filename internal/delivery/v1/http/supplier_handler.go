package http

import (
	"net/http"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type SupplierHandler struct {
	supplierUsecase usecase.SupplierUC
	validate        *validator.Validate
	logger          logger.Logger
}

func NewSupplierHandler(supplierUsecase usecase.SupplierUC, validate *validator.Validate, logger logger.Logger) *SupplierHandler {
	return &SupplierHandler{supplierUsecase: supplierUsecase, validate: validate, logger: logger}
}

// createSupplier
//
//	@Summary	Создание поставщика
//	@Tags		suppliers
//	@Accept		json
//	@Produce	json
//	@Param		supplier	body		SupplierRequest	true	"Поставщик"
//	@Success	201			{object}	SupplierResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	409			{object}	ErrorResponse	"Имя или email уже заняты"
//	@Router		/suppliers [post]
func (s *SupplierHandler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := decodeJSON(w, r, s.validate, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	supplier, err := s.supplierUsecase.CreateSupplier(r.Context(), req.toUseCase())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newSupplierResponse(supplier))
}

// listSuppliers
//
//	@Summary	Список поставщиков
//	@Tags		suppliers
//	@Produce	json
//	@Success	200	{array}	SupplierResponse
//	@Router		/suppliers [get]
func (s *SupplierHandler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := s.supplierUsecase.ListSuppliers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newSupplierResponses(suppliers))
}

// getSupplier
//
//	@Summary	Поставщик по ID
//	@Tags		suppliers
//	@Produce	json
//	@Param		id	path		int	true	"ID поставщика"
//	@Success	200	{object}	SupplierResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/suppliers/{id} [get]
func (s *SupplierHandler) getSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	supplier, err := s.supplierUsecase.GetSupplier(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newSupplierResponse(supplier))
}

// updateSupplier
//
//	@Summary	Обновление поставщика
//	@Tags		suppliers
//	@Accept		json
//	@Produce	json
//	@Param		id			path		int				true	"ID поставщика"
//	@Param		supplier	body		SupplierRequest	true	"Новые значения"
//	@Success	200			{object}	SupplierResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	409			{object}	ErrorResponse
//	@Router		/suppliers/{id} [put]
func (s *SupplierHandler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req SupplierRequest
	if err := decodeJSON(w, r, s.validate, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	supplier, err := s.supplierUsecase.UpdateSupplier(r.Context(), id, req.toUseCase())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newSupplierResponse(supplier))
}

// deleteSupplier
//
//	@Summary	Удаление поставщика
//	@Tags		suppliers
//	@Param		id	path	int	true	"ID поставщика"
//	@Success	204
//	@Router		/suppliers/{id} [delete]
func (s *SupplierHandler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.supplierUsecase.DeleteSupplier(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *SupplierHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logHandlerError(s.logger, r, err)
	WriteError(w, err)
}

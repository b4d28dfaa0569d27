package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	validate       *validator.Validate
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, validate *validator.Validate, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, validate: validate, logger: logger}
}

// createProduct
//
//	@Summary		Создание товара
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		ProductRequest	true	"Товар"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeJSON(w, r, p.validate, &req); err != nil {
		p.writeError(w, r, err)
		return
	}

	product, err := p.productUsecase.CreateProduct(r.Context(), req.toUseCase())
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newProductResponse(product))
}

// listProducts
//
//	@Summary	Список товаров
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	ProductResponse
//	@Router		/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context())
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponses(products))
}

// getProduct
//
//	@Summary	Товар по ID
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	product, err := p.productUsecase.GetProduct(r.Context(), id)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(product))
}

// updateProduct заменяет все изменяемые поля товара.
//
//	@Summary	Обновление товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"ID товара"
//	@Param		product	body		ProductRequest	true	"Новые значения"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	var req ProductRequest
	if err := decodeJSON(w, r, p.validate, &req); err != nil {
		p.writeError(w, r, err)
		return
	}

	product, err := p.productUsecase.UpdateProduct(r.Context(), id, req.toUseCase())
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Param		id	path	int	true	"ID товара"
//	@Success	204
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	if err := p.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decreaseStock
//
//	@Summary	Списание остатка
//	@Tags		stock
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"ID товара"
//	@Param		amount	body		StockRequest	true	"Количество"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse	"Неверное количество или недостаточно остатка"
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/{id}/decreaseStock [post]
func (p *ProductHandler) decreaseStock(w http.ResponseWriter, r *http.Request) {
	p.adjustStock(w, r, p.productUsecase.DecreaseStock)
}

// increaseStock
//
//	@Summary	Пополнение остатка
//	@Tags		stock
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"ID товара"
//	@Param		amount	body		StockRequest	true	"Количество"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/{id}/increaseStock [post]
func (p *ProductHandler) increaseStock(w http.ResponseWriter, r *http.Request) {
	p.adjustStock(w, r, p.productUsecase.IncreaseStock)
}

type stockFunc func(ctx context.Context, id int64, amount int) (*domain.Product, error)

func (p *ProductHandler) adjustStock(w http.ResponseWriter, r *http.Request, adjust stockFunc) {
	id, err := parseID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	var req StockRequest
	if err := decodeJSON(w, r, p.validate, &req); err != nil {
		p.writeError(w, r, err)
		return
	}

	product, err := adjust(r.Context(), id, *req.Amount)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(product))
}

// getProductSupplier возвращает поставщика товара. Любая ошибка supplier-service отдаётся как 404.
//
//	@Summary	Поставщик товара
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	usecase.SupplierInfo
//	@Failure	404	{object}	ErrorResponse	"Товар или поставщик недоступен"
//	@Router		/products/{id}/supplier [get]
func (p *ProductHandler) getProductSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	supplier, err := p.productUsecase.GetProductSupplierDetails(r.Context(), id)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, supplier)
}

func (p *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logHandlerError(p.logger, r, err)
	WriteError(w, err)
}

// logHandlerError пишет 5xx как ошибки, остальное как предупреждения.
func logHandlerError(log logger.Logger, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "%s %s failed", r.Method, r.URL.Path)
		return
	}

	log.Warnf("%d %s %s: %v", code, r.Method, r.URL.Path, err)
}

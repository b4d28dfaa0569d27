package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// maxBodySize — предельный размер JSON-тела запроса.
const maxBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// requestError — ошибка валидации запроса с готовым текстом для клиента.
type requestError struct {
	msg string
}

func (r *requestError) Error() string { return r.msg }

func (r *requestError) Unwrap() error { return e.ErrInvalidArgument }

func newRequestError(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// badRequestErrors — ошибки, текст которых отдаётся клиенту как есть.
var badRequestErrors = []error{
	e.ErrMalformedBody,
	e.ErrInvalidID,
	e.ErrAmountMustBePositive,
	e.ErrInvalidPrice,
	e.ErrPricePrecision,
	e.ErrNameRequired,
	e.ErrEmailRequired,
	e.ErrNegativeQuantity,
	e.ErrStockOverflow,
	e.ErrPriceTooLarge,
	e.ErrInvalidSupplierID,
}

func ToHTTPResponse(err error) (int, string) {
	var reqErr *requestError

	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, reqErr.msg
	case errors.Is(err, e.ErrInsufficientStock):
		return http.StatusBadRequest, e.ErrInsufficientStock.Error()
	case errors.Is(err, e.ErrInvalidArgument):
		for _, target := range badRequestErrors {
			if errors.Is(err, target) {
				return http.StatusBadRequest, target.Error()
			}
		}
		return http.StatusBadRequest, e.ErrInvalidArgument.Error()
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, e.ErrNotFound.Error()
	case errors.Is(err, e.ErrDuplicateEmail):
		return http.StatusConflict, e.ErrDuplicateEmail.Error()
	case errors.Is(err, e.ErrDuplicateName):
		return http.StatusConflict, e.ErrDuplicateName.Error()
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict, e.ErrConflict.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// parseID читает положительный {id} из пути.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q: %w", raw, e.ErrInvalidID)
	}

	return id, nil
}

// decodeJSON разбирает тело запроса в dst и валидирует его.
func decodeJSON(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return newRequestError("%s: empty body", e.ErrMalformedBody.Error())
		}
		return fmt.Errorf("%w: %s", e.ErrMalformedBody, err.Error())
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				msgs = append(msgs, validationMessage(fe))
			}
			return newRequestError("%s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %s", e.ErrMalformedBody, err.Error())
	}

	return nil
}

// newValidator возвращает валидатор, который называет поля по json-тегам.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

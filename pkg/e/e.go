package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrInsufficientStock = fmt.Errorf("insufficient stock")

	// Частные случаи ErrInvalidArgument
	ErrMalformedBody        = fmt.Errorf("%w: malformed request body", ErrInvalidArgument)
	ErrInvalidID            = fmt.Errorf("%w: invalid id", ErrInvalidArgument)
	ErrAmountMustBePositive = fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	ErrInvalidPrice         = fmt.Errorf("%w: invalid price", ErrInvalidArgument)
	ErrPricePrecision       = fmt.Errorf("%w: price must have at most 2 decimal places", ErrInvalidArgument)
	ErrNameRequired         = fmt.Errorf("%w: name is required", ErrInvalidArgument)
	ErrEmailRequired        = fmt.Errorf("%w: email is required", ErrInvalidArgument)
	ErrNegativeQuantity     = fmt.Errorf("%w: quantity must not be negative", ErrInvalidArgument)
	ErrStockOverflow        = fmt.Errorf("%w: stock quantity overflow", ErrInvalidArgument)
	ErrPriceTooLarge        = fmt.Errorf("%w: price must be less than 1000000000000", ErrInvalidArgument)
	ErrInvalidSupplierID    = fmt.Errorf("%w: supplier id must be positive", ErrInvalidArgument)

	// 404 Not Found
	ErrNotFound = fmt.Errorf("not found")

	// 409 Conflict
	ErrConflict       = fmt.Errorf("conflict")
	ErrDuplicateName  = fmt.Errorf("%w: supplier with this name already exists", ErrConflict)
	ErrDuplicateEmail = fmt.Errorf("%w: supplier with this email already exists", ErrConflict)

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки обращения к сервису поставщиков
	ErrSupplierServiceUnavailable = fmt.Errorf("supplier service unavailable")
	ErrUnexpectedStatus           = fmt.Errorf("unexpected response status")
	ErrMalformedResponse          = fmt.Errorf("malformed response")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

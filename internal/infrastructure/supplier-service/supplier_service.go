package supplier_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/sony/gobreaker"
)

// maxBodySize ограничивает размер читаемого ответа supplier-service.
const maxBodySize = 1 << 20

// SupplierService клиент для синхронных запросов к supplier-service.
// Повторов нет: любая ошибка сразу возвращается вызывающему.
type SupplierService struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     logger.Logger
}

func NewSupplierService(cfg *cfg.SupplierClientCfg, logger logger.Logger) *SupplierService {
	return NewSupplierServiceWithClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

func NewSupplierServiceWithClient(cfg *cfg.SupplierClientCfg, httpClient *http.Client, logger logger.Logger) *SupplierService {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	settings := gobreaker.Settings{
		Name:        "supplier-service",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Цепь размыкают только транспорт, таймаут и 5xx. Любой 4xx и битый ответ пришли от живого сервиса.
		IsSuccessful: isAvailable,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker state changed, name: %s, from: %s, to: %s", name, from, to)
		},
	}

	return &SupplierService{
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     logger,
	}
}

// statusError не-2xx ответ supplier-service, кроме 404.
type statusError struct {
	code int
}

func (se *statusError) Error() string {
	return fmt.Sprintf("%s: %d", e.ErrUnexpectedStatus, se.code)
}

func (se *statusError) Unwrap() error {
	return e.ErrUnexpectedStatus
}

func isAvailable(err error) bool {
	if err == nil {
		return true
	}

	var se *statusError
	if errors.As(err, &se) {
		return se.code < http.StatusInternalServerError
	}

	return errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrMalformedResponse)
}

// GetSupplier запрашивает GET {baseURL}/{id}.
// Ошибки: e.ErrNotFound (404), e.ErrUnexpectedStatus (прочие не-2xx),
// e.ErrMalformedResponse (не JSON), e.ErrSupplierServiceUnavailable (транспорт, таймаут, открытый breaker).
func (s *SupplierService) GetSupplier(ctx context.Context, id int64) (*usecase.SupplierInfo, error) {
	const op = "SupplierService.GetSupplier"

	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetch(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrSupplierServiceUnavailable, err))
		}

		return nil, e.Wrap(op, err)
	}

	return res.(*usecase.SupplierInfo), nil
}

func (s *SupplierService) fetch(ctx context.Context, id int64) (*usecase.SupplierInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	url := s.baseURL + "/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", e.ErrSupplierServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("supplier %d: %w", id, e.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", e.ErrSupplierServiceUnavailable, err)
	}

	var supplier usecase.SupplierInfo
	if err := json.Unmarshal(body, &supplier); err != nil {
		return nil, fmt.Errorf("%w: %w", e.ErrMalformedResponse, err)
	}
	if supplier.ID == 0 {
		return nil, fmt.Errorf("%w: missing supplier id", e.ErrMalformedResponse)
	}

	return &supplier, nil
}

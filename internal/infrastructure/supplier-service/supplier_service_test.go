package supplier_service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(baseURL string, timeout time.Duration) *SupplierService {
	return NewSupplierService(&cfg.SupplierClientCfg{
		BaseURL:            baseURL,
		Timeout:            timeout,
		BreakerFailures:    3,
		BreakerOpenTimeout: time.Minute,
	}, logger.NewNopLogger())
}

func TestGetSupplier_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/suppliers/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"name":"TechParts Inc.","contactPerson":"Ann","phone":"+1","email":"sales@techparts.example"}`))
	}))
	defer srv.Close()

	supplier, err := newTestService(srv.URL+"/api/suppliers", time.Second).GetSupplier(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), supplier.ID)
	assert.Equal(t, "TechParts Inc.", supplier.Name)
	assert.Equal(t, "Ann", supplier.ContactPerson)
	assert.Equal(t, "sales@techparts.example", supplier.Email)
}

func TestGetSupplier_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name:    "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantErr: e.ErrNotFound,
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantErr: e.ErrUnexpectedStatus,
		},
		{
			name:    "bad request",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadRequest) },
			wantErr: e.ErrUnexpectedStatus,
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>oops</html>"))
			},
			wantErr: e.ErrMalformedResponse,
		},
		{
			name: "empty object",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("{}"))
			},
			wantErr: e.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestService(srv.URL, time.Second).GetSupplier(context.Background(), 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetSupplier_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := newTestService(srv.URL, 50*time.Millisecond).GetSupplier(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrSupplierServiceUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGetSupplier_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestService(url, time.Second).GetSupplier(context.Background(), 1)
	assert.ErrorIs(t, err, e.ErrSupplierServiceUnavailable)
}

func TestGetSupplier_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := newTestService(srv.URL, time.Second)
	for i := 0; i < 3; i++ {
		_, err := svc.GetSupplier(context.Background(), 1)
		require.ErrorIs(t, err, e.ErrUnexpectedStatus)
	}

	_, err := svc.GetSupplier(context.Background(), 1)
	assert.ErrorIs(t, err, e.ErrSupplierServiceUnavailable)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetSupplier_NotFoundDoesNotOpenBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	svc := newTestService(srv.URL, time.Second)
	for i := 0; i < 5; i++ {
		_, err := svc.GetSupplier(context.Background(), 1)
		require.True(t, errors.Is(err, e.ErrNotFound))
	}
	assert.Equal(t, int32(5), hits.Load())
}

func TestGetSupplier_ClientErrorsDoNotOpenBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/0" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"name":"TechParts Inc."}`))
	}))
	defer srv.Close()

	svc := newTestService(srv.URL, time.Second)
	for i := 0; i < 5; i++ {
		_, err := svc.GetSupplier(context.Background(), 0)
		require.ErrorIs(t, err, e.ErrUnexpectedStatus)
		require.NotErrorIs(t, err, e.ErrSupplierServiceUnavailable)
	}

	supplier, err := svc.GetSupplier(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), supplier.ID)
}

func TestIsAvailable(t *testing.T) {
	assert.True(t, isAvailable(nil))
	assert.True(t, isAvailable(&statusError{code: http.StatusBadRequest}))
	assert.True(t, isAvailable(&statusError{code: http.StatusTooManyRequests}))
	assert.True(t, isAvailable(e.ErrNotFound))
	assert.True(t, isAvailable(e.ErrMalformedResponse))

	assert.False(t, isAvailable(&statusError{code: http.StatusBadGateway}))
	assert.False(t, isAvailable(e.ErrSupplierServiceUnavailable))
	assert.False(t, isAvailable(context.DeadlineExceeded))
}

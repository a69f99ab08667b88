package anubis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
	"github.com/riskibarqy/fantasy-five/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

func newTestClient(srv *httptest.Server, cacheTTL time.Duration, breaker resilience.BreakerConfig) *Client {
	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		IntrospectPath: "/v1/auth/introspect",
		AdminKey:       "admin-secret",
		CacheTTL:       cacheTTL,
		CircuitBreaker: breaker,
		Logger:         logging.NewNop(),
	})
}

func TestClientVerifyAccessToken_SendsAdminKeyAndParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-admin-key"); got != "admin-secret" {
			t.Errorf("unexpected x-admin-key: %s", got)
		}

		var req map[string]string
		if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Errorf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":   true,
			"user_id":  "user-123",
			"username": "alice",
			"email":    "alice@example.com",
			"roles":    []string{"viewer", "admin"},
			"exp":      1730000000,
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, 0, resilience.BreakerConfig{Enabled: false})

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != "user-123" || principal.Username != "alice" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if !principal.IsAdmin {
		t.Fatalf("expected admin role to mark principal as admin")
	}
}

func TestClientVerifyAccessToken_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    map[string]any
		wantErr error
	}{
		{name: "inactive token", status: http.StatusOK, body: map[string]any{"active": false}, wantErr: usecase.ErrUnauthorized},
		{name: "unauthorized", status: http.StatusUnauthorized, body: map[string]any{}, wantErr: usecase.ErrUnauthorized},
		{name: "admin key rejected", status: http.StatusForbidden, body: map[string]any{}, wantErr: usecase.ErrDependencyUnavailable},
		{name: "upstream down", status: http.StatusBadGateway, body: map[string]any{}, wantErr: usecase.ErrDependencyUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_ = jsoniter.NewEncoder(w).Encode(tc.body)
			}))
			defer srv.Close()

			client := newTestClient(srv, 0, resilience.BreakerConfig{Enabled: false})

			_, err := client.VerifyAccessToken(context.Background(), "token-abc")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.wantErr)
			}
		})
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1", Logger: logging.NewNop()})

	_, err := client.VerifyAccessToken(context.Background(), "   ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_CachesActivePrincipal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv, time.Minute, resilience.BreakerConfig{Enabled: false})

	for range 2 {
		if _, err := client.VerifyAccessToken(context.Background(), "token-abc"); err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("unexpected introspection calls: got=%d want=1", got)
	}
}

func TestClientVerifyAccessToken_OpensCircuitOnUpstreamFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv, 0, resilience.BreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for range 3 {
		_, err := client.VerifyAccessToken(context.Background(), "token-abc")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("open circuit must short-circuit requests: got=%d want=2", got)
	}
	if client.breaker.State() != resilience.StateOpen {
		t.Fatalf("unexpected breaker state: %s", client.breaker.State())
	}
}

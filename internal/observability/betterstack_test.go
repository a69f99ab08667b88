package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-five/internal/config"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

type betterStackSink struct {
	mu       sync.Mutex
	requests int
	auth     string
	entries  []map[string]any
}

func newBetterStackSink(t *testing.T) (*betterStackSink, *httptest.Server) {
	t.Helper()

	sink := &betterStackSink{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var batch []map[string]any
		if err := jsoniter.Unmarshal(body, &batch); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		sink.mu.Lock()
		sink.requests++
		sink.auth = r.Header.Get("Authorization")
		sink.entries = append(sink.entries, batch...)
		sink.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(server.Close)
	return sink, server
}

func betterStackTestConfig(endpoint string) config.Config {
	return config.Config{
		BetterStackEnabled:   true,
		BetterStackEndpoint:  endpoint,
		BetterStackToken:     "secret-token",
		BetterStackTimeout:   2 * time.Second,
		BetterStackMinLevel:  logging.LevelError,
		BetterStackBatchSize: 10,
		ServiceName:          "fantasy-five-api",
		AppEnv:               config.EnvDev,
	}
}

func TestInitBetterStackLogger_ShipsErrorBatch(t *testing.T) {
	t.Parallel()

	sink, server := newBetterStackSink(t)
	logger, shutdown, err := InitBetterStackLogger(betterStackTestConfig(server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.ErrorContext(context.Background(), "calculate points failed", "gameweek_id", "gw-1")
	logger.Error("reconcile totals job failed", "error", "db down")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.requests != 1 {
		t.Fatalf("unexpected request count: got=%d want=1", sink.requests)
	}
	if sink.auth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", sink.auth)
	}
	if len(sink.entries) != 2 {
		t.Fatalf("unexpected entry count: got=%d want=2", len(sink.entries))
	}
	if sink.entries[0]["message"] != "calculate points failed" || sink.entries[0]["gameweek_id"] != "gw-1" {
		t.Fatalf("unexpected first entry: %v", sink.entries[0])
	}
}

func TestInitBetterStackLogger_RespectsMinLevel(t *testing.T) {
	t.Parallel()

	sink, server := newBetterStackSink(t)
	logger, shutdown, err := InitBetterStackLogger(betterStackTestConfig(server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.InfoContext(context.Background(), "info log should not be shipped")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.requests != 0 {
		t.Fatalf("expected no request for info log, got %d", sink.requests)
	}
}

func TestInitBetterStackLogger_Disabled(t *testing.T) {
	t.Parallel()

	base := logging.NewNop()
	logger, shutdown, err := InitBetterStackLogger(config.Config{}, base)
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}
	if logger != base {
		t.Fatalf("expected base logger when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNormalizeBetterStackEndpoint(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                          "",
		" in.logs.betterstack.com ": "https://in.logs.betterstack.com",
		"http://localhost:9000":     "http://localhost:9000",
	}
	for raw, want := range tests {
		if got := normalizeBetterStackEndpoint(raw); got != want {
			t.Fatalf("unexpected endpoint for %q: got=%q want=%q", raw, got, want)
		}
	}
}

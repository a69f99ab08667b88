package observability

import (
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipOTelLog(t *testing.T) {
	t.Parallel()

	if !shouldSkipOTelLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipOTelLog("http request", map[string]any{"path": "/v1/gameweeks"}) {
		t.Fatalf("did not expect api request log to be skipped")
	}
	if shouldSkipOTelLog("reconcile totals job finished", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	t.Parallel()

	attrs := buildOTelLogAttributes(map[string]any{
		"gameweek_id": "gw-1",
		"teams":       int64(12),
		"payload":     nil,
	})
	if len(attrs) != 3 {
		t.Fatalf("unexpected attribute count: got=%d want=3", len(attrs))
	}
	// sorted by key
	if attrs[0].Key != "gameweek_id" || attrs[0].Value.AsString() != "gw-1" {
		t.Fatalf("unexpected gameweek_id attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "payload" || attrs[1].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "teams" || attrs[2].Value.AsInt64() != 12 {
		t.Fatalf("unexpected teams attribute: %+v", attrs[2])
	}
}

func TestToOTelLogValue(t *testing.T) {
	t.Parallel()

	nested := toOTelLogValue(map[string]any{"goals": int64(2), "mvp": true}, 0)
	if nested.Kind() != otellog.KindMap || len(nested.AsMap()) != 2 {
		t.Fatalf("unexpected map value: %v", nested)
	}

	list := toOTelLogValue([]any{"gk-01", "att-01"}, 0)
	if list.Kind() != otellog.KindSlice || len(list.AsSlice()) != 2 {
		t.Fatalf("unexpected slice value: %v", list)
	}

	if got := toOTelLogValue(1500*time.Millisecond, 0).AsString(); got != "1.5s" {
		t.Fatalf("unexpected duration value: %q", got)
	}

	deep := toOTelLogValue(map[string]any{"a": 1}, maxLogValueDepth)
	if deep.Kind() != otellog.KindString {
		t.Fatalf("expected depth limit to stringify, got %s", deep.Kind())
	}
}

func TestOTelLogCore_With(t *testing.T) {
	t.Parallel()

	core := newOTelLogCore(zapcore.WarnLevel, "test")
	child := core.With([]zapcore.Field{{Key: "component", Type: zapcore.StringType, String: "scheduler"}})

	if child.Enabled(zapcore.InfoLevel) || !child.Enabled(zapcore.ErrorLevel) {
		t.Fatalf("unexpected level gating on child core")
	}
	if len(core.fields) != 0 {
		t.Fatalf("parent core fields mutated: %v", core.fields)
	}
	if err := child.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "boom", Time: time.Now()}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}

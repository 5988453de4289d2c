package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsReachEveryLine(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithActor(ctx, "user-9", "sourcer")
	logg.Info(ctx, "order created")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if line["service"] != "api" || line["request_id"] != "req-123" {
		t.Fatalf("missing scoped fields: %v", line)
	}
	if line["user_id"] != "user-9" || line["actor_role"] != "sourcer" {
		t.Fatalf("missing actor fields: %v", line)
	}
	if line["message"] != "order created" {
		t.Fatalf("unexpected message: %v", line["message"])
	}
}

func TestWarnStackOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})
	logg.Warn(context.Background(), "slow query")
	if bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatal("stack should be absent when WarnStack is off")
	}

	buf.Reset()
	logg = New(Options{ServiceName: "api", Output: &buf, WarnStack: true})
	logg.Warn(context.Background(), "slow query")
	if !bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatal("stack should be present when WarnStack is on")
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("expected debug got %s", got)
	}
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("blank should default to info, got %s", got)
	}
	if got := ParseLevel("nonsense"); got != zerolog.InfoLevel {
		t.Fatalf("unknown should default to info, got %s", got)
	}
}

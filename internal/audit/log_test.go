package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/obs"
)

func TestLogEvent(t *testing.T) {
	logger := obs.Logger()
	original := logger.Writer()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(original)

	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-123")
	ctx = auth.ContextWithPrincipal(ctx, auth.Principal{
		Email: "comptable1@example.com",
		Roles: []auth.Role{auth.RoleComptable},
	})

	if err := LogEvent(ctx, "document.validate", map[string]any{"document_id": "doc-1"}); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log not valid JSON: %v", err)
	}
	if entry["type"] != "audit" {
		t.Fatalf("unexpected type: %v", entry["type"])
	}
	if entry["event"] != "document.validate" {
		t.Fatalf("unexpected event: %v", entry["event"])
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("unexpected request id: %v", entry["request_id"])
	}
	if entry["user"] != "comptable1@example.com" {
		t.Fatalf("unexpected user: %v", entry["user"])
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok || fields["document_id"] != "doc-1" {
		t.Fatalf("fields missing or incorrect: %v", entry["fields"])
	}
}

func TestLogEventRequiresName(t *testing.T) {
	if err := LogEvent(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for blank event name")
	}
}

func TestLogEventAnonymous(t *testing.T) {
	logger := obs.Logger()
	original := logger.Writer()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(original)

	if err := LogEvent(context.Background(), "auth.login", nil); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log not valid JSON: %v", err)
	}
	if _, present := entry["user"]; present {
		t.Fatalf("anonymous entry carries user: %v", entry)
	}
	if _, present := entry["request_id"]; present {
		t.Fatalf("entry carries request id without context: %v", entry)
	}
}

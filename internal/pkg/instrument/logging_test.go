package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestHandlerMasksAndAddsCorrelationID(t *testing.T) {
	// Arrange
	buf := &bytes.Buffer{}
	logger := slog.New(NewHandler(buf, slog.LevelInfo, "authn8-mcp", nil, []string{"Authorization", "code"}))
	ctx := SetCorrelationID(context.Background(), "cid-1")

	// Act
	logger.InfoContext(ctx, "otp fetched",
		"authorization", "Bearer secret",
		"payload", `{"account":"Acme Bank","code":"123456"}`,
		"account_id", "a1",
	)

	// Assert
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["authorization"] != maskedValue {
		t.Fatalf("expected authorization masked, got %v", line["authorization"])
	}
	if line["payload"] != `{"account":"Acme Bank","code":"***"}` {
		t.Fatalf("expected nested code masked, got %v", line["payload"])
	}
	if line["account_id"] != "a1" {
		t.Fatalf("expected account_id untouched, got %v", line["account_id"])
	}
	if line["_cID"] != "cid-1" {
		t.Fatalf("expected correlation id, got %v", line["_cID"])
	}
	if line["service"] != "authn8-mcp" {
		t.Fatalf("expected service name, got %v", line["service"])
	}
	if line["severity"] != "INFO" {
		t.Fatalf("expected severity key, got %v", line["severity"])
	}
}

func TestHandlerRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewHandler(buf, parseLevel("warn"), "svc", nil, nil))

	logger.Info("hidden")

	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %s", buf.String())
	}
}

func TestGetCorrelationIDEmpty(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Fatalf("expected empty correlation id, got %q", got)
	}
}

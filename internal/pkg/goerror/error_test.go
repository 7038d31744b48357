package goerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewUpstream(t *testing.T) {
	// Arrange
	cause := errors.New("dial tcp: connection refused")

	// Act
	err := NewUpstream(CodeUpstream, 0, "Failed to connect", cause)

	// Assert
	gerr, ok := As(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Error() != "Failed to connect" {
		t.Fatalf("expected message to win over cause, got %q", gerr.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be unwrapped")
	}
	if gerr.Status() != 0 {
		t.Fatalf("expected status 0, got %d", gerr.Status())
	}
	if gerr.StatusCode() != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", gerr.StatusCode())
	}
	if gerr.Type() != TypeUpstream {
		t.Fatalf("expected upstream type, got %s", gerr.Type())
	}
}

func TestNewRateLimited(t *testing.T) {
	err := NewRateLimited("Rate limited. Retry after 30 seconds.", "30")

	gerr, ok := As(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.RetryAfter() != "30" {
		t.Fatalf("expected retry after 30, got %q", gerr.RetryAfter())
	}
	if gerr.Status() != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", gerr.Status())
	}
	if gerr.Code() != CodeTooManyRequest {
		t.Fatalf("expected too many request code, got %s", gerr.Code())
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "business", err: NewBusiness("nope", CodeNotFound), want: CodeNotFound},
		{name: "wrapped", err: fmt.Errorf("ctx: %w", NewBusiness("denied", CodeForbidden)), want: CodeForbidden},
		{name: "config", err: NewConfig("missing key"), want: CodeConfig},
		{name: "validation", err: NewValidation("bad", nil), want: CodeInvalidInput},
		{name: "plain", err: errors.New("boom"), want: CodeInternal},
		{name: "nil", err: nil, want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Fatalf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewInvalidInputFields(t *testing.T) {
	err := NewInvalidInput(nil, "account_id", "is required")

	gerr, ok := As(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Fields()["account_id"] != "is required" {
		t.Fatalf("unexpected fields: %v", gerr.Fields())
	}

	odd := NewInvalidInput(nil, "dangling")
	if CodeOf(odd) != CodeInvalidFormat {
		t.Fatalf("expected invalid format for odd kv, got %s", CodeOf(odd))
	}
}

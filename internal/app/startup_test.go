package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/goerror"
)

type fakeValidator struct {
	info *entity.TokenInfo
	err  error
}

func (f fakeValidator) ValidateToken(context.Context) (*entity.TokenInfo, error) {
	return f.info, f.err
}

func TestStartupWritesBanner(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	v := fakeValidator{info: &entity.TokenInfo{
		BusinessName: "Acme Corp",
		TokenName:    "ci-bot",
		AccountCount: 3,
		ExpiresAt:    "2026-03-01T00:00:00Z",
	}}

	// Act
	info, err := startup(context.Background(), v, &buf, false)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.BusinessName != "Acme Corp" {
		t.Fatalf("unexpected info %+v", info)
	}
	want := "Authn8 MCP Server\nBusiness: Acme Corp\nToken: ci-bot\nAccounts: 3\nExpires: Mar 1, 2026\n\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestStartupStyledTitle(t *testing.T) {
	var buf bytes.Buffer
	v := fakeValidator{info: &entity.TokenInfo{ExpiresAt: "never"}}

	if _, err := startup(context.Background(), v, &buf, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\033[1mAuthn8 MCP Server\033[0m\n")) {
		t.Fatalf("expected bold title, got %q", buf.String())
	}
}

func TestStartupUnauthorizedWritesNothing(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	authErr := goerror.NewUpstream(goerror.CodeUnauthorized, 401,
		"Token is invalid or expired. Please check your token in the Authn8 dashboard.", nil)

	// Act
	info, err := startup(context.Background(), fakeValidator{err: authErr}, &buf, false)

	// Assert
	if goerror.CodeOf(err) != goerror.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if info != nil {
		t.Fatalf("expected no token info, got %+v", info)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no banner, got %q", buf.String())
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "2026-03-01T00:00:00Z", want: "Mar 1, 2026"},
		{raw: "2025-12-31T23:59:59.123+07:00", want: "Dec 31, 2025"},
		{raw: "2027-01-15", want: "Jan 15, 2027"},
		{raw: "", want: ""},
		{raw: "soon", want: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := formatExpiry(tt.raw); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/usecase"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/goerror"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/instrument"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/stacktrace"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/uid"
)

const noAccountsText = "No accounts are accessible with this token."

// ToolEndpoint turns usecase results and errors into tool text. No error
// escapes it: every failure becomes a ToolResult with IsError set.
type ToolEndpoint struct {
	uc   uc
	uuid uid.StringID
}

func NewToolEndpoint(uc uc, uuid uid.StringID) *ToolEndpoint {
	return &ToolEndpoint{uc: uc, uuid: uuid}
}

func (e *ToolEndpoint) ListAccounts(ctx context.Context) ToolResult {
	return e.call(ctx, "list_accounts", func(ctx context.Context) (string, error) {
		out, err := e.uc.ListAccounts(ctx, usecase.ListAccountsInput{})
		if err != nil {
			return "", err
		}

		if len(out.Accounts) == 0 {
			return noAccountsText, nil
		}

		items := make([]accountJSON, 0, len(out.Accounts))
		for _, acc := range out.Accounts {
			items = append(items, accountJSON{ID: acc.ID, Name: acc.Name, Issuer: acc.Issuer})
		}

		return toJSON(items)
	})
}

func (e *ToolEndpoint) GetOTP(ctx context.Context, args GetOTPArgs) ToolResult {
	return e.call(ctx, "get_otp", func(ctx context.Context) (string, error) {
		out, err := e.uc.GetOTP(ctx, usecase.GetOTPInput{
			AccountID:   args.AccountID,
			AccountName: args.AccountName,
		})
		if err != nil {
			return "", err
		}

		if out.Match == entity.ResolutionAmbiguous {
			return ambiguousText(out.Query, out.Candidates), nil
		}

		return toJSON(otpJSON{Account: out.Account, Code: out.Code})
	})
}

func (e *ToolEndpoint) WhoAmI(ctx context.Context) ToolResult {
	return e.call(ctx, "whoami", func(ctx context.Context) (string, error) {
		out, err := e.uc.WhoAmI(ctx, usecase.WhoAmIInput{})
		if err != nil {
			return "", err
		}

		return toJSON(whoAmIJSON{
			Business:     out.Business,
			TokenName:    out.TokenName,
			ScopedGroups: out.ScopedGroups,
			AccountCount: out.AccountCount,
			ExpiresAt:    out.ExpiresAt,
		})
	})
}

func (e *ToolEndpoint) call(ctx context.Context, tool string, fn func(ctx context.Context) (string, error)) (res ToolResult) {
	if instrument.GetCorrelationID(ctx) == "" && e.uuid != nil {
		ctx = instrument.SetCorrelationID(ctx, e.uuid.Generate())
	}
	start := time.Now()

	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic on tool call", "tool", tool, "because", rvr,
				"stack", stacktrace.InternalFrames(debug.Stack()))
			res = errorResult("Internal error")
		}
	}()

	text, err := fn(ctx)
	if err != nil {
		slog.WarnContext(ctx, "tool call failed", "tool", tool, "error_code", goerror.CodeOf(err).String(),
			"latency_ms", time.Since(start).Milliseconds(), "error", err)
		return errorResult(err.Error())
	}

	slog.InfoContext(ctx, "tool call served", "tool", tool, "latency_ms", time.Since(start).Milliseconds())
	return ToolResult{Text: text}
}

func errorResult(msg string) ToolResult {
	return ToolResult{Text: "Error: " + msg, IsError: true}
}

func ambiguousText(query string, candidates []entity.Account) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Multiple accounts match "%s". Please be more specific:`, query)
	for _, acc := range candidates {
		fmt.Fprintf(&sb, "\n  - %s (%s) - ID: %s", acc.Name, acc.IssuerDomain, acc.ID)
	}
	return sb.String()
}

// toJSON renders v indented by two spaces, leaving <, > and & unescaped.
func toJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", goerror.NewServer(err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

package inbound

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/usecase"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/uid"
)

type uc interface {
	ListAccounts(ctx context.Context, in usecase.ListAccountsInput) (*usecase.ListAccountsOutput, error)
	GetOTP(ctx context.Context, in usecase.GetOTPInput) (*usecase.GetOTPOutput, error)
	WhoAmI(ctx context.Context, in usecase.WhoAmIInput) (*usecase.WhoAmIOutput, error)
}

const (
	descListAccounts = "Returns all 2FA accounts accessible to this token. " +
		"Use this to see what accounts are available before requesting an OTP code."
	descGetOTP = "Generates a TOTP code for a specific account. " +
		"You can provide either the account_id (UUID) or account_name (partial match supported). " +
		"If multiple accounts match the name, you'll get a list of matches to be more specific."
	descWhoAmI = "Returns information about the current token and what it has access to, " +
		"including the business name, token name, scoped groups, account count, and expiration date."
)

// RegisterMCPTools adds list_accounts, get_otp and whoami to server.
func RegisterMCPTools(server *mcp.Server, uc uc, uuid uid.StringID) {
	end := NewToolEndpoint(uc, uuid)

	mcp.AddTool(server, &mcp.Tool{Name: "list_accounts", Description: descListAccounts},
		func(ctx context.Context, _ *mcp.CallToolRequest, _ ListAccountsArgs) (*mcp.CallToolResult, any, error) {
			return end.ListAccounts(ctx).toMCP(), nil, nil
		})

	mcp.AddTool(server, &mcp.Tool{Name: "get_otp", Description: descGetOTP},
		func(ctx context.Context, _ *mcp.CallToolRequest, args GetOTPArgs) (*mcp.CallToolResult, any, error) {
			return end.GetOTP(ctx, args).toMCP(), nil, nil
		})

	mcp.AddTool(server, &mcp.Tool{Name: "whoami", Description: descWhoAmI},
		func(ctx context.Context, _ *mcp.CallToolRequest, _ WhoAmIArgs) (*mcp.CallToolResult, any, error) {
			return end.WhoAmI(ctx).toMCP(), nil, nil
		})
}

func (r ToolResult) toMCP() *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: r.Text}},
		IsError: r.IsError,
	}
}

package inbound

type ListAccountsArgs struct{}

type GetOTPArgs struct {
	AccountID   string `json:"account_id,omitempty" jsonschema:"UUID of the account"`
	AccountName string `json:"account_name,omitempty" jsonschema:"Name to search for (partial match)"`
}

type WhoAmIArgs struct{}

// ToolResult is the text handed back to the agent for one tool call.
type ToolResult struct {
	Text    string
	IsError bool
}

type accountJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

type otpJSON struct {
	Account string `json:"account"`
	Code    string `json:"code"`
}

type whoAmIJSON struct {
	Business     string   `json:"business"`
	TokenName    string   `json:"token_name"`
	ScopedGroups []string `json:"scoped_groups"`
	AccountCount int      `json:"account_count"`
	ExpiresAt    string   `json:"expires_at"`
}

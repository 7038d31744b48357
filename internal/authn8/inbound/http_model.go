package inbound

import "fmt"

type AccountResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

type ListAccountsResponse []AccountResponse

func (r ListAccountsResponse) Message() string {
	if len(r) == 0 {
		return noAccountsText
	}
	return "request has been successfully"
}

type OTPResponse struct {
	Account    string            `json:"account,omitempty"`
	Code       string            `json:"code,omitempty"`
	Candidates []AccountResponse `json:"candidates,omitempty"`

	query string
}

func (r OTPResponse) Message() string {
	if len(r.Candidates) > 0 {
		return fmt.Sprintf(`Multiple accounts match "%s". Please be more specific.`, r.query)
	}
	return "request has been successfully"
}

type WhoAmIResponse struct {
	Business     string   `json:"business"`
	TokenName    string   `json:"token_name"`
	ScopedGroups []string `json:"scoped_groups"`
	AccountCount int      `json:"account_count"`
	ExpiresAt    string   `json:"expires_at"`
}

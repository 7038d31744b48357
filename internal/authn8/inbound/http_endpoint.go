package inbound

import (
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/usecase"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/goerror"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/router"
)

const missingAccountQuery = "either account_id or account_name must be provided"

// HTTPEndpoint mirrors the tools as JSON endpoints for the HTTP transport.
type HTTPEndpoint struct {
	uc uc
}

// ListAccounts returns every account the token can reach.
func (h *HTTPEndpoint) ListAccounts(r *router.Request) (any, error) {
	out, err := h.uc.ListAccounts(r.Context(), usecase.ListAccountsInput{})
	if err != nil {
		return nil, err
	}

	resp := make(ListAccountsResponse, 0, len(out.Accounts))
	for _, acc := range out.Accounts {
		resp = append(resp, AccountResponse{ID: acc.ID, Name: acc.Name, Issuer: acc.Issuer})
	}

	return resp, nil
}

// GetOTP accepts account_id or account_name as query parameters.
func (h *HTTPEndpoint) GetOTP(r *router.Request) (any, error) {
	in := usecase.GetOTPInput{
		AccountID:   r.GetQuery("account_id"),
		AccountName: r.GetQuery("account_name"),
	}
	if in.AccountID == "" && in.AccountName == "" {
		return nil, goerror.NewInvalidInput(nil,
			"account_id", missingAccountQuery,
			"account_name", missingAccountQuery,
		)
	}

	return h.getOTP(r, in)
}

func (h *HTTPEndpoint) GetOTPByID(r *router.Request) (any, error) {
	return h.getOTP(r, usecase.GetOTPInput{AccountID: r.GetParam("id")})
}

func (h *HTTPEndpoint) getOTP(r *router.Request, in usecase.GetOTPInput) (any, error) {
	out, err := h.uc.GetOTP(r.Context(), in)
	if err != nil {
		return nil, err
	}

	if out.Match == entity.ResolutionAmbiguous {
		candidates := make([]AccountResponse, 0, len(out.Candidates))
		for _, acc := range out.Candidates {
			candidates = append(candidates, AccountResponse{ID: acc.ID, Name: acc.Name, Issuer: acc.IssuerDomain})
		}
		return OTPResponse{Candidates: candidates, query: out.Query}, nil
	}

	return OTPResponse{Account: out.Account, Code: out.Code}, nil
}

// WhoAmI returns the token metadata.
func (h *HTTPEndpoint) WhoAmI(r *router.Request) (any, error) {
	out, err := h.uc.WhoAmI(r.Context(), usecase.WhoAmIInput{})
	if err != nil {
		return nil, err
	}

	return WhoAmIResponse{
		Business:     out.Business,
		TokenName:    out.TokenName,
		ScopedGroups: out.ScopedGroups,
		AccountCount: out.AccountCount,
		ExpiresAt:    out.ExpiresAt,
	}, nil
}

package api

import "github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"

type tokenInfoResponse struct {
	BusinessName string `json:"businessName"`
	TokenName    string `json:"tokenName"`
	ScopedGroups []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"scopedGroups"`
	AccountCount int    `json:"accountCount"`
	ExpiresAt    string `json:"expiresAt"`
}

func (r tokenInfoResponse) toEntity() *entity.TokenInfo {
	groups := make([]entity.ScopedGroup, 0, len(r.ScopedGroups))
	for _, g := range r.ScopedGroups {
		groups = append(groups, entity.ScopedGroup{ID: g.ID, Name: g.Name})
	}

	return &entity.TokenInfo{
		BusinessName: r.BusinessName,
		TokenName:    r.TokenName,
		ScopedGroups: groups,
		AccountCount: r.AccountCount,
		ExpiresAt:    r.ExpiresAt,
	}
}

type accountResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IssuerDomain string `json:"issuerDomain"`
}

type accountsResponse struct {
	Accounts []accountResponse `json:"accounts"`
}

func (r accountsResponse) toEntities() []entity.Account {
	accounts := make([]entity.Account, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		accounts = append(accounts, entity.Account{ID: a.ID, Name: a.Name, IssuerDomain: a.IssuerDomain})
	}

	return accounts
}

type otpResponse struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Length int    `json:"length"`
}

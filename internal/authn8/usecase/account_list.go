package usecase

import (
	"context"
	"log/slog"
)

type (
	ListAccountsInput struct{}

	ListAccountsOutput struct {
		Accounts []AccountItem
	}

	AccountItem struct {
		ID     string
		Name   string
		Issuer string
	}
)

func (s *Usecase) ListAccounts(ctx context.Context, _ ListAccountsInput) (*ListAccountsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListAccounts")
	defer span.End()

	accounts, err := s.api.ListAccounts(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to list accounts", "error", err)
		return nil, err
	}

	items := make([]AccountItem, 0, len(accounts))
	for _, acc := range accounts {
		items = append(items, AccountItem{ID: acc.ID, Name: acc.Name, Issuer: acc.IssuerDomain})
	}

	return &ListAccountsOutput{Accounts: items}, nil
}

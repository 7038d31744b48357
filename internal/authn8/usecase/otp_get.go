package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/goerror"
)

type (
	// GetOTPInput identifies the target account. AccountID wins when both
	// fields are set; empty strings count as absent.
	GetOTPInput struct {
		AccountID   string `validate:"required_without=AccountName"`
		AccountName string `validate:"required_without=AccountID"`
	}

	// GetOTPOutput carries either a code (Match is ResolutionSingle) or the
	// accounts a name matched (Match is ResolutionAmbiguous).
	GetOTPOutput struct {
		Match      entity.ResolutionKind
		Query      string
		Account    string
		Code       string
		Candidates []entity.Account
	}
)

func (s *Usecase) GetOTP(ctx context.Context, in GetOTPInput) (*GetOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "GetOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewValidation("Either account_id or account_name must be provided.", err)
	}

	var target entity.Account
	if in.AccountID != "" {
		accounts, err := s.api.ListAccounts(ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to list accounts", "account_id", in.AccountID, "error", err)
			return nil, err
		}

		acc, found := entity.FindByID(in.AccountID, accounts)
		if !found {
			slog.WarnContext(ctx, "account id not accessible", "account_id", in.AccountID)
			return nil, goerror.NewBusiness(fmt.Sprintf(
				`Account with ID "%s" not found. Use list_accounts to see available accounts.`, in.AccountID,
			), goerror.CodeNotFound)
		}
		target = acc
	} else {
		res, err := s.api.ResolveByName(ctx, in.AccountName)
		if err != nil {
			slog.WarnContext(ctx, "failed to resolve account name", "account_name", in.AccountName, "error", err)
			return nil, err
		}

		switch res.Kind {
		case entity.ResolutionAmbiguous:
			slog.InfoContext(ctx, "account name is ambiguous", "account_name", in.AccountName, "matches", len(res.Candidates))
			return &GetOTPOutput{
				Match:      entity.ResolutionAmbiguous,
				Query:      in.AccountName,
				Candidates: res.Candidates,
			}, nil
		case entity.ResolutionNotFound:
			slog.WarnContext(ctx, "account name matched nothing", "account_name", in.AccountName)
			return nil, goerror.NewBusiness(notFoundMessage(in.AccountName, res.Known), goerror.CodeNotFound)
		}
		target = res.Account
	}

	otp, err := s.api.GetOTP(ctx, target.ID)
	if err != nil {
		slog.WarnContext(ctx, "failed to get otp", "account_id", target.ID, "error", err)
		return nil, err
	}

	return &GetOTPOutput{
		Match:   entity.ResolutionSingle,
		Query:   in.AccountName,
		Account: target.Name,
		Code:    otp.Code,
	}, nil
}

func notFoundMessage(query string, known []entity.Account) string {
	lines := make([]string, 0, len(known))
	for _, acc := range known {
		lines = append(lines, fmt.Sprintf("  - %s (%s)", acc.Name, acc.IssuerDomain))
	}

	return fmt.Sprintf(`No account found matching "%s". Available accounts:`, query) + "\n" + strings.Join(lines, "\n")
}

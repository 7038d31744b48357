package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
)

type (
	WhoAmIInput struct{}

	WhoAmIOutput struct {
		Business     string
		TokenName    string
		ScopedGroups []string
		AccountCount int
		ExpiresAt    string
	}
)

// WhoAmI reports the token metadata. It always asks the API.
func (s *Usecase) WhoAmI(ctx context.Context, _ WhoAmIInput) (*WhoAmIOutput, error) {
	ctx, span := s.startSpan(ctx, "WhoAmI")
	defer span.End()

	info, err := s.api.GetTokenInfo(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to get token info", "error", err)
		return nil, err
	}

	groups := lo.Map(info.ScopedGroups, func(g entity.ScopedGroup, _ int) string {
		return g.Name
	})

	return &WhoAmIOutput{
		Business:     info.BusinessName,
		TokenName:    info.TokenName,
		ScopedGroups: groups,
		AccountCount: info.AccountCount,
		ExpiresAt:    info.ExpiresAt,
	}, nil
}

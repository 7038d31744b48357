package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
)

const (
	bannerTitle = "Authn8 MCP Server"
	bold        = "\033[1m"
	reset       = "\033[0m"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context) (*entity.TokenInfo, error)
}

// startup validates the token and, on success, writes the banner to w.
// Nothing is written when validation fails.
func startup(ctx context.Context, v tokenValidator, w io.Writer, styled bool) (*entity.TokenInfo, error) {
	info, err := v.ValidateToken(ctx)
	if err != nil {
		return nil, err
	}

	writeBanner(w, info, styled)

	return info, nil
}

func writeBanner(w io.Writer, info *entity.TokenInfo, styled bool) {
	title := bannerTitle
	if styled {
		title = bold + title + reset
	}

	//nolint:errcheck // best effort
	fmt.Fprintf(w, "%s\nBusiness: %s\nToken: %s\nAccounts: %d\nExpires: %s\n\n",
		title, info.BusinessName, info.TokenName, info.AccountCount, formatExpiry(info.ExpiresAt))
}

// formatExpiry renders an RFC 3339 or date-only timestamp as "Jan 2, 2006"
// in the timestamp's own offset. Anything else is returned unchanged.
func formatExpiry(raw string) string {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}

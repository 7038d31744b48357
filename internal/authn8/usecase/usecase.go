package usecase

import (
	"context"

	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/instrument"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type apiClient interface {
	GetTokenInfo(ctx context.Context) (*entity.TokenInfo, error)
	ListAccounts(ctx context.Context) ([]entity.Account, error)
	GetOTP(ctx context.Context, accountID string) (*entity.OTP, error)
	ResolveByName(ctx context.Context, name string) (entity.Resolution, error)
}

type Usecase struct {
	api       apiClient
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	API        apiClient
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		api:       dep.API,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("authn8.usecase").Start(ctx, name)
}

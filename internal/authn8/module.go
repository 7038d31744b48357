package authn8

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/inbound"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/outbound/api"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/usecase"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/instrument"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/router"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/uid"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/validator"
)

type Dependency struct {
	Client     *api.Client                `validate:"required"`
	MCPServer  *mcp.Server                `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	// Router is set only when serving over HTTP.
	Router *router.Router
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		API:        dep.Client,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterMCPTools(dep.MCPServer, uc, dep.UUID)
	if dep.Router != nil {
		inbound.RegisterHTTPEndpoint(dep.Router, uc)
	}

	return nil
}

package app

import (
	"github.com/shandysiswandi/authn8-mcp/internal/authn8"
)

func (a *App) initModules() {
	if err := authn8.New(authn8.Dependency{
		Client:     a.client,
		MCPServer:  a.mcpServer,
		UUID:       a.uuid,
		Validator:  a.validator,
		Instrument: a.ins,
		Router:     a.router,
	}); err != nil {
		fatal("failed to init module authn8", err)
	}
}

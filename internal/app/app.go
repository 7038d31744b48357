package app

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/outbound/api"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/clock"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/config"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/goroutine"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/instrument"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/router"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/uid"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/validator"
	"go.uber.org/atomic"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID

	// resources
	client *api.Client

	// server
	transport  string
	ready      *atomic.Bool
	mcpServer  *mcp.Server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
//
// The token is validated before any tool is registered; New exits the
// process with status 1 when configuration or validation fails.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
		ready:  atomic.NewBool(false),
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initClient()
	app.initStartup()
	app.initServer()
	app.initModules()
	app.initClosers()

	app.ready.Store(true)

	return app
}

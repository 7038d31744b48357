package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/cors"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/outbound/api"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/clock"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/config"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/goroutine"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/instrument"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/router"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/uid"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/validator"
	"golang.org/x/term"
)

// fatal reports a startup failure the way an operator reads it, then exits.
func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

func (a *App) initConfig() {
	cfg, err := config.NewViper(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fatal("failed to init config", err)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("log.level"),
		LogOutput:        os.Stderr,
	})
	if err != nil {
		fatal("failed to init instrumentation", err)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(goroutine.DefaultMaxGoroutine)

	validator, err := validator.NewV10Validator()
	if err != nil {
		fatal("failed to init validation v10 validator", err)
	}
	a.validator = validator
}

func (a *App) initClient() {
	client, err := api.New(api.Config{
		BaseURL:    a.config.GetString("authn8.api_url"),
		APIKey:     a.config.GetString("authn8.api_key"),
		UserAgent:  a.config.GetString("authn8.user_agent"),
		Timeout:    a.config.GetSecond("authn8.timeout_seconds"),
		CacheTTL:   a.config.GetSecond("authn8.cache_ttl_seconds"),
		Clock:      a.clock,
		Instrument: a.ins,
	})
	if err != nil {
		fatal("failed to init authn8 api client", err)
	}
	a.client = client
}

func (a *App) initStartup() {
	styled := term.IsTerminal(int(os.Stderr.Fd()))

	info, err := startup(a.ctx, a.client, os.Stderr, styled)
	if err != nil {
		fatal("failed to validate authn8 token", err)
	}

	slog.Info("authn8 token validated",
		"business", info.BusinessName,
		"token_name", info.TokenName,
		"account_count", info.AccountCount,
	)
}

func (a *App) initServer() {
	a.transport = strings.ToLower(strings.TrimSpace(a.config.GetString("app.transport")))
	if a.transport != transportHTTP && a.transport != transportStdio {
		fatal("failed to init server", fmt.Errorf("app.transport must be %q or %q, got %q",
			transportStdio, transportHTTP, a.transport))
	}

	a.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    a.config.GetString("app.name"),
		Version: a.config.GetString("app.version"),
	}, nil)

	if a.transport != transportHTTP {
		return
	}

	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
		Ready:      a.ready,
	})
	a.router.Raw(
		[]string{http.MethodGet, http.MethodPost, http.MethodDelete},
		"/mcp",
		mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return a.mcpServer }, nil),
	)

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{router.HeaderCorrelationID, "Mcp-Session-Id"},
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}

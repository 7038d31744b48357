package authn8

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/outbound/api"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/instrument"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/router"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/uid"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/validator"
)

func TestNew(t *testing.T) {
	// Arrange
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	client, err := api.New(api.Config{APIKey: "pat"})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	dep := Dependency{
		Client:     client,
		MCPServer:  mcp.NewServer(&mcp.Implementation{Name: "authn8-mcp", Version: "1.0.0"}, nil),
		UUID:       uid.NewUUID(),
		Validator:  v,
		Instrument: instrument.NewNoop(),
		Router:     router.NewRouter(router.Config{Instrument: instrument.NewNoop()}),
	}

	// Act
	err = New(dep)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewMissingDependency(t *testing.T) {
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	if err := New(Dependency{Validator: v}); err == nil {
		t.Fatal("expected validation error for missing dependencies")
	}
}

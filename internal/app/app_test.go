package app

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"testing"
)

const envExitChild = "AUTHN8_MCP_EXIT_CHILD"

func TestNewExitsWhenTokenRejected(t *testing.T) {
	if os.Getenv(envExitChild) == "1" {
		New()
		os.Exit(0)
	}

	// Arrange
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cmd := exec.Command(os.Args[0], "-test.run=^TestNewExitsWhenTokenRejected$")
	cmd.Env = append(os.Environ(),
		envExitChild+"=1",
		"CONFIG_PATH=",
		"AUTHN8_API_URL="+srv.URL,
		"AUTHN8_API_KEY=pat_rejected",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// Act
	err := cmd.Run()

	// Assert
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v (stderr: %s)", err, stderr.String())
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one token check, got %d", hits.Load())
	}
	out := stderr.String()
	if !strings.Contains(out, "Error: Token is invalid or expired.") {
		t.Fatalf("expected auth error on stderr, got %s", out)
	}
	if strings.Contains(out, bannerTitle) || strings.Contains(out, "authn8 token validated") {
		t.Fatalf("expected startup to stop before serving, got %s", out)
	}
}

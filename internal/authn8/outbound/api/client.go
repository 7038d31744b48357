package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/clock"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/goerror"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/instrument"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the public Authn8 API.
	DefaultBaseURL = "https://api.authn8.com"
	// DefaultUserAgent identifies this client to the API.
	DefaultUserAgent = "authn8-mcp/1.0.0"

	defaultTimeout = 30 * time.Second

	pathTokenInfo = "/api/pat/me"
	pathAccounts  = "/api/pat/accounts"
	pathOTP       = "/api/pat/otp/"
)

// Config holds everything needed to build a Client.
type Config struct {
	// BaseURL of the Authn8 API, without trailing slash. Defaults to DefaultBaseURL.
	BaseURL string
	// APIKey is the personal access token sent as bearer credential. Required.
	APIKey string
	// UserAgent sent with every request. Defaults to DefaultUserAgent.
	UserAgent string
	// Timeout bounds a single HTTP exchange when HTTPClient is nil.
	Timeout time.Duration
	// CacheTTL bounds how long the account list is served from memory.
	CacheTTL time.Duration
	// Clock drives cache expiry. Defaults to the system clock.
	Clock clock.Clocker
	// HTTPClient overrides the instrumented default client.
	HTTPClient *http.Client
	// Instrument provides tracing and metrics. Defaults to noop.
	Instrument instrument.Instrumentation
}

// Client talks to the Authn8 PAT API and owns the account cache.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client
	cache     *accountCache
	ins       instrument.Instrumentation

	requests     metric.Int64Counter
	cacheLookups metric.Int64Counter
}

// New validates cfg and returns a Client with an empty account cache.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, goerror.NewConfig("AUTHN8_API_KEY environment variable is not set. " +
			"Please set it to your PAT token from the Authn8 dashboard.")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, goerror.NewConfig(fmt.Sprintf("AUTHN8_API_URL (%s) is not a valid URL", baseURL))
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	ins := cfg.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	meter := ins.Meter("authn8.outbound.api")
	requests, err := meter.Int64Counter("authn8.api.requests",
		metric.WithDescription("Requests sent to the Authn8 API by endpoint and status."))
	if err != nil {
		return nil, err
	}
	cacheLookups, err := meter.Int64Counter("authn8.accounts.cache",
		metric.WithDescription("Account list lookups by cache result."))
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		userAgent:    userAgent,
		http:         httpClient,
		cache:        newAccountCache(cfg.CacheTTL, cfg.Clock),
		ins:          ins,
		requests:     requests,
		cacheLookups: cacheLookups,
	}, nil
}

// BaseURL returns the API base URL the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTokenInfo fetches the current token's metadata. It is never cached.
func (c *Client) GetTokenInfo(ctx context.Context) (*entity.TokenInfo, error) {
	var resp tokenInfoResponse
	if err := c.get(ctx, "GetTokenInfo", pathTokenInfo, &resp); err != nil {
		return nil, err
	}

	return resp.toEntity(), nil
}

// ListAccounts returns the accounts reachable by the token, served from the
// cache while it is younger than the configured TTL.
func (c *Client) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	accounts, hit, err := c.cache.getOrFetch(ctx, c.fetchAccounts)
	if err != nil {
		return nil, err
	}

	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	slog.DebugContext(ctx, "account list served", "cache", result, "count", len(accounts))

	return accounts, nil
}

func (c *Client) fetchAccounts(ctx context.Context) ([]entity.Account, error) {
	var resp accountsResponse
	if err := c.get(ctx, "ListAccounts", pathAccounts, &resp); err != nil {
		return nil, err
	}

	return resp.toEntities(), nil
}

// GetOTP asks the API for a fresh code. accountID is passed through as is;
// unknown ids surface as a not-found error from the API.
func (c *Client) GetOTP(ctx context.Context, accountID string) (*entity.OTP, error) {
	var resp otpResponse
	if err := c.get(ctx, "GetOTP", pathOTP+url.PathEscape(accountID), &resp); err != nil {
		return nil, err
	}

	return &entity.OTP{Name: resp.Name, Code: resp.Code, Length: resp.Length}, nil
}

// ResolveByName matches name against the (possibly cached) account list.
func (c *Client) ResolveByName(ctx context.Context, name string) (entity.Resolution, error) {
	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return entity.Resolution{}, err
	}

	return entity.Resolve(name, accounts), nil
}

// ValidateToken fetches the token info once, for use before serving. API
// errors (401, 403, 404, 429 and other statuses) are returned unchanged; any
// failure without an API response is relabeled with the configured base URL.
func (c *Client) ValidateToken(ctx context.Context) (*entity.TokenInfo, error) {
	info, err := c.GetTokenInfo(ctx)
	if err == nil {
		return info, nil
	}

	if IsDomainError(err) {
		return nil, err
	}

	cause := err
	if gerr, ok := goerror.As(err); ok && gerr.Unwrap() != nil {
		cause = gerr.Unwrap()
	}

	return nil, goerror.NewUpstream(goerror.CodeUpstream, 0, fmt.Sprintf(
		"Failed to connect to Authn8 API. Please check AUTHN8_API_URL (%s). Error: %v", c.baseURL, cause,
	), err)
}

func (c *Client) get(ctx context.Context, op, endpoint string, dst any) (err error) {
	ctx, span := c.ins.Tracer("authn8.outbound.api").Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("authn8.endpoint", endpoint)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return goerror.NewUpstream(goerror.CodeUpstream, 0, "Failed to build Authn8 API request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.countRequest(ctx, op, 0)
		slog.WarnContext(ctx, "authn8 api request failed", "op", op, "error", err)
		return goerror.NewUpstream(goerror.CodeUpstream, 0, "Failed to reach Authn8 API: "+err.Error(), err)
	}
	defer func() {
		//nolint:errcheck,gosec // ignore error
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	c.countRequest(ctx, op, resp.StatusCode)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.WarnContext(ctx, "authn8 api returned error status", "op", op, "status", resp.StatusCode)
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return goerror.NewUpstream(goerror.CodeUpstream, 0, "Unexpected response from Authn8 API", err)
	}

	return nil
}

func (c *Client) countRequest(ctx context.Context, op string, status int) {
	c.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.Int("status", status),
	))
}

// statusError maps a non-2xx response onto the error taxonomy.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return goerror.NewUpstream(goerror.CodeUnauthorized, resp.StatusCode,
			"Token is invalid or expired. Please check your token in the Authn8 dashboard.", nil)
	case http.StatusForbidden:
		return goerror.NewUpstream(goerror.CodeForbidden, resp.StatusCode,
			"Token does not have permission to access this resource.", nil)
	case http.StatusNotFound:
		return goerror.NewUpstream(goerror.CodeNotFound, resp.StatusCode, "Resource not found.", nil)
	case http.StatusTooManyRequests:
		retryAfter := strings.TrimSpace(resp.Header.Get("Retry-After"))
		if retryAfter == "" {
			return goerror.NewRateLimited("Rate limited. Please try again later.", "")
		}
		return goerror.NewRateLimited(fmt.Sprintf("Rate limited. Retry after %s seconds.", retryAfter), retryAfter)
	default:
		return goerror.NewUpstream(goerror.CodeUpstream, resp.StatusCode,
			fmt.Sprintf("API request failed with status %d", resp.StatusCode), nil)
	}
}

// IsDomainError reports whether err carries an API response status, as
// opposed to a transport or decoding failure.
func IsDomainError(err error) bool {
	gerr, ok := goerror.As(err)
	return ok && gerr.Status() != 0
}

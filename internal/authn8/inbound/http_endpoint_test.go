package inbound

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/authn8-mcp/internal/authn8/entity"
	"github.com/shandysiswandi/authn8-mcp/internal/authn8/usecase"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/goerror"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/instrument"
	"github.com/shandysiswandi/authn8-mcp/internal/pkg/router"
)

func newHTTPTestRouter(uc uc) *router.Router {
	r := router.NewRouter(router.Config{Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(r, uc)
	return r
}

func TestHTTPGetOTPQuery(t *testing.T) {
	// Arrange
	uc := &fakeUC{otp: &usecase.GetOTPOutput{Match: entity.ResolutionSingle, Account: "Acme Bank", Code: "123456"}}
	r := newHTTPTestRouter(uc)
	rec := httptest.NewRecorder()

	// Act
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/otp?account_name=Acme%20Bank", nil))

	// Assert
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data OTPResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Account != "Acme Bank" || body.Data.Code != "123456" {
		t.Fatalf("unexpected data %+v", body.Data)
	}
	if uc.otpIn.AccountName != "Acme Bank" {
		t.Fatalf("unexpected usecase input %+v", uc.otpIn)
	}
}

func TestHTTPGetOTPByIDPath(t *testing.T) {
	uc := &fakeUC{otp: &usecase.GetOTPOutput{Match: entity.ResolutionSingle, Account: "Globex", Code: "1"}}
	rec := httptest.NewRecorder()

	newHTTPTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/a3/otp", nil))

	if rec.Code != http.StatusOK || uc.otpIn.AccountID != "a3" {
		t.Fatalf("unexpected status %d input %+v", rec.Code, uc.otpIn)
	}
}

func TestHTTPGetOTPAmbiguous(t *testing.T) {
	// Arrange
	uc := &fakeUC{otp: &usecase.GetOTPOutput{
		Match:      entity.ResolutionAmbiguous,
		Query:      "acme",
		Candidates: []entity.Account{{ID: "a1", Name: "Acme Bank"}, {ID: "a2", Name: "Acme Shop"}},
	}}
	rec := httptest.NewRecorder()

	// Act
	newHTTPTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/otp?account_name=acme", nil))

	// Assert
	var body struct {
		Message string      `json:"message"`
		Data    OTPResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data.Candidates) != 2 || body.Data.Code != "" {
		t.Fatalf("unexpected data %+v", body.Data)
	}
	if body.Message != `Multiple accounts match "acme". Please be more specific.` {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestHTTPErrorStatus(t *testing.T) {
	uc := &fakeUC{err: goerror.NewUpstream(goerror.CodeForbidden, 403, "Token does not have permission to access this resource.", nil)}
	rec := httptest.NewRecorder()

	newHTTPTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestHTTPListAccountsEmpty(t *testing.T) {
	uc := &fakeUC{list: &usecase.ListAccountsOutput{}}
	rec := httptest.NewRecorder()

	newHTTPTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

	var body struct {
		Message string            `json:"message"`
		Data    []AccountResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "No accounts are accessible with this token." || body.Data == nil || len(body.Data) != 0 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHTTPGetOTPMissingQuery(t *testing.T) {
	// Arrange
	uc := &fakeUC{}
	rec := httptest.NewRecorder()

	// Act
	newHTTPTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/otp", nil))

	// Assert
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var body struct {
		Message string            `json:"message"`
		Error   map[string]string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Validation error" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	for _, field := range []string{"account_id", "account_name"} {
		if body.Error[field] != missingAccountQuery {
			t.Fatalf("field %q: unexpected error %q", field, body.Error[field])
		}
	}
	if uc.otpCalls != 0 {
		t.Fatalf("expected no usecase call, got %d", uc.otpCalls)
	}
}

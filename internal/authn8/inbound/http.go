package inbound

import "github.com/shandysiswandi/authn8-mcp/internal/pkg/router"

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/accounts", end.ListAccounts)
	r.GET("/api/v1/accounts/:id/otp", end.GetOTPByID)
	r.GET("/api/v1/otp", end.GetOTP)
	r.GET("/api/v1/whoami", end.WhoAmI)
}

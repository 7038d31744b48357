package entity

// ScopedGroup is an account group a token is restricted to.
type ScopedGroup struct {
	ID   string
	Name string
}

// TokenInfo describes the personal access token the process runs with.
type TokenInfo struct {
	BusinessName string
	TokenName    string
	ScopedGroups []ScopedGroup
	AccountCount int
	// ExpiresAt is the raw timestamp reported by the API.
	ExpiresAt string
}

// Account is a 2FA account reachable by the token.
type Account struct {
	ID           string
	Name         string
	IssuerDomain string
}

// OTP is a freshly generated one-time passcode.
type OTP struct {
	Name   string
	Code   string
	Length int
}

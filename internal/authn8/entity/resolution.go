package entity

import (
	"strings"

	"github.com/samber/lo"
)

// ResolutionKind tags the outcome of resolving an account by name.
type ResolutionKind int

const (
	// ResolutionNotFound means no account matched the query.
	ResolutionNotFound ResolutionKind = iota
	// ResolutionSingle means exactly one account matched.
	ResolutionSingle
	// ResolutionAmbiguous means more than one account matched.
	ResolutionAmbiguous
)

// String returns the string representation of the resolution kind.
func (k ResolutionKind) String() string {
	switch k {
	case ResolutionSingle:
		return "single"
	case ResolutionAmbiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Resolution is the outcome of Resolve. Exactly one of the following holds:
//   - Kind == ResolutionSingle and Account is the match;
//   - Kind == ResolutionAmbiguous and Candidates has two or more accounts;
//   - Kind == ResolutionNotFound and Known lists every account searched.
type Resolution struct {
	Kind       ResolutionKind
	Account    Account
	Candidates []Account
	Known      []Account
}

// Resolve matches query against the name and issuer domain of every account,
// case-insensitively, by substring containment. Candidates keep the order of
// accounts. The query is not trimmed; an empty query matches every account.
func Resolve(query string, accounts []Account) Resolution {
	needle := strings.ToLower(query)

	matches := lo.Filter(accounts, func(acc Account, _ int) bool {
		return strings.Contains(strings.ToLower(acc.Name), needle) ||
			strings.Contains(strings.ToLower(acc.IssuerDomain), needle)
	})

	switch len(matches) {
	case 0:
		return Resolution{Kind: ResolutionNotFound, Known: accounts}
	case 1:
		return Resolution{Kind: ResolutionSingle, Account: matches[0]}
	default:
		return Resolution{Kind: ResolutionAmbiguous, Candidates: matches}
	}
}

// FindByID returns the account with the exact id.
func FindByID(id string, accounts []Account) (Account, bool) {
	return lo.Find(accounts, func(acc Account) bool {
		return acc.ID == id
	})
}

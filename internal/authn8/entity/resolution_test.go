package entity

import "testing"

var acmeAccounts = []Account{
	{ID: "a1", Name: "Acme Bank", IssuerDomain: "acme.com"},
	{ID: "a2", Name: "Acme Shop", IssuerDomain: "shop.acme.com"},
	{ID: "g1", Name: "GitHub", IssuerDomain: "github.com"},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		accounts  []Account
		wantKind  ResolutionKind
		wantIDs   []string
		wantKnown int
	}{
		{name: "ambiguous keeps order", query: "acme", accounts: acmeAccounts, wantKind: ResolutionAmbiguous, wantIDs: []string{"a1", "a2"}},
		{name: "single by name", query: "bank", accounts: acmeAccounts, wantKind: ResolutionSingle, wantIDs: []string{"a1"}},
		{name: "upper case query", query: "ACME BANK", accounts: acmeAccounts, wantKind: ResolutionSingle, wantIDs: []string{"a1"}},
		{name: "single by issuer", query: "shop.acme", accounts: acmeAccounts, wantKind: ResolutionSingle, wantIDs: []string{"a2"}},
		{name: "issuer or name", query: "git", accounts: acmeAccounts, wantKind: ResolutionSingle, wantIDs: []string{"g1"}},
		{name: "not found lists known", query: "nope", accounts: acmeAccounts, wantKind: ResolutionNotFound, wantKnown: 3},
		{name: "empty query matches all", query: "", accounts: acmeAccounts, wantKind: ResolutionAmbiguous, wantIDs: []string{"a1", "a2", "g1"}},
		{name: "empty list", query: "acme", accounts: nil, wantKind: ResolutionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got := Resolve(tt.query, tt.accounts)

			// Assert
			if got.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", got.Kind, tt.wantKind)
			}

			switch got.Kind {
			case ResolutionSingle:
				if got.Account.ID != tt.wantIDs[0] {
					t.Fatalf("account = %q, want %q", got.Account.ID, tt.wantIDs[0])
				}
			case ResolutionAmbiguous:
				if len(got.Candidates) != len(tt.wantIDs) {
					t.Fatalf("candidates = %d, want %d", len(got.Candidates), len(tt.wantIDs))
				}
				for i, id := range tt.wantIDs {
					if got.Candidates[i].ID != id {
						t.Fatalf("candidate[%d] = %q, want %q", i, got.Candidates[i].ID, id)
					}
				}
			case ResolutionNotFound:
				if len(got.Known) != tt.wantKnown {
					t.Fatalf("known = %d, want %d", len(got.Known), tt.wantKnown)
				}
			}
		})
	}
}

// Every query against a non-empty list yields exactly one well-formed outcome.
func TestResolveTotality(t *testing.T) {
	queries := []string{"", " ", "a", "A", "acme", ".com", "zzz", "Acme Bank", "ACME.COM", "🙂"}

	for _, q := range queries {
		got := Resolve(q, acmeAccounts)

		switch got.Kind {
		case ResolutionSingle:
			if got.Candidates != nil {
				t.Fatalf("query %q: single outcome carries candidates", q)
			}
		case ResolutionAmbiguous:
			if len(got.Candidates) < 2 {
				t.Fatalf("query %q: ambiguous outcome with %d candidates", q, len(got.Candidates))
			}
		case ResolutionNotFound:
			if len(got.Known) != len(acmeAccounts) {
				t.Fatalf("query %q: not-found outcome lost known accounts", q)
			}
		default:
			t.Fatalf("query %q: unknown kind %d", q, got.Kind)
		}
	}
}

func TestFindByID(t *testing.T) {
	acc, ok := FindByID("a2", acmeAccounts)
	if !ok || acc.Name != "Acme Shop" {
		t.Fatalf("expected Acme Shop, got %+v (found=%v)", acc, ok)
	}

	if _, ok := FindByID("missing", acmeAccounts); ok {
		t.Fatal("expected missing id to be absent")
	}
}

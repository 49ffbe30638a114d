package domain

// AuthState is the state of the in-memory auth session.
type AuthState int

// Auth states.
const (
	AuthUnauthenticated AuthState = iota
	AuthCodeReceived
	AuthAuthenticated
)

// String returns a display name for the state.
func (s AuthState) String() string {
	switch s {
	case AuthUnauthenticated:
		return "unauthenticated"
	case AuthCodeReceived:
		return "code received"
	case AuthAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// OAuthClient holds the OAuth application credentials.
// The secret is supplied out-of-band and never written to disk.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// AuthorizationRequest is the input to the redirect capability.
type AuthorizationRequest struct {
	ClientID string
	Scopes   []string
}

// AuthorizationOutcome classifies a redirect result.
type AuthorizationOutcome int

// Authorization outcomes.
const (
	AuthorizationSucceeded AuthorizationOutcome = iota
	AuthorizationCancelled
	AuthorizationErrored
)

// AuthorizationResult is what the redirect capability reports back.
// Code is set on success, Err on error.
type AuthorizationResult struct {
	Err     error
	Code    string
	Outcome AuthorizationOutcome
}

// TokenRequest is the body of the token exchange.
type TokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
}

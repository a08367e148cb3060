// Package hawk provides request guards for the Hawk HTTP authentication
// scheme. A guard checks that a request carries exactly one well-formed
// "Hawk ..." header and parses its attribute list; it never verifies
// MACs, nonces or timestamps. Callers that need the credential to be
// genuine must validate it themselves.
package hawk

import (
	"errors"
	"net/http"
)

// Header names understood by the guards.
const (
	AuthorizationHeader       = "Authorization"
	ServerAuthorizationHeader = "Server-Authorization"
)

// Scheme is the authentication scheme accepted by the guards.
const Scheme = "Hawk"

// Errors
var (
	// ErrNoHeader means no usable credential header was presented: the
	// header is absent, occurs more than once, carries a different
	// scheme, or has no space between scheme and payload.
	ErrNoHeader = errors.New("hawk: no authorization header")
)

// CredentialError wraps the grammar error produced while parsing the
// payload of an otherwise well-shaped header. The inner error is kept
// verbatim for diagnostics.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return "hawk: malformed credential: " + e.Err.Error()
}

func (e *CredentialError) Unwrap() error { return e.Err }

// GuardError pairs a guard failure with the HTTP status the caller
// should answer with. Every error returned by Evaluate is a
// *GuardError wrapping either ErrNoHeader or a *CredentialError.
type GuardError struct {
	Status int
	Err    error
}

func (e *GuardError) Error() string { return e.Err.Error() }

func (e *GuardError) Unwrap() error { return e.Err }

// Status returns the HTTP status a guard failure maps to. Errors not
// produced by a guard map to 401.
func Status(err error) int {
	var gerr *GuardError
	if errors.As(err, &gerr) {
		return gerr.Status
	}
	return http.StatusUnauthorized
}

// Guard checks one request header for a syntactically valid Hawk
// credential.
type Guard struct {
	// Header is the name of the guarded header.
	Header string
	// Parse overrides the credential parser. Defaults to
	// ParseCredential.
	Parse func(payload string) (*Credential, error)
}

// NewAuthorizationGuard guards the client-sent Authorization header.
func NewAuthorizationGuard() *Guard {
	return &Guard{Header: AuthorizationHeader}
}

// NewServerAuthorizationGuard guards the Hawk-specific
// Server-Authorization header. Identical to the Authorization guard
// apart from the header it inspects.
func NewServerAuthorizationGuard() *Guard {
	return &Guard{Header: ServerAuthorizationHeader}
}

// Evaluate runs the guard against a single request. It reads only the
// request's headers and has no side effects; the first failing step
// short-circuits the rest.
func (g *Guard) Evaluate(r *http.Request) (*Credential, error) {
	raw, gerr := locateHeader(r.Header.Values(g.Header))
	if gerr != nil {
		return nil, gerr
	}

	payload, gerr := splitScheme(raw, Scheme)
	if gerr != nil {
		return nil, gerr
	}

	parse := g.Parse
	if parse == nil {
		parse = ParseCredential
	}
	cred, err := parse(payload)
	if err != nil {
		return nil, &GuardError{
			Status: http.StatusUnauthorized,
			Err:    &CredentialError{Err: err},
		}
	}

	return cred, nil
}

// locateHeader picks the single value of the guarded header. Zero
// values and more than one value are both ErrNoHeader; duplicates get
// a 400 because the request itself is broken, not merely missing
// credentials.
func locateHeader(values []string) (string, *GuardError) {
	switch len(values) {
	case 0:
		return "", &GuardError{Status: http.StatusUnauthorized, Err: ErrNoHeader}
	case 1:
		return values[0], nil
	default:
		return "", &GuardError{Status: http.StatusBadRequest, Err: ErrNoHeader}
	}
}

// splitScheme splits "Hawk <payload>". The scheme token runs up to the
// first space and is matched ASCII case-insensitively; the payload
// starts immediately after that space and is returned untouched, so a
// value equal to the bare scheme token fails. Extra spaces become part
// of the payload.
func splitScheme(raw, scheme string) (string, *GuardError) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == ' ' {
			if !equalFoldASCII(raw[:i], scheme) {
				break
			}
			return raw[i+1:], nil
		}
	}
	return "", &GuardError{Status: http.StatusUnauthorized, Err: ErrNoHeader}
}

// equalFoldASCII compares two strings ASCII case-insensitively. Unlike
// strings.EqualFold it applies no Unicode folding, so only A-Z and a-z
// compare loosely.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

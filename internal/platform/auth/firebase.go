package auth

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseUser is the authenticated shopper identity attached to the
// request context after token verification.
type FirebaseUser struct {
	UID           string
	Email         string
	EmailVerified bool
}

var (
	// ErrNoToken indicates the Authorization header was absent.
	ErrNoToken = errors.New("missing authorization header")

	// ErrInvalidToken indicates a malformed or unverifiable token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked indicates the token was revoked server-side.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrUserDisabled indicates the account behind the token is disabled.
	ErrUserDisabled = errors.New("user disabled")

	// ErrCertificateFetch indicates the signing keys could not be
	// fetched. Callers map this to 503 rather than 401.
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier validates a bearer token and resolves the user behind it.
type Verifier interface {
	Verify(ctx context.Context, token string) (*FirebaseUser, error)
}

// FirebaseVerifier verifies ID tokens against the Firebase Admin SDK,
// including the revocation check.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier wraps a Firebase auth client.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify validates the ID token and maps SDK failures onto the package
// error values.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*FirebaseUser, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, classifyVerifyError(err)
	}

	email, _ := token.Claims["email"].(string)
	verified, _ := token.Claims["email_verified"].(bool)

	return &FirebaseUser{
		UID:           token.UID,
		Email:         email,
		EmailVerified: verified,
	}, nil
}

func classifyVerifyError(err error) error {
	switch {
	case fbauth.IsCertificateFetchFailed(err):
		return ErrCertificateFetch
	case fbauth.IsIDTokenExpired(err):
		return ErrTokenExpired
	case fbauth.IsIDTokenRevoked(err):
		return ErrTokenRevoked
	case fbauth.IsUserDisabled(err):
		return ErrUserDisabled
	default:
		return ErrInvalidToken
	}
}

// ExtractBearerToken pulls the token out of an Authorization header.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

// Compile-time interface check
var _ Verifier = (*FirebaseVerifier)(nil)

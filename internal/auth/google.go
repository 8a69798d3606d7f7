package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// ErrGoogleDisabled is returned when no Google client id is configured.
var ErrGoogleDisabled = errors.New("google sign-in is not configured")

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Email string
	Name  string
}

// GoogleVerifier checks a Google ID token credential.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// IDTokenVerifier validates credentials against Google's public keys for
// one OAuth client id.
type IDTokenVerifier struct {
	audience string
}

// NewIDTokenVerifier returns a verifier for tokens issued to clientID.
func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{audience: clientID}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	if v.audience == "" {
		return nil, ErrGoogleDisabled
	}

	payload, err := idtoken.Validate(ctx, credential, v.audience)
	if err != nil {
		return nil, fmt.Errorf("Verify: validating id token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("Verify: id token carries no email")
	}
	name, _ := payload.Claims["name"].(string)
	return &GoogleIdentity{Email: email, Name: name}, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var ErrTokenMismatch = errors.New("token claims do not match supplied identity")

// GoogleIdentity is what a verified Google ID token asserts about the caller.
type GoogleIdentity struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}

// VerifyGoogleToken checks the ID token's signature and audience against the
// configured OAuth client id and fails closed when the token's subject or
// email differ from the values the client claimed.
func VerifyGoogleToken(ctx context.Context, rawToken, clientID, claimedEmail, claimedGoogleID string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, clientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}
	email, _ := payload.Claims["email"].(string)
	if email != claimedEmail || payload.Subject != claimedGoogleID {
		return nil, ErrTokenMismatch
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	return &GoogleIdentity{
		GoogleID: payload.Subject,
		Email:    email,
		Name:     name,
		Picture:  picture,
	}, nil
}

package services

import (
	"context"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier turns a bearer token into the caller's verified email.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// NewTokenVerifier returns the Firebase-backed verifier when the Admin SDK is
// configured, otherwise an HS256 verifier keyed by JWT_SECRET so local
// development works without a service account.
func NewTokenVerifier() TokenVerifier {
	if AuthClient != nil {
		return &firebaseVerifier{}
	}
	return &jwtVerifier{}
}

type firebaseVerifier struct{}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	decoded, err := AuthClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	email, ok := decoded.Claims["email"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("token has no email claim")
	}
	return email, nil
}

type jwtVerifier struct{}

func (v *jwtVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := jwt.Parse(idToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("token has no email claim")
	}
	return email, nil
}

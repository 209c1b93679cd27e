package security

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrNotSuperadmin = errors.New("token does not carry the superadmin role")
)

// RoleSuperadmin is the only role allowed to drive tenant lifecycle actions.
const RoleSuperadmin = "superadmin"

// ActorClaims carries the authenticated administrator identity. Sessions are
// issued elsewhere; this service only verifies and reads them.
type ActorClaims struct {
	ActorID string `json:"actor_id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

type TokenVerifier interface {
	VerifyToken(tokenString string) (*ActorClaims, error)
}

type tokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) TokenVerifier {
	return &tokenVerifier{secret: []byte(secret)}
}

func (v *tokenVerifier) VerifyToken(tokenString string) (*ActorClaims, error) {
	claims := &ActorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ActorID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidToken is returned for tokens that fail signature or claim
	// validation.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// TokenVerifier validates HS256 bearer tokens and extracts the identity from
// their claims.
type TokenVerifier struct {
	secret []byte
	logger zerolog.Logger
}

// NewTokenVerifier creates a verifier for the given signing secret.
func NewTokenVerifier(secret string, logger zerolog.Logger) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		logger: logger.With().Str("component", "token-verifier").Logger(),
	}
}

// Verify parses and validates a bearer token. The subject claim carries the
// user ID; the email claim is optional.
func (v *TokenVerifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		v.logger.Debug().Err(err).Msg("token validation failed")
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		v.logger.Debug().Msg("token missing subject claim")
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return &Identity{UserID: sub, Email: email}, nil
}

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"soundreel-backend/internal/config"
)

// Principal is the verified identity attached to a request. The id is the
// identity provider's opaque subject and doubles as the account primary key.
type Principal struct {
	ID    string
	Email string
}

var ErrUnauthenticated = errors.New("invalid or missing credential")

// Verifier validates a bearer credential against the external identity
// provider. The core trusts the result for the remainder of the request.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Principal, error)
}

// jwtVerifier checks tokens signed by the provider with a shared HMAC secret.
type jwtVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTVerifier(cfg config.IdentityConfig) Verifier {
	return &jwtVerifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

func (v *jwtVerifier) Verify(ctx context.Context, credential string) (Principal, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Principal{}, ErrUnauthenticated
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Principal{}, ErrUnauthenticated
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return Principal{}, ErrUnauthenticated
	}

	return Principal{ID: sub, Email: email}, nil
}

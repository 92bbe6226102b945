package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cooooin/harmony/internal/models"
)

// KeyResolver maps a claim's key id to the secret it was signed with.
// Returning an error refuses the claim.
type KeyResolver func(keyID string) ([]byte, error)

type TokenManager struct {
	issuer    string
	ttl       time.Duration
	activeKey string
	secret    []byte
	resolve   KeyResolver
}

func NewTokenManager(issuer string, ttl time.Duration, activeKey string, secret []byte, resolve KeyResolver) *TokenManager {
	return &TokenManager{issuer: issuer, ttl: ttl, activeKey: activeKey, secret: secret, resolve: resolve}
}

// Issue signs a claim for the given person under the active key.
func (tm *TokenManager) Issue(personID int64) (string, time.Time, error) {
	now := time.Now().UTC()
	expiry := now.Add(tm.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    tm.issuer,
		Subject:   strconv.FormatInt(personID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = tm.activeKey
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign claim: %w", err)
	}
	return signed, expiry, nil
}

// Verify checks the claim's signature, expiry and issuer and returns the
// person it was issued to. Every failure collapses to ErrUnauthorized so
// callers cannot leak why a claim was refused.
func (tm *TokenManager) Verify(tokenStr string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, tm.keyFor,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("verify claim: %w", models.ErrUnauthorized)
	}
	personID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("verify claim: %w", models.ErrUnauthorized)
	}
	return personID, nil
}

func (tm *TokenManager) keyFor(token *jwt.Token) (any, error) {
	kid, ok := token.Header["kid"].(string)
	if !ok {
		return nil, fmt.Errorf("claim carries no key id")
	}
	return tm.resolve(kid)
}

package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/server/config"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is used when the configuration does not set one.
const DefaultTokenValidity = 5 * time.Minute

// TokenService issues and decodes stateless access tokens: JWT compact
// serialization, HS256, claims sub (user id), iat and exp. The secret is
// read once at construction and never mutated, so a single instance can be
// shared by concurrent requests.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	validity := cfg.AccessTokenValidityDuration
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &TokenService{secret: []byte(cfg.SecretKey), validity: validity}
}

// Issue signs a token for userID valid from now until now+validity.
// userID must be positive, the same rule Decode applies to sub.
func (s *TokenService) Issue(userID int64, now time.Time) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("%w: secret key is not configured", common.ErrSigning)
	}
	if userID <= 0 {
		return "", fmt.Errorf("%w: user id %d", common.ErrValidation, userID)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSigning, err)
	}
	return tokenString, nil
}

// Decode verifies the signature of tokenString and then its expiry against
// now, returning the embedded user id. A bad signature or structure yields
// common.ErrInvalidToken whatever the expiry says; a well-signed token past
// its exp yields common.ErrTokenExpired. Clock skew is not compensated.
func (s *TokenService) Decode(tokenString string, now time.Time) (int64, error) {
	if len(s.secret) == 0 {
		return 0, fmt.Errorf("%w: secret key is not configured", common.ErrSigning)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	// exp has second precision; the token stays valid through that second.
	if claims.ExpiresAt == nil {
		return 0, fmt.Errorf("%w: missing exp claim", common.ErrInvalidToken)
	}
	if now.Truncate(time.Second).After(claims.ExpiresAt.Time) {
		return 0, common.ErrTokenExpired
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", common.ErrInvalidToken, claims.Subject)
	}
	return userID, nil
}

package authorization

import (
	"errors"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/google/uuid"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

type AccessClaims struct {
	jwt.RegisteredClaims
	UserID string      `json:"_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"_id"`
}

type TokenConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// TokenIssuer signs and verifies HS256 tokens. Access and refresh tokens use
// separate keys, so neither verifies as the other.
type TokenIssuer struct {
	accessSigner    jwt.Signer
	accessVerifier  jwt.Verifier
	refreshSigner   jwt.Signer
	refreshVerifier jwt.Verifier
	accessTTL       time.Duration
	refreshTTL      time.Duration
	now             func() time.Time
}

func NewTokenIssuer(config TokenConfig) (*TokenIssuer, error) {
	accessSigner, err := jwt.NewSignerHS(jwt.HS256, []byte(config.AccessSecret))
	if err != nil {
		return nil, err
	}
	accessVerifier, err := jwt.NewVerifierHS(jwt.HS256, []byte(config.AccessSecret))
	if err != nil {
		return nil, err
	}
	refreshSigner, err := jwt.NewSignerHS(jwt.HS256, []byte(config.RefreshSecret))
	if err != nil {
		return nil, err
	}
	refreshVerifier, err := jwt.NewVerifierHS(jwt.HS256, []byte(config.RefreshSecret))
	if err != nil {
		return nil, err
	}

	return &TokenIssuer{
		accessSigner:    accessSigner,
		accessVerifier:  accessVerifier,
		refreshSigner:   refreshSigner,
		refreshVerifier: refreshVerifier,
		accessTTL:       config.AccessTTL,
		refreshTTL:      config.RefreshTTL,
		now:             time.Now,
	}, nil
}

func (issuer *TokenIssuer) AccessTTL() time.Duration {
	return issuer.accessTTL
}

func (issuer *TokenIssuer) RefreshTTL() time.Duration {
	return issuer.refreshTTL
}

func (issuer *TokenIssuer) registered(userID string, ttl time.Duration) jwt.RegisteredClaims {
	now := issuer.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (issuer *TokenIssuer) IssueAccessToken(user *domain.User) (string, *AccessClaims, error) {
	claims := &AccessClaims{
		RegisteredClaims: issuer.registered(user.ID.Hex(), issuer.accessTTL),
		UserID:           user.ID.Hex(),
		Email:            user.Email,
		Role:             user.Role,
	}

	token, err := jwt.NewBuilder(issuer.accessSigner).Build(claims)
	if err != nil {
		return "", nil, err
	}
	return token.String(), claims, nil
}

func (issuer *TokenIssuer) IssueRefreshToken(userID string) (string, *RefreshClaims, error) {
	claims := &RefreshClaims{
		RegisteredClaims: issuer.registered(userID, issuer.refreshTTL),
		UserID:           userID,
	}

	token, err := jwt.NewBuilder(issuer.refreshSigner).Build(claims)
	if err != nil {
		return "", nil, err
	}
	return token.String(), claims, nil
}

func (issuer *TokenIssuer) ParseAccessToken(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := issuer.parse(raw, issuer.accessVerifier, &claims, &claims.RegisteredClaims); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (issuer *TokenIssuer) ParseRefreshToken(raw string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := issuer.parse(raw, issuer.refreshVerifier, &claims, &claims.RegisteredClaims); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (issuer *TokenIssuer) parse(raw string, verifier jwt.Verifier, claims any, registered *jwt.RegisteredClaims) error {
	if raw == "" {
		return ErrInvalidToken
	}
	if err := jwt.ParseClaims([]byte(raw), verifier, claims); err != nil {
		return ErrInvalidToken
	}
	if registered.ID == "" || registered.ExpiresAt == nil {
		return ErrInvalidToken
	}
	if !issuer.now().Before(registered.ExpiresAt.Time) {
		return ErrExpiredToken
	}
	return nil
}

// Remaining is how long the token stays valid from now, never negative.
func (issuer *TokenIssuer) Remaining(registered jwt.RegisteredClaims) time.Duration {
	if registered.ExpiresAt == nil {
		return 0
	}
	remaining := registered.ExpiresAt.Time.Sub(issuer.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

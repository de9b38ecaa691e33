package application

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/authorization"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
)

type LoginResult struct {
	User         domain.UserSummary `json:"user"`
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
}

type AuthService struct {
	store  domain.UserStore
	tokens domain.TokenCache
	issuer *authorization.TokenIssuer
	tracer trace.Tracer
	now    func() time.Time
}

func NewAuthService(store domain.UserStore, tokens domain.TokenCache, issuer *authorization.TokenIssuer, tracer trace.Tracer) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		issuer: issuer,
		tracer: tracer,
		now:    time.Now,
	}
}

func (service *AuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	input.Normalize()
	if !input.HasAllFields() {
		return nil, errors.Validation(errors.AllFieldsRequired)
	}
	if messages := input.Validate(); len(messages) > 0 {
		return nil, errors.Validation(errors.ValidationFailed, messages...)
	}

	hash, err := authorization.HashPassword(input.Password)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}

	now := service.timestamp()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     hash,
		Role:         domain.Guest,
		Status:       domain.Active,
		Phone:        input.Phone,
		ProfileImage: domain.DefaultProfileImage(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if messages := user.Validate(); len(messages) > 0 {
		return nil, errors.Validation(errors.ValidationFailed, messages...)
	}

	if err := service.store.Insert(ctx, user); err != nil {
		if stderrors.Is(err, domain.ErrDuplicate) {
			return nil, errors.Conflict(errors.UserAlreadyExists)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	return user, nil
}

func (service *AuthService) Login(ctx context.Context, input domain.LoginInput) (*LoginResult, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, errors.Validation(errors.EmailAndPasswordRequired)
	}

	user, err := service.store.GetByEmail(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	if user == nil || !authorization.VerifyPassword(input.Password, user.Password) {
		return nil, errors.Authentication(errors.InvalidCredentials)
	}

	result, err := service.issuePair(user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}

	lastLogin := nextLastLogin(user.LastLogin, service.timestamp())
	if err := service.store.SetLastLogin(ctx, user.ID, lastLogin); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	user.LastLogin = &lastLogin

	return result, nil
}

// nextLastLogin keeps lastLogin strictly increasing at the millisecond
// precision the store keeps.
func nextLastLogin(previous *time.Time, now time.Time) time.Time {
	if previous != nil && !now.After(*previous) {
		return previous.Add(time.Millisecond)
	}
	return now
}

// Logout revokes the caller's access token and, when it belongs to the same
// user, the presented refresh token.
func (service *AuthService) Logout(ctx context.Context, claims *authorization.AccessClaims, refreshToken string) error {
	ctx, span := service.tracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	if claims == nil {
		return errors.Authentication(errors.UnauthorizedRequest)
	}
	if err := service.tokens.Revoke(ctx, claims.ID, service.issuer.Remaining(claims.RegisteredClaims)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return errors.Internal(err)
	}

	if refreshToken == "" {
		return nil
	}
	refresh, err := service.issuer.ParseRefreshToken(refreshToken)
	if err != nil || refresh.UserID != claims.UserID {
		return nil
	}
	if err := service.tokens.Revoke(ctx, refresh.ID, service.issuer.Remaining(refresh.RegisteredClaims)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return errors.Internal(err)
	}
	return nil
}

// RefreshSession exchanges a refresh token for a new pair. The presented
// token is revoked so it can be used once.
func (service *AuthService) RefreshSession(ctx context.Context, refreshToken string) (*LoginResult, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.RefreshSession")
	defer span.End()

	if refreshToken == "" {
		return nil, errors.Validation(errors.RefreshTokenRequired)
	}
	claims, err := service.issuer.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Authentication(errors.InvalidRefreshToken)
	}

	user, err := service.activeUser(ctx, claims.ID, claims.UserID)
	if err != nil {
		if errors.Is(err, errors.KindAuthentication) {
			return nil, errors.Authentication(errors.InvalidRefreshToken)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := service.tokens.Revoke(ctx, claims.ID, service.issuer.Remaining(claims.RegisteredClaims)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}

	result, err := service.issuePair(user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	return result, nil
}

// Authenticate resolves an access token to the identity behind it.
func (service *AuthService) Authenticate(ctx context.Context, accessToken string) (*authorization.Identity, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Authenticate")
	defer span.End()

	if accessToken == "" {
		return nil, errors.Authentication(errors.UnauthorizedRequest)
	}
	claims, err := service.issuer.ParseAccessToken(accessToken)
	if err != nil {
		return nil, errors.Authentication(errors.UnauthorizedRequest)
	}

	user, err := service.activeUser(ctx, claims.ID, claims.UserID)
	if err != nil {
		if !errors.Is(err, errors.KindAuthentication) {
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}
	return &authorization.Identity{User: user, Claims: claims}, nil
}

// activeUser loads the token's user after checking the token id against the
// revocation list.
func (service *AuthService) activeUser(ctx context.Context, tokenID, userID string) (*domain.User, error) {
	revoked, err := service.tokens.IsRevoked(ctx, tokenID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if revoked {
		return nil, errors.Authentication(errors.UnauthorizedRequest)
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.Authentication(errors.UnauthorizedRequest)
	}
	user, err := service.store.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if user == nil {
		return nil, errors.Authentication(errors.UnauthorizedRequest)
	}
	return user, nil
}

func (service *AuthService) issuePair(user *domain.User) (*LoginResult, error) {
	accessToken, _, err := service.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := service.issuer.IssueRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		User:         user.Summary(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *AuthService) AccessTTL() time.Duration {
	return service.issuer.AccessTTL()
}

// timestamp is the current time at the millisecond precision MongoDB stores.
func (service *AuthService) timestamp() time.Time {
	return service.now().UTC().Truncate(time.Millisecond)
}

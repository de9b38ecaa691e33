package application

import (
	"context"
	stderrors "errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
)

type UserService struct {
	store  domain.UserStore
	tracer trace.Tracer
}

func NewUserService(store domain.UserStore, tracer trace.Tracer) *UserService {
	return &UserService{
		store:  store,
		tracer: tracer,
	}
}

// UpdateUser applies the fields present in update. An empty update returns
// the current record unchanged.
func (service *UserService) UpdateUser(ctx context.Context, userID primitive.ObjectID, update domain.UserUpdate) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.UpdateUser")
	defer span.End()

	if update.IsEmpty() {
		user, err := service.store.GetByID(ctx, userID)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, errors.Internal(err)
		}
		if user == nil {
			return nil, errors.NotFound(errors.UserNotFound)
		}
		return user, nil
	}

	update.Normalize()
	if messages := update.Validate(); len(messages) > 0 {
		return nil, errors.Validation(errors.ValidationFailed, messages...)
	}

	user, err := service.store.Update(ctx, userID, update.Fields())
	if err != nil {
		if stderrors.Is(err, domain.ErrDuplicate) {
			return nil, errors.Conflict(errors.PhoneAlreadyExists)
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	if user == nil {
		return nil, errors.NotFound(errors.UserNotFound)
	}
	return user, nil
}

func (service *UserService) GetAllUsers(ctx context.Context, page, limit int64, filter domain.UserFilter) (*domain.UserPage, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.GetAllUsers")
	defer span.End()

	if err := checkPagination(page, limit); err != nil {
		return nil, err
	}

	filter.Search = strings.TrimSpace(filter.Search)
	var messages []string
	if filter.Role != "" && !domain.IsValidRole(filter.Role) {
		messages = append(messages, "role must be one of [host guest admin]")
	}
	if filter.Status != "" && !domain.IsValidStatus(filter.Status) {
		messages = append(messages, "status must be one of [active inactive]")
	}
	if len(messages) > 0 {
		return nil, errors.Validation(errors.InvalidFilter, messages...)
	}

	users, total, err := service.store.GetAll(ctx, filter, domain.Skip(page, limit), limit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return &domain.UserPage{
		Users:      users,
		Pagination: domain.NewPagination(total, page, limit),
	}, nil
}

func (service *UserService) GetUserById(ctx context.Context, rawID string, expand domain.UserExpansion) (*domain.UserDetails, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.GetUserById")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, errors.Validation(errors.InvalidID)
	}

	user, err := service.store.GetDetails(ctx, id, expand)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	if user == nil {
		return nil, errors.NotFound(errors.UserNotFound)
	}
	return user, nil
}

func (service *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.GetUserByEmail")
	defer span.End()

	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, errors.Validation(errors.ValidationFailed, "email is required")
	}

	user, err := service.store.GetByEmail(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	if user == nil {
		return nil, errors.NotFound(errors.UserNotFound)
	}
	return user, nil
}

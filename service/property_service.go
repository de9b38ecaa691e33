package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
)

type PropertyService struct {
	store  domain.PropertyStore
	tracer trace.Tracer
}

func NewPropertyService(store domain.PropertyStore, tracer trace.Tracer) *PropertyService {
	return &PropertyService{
		store:  store,
		tracer: tracer,
	}
}

func (service *PropertyService) ListProperties(ctx context.Context, page, limit int64) (*domain.PropertyPage, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.ListProperties")
	defer span.End()

	if err := checkPagination(page, limit); err != nil {
		return nil, err
	}

	properties, total, err := service.store.GetAll(ctx, domain.Skip(page, limit), limit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	if properties == nil {
		properties = []*domain.Property{}
	}
	return &domain.PropertyPage{
		Properties: properties,
		Pagination: domain.NewPagination(total, page, limit),
	}, nil
}

func (service *PropertyService) GetPropertyById(ctx context.Context, rawID string) (*domain.PropertyView, error) {
	ctx, span := service.tracer.Start(ctx, "PropertyService.GetPropertyById")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, errors.Validation(errors.InvalidID)
	}

	property, err := service.store.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Internal(err)
	}
	if property == nil {
		return nil, errors.NotFound(errors.PropertyNotFound)
	}
	return property, nil
}

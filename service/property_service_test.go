package application

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain/mocks"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
)

func TestPropertyService_ListProperties(t *testing.T) {
	properties := []*domain.Property{{Listing: domain.Listing{ID: primitive.NewObjectID(), Title: "Cabin"}}}
	store := &mocks.PropertyStore{}
	store.On("GetAll", mock.Anything, int64(20), int64(20)).Return(properties, int64(41), nil)

	page, err := NewPropertyService(store, tracer).ListProperties(context.Background(), 2, 20)
	require.NoError(t, err)
	assert.Equal(t, properties, page.Properties)
	assert.Equal(t, domain.Pagination{Total: 41, TotalPages: 3, CurrentPage: 2, Limit: 20}, page.Pagination)
	store.AssertExpectations(t)
}

func TestPropertyService_ListPropertiesPastLastPage(t *testing.T) {
	store := &mocks.PropertyStore{}
	store.On("GetAll", mock.Anything, int64(40), int64(10)).Return([]*domain.Property(nil), int64(12), nil)

	page, err := NewPropertyService(store, tracer).ListProperties(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Properties)
	assert.Empty(t, page.Properties)
	assert.Equal(t, domain.Pagination{Total: 12, TotalPages: 2, CurrentPage: 5, Limit: 10}, page.Pagination)
}

func TestPropertyService_ListPropertiesRejectsOverflowingPage(t *testing.T) {
	store := &mocks.PropertyStore{}

	_, err := NewPropertyService(store, tracer).ListProperties(context.Background(), math.MaxInt64, 10)
	assertKind(t, err, errors.KindValidation, errors.InvalidPagination)
	store.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestPropertyService_ListPropertiesRejectsPagination(t *testing.T) {
	store := &mocks.PropertyStore{}

	_, err := NewPropertyService(store, tracer).ListProperties(context.Background(), 1, 0)
	assertKind(t, err, errors.KindValidation, errors.InvalidPagination)
	store.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestPropertyService_GetPropertyById(t *testing.T) {
	id := primitive.NewObjectID()
	view := &domain.PropertyView{
		Listing: domain.Listing{ID: id, Title: "Cabin"},
		Host:    &domain.HostSummary{ID: primitive.NewObjectID(), Name: "H", Email: "h@x.com"},
	}
	missing := primitive.NewObjectID()

	store := &mocks.PropertyStore{}
	store.On("GetByID", mock.Anything, id).Return(view, nil)
	store.On("GetByID", mock.Anything, missing).Return(nil, nil)
	service := NewPropertyService(store, tracer)

	got, err := service.GetPropertyById(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Same(t, view, got)

	_, err = service.GetPropertyById(context.Background(), missing.Hex())
	assertKind(t, err, errors.KindNotFound, errors.PropertyNotFound)

	_, err = service.GetPropertyById(context.Background(), "xyz")
	assertKind(t, err, errors.KindValidation, errors.InvalidID)
}

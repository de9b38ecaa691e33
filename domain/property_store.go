package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PropertyStore interface {
	GetAll(ctx context.Context, skip, limit int64) ([]*Property, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*PropertyView, error)
}

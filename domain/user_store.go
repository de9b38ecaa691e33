package domain

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicate is wrapped by stores when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate key")

// UserStore lookups return (nil, nil) when no document matches.
type UserStore interface {
	Insert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetDetails(ctx context.Context, id primitive.ObjectID, expand UserExpansion) (*UserDetails, error)
	GetAll(ctx context.Context, filter UserFilter, skip, limit int64) ([]*User, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*User, error)
	SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

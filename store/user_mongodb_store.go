package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
)

var withoutPassword = bson.M{"password": 0}

type UserMongoDBStore struct {
	users  *mongo.Collection
	tracer trace.Tracer
}

func NewUserMongoDBStore(database *mongo.Database, tracer trace.Tracer) domain.UserStore {
	return &UserMongoDBStore{
		users:  database.Collection(UsersCollection),
		tracer: tracer,
	}
}

func (store *UserMongoDBStore) Insert(ctx context.Context, user *domain.User) error {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.Insert")
	defer span.End()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := store.users.InsertOne(ctx, user); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return writeError(err)
	}
	return nil
}

func (store *UserMongoDBStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.GetByID")
	defer span.End()

	return store.filterOne(ctx, bson.M{"_id": id})
}

func (store *UserMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.GetByEmail")
	defer span.End()

	return store.filterOne(ctx, bson.M{"email": email})
}

func (store *UserMongoDBStore) GetDetails(ctx context.Context, id primitive.ObjectID, expand domain.UserExpansion) (*domain.UserDetails, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.GetDetails")
	defer span.End()

	cursor, err := store.users.Aggregate(ctx, detailsPipeline(id, expand))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return nil, cursor.Err()
	}
	var details domain.UserDetails
	if err := cursor.Decode(&details); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if expand.Bookings && (details.MyBookings == nil || *details.MyBookings == nil) {
		details.MyBookings = &[]domain.Booking{}
	}
	if expand.Listings && (details.MyListings == nil || *details.MyListings == nil) {
		details.MyListings = &[]domain.Property{}
	}
	return &details, nil
}

func detailsPipeline(id primitive.ObjectID, expand domain.UserExpansion) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	if expand.Bookings {
		pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: bson.M{
			"from":         BookingsCollection,
			"localField":   "_id",
			"foreignField": "guest",
			"as":           "myBookings",
		}}})
	}
	if expand.Listings {
		pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: bson.M{
			"from":         PropertiesCollection,
			"localField":   "_id",
			"foreignField": "host",
			"as":           "myListings",
		}}})
	}
	return append(pipeline, bson.D{{Key: "$project", Value: withoutPassword}})
}

func (store *UserMongoDBStore) GetAll(ctx context.Context, filter domain.UserFilter, skip, limit int64) ([]*domain.User, int64, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.GetAll")
	defer span.End()

	query := userQuery(filter)
	total, err := store.users.CountDocuments(ctx, query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(withoutPassword)
	users, err := store.filter(ctx, query, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}
	return users, total, nil
}

// userQuery matches role and status exactly and search as a case-insensitive
// literal substring of name or email.
func userQuery(filter domain.UserFilter) bson.M {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = string(filter.Role)
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
		}
	}
	return query
}

func (store *UserMongoDBStore) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.Update")
	defer span.End()

	set := bson.M{"updatedAt": time.Now()}
	for key, value := range fields {
		set[key] = value
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)
	result := store.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts)

	var user domain.User
	if err := result.Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, writeError(err)
	}
	return &user, nil
}

func (store *UserMongoDBStore) SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	ctx, span := store.tracer.Start(ctx, "UserMongoDBStore.SetLastLogin")
	defer span.End()

	update := bson.M{"$set": bson.M{"lastLogin": at, "updatedAt": time.Now()}}
	if _, err := store.users.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (store *UserMongoDBStore) filter(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]*domain.User, error) {
	cursor, err := store.users.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decode[domain.User](ctx, cursor)
}

func (store *UserMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.User, error) {
	result := store.users.FindOne(ctx, filter)

	var user domain.User
	if err := result.Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// decode drains the cursor; an empty result is an empty, non-nil slice.
func decode[T any](ctx context.Context, cursor *mongo.Cursor) ([]*T, error) {
	items := []*T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, cursor.Err()
}

func writeError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	}
	return err
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
)

var tracer = trace.NewNoopTracerProvider().Tracer("store_test")

func userDoc(id primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "A"},
		{Key: "email", Value: "a@x.com"},
		{Key: "password", Value: "$2a$10$hash"},
		{Key: "role", Value: "guest"},
		{Key: "status", Value: "active"},
		{Key: "phone", Value: "01712345678"},
	}
}

func TestUserMongoDBStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert assigns an id", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &domain.User{Name: "A", Email: "a@x.com"}
		require.NoError(mt, store.Insert(ctx, user))
		assert.False(mt, user.ID.IsZero())
	})

	mt.Run("insert duplicate", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_1",
		}))

		err := store.Insert(ctx, &domain.User{Email: "a@x.com"})
		assert.True(mt, errors.Is(err, domain.ErrDuplicate))
	})

	mt.Run("get by email", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, userDoc(id)))

		user, err := store.GetByEmail(ctx, "a@x.com")
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, domain.Guest, user.Role)
		assert.Equal(mt, "$2a$10$hash", user.Password)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		user, err := store.GetByID(ctx, primitive.NewObjectID())
		assert.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("get all", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, bson.D{{Key: "n", Value: int64(12)}}),
			mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, userDoc(first), userDoc(second)),
		)

		users, total, err := store.GetAll(ctx, domain.UserFilter{Role: domain.Guest}, 10, 10)
		require.NoError(mt, err)
		assert.Equal(mt, int64(12), total)
		require.Len(mt, users, 2)
		assert.Equal(mt, first, users[0].ID)
		assert.Equal(mt, second, users[1].ID)
	})

	mt.Run("get all empty", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch),
		)

		users, total, err := store.GetAll(ctx, domain.UserFilter{}, 0, 10)
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), total)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})

	mt.Run("get details with expansions", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		id := primitive.NewObjectID()
		doc := append(userDoc(id), bson.E{Key: "myBookings", Value: bson.A{
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "guest", Value: id}},
		}}, bson.E{Key: "myListings", Value: bson.A{}})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, doc))

		details, err := store.GetDetails(ctx, id, domain.UserExpansion{Bookings: true, Listings: true})
		require.NoError(mt, err)
		require.NotNil(mt, details)
		require.NotNil(mt, details.MyBookings)
		assert.Len(mt, *details.MyBookings, 1)
		require.NotNil(mt, details.MyListings)
		assert.Empty(mt, *details.MyListings)
	})

	mt.Run("get details not found", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		details, err := store.GetDetails(ctx, primitive.NewObjectID(), domain.UserExpansion{})
		assert.NoError(mt, err)
		assert.Nil(mt, details)
	})

	mt.Run("update returns new document", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		id := primitive.NewObjectID()
		doc := userDoc(id)
		doc[1] = bson.E{Key: "name", Value: "B"}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}))

		user, err := store.Update(ctx, id, map[string]interface{}{"name": "B"})
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, "B", user.Name)
	})

	mt.Run("update missing user", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		user, err := store.Update(ctx, primitive.NewObjectID(), map[string]interface{}{"name": "B"})
		assert.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("update duplicate phone", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: "E11000 duplicate key error collection: users index: phone_1",
		}))

		_, err := store.Update(ctx, primitive.NewObjectID(), map[string]interface{}{"phone": "01712345678"})
		assert.True(mt, errors.Is(err, domain.ErrDuplicate))
	})

	mt.Run("set last login", func(mt *mtest.T) {
		store := NewUserMongoDBStore(mt.DB, tracer)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, store.SetLastLogin(ctx, primitive.NewObjectID(), time.Now()))
	})
}

func TestUserQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, userQuery(domain.UserFilter{}))

	query := userQuery(domain.UserFilter{Role: domain.Host, Status: domain.Active, Search: "a.b+"})
	assert.Equal(t, "host", query["role"])
	assert.Equal(t, "active", query["status"])

	or, ok := query["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	pattern := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b\+`, pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)
}

func TestDetailsPipeline(t *testing.T) {
	id := primitive.NewObjectID()

	assert.Len(t, detailsPipeline(id, domain.UserExpansion{}), 2)
	assert.Len(t, detailsPipeline(id, domain.UserExpansion{Bookings: true}), 3)

	pipeline := detailsPipeline(id, domain.UserExpansion{Bookings: true, Listings: true})
	require.Len(t, pipeline, 4)
	lookup := pipeline[2][0].Value.(bson.M)
	assert.Equal(t, PropertiesCollection, lookup["from"])
	assert.Equal(t, "host", lookup["foreignField"])
	assert.Equal(t, "myListings", lookup["as"])
}

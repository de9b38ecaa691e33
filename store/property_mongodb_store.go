package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
)

type PropertyMongoDBStore struct {
	properties *mongo.Collection
	tracer     trace.Tracer
}

func NewPropertyMongoDBStore(database *mongo.Database, tracer trace.Tracer) domain.PropertyStore {
	return &PropertyMongoDBStore{
		properties: database.Collection(PropertiesCollection),
		tracer:     tracer,
	}
}

func (store *PropertyMongoDBStore) GetAll(ctx context.Context, skip, limit int64) ([]*domain.Property, int64, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyMongoDBStore.GetAll")
	defer span.End()

	total, err := store.properties.CountDocuments(ctx, bson.M{})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := store.properties.Find(ctx, bson.M{}, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	properties, err := decode[domain.Property](ctx, cursor)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}
	return properties, total, nil
}

// GetByID returns the property with its host resolved to name and email. A
// dangling host reference leaves Host nil.
func (store *PropertyMongoDBStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PropertyView, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyMongoDBStore.GetByID")
	defer span.End()

	cursor, err := store.properties.Aggregate(ctx, propertyPipeline(id))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return nil, cursor.Err()
	}
	var property domain.PropertyView
	if err := cursor.Decode(&property); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &property, nil
}

func propertyPipeline(id primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$lookup", Value: bson.M{
			"from": UsersCollection,
			"let":  bson.M{"hostId": "$host"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$hostId"}}}},
				bson.M{"$project": bson.M{"name": 1, "email": 1}},
			},
			"as": "host",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$host", "preserveNullAndEmptyArrays": true}}},
	}
}

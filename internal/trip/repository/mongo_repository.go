package repository

import (
	"context"
	"time"

	tripdomain "explorehub-backend/internal/trip/domain"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const favoriteFlightsCollection = "favorite_flights"

type favoriteFlightDocument struct {
	ID           primitive.ObjectID       `bson:"_id,omitempty"`
	UserID       string                   `bson:"user_id"`
	Outbound     tripdomain.FlightDetail  `bson:"outbound"`
	ReturnFlight *tripdomain.FlightDetail `bson:"return_flight,omitempty"`
	TotalPrice   float64                  `bson:"total_price"`
	CreatedAt    time.Time                `bson:"created_at"`
}

func (d *favoriteFlightDocument) toDomain() *tripdomain.FavoriteFlight {
	return &tripdomain.FavoriteFlight{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		Outbound:     d.Outbound,
		ReturnFlight: d.ReturnFlight,
		TotalPrice:   d.TotalPrice,
		CreatedAt:    d.CreatedAt,
	}
}

type mongoFavoriteFlightRepository struct {
	coll *mongo.Collection
}

// NewMongoFavoriteFlightRepository creates a FavoriteFlightRepository on the
// favorite_flights collection
func NewMongoFavoriteFlightRepository(db *mongo.Database) FavoriteFlightRepository {
	return &mongoFavoriteFlightRepository{
		coll: db.Collection(favoriteFlightsCollection),
	}
}

func (r *mongoFavoriteFlightRepository) Create(ctx context.Context, flight *tripdomain.FavoriteFlight) error {
	doc := favoriteFlightDocument{
		ID:           primitive.NewObjectID(),
		UserID:       flight.UserID,
		Outbound:     flight.Outbound,
		ReturnFlight: flight.ReturnFlight,
		TotalPrice:   flight.TotalPrice,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return oops.In("trip_repository").Code("FAVORITE_INSERT_FAILED").With("user_id", flight.UserID).Wrap(err)
	}

	flight.ID = doc.ID.Hex()
	flight.CreatedAt = doc.CreatedAt
	return nil
}

func (r *mongoFavoriteFlightRepository) FindByUserID(ctx context.Context, userID string) ([]*tripdomain.FavoriteFlight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, oops.In("trip_repository").Code("FAVORITE_LIST_FAILED").With("user_id", userID).Wrap(err)
	}
	defer cursor.Close(ctx)

	var docs []favoriteFlightDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, oops.In("trip_repository").Code("FAVORITE_DECODE_FAILED").With("user_id", userID).Wrap(err)
	}

	flights := make([]*tripdomain.FavoriteFlight, 0, len(docs))
	for i := range docs {
		flights = append(flights, docs[i].toDomain())
	}
	return flights, nil
}

func (r *mongoFavoriteFlightRepository) Delete(ctx context.Context, userID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return tripdomain.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return oops.In("trip_repository").Code("FAVORITE_DELETE_FAILED").With("user_id", userID).Wrap(err)
	}
	if res.DeletedCount == 0 {
		return tripdomain.ErrNotFound
	}
	return nil
}

func (r *mongoFavoriteFlightRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("user_id_1_created_at_1"),
	})
	if err != nil {
		return oops.In("trip_repository").Code("FAVORITE_INDEX_FAILED").Wrap(err)
	}
	return nil
}

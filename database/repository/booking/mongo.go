package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
	ids  database.IDGenerator
}

func NewMongoBookingRepo(db *mongo.Database, ids database.IDGenerator) *MongoBookingRepo {
	return &MongoBookingRepo{coll: db.Collection("bookings"), ids: ids}
}

func (r *MongoBookingRepo) CreateIfAbsent(ctx context.Context, booking *models.Booking) (bool, error) {
	id, err := r.ids.NextID(ctx, "bookings")
	if err != nil {
		return false, err
	}
	booking.ID = id
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert booking: %w", err)
	}
	return true, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoBookingRepo) FindByUnit(ctx context.Context, userID, masterID int, date, tm string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "masterId": masterID, "date": date, "time": tm})
}

func (r *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MongoBookingRepo) ListFrom(ctx context.Context, fromDate string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"date": bson.M{"$gte": fromDate}})
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID int) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoBookingRepo) ListByMaster(ctx context.Context, masterID int) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"masterId": masterID})
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "userId", Value: 1}, {Key: "masterId", Value: 1},
				{Key: "date", Value: 1}, {Key: "time", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_user_master_date_time"),
		},
		{
			Keys:    bson.D{{Key: "masterId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("master_date_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

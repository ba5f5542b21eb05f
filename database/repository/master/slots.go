package masterRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const slotSequence = "booked_slots"

type MongoSlotRepo struct {
	coll *mongo.Collection
	ids  database.IDGenerator
}

// NewMongoSlotRepo constructs a SlotRepository over the booked_slots collection.
// Uniqueness of a claim relies on the index created by EnsureIndexes.
func NewMongoSlotRepo(db *mongo.Database, ids database.IDGenerator) *MongoSlotRepo {
	return &MongoSlotRepo{coll: db.Collection("booked_slots"), ids: ids}
}

func (r *MongoSlotRepo) ListBooked(ctx context.Context, masterID int, date string) ([]models.BookedSlot, error) {
	return r.find(ctx, bson.M{"masterId": masterID, "date": date})
}

func (r *MongoSlotRepo) ListByMaster(ctx context.Context, masterID int) ([]models.BookedSlot, error) {
	return r.find(ctx, bson.M{"masterId": masterID})
}

func (r *MongoSlotRepo) find(ctx context.Context, filter bson.M) ([]models.BookedSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	slots := []models.BookedSlot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// InsertIfAbsent writes the claim in a single insert; the unique index arbitrates
// concurrent writers, so exactly one of them observes true.
func (r *MongoSlotRepo) InsertIfAbsent(ctx context.Context, slot *models.BookedSlot) (bool, error) {
	id, err := r.ids.NextID(ctx, slotSequence)
	if err != nil {
		return false, err
	}
	slot.ID = id
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert booked slot: %w", err)
	}
	return true, nil
}

func (r *MongoSlotRepo) Delete(ctx context.Context, masterID int, date, tm string) (bool, error) {
	return r.deleteOne(ctx, bson.M{"masterId": masterID, "date": date, "time": tm})
}

// DeleteClaim removes the claim only while clientID still holds it.
func (r *MongoSlotRepo) DeleteClaim(ctx context.Context, masterID int, date, tm string, clientID int) (bool, error) {
	return r.deleteOne(ctx, bson.M{"masterId": masterID, "date": date, "time": tm, "clientId": clientID})
}

func (r *MongoSlotRepo) deleteOne(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete booked slot: %w", err)
	}
	return res.DeletedCount > 0, nil
}

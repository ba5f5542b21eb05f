package masterRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoMasterRepo struct {
	coll *mongo.Collection
}

// NewMongoMasterRepo constructs a MasterRepository over the masters collection.
func NewMongoMasterRepo(db *mongo.Database) *MongoMasterRepo {
	return &MongoMasterRepo{coll: db.Collection("masters")}
}

// GetByID returns nil, nil when the master does not exist.
func (r *MongoMasterRepo) GetByID(ctx context.Context, id int) (*models.Master, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var m models.Master
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get master %d: %w", id, err)
	}
	return &m, nil
}

func (r *MongoMasterRepo) List(ctx context.Context) ([]models.Master, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var masters []models.Master
	if err := cursor.All(ctx, &masters); err != nil {
		return nil, err
	}
	return masters, nil
}

// Upsert inserts the master if its id is new and leaves an existing one untouched.
func (r *MongoMasterRepo) Upsert(ctx context.Context, master *models.Master) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if master.CreatedAt.IsZero() {
		master.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": master.ID},
		bson.M{"$setOnInsert": master},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert master %d: %w", master.ID, err)
	}
	return nil
}

package masterRepo

import (
	"context"
	"time"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoVisitRepo struct {
	coll *mongo.Collection
	ids  database.IDGenerator
}

func NewMongoVisitRepo(db *mongo.Database, ids database.IDGenerator) *MongoVisitRepo {
	return &MongoVisitRepo{coll: db.Collection("master_visits"), ids: ids}
}

func (r *MongoVisitRepo) Create(ctx context.Context, visit *models.MasterVisit) error {
	id, err := r.ids.NextID(ctx, "master_visits")
	if err != nil {
		return err
	}
	visit.ID = id
	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err = r.coll.InsertOne(ctx, visit)
	return err
}

// ListByMaster returns the newest visits first.
func (r *MongoVisitRepo) ListByMaster(ctx context.Context, masterID int) ([]models.MasterVisit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"masterId": masterID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	visits := []models.MasterVisit{}
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

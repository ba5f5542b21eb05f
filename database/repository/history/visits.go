package historyRepo

import (
	"context"
	"errors"
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
	return &MongoVisitRepo{coll: db.Collection("visit_history"), ids: ids}
}

func (r *MongoVisitRepo) Create(ctx context.Context, visit *models.VisitRecord) error {
	id, err := r.ids.NextID(ctx, "visit_history")
	if err != nil {
		return err
	}
	visit.ID = id

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err = r.coll.InsertOne(ctx, visit)
	return err
}

func (r *MongoVisitRepo) LatestCompleted(ctx context.Context, userID int) (*models.VisitRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var v models.VisitRecord
	err := r.coll.FindOne(ctx,
		bson.M{"userId": userID, "status": models.SessionCompleted},
		options.FindOne().SetSort(newestFirst),
	).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *MongoVisitRepo) ListByUser(ctx context.Context, userID int) ([]models.VisitRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	visits := []models.VisitRecord{}
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *MongoVisitRepo) EnsureIndexes(ctx context.Context) error {
	return createIndexes(ctx, r.coll, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("user_status_date_idx"),
		},
	})
}

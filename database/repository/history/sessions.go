package historyRepo

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

var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}}

type MongoSessionRepo struct {
	coll *mongo.Collection
	ids  database.IDGenerator
}

func NewMongoSessionRepo(db *mongo.Database, ids database.IDGenerator) *MongoSessionRepo {
	return &MongoSessionRepo{coll: db.Collection("session_history"), ids: ids}
}

func (r *MongoSessionRepo) Create(ctx context.Context, session *models.SessionRecord) (bool, error) {
	id, err := r.ids.NextID(ctx, "session_history")
	if err != nil {
		return false, err
	}
	session.ID = id

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert session: %w", err)
	}
	return true, nil
}

func (r *MongoSessionRepo) GetByID(ctx context.Context, id int64) (*models.SessionRecord, error) {
	return r.findOne(ctx, bson.M{"id": id}, nil)
}

func (r *MongoSessionRepo) FindByUnit(ctx context.Context, userID, masterID int, date, tm string) (*models.SessionRecord, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "masterId": masterID, "date": date, "time": tm}, nil)
}

func (r *MongoSessionRepo) LatestCompleted(ctx context.Context, userID int) (*models.SessionRecord, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "status": models.SessionCompleted}, options.FindOne().SetSort(newestFirst))
}

func (r *MongoSessionRepo) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*models.SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if opts == nil {
		opts = options.FindOne()
	}
	var s models.SessionRecord
	err := r.coll.FindOne(ctx, filter, opts).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoSessionRepo) ListByUserSince(ctx context.Context, userID int, since time.Time) ([]models.SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "sessionDate": bson.M{"$gte": since}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []models.SessionRecord{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *MongoSessionRepo) TransitionStatus(ctx context.Context, id int64, from, to string, at time.Time) (*models.SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s models.SessionRecord
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": at}},
		opts,
	).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// EnsureIndexes creates the necessary indexes on the session_history collection.
func (r *MongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	return createIndexes(ctx, r.coll, []mongo.IndexModel{
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
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "sessionDate", Value: -1}},
			Options: options.Index().SetName("user_session_date_idx"),
		},
	})
}

func createIndexes(ctx context.Context, coll *mongo.Collection, indexModels []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", coll.Name(), err)
	}
	return nil
}

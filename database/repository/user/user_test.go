package userRepo

import (
	"context"
	"testing"

	"salonbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type seqIDs struct{ n int64 }

func (s *seqIDs) NextID(ctx context.Context, name string) (int64, error) {
	s.n++
	return s.n, nil
}

func TestMongoUserRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		u := &models.User{Name: "Ivan", Email: "ivan@example.com", Role: models.RoleClient}

		ok, err := NewMongoUserRepo(mt.DB, &seqIDs{n: 3}).Create(context.Background(), u)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 4, u.ID)
	})

	mt.Run("email taken", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "dup email"}))

		ok, err := NewMongoUserRepo(mt.DB, &seqIDs{}).Create(context.Background(), &models.User{Email: "a@b.c"})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMongoUserRepo_CountByRole(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("groups", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "client"}, {Key: "count", Value: int64(5)}},
			bson.D{{Key: "_id", Value: "master"}, {Key: "count", Value: int64(2)}},
		))

		counts, err := NewMongoUserRepo(mt.DB, &seqIDs{}).CountByRole(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"client": 5, "master": 2}, counts)
	})
}

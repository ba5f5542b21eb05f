package bookingRepo

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

func TestMongoBookingRepo_CreateIfAbsent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		b := &models.Booking{UserID: 7, MasterID: 1, Date: "2024-05-13", Time: "14:00"}

		ok, err := NewMongoBookingRepo(mt.DB, &seqIDs{n: 10}).CreateIfAbsent(context.Background(), b)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(11), b.ID)
	})

	mt.Run("duplicate booking", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key"}))

		ok, err := NewMongoBookingRepo(mt.DB, &seqIDs{}).CreateIfAbsent(context.Background(), &models.Booking{UserID: 7})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMongoBookingRepo_FindByUnit(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".bookings", mtest.FirstBatch))

		b, err := NewMongoBookingRepo(mt.DB, &seqIDs{}).FindByUnit(context.Background(), 7, 1, "2024-05-13", "14:00")
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	mt.Run("present", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".bookings", mtest.FirstBatch,
			bson.D{{Key: "id", Value: int64(3)}, {Key: "userId", Value: 7}, {Key: "masterId", Value: 1}},
		))

		b, err := NewMongoBookingRepo(mt.DB, &seqIDs{}).FindByUnit(context.Background(), 7, 1, "2024-05-13", "14:00")
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, int64(3), b.ID)
	})
}

package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
	"github.com/AnshRaj112/lessonhub-backend/internal/models"
)

var nopLogger = zerolog.Nop()

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create user sets id and timestamps", func(mt *mtest.T) {
		repo := NewUserMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := repo.CreateUser(context.Background(), &models.User{Username: "alice", Email: "a@x.com", Password: "hash"})
		require.NoError(mt, err)
		assert.False(mt, user.ID.IsZero())
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("create user maps duplicate key", func(mt *mtest.T) {
		repo := NewUserMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.users index: uniq_username",
		}))

		_, err := repo.CreateUser(context.Background(), &models.User{Username: "alice"})
		assert.ErrorIs(mt, err, apperr.ErrDuplicateUser)
	})

	mt.Run("get user by username", func(mt *mtest.T) {
		repo := NewUserMongoRepository(&nopLogger, mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "alice"},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: "hash"},
		}))

		user, err := repo.GetUserByUsername(context.Background(), "alice")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "hash", user.Password)
	})

	mt.Run("get user by username not found", func(mt *mtest.T) {
		repo := NewUserMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		_, err := repo.GetUserByUsername(context.Background(), "ghost")
		assert.ErrorIs(mt, err, apperr.ErrNotFound)
	})

	mt.Run("get user with malformed id", func(mt *mtest.T) {
		repo := NewUserMongoRepository(&nopLogger, mt.DB)

		_, err := repo.GetUser(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, apperr.ErrNotFound)
	})

	mt.Run("get user surfaces store errors", func(mt *mtest.T) {
		repo := NewUserMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))

		_, err := repo.GetUser(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, apperr.ErrStore)
	})

	mt.Run("update avatar of missing user", func(mt *mtest.T) {
		repo := NewUserMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := repo.UpdateAvatar(context.Background(), primitive.NewObjectID().Hex(), "http://x/a.png")
		assert.ErrorIs(mt, err, apperr.ErrNotFound)
	})

	mt.Run("update avatar", func(mt *mtest.T) {
		repo := NewUserMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		err := repo.UpdateAvatar(context.Background(), primitive.NewObjectID().Hex(), "http://x/a.png")
		assert.NoError(mt, err)
	})
}

func TestLessonRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("count lessons", func(mt *mtest.T) {
		repo := NewLessonMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.lessons", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(20)}}))

		n, err := repo.CountLessons(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(20), n)
	})

	mt.Run("list lessons reports another page", func(mt *mtest.T) {
		repo := NewLessonMongoRepository(&nopLogger, mt.DB)
		docs := []bson.D{
			{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "order", Value: 1}, {Key: "category", Value: "react"}},
			{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "order", Value: 2}, {Key: "category", Value: "react"}},
			{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "order", Value: 3}, {Key: "category", Value: "react"}},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.lessons", mtest.FirstBatch, docs...))

		lessons, hasMore, err := repo.ListLessons(context.Background(), models.LessonFilter{Category: "react", Limit: 2})
		require.NoError(mt, err)
		assert.True(mt, hasMore)
		require.Len(mt, lessons, 2)
		assert.Equal(mt, 1, lessons[0].Order)
		assert.Equal(mt, 2, lessons[1].Order)
	})

	mt.Run("list lessons last page", func(mt *mtest.T) {
		repo := NewLessonMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.lessons", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "order", Value: 20}},
		))

		lessons, hasMore, err := repo.ListLessons(context.Background(), models.LessonFilter{Offset: 19, Limit: 5})
		require.NoError(mt, err)
		assert.False(mt, hasMore)
		assert.Len(mt, lessons, 1)
	})

	mt.Run("list lessons without limit returns everything", func(mt *mtest.T) {
		repo := NewLessonMongoRepository(&nopLogger, mt.DB)
		docs := make([]bson.D, 0, 20)
		for i := 1; i <= 20; i++ {
			docs = append(docs, bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "order", Value: i}})
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.lessons", mtest.FirstBatch, docs...))

		lessons, hasMore, err := repo.ListLessons(context.Background(), models.LessonFilter{})
		require.NoError(mt, err)
		assert.False(mt, hasMore)
		require.Len(mt, lessons, 20)
		assert.Equal(mt, 20, lessons[19].Order)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		_, err = started.Command.LookupErr("limit")
		assert.Error(mt, err, "find must not carry a limit")
	})

	mt.Run("insert lessons", func(mt *mtest.T) {
		repo := NewLessonMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		n, err := repo.InsertLessons(context.Background(), []models.Lesson{{Order: 1}, {Order: 2}})
		require.NoError(mt, err)
		assert.Equal(mt, 2, n)
	})

	mt.Run("get missing lesson", func(mt *mtest.T) {
		repo := NewLessonMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.lessons", mtest.FirstBatch))

		_, err := repo.GetLesson(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, apperr.ErrNotFound)
	})
}

func TestSliderRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list sliders", func(mt *mtest.T) {
		repo := NewSliderMongoRepository(&nopLogger, mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.sliders", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "url", Value: "http://x/1.png"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "url", Value: "http://x/2.png"}},
		))

		sliders, err := repo.ListSliders(context.Background())
		require.NoError(mt, err)
		require.Len(mt, sliders, 2)
		assert.Equal(mt, "http://x/1.png", sliders[0].URL)
	})

	mt.Run("insert nothing is a no-op", func(mt *mtest.T) {
		repo := NewSliderMongoRepository(&nopLogger, mt.DB)

		n, err := repo.InsertSliders(context.Background(), nil)
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})
}

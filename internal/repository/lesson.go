package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/lessonhub-backend/internal/models"
)

type LessonRepository interface {
	CountLessons(ctx context.Context) (int64, error)
	InsertLessons(ctx context.Context, lessons []models.Lesson) (int, error)
	ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, bool, error)
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
}

type LessonMongoRepository struct {
	db     *mongo.Database
	logger *zerolog.Logger
}

func NewLessonMongoRepository(logger *zerolog.Logger, db *mongo.Database) *LessonMongoRepository {
	return &LessonMongoRepository{db: db, logger: logger}
}

func (r *LessonMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetName("idx_category_order"),
		},
		{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index().SetName("idx_order"),
		},
	}
	if _, err := r.db.Collection(lessonCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		return storeErr("create lesson indexes", err)
	}
	r.logger.Debug().Str("collection", lessonCollection).Msg("indexes ensured")
	return nil
}

func (r *LessonMongoRepository) CountLessons(ctx context.Context) (int64, error) {
	n, err := r.db.Collection(lessonCollection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, storeErr("count lessons", err)
	}
	return n, nil
}

func (r *LessonMongoRepository) InsertLessons(ctx context.Context, lessons []models.Lesson) (int, error) {
	if len(lessons) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(lessons))
	for _, l := range lessons {
		l.CreatedAt = now
		l.UpdatedAt = now
		docs = append(docs, l)
	}

	result, err := r.db.Collection(lessonCollection).InsertMany(ctx, docs)
	if err != nil {
		return 0, storeErr("insert lessons", err)
	}
	r.logger.Debug().Int("count", len(result.InsertedIDs)).Msg("lessons inserted")
	return len(result.InsertedIDs), nil
}

// ListLessons returns one page ordered by `order` and whether more lessons follow it.
func (r *LessonMongoRepository) ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, bool, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}}).
		SetSkip(filter.Offset)
	if filter.Limit > 0 {
		// Fetch one extra document to learn whether another page exists.
		findOptions.SetLimit(filter.Limit + 1)
	}

	cursor, err := r.db.Collection(lessonCollection).Find(ctx, query, findOptions)
	if err != nil {
		return nil, false, storeErr("list lessons", err)
	}
	defer cursor.Close(ctx)

	var lessons []models.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, false, storeErr("list lessons", err)
	}

	if lessons == nil {
		lessons = []models.Lesson{}
	}
	hasMore := filter.Limit > 0 && int64(len(lessons)) > filter.Limit
	if hasMore {
		lessons = lessons[:filter.Limit]
	}
	return lessons, hasMore, nil
}

func (r *LessonMongoRepository) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	objectID, err := parseObjectID("get lesson", id)
	if err != nil {
		return nil, err
	}

	var lesson models.Lesson
	if err := r.db.Collection(lessonCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&lesson); err != nil {
		return nil, notFoundOr("get lesson", err)
	}
	return &lesson, nil
}

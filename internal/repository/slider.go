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

type SliderRepository interface {
	CountSliders(ctx context.Context) (int64, error)
	InsertSliders(ctx context.Context, sliders []models.Slider) (int, error)
	ListSliders(ctx context.Context) ([]models.Slider, error)
}

type SliderMongoRepository struct {
	db     *mongo.Database
	logger *zerolog.Logger
}

func NewSliderMongoRepository(logger *zerolog.Logger, db *mongo.Database) *SliderMongoRepository {
	return &SliderMongoRepository{db: db, logger: logger}
}

func (r *SliderMongoRepository) CountSliders(ctx context.Context) (int64, error) {
	n, err := r.db.Collection(sliderCollection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, storeErr("count sliders", err)
	}
	return n, nil
}

func (r *SliderMongoRepository) InsertSliders(ctx context.Context, sliders []models.Slider) (int, error) {
	if len(sliders) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(sliders))
	for _, s := range sliders {
		s.CreatedAt = now
		s.UpdatedAt = now
		docs = append(docs, s)
	}

	result, err := r.db.Collection(sliderCollection).InsertMany(ctx, docs)
	if err != nil {
		return 0, storeErr("insert sliders", err)
	}
	r.logger.Debug().Int("count", len(result.InsertedIDs)).Msg("sliders inserted")
	return len(result.InsertedIDs), nil
}

func (r *SliderMongoRepository) ListSliders(ctx context.Context) ([]models.Slider, error) {
	cursor, err := r.db.Collection(sliderCollection).Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storeErr("list sliders", err)
	}
	defer cursor.Close(ctx)

	sliders := []models.Slider{}
	if err := cursor.All(ctx, &sliders); err != nil {
		return nil, storeErr("list sliders", err)
	}
	return sliders, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
	"github.com/AnshRaj112/lessonhub-backend/internal/models"
	"github.com/AnshRaj112/lessonhub-backend/internal/repository"
)

const (
	MaxLessonPageSize = 50
	AllCategories     = "all"
)

// LessonPage is one page of the lesson list.
type LessonPage struct {
	List    []models.Lesson `json:"list"`
	HasMore bool            `json:"hasMore"`
}

// CatalogService serves the read-only lesson and slider collections.
type CatalogService struct {
	lessons repository.LessonRepository
	sliders repository.SliderRepository
	logger  *zerolog.Logger

	cache    Cache
	cacheTTL time.Duration
}

func NewCatalogService(logger *zerolog.Logger, lessons repository.LessonRepository, sliders repository.SliderRepository) *CatalogService {
	return &CatalogService{lessons: lessons, sliders: sliders, logger: logger}
}

// WithCache enables read-through caching of lesson pages and sliders.
// The catalog is only written by the seeder, so entries are never invalidated.
func (s *CatalogService) WithCache(cache Cache, ttl time.Duration) *CatalogService {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// cached serves dest from the cache or fills it with load. Cache failures
// only cost a store round trip.
func (s *CatalogService) cached(ctx context.Context, key string, dest any, load func() error) error {
	if s.cache == nil {
		return load()
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
	}
	if hit {
		return nil
	}
	if err := load(); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, key, dest, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
	return nil
}

// ListLessons returns lessons ordered by `order`. A zero limit returns every
// lesson from offset on; a positive limit pages, capped at MaxLessonPageSize.
func (s *CatalogService) ListLessons(ctx context.Context, category string, offset, limit int64) (*LessonPage, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", apperr.ErrBadRequest)
	}
	switch {
	case limit < 0:
		return nil, fmt.Errorf("%w: limit must not be negative", apperr.ErrBadRequest)
	case limit > MaxLessonPageSize:
		limit = MaxLessonPageSize
	}

	category = strings.TrimSpace(category)
	if strings.EqualFold(category, AllCategories) {
		category = ""
	}

	filter := models.LessonFilter{Category: category, Offset: offset, Limit: limit}
	key := CacheKey("lessons", fmt.Sprintf("%s:%d:%d", category, offset, limit))

	var page LessonPage
	err := s.cached(ctx, key, &page, func() error {
		list, hasMore, err := s.lessons.ListLessons(ctx, filter)
		if err != nil {
			return err
		}
		page = LessonPage{List: list, HasMore: hasMore}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if page.List == nil {
		page.List = []models.Lesson{}
	}
	return &page, nil
}

func (s *CatalogService) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	return s.lessons.GetLesson(ctx, id)
}

func (s *CatalogService) ListSliders(ctx context.Context) ([]models.Slider, error) {
	var sliders []models.Slider
	err := s.cached(ctx, CacheKey("sliders", "all"), &sliders, func() error {
		var err error
		sliders, err = s.sliders.ListSliders(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sliders, nil
}

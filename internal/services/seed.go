package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/AnshRaj112/lessonhub-backend/internal/models"
	"github.com/AnshRaj112/lessonhub-backend/internal/repository"
)

// Locker serializes seeding across processes. Unlock must be safe to call
// after the lock has expired.
type Locker interface {
	Lock(ctx context.Context) (unlock func(context.Context) error, err error)
}

// SeedResult reports how many records each collection received.
type SeedResult struct {
	Sliders int
	Lessons int
}

// Seeder fills the reference collections when they are empty.
type Seeder struct {
	lessons repository.LessonRepository
	sliders repository.SliderRepository
	locker  Locker
	logger  *zerolog.Logger
}

// NewSeeder builds a seeder. locker may be nil for single-instance deployments.
func NewSeeder(logger *zerolog.Logger, lessons repository.LessonRepository, sliders repository.SliderRepository, locker Locker) *Seeder {
	return &Seeder{lessons: lessons, sliders: sliders, locker: locker, logger: logger}
}

// Seed inserts the fixed slider and lesson sets into whichever collection is
// empty. Any store error is returned and must stop startup.
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var res SeedResult

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx)
		if err != nil {
			return res, fmt.Errorf("acquire seed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn().Err(err).Msg("failed to release seed lock")
			}
		}()
	}

	n, err := seedCollection(ctx, "sliders", s.sliders.CountSliders, func(ctx context.Context) (int, error) {
		return s.sliders.InsertSliders(ctx, DefaultSliders())
	})
	if err != nil {
		return res, err
	}
	res.Sliders = n

	n, err = seedCollection(ctx, "lessons", s.lessons.CountLessons, func(ctx context.Context) (int, error) {
		return s.lessons.InsertLessons(ctx, DefaultLessons())
	})
	if err != nil {
		return res, err
	}
	res.Lessons = n

	s.logger.Info().Int("sliders", res.Sliders).Int("lessons", res.Lessons).Msg("seeding finished")
	return res, nil
}

func seedCollection(
	ctx context.Context,
	name string,
	count func(context.Context) (int64, error),
	insert func(context.Context) (int, error),
) (int, error) {
	existing, err := count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", name, err)
	}
	if existing > 0 {
		return 0, nil
	}
	inserted, err := insert(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", name, err)
	}
	return inserted, nil
}

// DefaultSliders is the homepage carousel seed set.
func DefaultSliders() []models.Slider {
	return []models.Slider{
		{URL: "http://www.zhufengpeixun.cn/themes/jianmo2/images/reactnative.png"},
		{URL: "http://www.zhufengpeixun.cn/themes/jianmo2/images/react.png"},
		{URL: "http://www.zhufengpeixun.cn/themes/jianmo2/images/vue.png"},
		{URL: "http://www.zhufengpeixun.cn/themes/jianmo2/images/wechat.png"},
		{URL: "http://www.zhufengpeixun.cn/themes/jianmo2/images/architect.jpg"},
	}
}

const (
	seedVideo       = "http://img.zhufengpeixun.cn/gee2.mp4"
	reactTitle      = "React全栈架构"
	reactPoster     = "http://www.zhufengpeixun.cn/react/img/react.jpg"
	reactURL        = "http://www.zhufengpeixun.cn/themes/jianmo2/images/react.png"
	vueTitle        = "Vue从入门到项目实战"
	vuePoster       = "http://www.zhufengpeixun.cn/vue/img/vue.png"
	vueURL          = "http://www.zhufengpeixun.cn/themes/jianmo2/images/vue.png"
	categoryReact   = "react"
	categoryVue     = "vue"
	defaultLessonNo = 20
)

// DefaultLessons is the fixed 20-lesson catalog seed set.
func DefaultLessons() []models.Lesson {
	type row struct {
		category  string
		price     float64
		priceText string
	}
	rows := [defaultLessonNo]row{
		{categoryReact, 100, "¥100.00元"},
		{categoryReact, 400, "¥400.00元"},
		{categoryReact, 100, "¥100.00元"},
		{categoryReact, 333, "¥333.00元"},
		{categoryReact, 900, "¥900.00元"},
		{categoryVue, 800, "¥800.00元"},
		{categoryVue, 400, "400.00元"},
		{categoryVue, 400, "400.00元"},
		{categoryVue, 160, "¥160.00元"},
		{categoryVue, 120, "¥120.00元"},
		{categoryReact, 666, "¥666.00元"},
		{categoryReact, 150, "¥150.00元"},
		{categoryReact, 200, "¥200.00元"},
		{categoryReact, 900, "¥900.00元"},
		{categoryReact, 900, "¥800.00元"},
		{categoryVue, 700, "¥700.00元"},
		{categoryVue, 500, "¥500.00元"},
		{categoryVue, 300, "¥300.00元"},
		{categoryVue, 200, "¥200.00元"},
		{categoryVue, 1000, "¥1000.00元"},
	}

	lessons := make([]models.Lesson, 0, len(rows))
	for i, r := range rows {
		order := i + 1
		l := models.Lesson{
			Order:     order,
			Video:     seedVideo,
			Price:     r.price,
			PriceText: r.priceText,
			Category:  r.category,
		}
		if r.category == categoryReact {
			l.Title = fmt.Sprintf("%d.%s", order, reactTitle)
			l.Poster = reactPoster
			l.URL = reactURL
		} else {
			l.Title = fmt.Sprintf("%d.%s", order, vueTitle)
			l.Poster = vuePoster
			l.URL = vueURL
		}
		lessons = append(lessons, l)
	}
	return lessons
}

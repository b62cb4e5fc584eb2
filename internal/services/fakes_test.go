package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
	"github.com/AnshRaj112/lessonhub-backend/internal/models"
)

// memUsers is an in-memory UserRepository with the same uniqueness rule as the Mongo index.
type memUsers struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*models.User
	failGet error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[primitive.ObjectID]*models.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == user.Username {
			return nil, apperr.ErrDuplicateUser
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	cp := *user
	m.byID[user.ID] = &cp
	return user, nil
}

func (m *memUsers) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	u, ok := m.byID[oid]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) UpdateAvatar(_ context.Context, id string, avatar string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}
	u, ok := m.byID[oid]
	if !ok {
		return apperr.ErrNotFound
	}
	u.Avatar = avatar
	return nil
}

func (m *memUsers) TouchLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (m *memUsers) delete(id primitive.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

type memLessons struct {
	mu       sync.Mutex
	items    []models.Lesson
	inserts  int
	countErr error
}

func (m *memLessons) CountLessons(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), m.countErr
}

func (m *memLessons) InsertLessons(_ context.Context, lessons []models.Lesson) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	for _, l := range lessons {
		l.ID = primitive.NewObjectID()
		m.items = append(m.items, l)
	}
	return len(lessons), nil
}

func (m *memLessons) ListLessons(_ context.Context, f models.LessonFilter) ([]models.Lesson, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Lesson
	for _, l := range m.items {
		if f.Category == "" || l.Category == f.Category {
			matched = append(matched, l)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Order < matched[j].Order })
	if f.Offset >= int64(len(matched)) {
		return []models.Lesson{}, false, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && int64(len(matched)) > f.Limit {
		return matched[:f.Limit], true, nil
	}
	return matched, false, nil
}

func (m *memLessons) GetLesson(_ context.Context, id string) (*models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.items {
		if l.ID.Hex() == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

type memSliders struct {
	mu    sync.Mutex
	items []models.Slider
}

func (m *memSliders) CountSliders(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

func (m *memSliders) InsertSliders(_ context.Context, sliders []models.Slider) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, sliders...)
	return len(sliders), nil
}

func (m *memSliders) ListSliders(context.Context) ([]models.Slider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Slider(nil), m.items...), nil
}

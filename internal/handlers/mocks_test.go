package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/AnshRaj112/lessonhub-backend/internal/models"
	"github.com/AnshRaj112/lessonhub-backend/internal/services"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Authenticate(ctx context.Context, authorization string) (*models.User, error) {
	args := m.Called(ctx, authorization)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuth) Register(ctx context.Context, in services.RegisterInput) (*services.TokenResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*services.TokenResult)
	return res, args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, in services.LoginInput) (*services.TokenResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*services.TokenResult)
	return res, args.Error(1)
}

type mockAvatars struct{ mock.Mock }

func (m *mockAvatars) Upload(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	body, _ := io.ReadAll(file)
	args := m.Called(ctx, userID, string(body), filename)
	return args.String(0), args.Error(1)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListLessons(ctx context.Context, category string, offset, limit int64) (*services.LessonPage, error) {
	args := m.Called(ctx, category, offset, limit)
	p, _ := args.Get(0).(*services.LessonPage)
	return p, args.Error(1)
}

func (m *mockCatalog) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*models.Lesson)
	return l, args.Error(1)
}

func (m *mockCatalog) ListSliders(ctx context.Context) ([]models.Slider, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]models.Slider)
	return s, args.Error(1)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
	"github.com/AnshRaj112/lessonhub-backend/internal/repository"
)

// AvatarStorage persists an uploaded file and returns its public URL.
type AvatarStorage interface {
	Save(ctx context.Context, file io.Reader, filename string) (string, error)
}

var allowedAvatarExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// DiskStorage writes files to <dir>/<uuid><ext> and serves them under baseURL.
type DiskStorage struct {
	dir     string
	baseURL string
}

func NewDiskStorage(dir, baseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStorage) Save(ctx context.Context, file io.Reader, filename string) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.dir, name)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}

type AvatarService struct {
	users   repository.UserRepository
	storage AvatarStorage
	logger  *zerolog.Logger
}

func NewAvatarService(logger *zerolog.Logger, users repository.UserRepository, storage AvatarStorage) *AvatarService {
	return &AvatarService{users: users, storage: storage, logger: logger}
}

// Upload stores an image for userID and records its URL on the user.
func (s *AvatarService) Upload(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: userId is required", apperr.ErrBadRequest)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAvatarExt[ext] {
		return "", fmt.Errorf("%w: unsupported avatar type %q", apperr.ErrBadRequest, ext)
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", fmt.Errorf("user %s: %w", userID, apperr.ErrNotFound)
		}
		return "", err
	}

	url, err := s.storage.Save(ctx, file, filename)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", userID).Str("avatar", url).Msg("avatar updated")
	return url, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
	"github.com/AnshRaj112/lessonhub-backend/internal/models"
	"github.com/AnshRaj112/lessonhub-backend/internal/repository"
	"github.com/AnshRaj112/lessonhub-backend/pkg/utils"
)

// RegisterInput is the registration payload. Form tags let urlencoded bodies bind too.
type RegisterInput struct {
	Username        string   `json:"username" form:"username" validate:"required,username"`
	Password        string   `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string   `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
	Email           string   `json:"email" form:"email" validate:"required,email"`
	Addresses       []string `json:"addresses,omitempty" form:"addresses"`
}

type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenResult is returned by Register and Login.
type TokenResult struct {
	Token string `json:"token"`
}

type AuthService struct {
	users    repository.UserRepository
	creds    *CredentialService
	validate *validator.Validate
	logger   *zerolog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(logger *zerolog.Logger, users repository.UserRepository, creds *CredentialService) *AuthService {
	return &AuthService{
		users:    users,
		creds:    creds,
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return utils.ValidateUsername(fl.Field().String()) == ""
	})
	return v
}

// validateRegister aggregates every failed field into one ValidationError.
func (s *AuthService) validateRegister(in RegisterInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperr.ErrBadRequest, err)
	}

	verr := &apperr.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe, in))
	}
	return verr.Err()
}

func fieldMessage(fe validator.FieldError, in RegisterInput) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "email is not a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "username":
		return utils.ValidateUsername(in.Username)
	default:
		return fe.Field() + " is invalid"
	}
}

// Register validates input, enforces username uniqueness, stores the user
// and returns a fresh token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*TokenResult, error) {
	in.Username = utils.NormalizeUsername(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validateRegister(in); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByUsername(ctx, in.Username)
	switch {
	case err == nil && existing != nil:
		return nil, apperr.ErrDuplicateUser
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	// A concurrent signup can pass the lookup above; the unique index turns
	// the second insert into ErrDuplicateUser.
	user, err := s.users.CreateUser(ctx, &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		Addresses: in.Addresses,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.creds.IssueToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Str("username", user.Username).Msg("user registered")
	return &TokenResult{Token: token}, nil
}

// Login returns the same ErrAuthenticationFailed for an unknown username and
// a wrong password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResult, error) {
	username := utils.NormalizeUsername(in.Username)

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		// Burn the same hashing cost as a real check.
		s.creds.VerifyPassword(in.Password, s.dummyPasswordHash())
		return nil, apperr.ErrAuthenticationFailed
	}

	if !s.creds.VerifyPassword(in.Password, user.Password) {
		return nil, apperr.ErrAuthenticationFailed
	}

	token, err := s.creds.IssueToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to record login time")
	}

	return &TokenResult{Token: token}, nil
}

func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword("lessonhub-dummy-password")
	})
	return s.dummyHash
}

// Authenticate resolves the caller from an Authorization header value.
// Checks run in order: header present, bearer token present, token valid,
// user still exists.
func (s *AuthService) Authenticate(ctx context.Context, authorization string) (*models.User, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return nil, apperr.ErrMissingAuthHeader
	}

	scheme, token, found := strings.Cut(authorization, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, apperr.ErrMissingToken
	}

	claims, err := s.creds.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnknownUser
		}
		return nil, err
	}

	return user.Public(), nil
}

type userCtxKey struct{}

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext returns the user stored by WithUser, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*models.User)
	return user, ok && user != nil
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
	"github.com/AnshRaj112/lessonhub-backend/internal/models"
	"github.com/AnshRaj112/lessonhub-backend/internal/services"
)

// AuthFlow is the registration/login/gate surface the user routes need.
type AuthFlow interface {
	Authenticator
	Register(ctx context.Context, in services.RegisterInput) (*services.TokenResult, error)
	Login(ctx context.Context, in services.LoginInput) (*services.TokenResult, error)
}

type AvatarUploader interface {
	Upload(ctx context.Context, userID string, file io.Reader, filename string) (string, error)
}

type UserHandler struct {
	auth           AuthFlow
	avatars        AvatarUploader
	maxUploadBytes int64
}

func NewUserHandler(auth AuthFlow, avatars AvatarUploader, maxUploadBytes int64) *UserHandler {
	return &UserHandler{auth: auth, avatars: avatars, maxUploadBytes: maxUploadBytes}
}

// Validate answers with the user the gate resolved (password already stripped).
func (h *UserHandler) Validate(w http.ResponseWriter, r *http.Request, user *models.User) {
	writeData(w, r, user)
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, res)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginInput
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		hlog.FromRequest(r).Info().Str("username", req.Username).Msg("login failed")
		writeError(w, r, err)
		return
	}
	writeData(w, r, res)
}

// UploadAvatar accepts multipart/form-data with `userId` and an `avatar` file.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, fmt.Errorf("%w: avatar exceeds %d bytes", apperr.ErrBadRequest, h.maxUploadBytes))
			return
		}
		writeError(w, r, fmt.Errorf("%w: invalid multipart form", apperr.ErrBadRequest))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: avatar file is required", apperr.ErrBadRequest))
		return
	}
	defer file.Close()

	url, err := h.avatars.Upload(r.Context(), r.FormValue("userId"), file, header.Filename)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, url)
}

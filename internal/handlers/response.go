package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/rs/zerolog/hlog"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Code    string              `json:"code,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

func writeData(w http.ResponseWriter, r *http.Request, data any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, Response{Success: true, Data: data})
}

// RenderError writes a failure envelope for rejections that never become an
// apperr error, such as rate limits, panics and unmatched routes.
func RenderError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, Response{Success: false, Message: message, Code: code})
}

// writeError is the single place errors become HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)

	logger := hlog.FromRequest(r)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request rejected")
	}

	resp := Response{
		Success: false,
		Message: apperr.Message(err),
		Code:    apperr.Code(err),
	}
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = verr.Fields
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

// decodeBody binds a JSON or urlencoded body into v. A missing Content-Type is read as JSON.
func decodeBody(r *http.Request, v any) error {
	var err error
	if strings.TrimSpace(r.Header.Get("Content-Type")) == "" {
		err = json.NewDecoder(r.Body).Decode(v)
	} else {
		err = render.Decode(r, v)
	}
	if err != nil {
		return fmt.Errorf("%w: invalid request body", apperr.ErrBadRequest)
	}
	return nil
}

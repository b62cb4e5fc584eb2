package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/lessonhub-backend/internal/apperr"
	"github.com/AnshRaj112/lessonhub-backend/internal/models"
	"github.com/AnshRaj112/lessonhub-backend/internal/services"
)

type Catalog interface {
	ListLessons(ctx context.Context, category string, offset, limit int64) (*services.LessonPage, error)
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
	ListSliders(ctx context.Context) ([]models.Slider, error)
}

type CatalogHandler struct {
	catalog Catalog
}

func NewCatalogHandler(catalog Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListLessons supports ?category=&offset=&limit=.
func (h *CatalogHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset, err := queryInt(q.Get("offset"), "offset")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(q.Get("limit"), "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.catalog.ListLessons(r.Context(), q.Get("category"), offset, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, page)
}

func (h *CatalogHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.catalog.GetLesson(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, lesson)
}

func (h *CatalogHandler) ListSliders(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.catalog.ListSliders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, sliders)
}

func queryInt(raw, name string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", apperr.ErrBadRequest, name)
	}
	return n, nil
}

package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

func Root(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{Success: true, Message: "hello world"})
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	RenderError(w, r, http.StatusNotFound, "NotFound", "Route not found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RenderError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed", "Method not allowed")
}

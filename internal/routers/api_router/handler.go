// Package api_router provides the HTTP API route handlers.
package api_router

import (
	"github.com/skyring/file-explorer-service/internal/app"
)

// Handler base handler struct wrapping the app container. API handlers
// embed it to get dependency injection.
type Handler struct {
	App *app.App
}

// NewHandler creates a base handler instance.
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

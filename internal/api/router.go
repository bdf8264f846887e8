package api

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/cheatsheets/internal/sheetservice"
)

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(svc *sheetservice.Service) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(CacheControl(time.Minute))

	r.Get("/cheatsheets", h.ListCheatsheets)
	r.Get("/cheatsheets/{slug}", h.GetCheatsheet)
	r.Get("/cheatsheets/{slug}/toc", h.GetTOC)
	r.Get("/facets", h.Facets)

	return r
}

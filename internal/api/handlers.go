package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/cheatsheets/internal/apperr"
	"github.com/starford/cheatsheets/internal/catalog"
	"github.com/starford/cheatsheets/internal/checksum"
	"github.com/starford/cheatsheets/internal/sheetservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *sheetservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *sheetservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListCheatsheets handles GET /api/cheatsheets.
//
// Query parameters: q (substring of title, description or content),
// category (exact match) and tag (repeatable, any of).
func (h *Handler) ListCheatsheets(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.List(r.Context(), catalog.ParseFilter(r.URL.Query()))
	if err != nil {
		slog.Error("list cheatsheets failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{
		Cheatsheets: listing.Results,
		Count:       len(listing.Results),
		Total:       listing.Total,
		Categories:  listing.Facets.Categories,
		Tags:        listing.Facets.Tags,
	})
}

// GetCheatsheet handles GET /api/cheatsheets/{slug}.
func (h *Handler) GetCheatsheet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	detail, err := h.svc.Get(r.Context(), slug)
	if err != nil {
		h.fail(w, slug, err)
		return
	}
	etag := checksum.ETag(detail.Checksum)
	w.Header().Set("ETag", etag)
	if checksum.Matches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetTOC handles GET /api/cheatsheets/{slug}/toc.
func (h *Handler) GetTOC(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	entries, err := h.svc.TOC(r.Context(), slug)
	if err != nil {
		h.fail(w, slug, err)
		return
	}
	writeJSON(w, http.StatusOK, TOCResponse{Slug: slug, TOC: entries})
}

// Facets handles GET /api/facets.
func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Facets(r.Context())
	if err != nil {
		slog.Error("facets failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, FacetsResponse{
		Categories:     f.Categories,
		Tags:           f.Tags,
		CategoryCounts: f.CategoryCounts,
		TagCounts:      f.TagCounts,
	})
}

func (h *Handler) fail(w http.ResponseWriter, slug string, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	slog.Error("get cheatsheet failed", slog.String("slug", slug), slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

// Package site serves the server-rendered cheatsheet pages.
package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/cheatsheets/internal/apperr"
	"github.com/starford/cheatsheets/internal/catalog"
	"github.com/starford/cheatsheets/internal/checksum"
	"github.com/starford/cheatsheets/internal/render"
	"github.com/starford/cheatsheets/internal/sheetservice"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{"home.html", "detail.html", "error.html"}

// Info is the site-wide text shown in every page.
type Info struct {
	Title   string
	Tagline string
}

// Site renders HTML pages.
type Site struct {
	svc    *sheetservice.Service
	info   Info
	pages  map[string]*template.Template
	css    []byte // syntax highlighting stylesheet
	logger *slog.Logger
}

// New parses the embedded templates and returns a Site.
func New(svc *sheetservice.Service, info Info, logger *slog.Logger) (*Site, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Site{svc: svc, info: info, pages: make(map[string]*template.Template), logger: logger}
	for _, p := range pages {
		t, err := template.New(p).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("site: parse %s: %w", p, err)
		}
		s.pages[p] = t
	}
	var css bytes.Buffer
	if err := render.WriteCSS(&css); err != nil {
		return nil, fmt.Errorf("site: highlight css: %w", err)
	}
	s.css = css.Bytes()
	return s, nil
}

// Routes returns the page router.
func (s *Site) Routes() chi.Router {
	static, _ := fs.Sub(staticFS, "static")

	r := chi.NewRouter()
	r.Get("/", s.Home)
	r.Get("/cheatsheets/{slug}", s.Detail)
	r.Get("/static/highlight.css", s.HighlightCSS)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.NotFound(s.NotFound)
	return r
}

type homeData struct {
	Info    Info
	Title   string
	Listing *sheetservice.Listing
	Filter  catalog.Filter
}

// Home handles GET /.
func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	f := catalog.ParseFilter(r.URL.Query())
	listing, err := s.svc.List(r.Context(), f)
	if err != nil {
		s.logger.Error("list cheatsheets failed", slog.String("error", err.Error()))
		s.renderError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	s.render(w, http.StatusOK, "home.html", homeData{
		Info:    s.info,
		Title:   s.info.Title,
		Listing: listing,
		Filter:  f,
	})
}

type detailData struct {
	Info   Info
	Title  string
	Detail *sheetservice.Detail
}

// Detail handles GET /cheatsheets/{slug}.
func (s *Site) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	d, err := s.svc.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.NotFound(w, r)
			return
		}
		s.logger.Error("get cheatsheet failed", slog.String("slug", slug), slog.String("error", err.Error()))
		s.renderError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	etag := checksum.ETag(d.Checksum + "-html")
	w.Header().Set("ETag", etag)
	if checksum.Matches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	title := d.Title
	if title == "" {
		title = d.Slug
	}
	s.render(w, http.StatusOK, "detail.html", detailData{
		Info:   s.info,
		Title:  title + " · " + s.info.Title,
		Detail: d,
	})
}

// HighlightCSS serves the stylesheet for highlighted code blocks.
func (s *Site) HighlightCSS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(s.css)
}

// NotFound renders the 404 page.
func (s *Site) NotFound(w http.ResponseWriter, _ *http.Request) {
	s.renderError(w, http.StatusNotFound, "Cheatsheet not found")
}

type errorData struct {
	Info    Info
	Title   string
	Status  int
	Message string
}

func (s *Site) renderError(w http.ResponseWriter, status int, msg string) {
	s.render(w, status, "error.html", errorData{
		Info:    s.info,
		Title:   msg + " · " + s.info.Title,
		Status:  status,
		Message: msg,
	})
}

func (s *Site) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("template execute failed", slog.String("page", page), slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

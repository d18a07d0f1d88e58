package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	htmlformat "github.com/labsite/labsite/format/html"
	jsonformat "github.com/labsite/labsite/format/json"
	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/site"
)

// people handles GET /people
func (s *Server) people(w http.ResponseWriter, r *http.Request) {
	opts := s.renderOptions()

	dir, err := s.loader.People(r.Context())
	if err != nil {
		slog.Error("loading people", "err", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		if err := htmlformat.RenderError(w, "People", site.RosterStatus(s.loader.RosterPath, err), opts); err != nil {
			slog.Error("rendering error page", "err", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := (&htmlformat.Format{}).RenderPeople(w, dir, opts); err != nil {
		slog.Error("rendering people", "err", err)
	}
}

// publications handles GET /publications?sort=&q=
func (s *Server) publications(w http.ResponseWriter, r *http.Request) {
	view, ok := viewOptions(w, r)
	if !ok {
		return
	}

	page, err := s.loader.Publications(r.Context(), view)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		slog.Error("loading publications", "err", err)
		w.WriteHeader(http.StatusBadGateway)
	}
	if err := (&htmlformat.Format{}).RenderPublications(w, page, s.renderOptions()); err != nil {
		slog.Error("rendering publications", "err", err)
	}
}

// apiPeople handles GET /api/people
func (s *Server) apiPeople(w http.ResponseWriter, r *http.Request) {
	dir, err := s.loader.People(r.Context())
	if err != nil {
		slog.Error("loading people", "err", err)
		respondError(w, http.StatusBadGateway, site.RosterStatus(s.loader.RosterPath, err))
		return
	}
	respondJSON(w, http.StatusOK, jsonformat.NewPeopleDocument(dir))
}

// apiPublications handles GET /api/publications?sort=&q=
func (s *Server) apiPublications(w http.ResponseWriter, r *http.Request) {
	view, ok := viewOptions(w, r)
	if !ok {
		return
	}

	status := http.StatusOK
	page, err := s.loader.Publications(r.Context(), view)
	if err != nil {
		slog.Error("loading publications", "err", err)
		status = http.StatusBadGateway
	}

	doc, err := jsonformat.NewPublicationsDocument(page)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, status, doc)
}

// viewOptions reads the sort and q query parameters, answering 400 for an
// unknown sort key.
func viewOptions(w http.ResponseWriter, r *http.Request) (publication.ViewOptions, bool) {
	q := r.URL.Query()
	key, err := publication.ParseSortKey(q.Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return publication.ViewOptions{}, false
	}
	return publication.ViewOptions{Sort: key, Query: q.Get("q")}, true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON", "err", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Guilhem-Bonnet/radioteca/internal/app"
	"github.com/Guilhem-Bonnet/radioteca/internal/httpjson"
	"github.com/Guilhem-Bonnet/radioteca/internal/ports"
)

type CatalogHandler struct {
	catalog *app.CatalogService
}

func NewCatalogHandler(catalog *app.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) Routes(r chi.Router) {
	r.Get("/programs", h.listPrograms)
	r.Get("/programs/{id}", h.getProgram)
	r.Get("/programs/{id}/episodes", h.listProgramEpisodes)
	r.Get("/episodes", h.listEpisodes)
	r.Get("/episodes/{id}", h.getEpisode)
	r.Get("/search", h.search)
}

// page est la réponse des endpoints listés: hasMore est dérivé par
// l'appelant du repository ("page plus courte que perPage" → fin).
type page struct {
	Items   any  `json:"items"`
	Page    int  `json:"page"`
	PerPage int  `json:"perPage"`
	HasMore bool `json:"hasMore"`
}

func (h *CatalogHandler) listPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.catalog.Programs(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, programs)
}

func (h *CatalogHandler) getProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	program, err := h.catalog.Program(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, program)
}

func (h *CatalogHandler) listProgramEpisodes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p := queryPage(r)
	episodes, err := h.catalog.EpisodesByProgram(r.Context(), id, p)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, page{
		Items:   episodes,
		Page:    p,
		PerPage: app.EpisodesPerProgramPage,
		HasMore: len(episodes) == app.EpisodesPerProgramPage,
	})
}

func (h *CatalogHandler) listEpisodes(w http.ResponseWriter, r *http.Request) {
	p := queryPage(r)
	episodes, err := h.catalog.Episodes(r.Context(), p)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, page{
		Items:   episodes,
		Page:    p,
		PerPage: app.EpisodesPerPage,
		HasMore: len(episodes) == app.EpisodesPerPage,
	})
}

func (h *CatalogHandler) getEpisode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	episode, err := h.catalog.Episode(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	if episode == nil {
		httpjson.WriteError(w, http.StatusNotFound, "episode not found")
		return
	}
	httpjson.Write(w, http.StatusOK, episode)
}

func (h *CatalogHandler) search(w http.ResponseWriter, r *http.Request) {
	episodes, err := h.catalog.SearchEpisodes(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, episodes)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func queryPage(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

func writeCatalogError(w http.ResponseWriter, err error) {
	var connErr *app.ConnectivityError
	var srvErr *app.ServerError
	var apiErr *app.APIError

	switch {
	case errors.Is(err, ports.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "not found")
	case errors.As(err, &connErr):
		httpjson.WriteError(w, http.StatusServiceUnavailable, "remote unreachable and no cached data")
	case errors.As(err, &srvErr):
		httpjson.WriteError(w, http.StatusBadGateway, "remote server error")
	case errors.As(err, &apiErr):
		httpjson.WriteError(w, http.StatusBadGateway, "remote rejected the request")
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

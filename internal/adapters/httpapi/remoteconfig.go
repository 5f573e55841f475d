package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Guilhem-Bonnet/radioteca/internal/app"
	"github.com/Guilhem-Bonnet/radioteca/internal/httpjson"
)

type ConfigHandler struct {
	config *app.RemoteConfigService
}

func NewConfigHandler(config *app.RemoteConfigService) *ConfigHandler {
	return &ConfigHandler{config: config}
}

func (h *ConfigHandler) Routes(r chi.Router) {
	r.Get("/config", h.get)
	r.Post("/config/refresh", h.refresh)
}

func (h *ConfigHandler) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.config.Get(r.Context())
	if err != nil {
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, cfg)
}

// refresh force un fetch (hors du chemin best-effort du démarrage).
func (h *ConfigHandler) refresh(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.config.Refresh(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, cfg)
}

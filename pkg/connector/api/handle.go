package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/connector"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/utils"
)

type Handle struct {
	connectorService *connector.ConnectorService
	pagination       config.PaginationConfig
}

func NewHandle(connectorService *connector.ConnectorService, pagination config.PaginationConfig) *Handle {
	return &Handle{
		connectorService: connectorService,
		pagination:       pagination,
	}
}

func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Post("/", h.Post)
	r.Get("/{id}", h.GetID)
	r.Patch("/{id}", h.PatchID)
	r.Delete("/{id}", h.DeleteID)
	return r
}

func (h *Handle) Get(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r, h.pagination.DefaultPageSize, h.pagination.MaxPageSize)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	search := database.ParseSearch(r.URL.Query(), connector.SearchFields)

	connectors, total, err := h.connectorService.FindConnectors(r.Context(), page, search)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	utils.SetTotalNumber(w, total)
	render.JSON(w, r, connectors)
}

func (h *Handle) Post(w http.ResponseWriter, r *http.Request) {
	var params connector.CreateConnectorParams
	if err := utils.DecodeJSON(r, &params); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	created, err := h.connectorService.CreateConnector(r.Context(), params)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, created)
}

func (h *Handle) GetID(w http.ResponseWriter, r *http.Request) {
	found, err := h.connectorService.GetConnector(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, found)
}

// PatchID merges the config keys in the body into the stored config.
func (h *Handle) PatchID(w http.ResponseWriter, r *http.Request) {
	var patch schema.UpdateConnector
	if err := utils.DecodeJSON(r, &patch); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	updated, err := h.connectorService.UpdateConnector(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, updated)
}

func (h *Handle) DeleteID(w http.ResponseWriter, r *http.Request) {
	if err := h.connectorService.DeleteConnector(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.RenderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

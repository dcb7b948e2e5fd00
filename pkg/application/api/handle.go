package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/idm-console/pkg/application"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/utils"
)

type Handle struct {
	applicationService *application.ApplicationService
	pagination         config.PaginationConfig
}

func NewHandle(applicationService *application.ApplicationService, pagination config.PaginationConfig) *Handle {
	return &Handle{
		applicationService: applicationService,
		pagination:         pagination,
	}
}

// Handler mounts the application routes.
func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Post)
	r.Get("/totals", h.GetTotals)
	r.Get("/{id}", h.GetID)
	r.Patch("/{id}", h.PatchID)
	r.Delete("/{id}", h.DeleteID)
	return r
}

// List handles GET / with page, page_size, search and search.<field>
func (h *Handle) List(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r, h.pagination.DefaultPageSize, h.pagination.MaxPageSize)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	search := database.ParseSearch(r.URL.Query(), application.SearchFields)

	apps, total, err := h.applicationService.FindApplications(r.Context(), page, search)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	utils.SetTotalNumber(w, total)
	render.JSON(w, r, apps)
}

// Post handles the creation of a new application
func (h *Handle) Post(w http.ResponseWriter, r *http.Request) {
	var params application.CreateApplicationParams
	if err := utils.DecodeJSON(r, &params); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	app, err := h.applicationService.CreateApplication(r.Context(), params)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, app)
}

// GetTotals handles GET /totals
func (h *Handle) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.applicationService.Totals(r.Context())
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, totals)
}

// GetID handles GET /{id}
func (h *Handle) GetID(w http.ResponseWriter, r *http.Request) {
	app, err := h.applicationService.GetApplication(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, app)
}

// PatchID handles PATCH /{id}. Metadata objects in the body are merged into
// the stored ones.
func (h *Handle) PatchID(w http.ResponseWriter, r *http.Request) {
	var patch schema.UpdateApplication
	if err := utils.DecodeJSON(r, &patch); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	app, err := h.applicationService.UpdateApplication(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, app)
}

// DeleteID handles DELETE /{id}
func (h *Handle) DeleteID(w http.ResponseWriter, r *http.Request) {
	if err := h.applicationService.DeleteApplication(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.RenderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

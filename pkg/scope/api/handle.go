package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/idm-console/pkg/scope"
	"github.com/tendant/idm-console/pkg/utils"
)

type Handle struct {
	scopeService *scope.ScopeService
}

func NewHandle(scopeService *scope.ScopeService) *Handle {
	return &Handle{
		scopeService: scopeService,
	}
}

func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.Post)
	r.Get("/{id}", h.GetID)
	return r
}

// Post handles the creation of a new scope
func (h *Handle) Post(w http.ResponseWriter, r *http.Request) {
	var params scope.CreateScopeParams
	if err := utils.DecodeJSON(r, &params); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	created, err := h.scopeService.CreateScope(r.Context(), params)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, created)
}

// GetID handles retrieving a scope by id
func (h *Handle) GetID(w http.ResponseWriter, r *http.Request) {
	found, err := h.scopeService.GetScope(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, found)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/idm-console/pkg/application"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/role"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/utils"
)

type Handle struct {
	roleService *role.RoleService
	pagination  config.PaginationConfig
}

func NewHandle(roleService *role.RoleService, pagination config.PaginationConfig) *Handle {
	return &Handle{
		roleService: roleService,
		pagination:  pagination,
	}
}

// Handler mounts the role routes.
func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Post("/", h.Post)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetID)
		r.Patch("/", h.PatchID)
		r.Delete("/", h.DeleteID)
		r.Get("/users", h.GetIDUsers)
		r.Post("/users", h.PostIDUsers)
		r.Delete("/users/{userId}", h.DeleteIDUsersUserID)
		r.Get("/applications", h.GetIDApplications)
		r.Post("/applications", h.PostIDApplications)
	})
	return r
}

type assignUsersRequest struct {
	UserIDs []string `json:"userIds"`
}

type assignApplicationsRequest struct {
	ApplicationIDs []string `json:"applicationIds"`
}

// Get handles retrieving a page of roles with their users
func (h *Handle) Get(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r, h.pagination.DefaultPageSize, h.pagination.MaxPageSize)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	search := database.ParseSearch(r.URL.Query(), role.SearchFields)

	roles, total, err := h.roleService.FindRoles(r.Context(), page, search)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	utils.SetTotalNumber(w, total)
	render.JSON(w, r, roles)
}

// Post handles the creation of a new role
func (h *Handle) Post(w http.ResponseWriter, r *http.Request) {
	var params role.CreateRoleParams
	if err := utils.DecodeJSON(r, &params); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	created, err := h.roleService.CreateRole(r.Context(), params)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, created)
}

// GetID handles retrieving a role by id
func (h *Handle) GetID(w http.ResponseWriter, r *http.Request) {
	found, err := h.roleService.GetRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, found)
}

// PatchID handles updating a role
func (h *Handle) PatchID(w http.ResponseWriter, r *http.Request) {
	var patch schema.UpdateRole
	if err := utils.DecodeJSON(r, &patch); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	updated, err := h.roleService.UpdateRole(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, updated)
}

// DeleteID handles deleting a role
func (h *Handle) DeleteID(w http.ResponseWriter, r *http.Request) {
	if err := h.roleService.DeleteRole(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.RenderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetIDUsers handles retrieving users assigned to a role
func (h *Handle) GetIDUsers(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r, h.pagination.DefaultPageSize, h.pagination.MaxPageSize)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	users, total, err := h.roleService.FindRoleUsers(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	utils.SetTotalNumber(w, total)
	render.JSON(w, r, users)
}

// PostIDUsers handles assigning a role to users
func (h *Handle) PostIDUsers(w http.ResponseWriter, r *http.Request) {
	var body assignUsersRequest
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	if err := h.roleService.AssignUsers(r.Context(), chi.URLParam(r, "id"), body.UserIDs); err != nil {
		utils.RenderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// DeleteIDUsersUserID handles removing a user from a role
func (h *Handle) DeleteIDUsersUserID(w http.ResponseWriter, r *http.Request) {
	err := h.roleService.RemoveUser(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userId"))
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetIDApplications handles retrieving applications holding a role
func (h *Handle) GetIDApplications(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r, h.pagination.DefaultPageSize, h.pagination.MaxPageSize)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	search := database.ParseSearch(r.URL.Query(), application.SearchFields)

	apps, total, err := h.roleService.FindRoleApplications(r.Context(), chi.URLParam(r, "id"), page, search)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	utils.SetTotalNumber(w, total)
	render.JSON(w, r, apps)
}

// PostIDApplications handles assigning a role to applications
func (h *Handle) PostIDApplications(w http.ResponseWriter, r *http.Request) {
	var body assignApplicationsRequest
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	if err := h.roleService.AssignApplications(r.Context(), chi.URLParam(r, "id"), body.ApplicationIDs); err != nil {
		utils.RenderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/user"
	"github.com/tendant/idm-console/pkg/utils"
)

type Handle struct {
	userService *user.UserService
	pagination  config.PaginationConfig
}

func NewHandle(userService *user.UserService, pagination config.PaginationConfig) *Handle {
	return &Handle{
		userService: userService,
		pagination:  pagination,
	}
}

func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.GetUsers)
	r.Post("/", h.PostUser)
	r.Get("/{id}", h.GetUser)
	return r
}

// Get a list of users
// (GET /users)
func (h *Handle) GetUsers(w http.ResponseWriter, r *http.Request) {
	page, err := utils.ParsePage(r, h.pagination.DefaultPageSize, h.pagination.MaxPageSize)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	search := database.ParseSearch(r.URL.Query(), user.SearchFields)

	users, total, err := h.userService.FindUsers(r.Context(), page, search)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	utils.SetTotalNumber(w, total)
	render.JSON(w, r, users)
}

// Create a user
// (POST /users)
func (h *Handle) PostUser(w http.ResponseWriter, r *http.Request) {
	var params user.CreateUserParams
	if err := utils.DecodeJSON(r, &params); err != nil {
		utils.RenderError(w, r, err)
		return
	}

	created, err := h.userService.CreateUser(r.Context(), params)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, created)
}

// Get a user by id
// (GET /users/{id})
func (h *Handle) GetUser(w http.ResponseWriter, r *http.Request) {
	found, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, found)
}

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lithopress/litho/internal/platform/middleware"
	requestutil "github.com/lithopress/litho/internal/platform/request"
	"github.com/lithopress/litho/internal/platform/respond"
	"github.com/lithopress/litho/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Get("/{identifier}", handler.getCategory)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createCategory)
		admin.Patch("/{id}", handler.updateCategory)
		admin.Delete("/{id}", handler.deleteCategory)
	})

	return router
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	category, err := handler.service.Get(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

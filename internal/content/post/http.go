// Copyright (c) 2026 Litho Press. All rights reserved.

package post

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lithopress/litho/internal/platform/middleware"
	requestutil "github.com/lithopress/litho/internal/platform/request"
	"github.com/lithopress/litho/internal/platform/respond"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/pkg/convert"
	"github.com/lithopress/litho/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for post management and discovery.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new post [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the post domain's endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): Accessible by all visitors for browsing.
//   - Authoring (Restricted): Requires [RoleStaff] for state-mutating operations;
//     per-post ownership is enforced by the service layer.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listPosts)
	router.Get("/{identifier}", handler.getPost)

	// ## Authoring (Staff Protected)
	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleStaff))

		staff.Post("/", handler.createPost)
		staff.Patch("/{id}", handler.updatePost)
		staff.Post("/{id}/publish", handler.publishPost)
		staff.Delete("/{id}", handler.deletePost)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/posts.

Description: Retrieves a paginated list of posts, newest first.
Anonymous visitors see published posts only; staff may request
drafts explicitly.

Request:
  - status: string (draft, published)
  - category: string (category slug)
  - full: bool (include content blocks, default false)
  - limit: int
  - page: int

Response:
  - 200: []Post: Paginated list of posts
*/
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	queryParams := request.URL.Query()
	filter := Filter{
		Status:       Status(queryParams.Get("status")),
		CategorySlug: queryParams.Get("category"),
	}

	// Draft visibility is a staff privilege
	claims := requestutil.Claims(request)
	if claims == nil || !claims.IsStaff() {
		filter.Status = StatusPublished
	}

	// Domain Logic Execution
	posts, total, err := handler.service.List(request.Context(), filter, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// List payloads skip content blocks unless the client asks for them
	if !convert.ToBool(queryParams.Get("full")) {
		for _, item := range posts {
			item.Blocks = []Block{}
		}
	}

	// Structured API Response
	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/posts/{identifier}.

Description: Retrieves a single post using either its UUID or unique
URL slug. UUID lookups take precedence.

Request:
  - identifier: string (UUID or Slug)

Response:
  - 200: Post: Success
  - 404: 404: ErrNotFound: Post not found
*/
func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	// Domain Logic Execution
	post, err := handler.service.Get(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, post)
}

// # Request Payloads

// postRequest defines the inbound JSON schema for post creation and updates.
type postRequest struct {
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Blocks      []Block    `json:"blocks"`
	Status      Status     `json:"status"`
	ReleaseDate *time.Time `json:"release_date"`
	ReleaseType string     `json:"release_type"`
	CategoryIDs []string   `json:"category_ids"`
}

// # Mutation Endpoints

/*
POST /api/v1/posts.

Description: Creates a new post authored by the acting staff member.
Slugs are auto-generated from the title.

Request (Body):
  - postRequest: JSON object

Response:
  - 201: Post: Created post object
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Insufficient permissions
*/
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postRequest

	// Strict JSON decoding
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	post, err := handler.service.Create(request.Context(), claims, CreateInput{
		Title:       input.Title,
		Excerpt:     input.Excerpt,
		Blocks:      input.Blocks,
		Status:      input.Status,
		ReleaseDate: input.ReleaseDate,
		ReleaseType: input.ReleaseType,
		CategoryIDs: input.CategoryIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, post)
}

/*
PATCH /api/v1/posts/{id}.

Description: Applies partial updates to an existing post. Clients
should only provide the fields that need to be changed. Admins may
edit any post; staff may only edit posts they author.

Request:
  - id: string (UUID)
  - postRequest: JSON object (partial)

Response:
  - 200: Post: Updated post object
  - 403: 403: ErrForbidden: Not the post's author
  - 404: 404: ErrNotFound: Post not found
*/
func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	post, err := handler.service.Update(request.Context(), claims, requestutil.Param(request, "id"), UpdateInput{
		Title:       input.Title,
		Excerpt:     input.Excerpt,
		Blocks:      input.Blocks,
		Status:      input.Status,
		ReleaseDate: input.ReleaseDate,
		ReleaseType: input.ReleaseType,
		CategoryIDs: input.CategoryIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, post)
}

/*
POST /api/v1/posts/{id}/publish.

Description: Transitions a post into the published state. Idempotent;
republishing keeps the original publication timestamp.

Request:
  - id: string (UUID)

Response:
  - 200: Post: Published post object
  - 403: 403: ErrForbidden: Not the post's author
  - 404: 404: ErrNotFound: Post not found
*/
func (handler *Handler) publishPost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	post, err := handler.service.Publish(request.Context(), claims, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, post)
}

/*
DELETE /api/v1/posts/{id}.

Description: Soft-deletes a post, removing it from discovery while
retaining the record. Admins may delete any post; staff may only
delete posts they author.

Request:
  - id: string (UUID)

Response:
  - 204: No Content
  - 403: 403: ErrForbidden: Not the post's author
  - 404: 404: ErrNotFound: Post not found
*/
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	if err := handler.service.Delete(request.Context(), claims, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}

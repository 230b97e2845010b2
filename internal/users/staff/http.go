// Copyright (c) 2026 Litho Press. All rights reserved.

package staff

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lithopress/litho/internal/platform/middleware"
	requestutil "github.com/lithopress/litho/internal/platform/request"
	"github.com/lithopress/litho/internal/platform/respond"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for access-grant management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new staff [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the grant management endpoints.
//
// Every route requires [sec.RoleAdmin]; the environment allow-list is the
// only way to bootstrap the first administrator.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listGrants)
	router.Put("/", handler.grant)
	router.Delete("/{email}", handler.revoke)

	return router
}

// # Grant Endpoints

/*
GET /api/v1/staff-access.

Description: Lists standing role grants, newest first.

Request:
  - page: int
  - limit: int

Response:
  - 200: []AccessGrant: Paginated grants
  - 401: 401: ErrUnauthorized: Login required
  - 403: 403: ErrForbidden: Admin role required
*/
func (handler *Handler) listGrants(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	grants, total, err := handler.service.List(request.Context(), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, grants, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// grantRequest defines the inbound JSON schema for creating a grant.
type grantRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

/*
PUT /api/v1/staff-access.

Description: Creates or replaces the role grant for an email address. The
email does not need to belong to an existing account yet.

Request (Body):
  - email: string
  - role: string (admin or staff)

Response:
  - 200: AccessGrant: The stored grant
  - 400: 400: ErrInvalidJSON/Validation: Invalid payload
  - 401: 401: ErrUnauthorized: Login required
  - 403: 403: ErrForbidden: Admin role required
*/
func (handler *Handler) grant(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input grantRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grant, err := handler.service.Grant(request.Context(), input.Email, input.Role, claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, grant)
}

/*
DELETE /api/v1/staff-access/{email}.

Description: Removes the standing grant for an email address.

Request:
  - email: string

Response:
  - 204: No Content: Success
  - 401: 401: ErrUnauthorized: Login required
  - 403: 403: ErrForbidden: Admin role required
  - 404: 404: ErrNotFound: No grant for this email
*/
func (handler *Handler) revoke(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")

	if err := handler.service.Revoke(request.Context(), email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// Copyright (c) 2026 Litho Press. All rights reserved.

package newsletter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lithopress/litho/internal/platform/middleware"
	requestutil "github.com/lithopress/litho/internal/platform/request"
	"github.com/lithopress/litho/internal/platform/respond"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Signup and opt-out are public; opt-out links arrive by email.
	router.Post("/subscribe", handler.subscribe)
	router.Get("/unsubscribe/{token}", handler.unsubscribe)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/subscribers", handler.listSubscribers)
	})

	return router
}

type subscribeRequest struct {
	Email string `json:"email"`
}

/*
POST /api/v1/newsletter/subscribe.

Description: Adds an email to the mailing list. Idempotent; repeat
signups and returning subscribers succeed identically.

Request (Body):
  - email: string

Response:
  - 201: Subscriber: Active subscription
  - 400: 400: Validation: Invalid email
*/
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	var input subscribeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscriber, err := handler.service.Subscribe(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, subscriber)
}

/*
GET /api/v1/newsletter/unsubscribe/{token}.

Description: Opts a subscriber out using the token from their email.

Response:
  - 204: No Content
  - 404: 404: ErrNotFound: Unknown or spent token
*/
func (handler *Handler) unsubscribe(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Unsubscribe(request.Context(), requestutil.Param(request, "token")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
GET /api/v1/newsletter/subscribers.

Description: Lists the active roster for administrators.

Response:
  - 200: []Subscriber: Paginated roster
*/
func (handler *Handler) listSubscribers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	subscribers, total, err := handler.service.List(request.Context(), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, subscribers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

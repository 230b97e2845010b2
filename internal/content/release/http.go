// Copyright (c) 2026 Litho Press. All rights reserved.

package release

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lithopress/litho/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/calendar", handler.getCalendar)

	return router
}

/*
GET /api/v1/releases/calendar.

Description: Returns the public release calendar, ascending by date.
The payload is viewer-neutral and served from cache when fresh.

Response:
  - 200: []Entry: Upcoming and recent releases
*/
func (handler *Handler) getCalendar(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.Calendar(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

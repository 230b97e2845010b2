// Copyright (c) 2026 Litho Press. All rights reserved.

package analytics

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

	// Public: the site search and the experiment beacons.
	router.Get("/search", handler.search)
	router.Post("/experiments/{name}/impression", handler.recordImpression)
	router.Post("/experiments/{name}/conversion", handler.recordConversion)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/search-misses", handler.listSearchMisses)
		admin.Get("/experiments", handler.listTotals)
		admin.Post("/experiments/flush", handler.flush)
	})

	return router
}

/*
GET /api/v1/analytics/search?q=...

Description: Runs the public site search. Zero-hit queries are
recorded for editorial review.

Response:
  - 200: []SearchResult: Matching published posts
  - 400: 400: Validation: Empty or oversized query
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	results, err := handler.service.Search(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}

type experimentRequest struct {
	Variant string `json:"variant"`
}

/*
POST /api/v1/analytics/experiments/{name}/impression.

Description: Counts one display of an experiment variant.

Request (Body):
  - variant: string

Response:
  - 204: No Content
*/
func (handler *Handler) recordImpression(writer http.ResponseWriter, request *http.Request) {
	var input experimentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RecordImpression(request.Context(), requestutil.Param(request, "name"), input.Variant); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/analytics/experiments/{name}/conversion.

Description: Counts one goal completion for an experiment variant.

Request (Body):
  - variant: string

Response:
  - 204: No Content
*/
func (handler *Handler) recordConversion(writer http.ResponseWriter, request *http.Request) {
	var input experimentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RecordConversion(request.Context(), requestutil.Param(request, "name"), input.Variant); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
GET /api/v1/analytics/search-misses.

Description: Lists zero-hit search queries, newest first.

Response:
  - 200: []SearchMiss: Paginated miss log
*/
func (handler *Handler) listSearchMisses(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	misses, total, err := handler.service.SearchMisses(request.Context(), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, misses, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/analytics/experiments.

Description: Returns merged experiment tallies (durable + pending).

Response:
  - 200: []ExperimentTotals
*/
func (handler *Handler) listTotals(writer http.ResponseWriter, request *http.Request) {
	totals, err := handler.service.Totals(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, totals)
}

/*
POST /api/v1/analytics/experiments/flush.

Description: Folds the pending Redis counters into the durable
read model immediately, ahead of the periodic flush.

Response:
  - 204: No Content
*/
func (handler *Handler) flush(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Flush(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

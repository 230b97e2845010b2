// Copyright (c) 2026 Litho Press. All rights reserved.

package comment

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

// Handler implements the HTTP layer for the comment domain.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the comment domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Thread Access
	router.Get("/post/{postID}", handler.listComments)

	// ## Authenticated Interactions
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/post/{postID}", handler.createComment)
		authed.Post("/{id}/reactions", handler.toggleReaction)
		authed.Delete("/{id}", handler.deleteComment)
	})

	// ## Moderation Audit (Staff Protected)
	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleStaff))

		staff.Get("/flagged", handler.listFlagged)
	})

	return router
}

// # Thread Endpoints

/*
GET /api/v1/comments/post/{postID}.

Description: Retrieves the comment thread for a post, ranked by the
requested sort mode. Logged-in viewers additionally see which reaction
they personally left on each comment.

Request:
  - postID: string (UUID)
  - sort: string (newest, oldest, top; defaults to newest)

Response:
  - 200: []Comment: Ranked thread
  - 400: Validation: Unknown sort mode
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.Param(request, "postID")
	mode := SortMode(request.URL.Query().Get("sort"))

	// Anonymous viewers get an empty overlay.
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	comments, err := handler.service.ListForPost(request.Context(), postID, mode, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

// createCommentRequest defines the inbound JSON schema for comment submission.
type createCommentRequest struct {
	Body string `json:"body"`
}

/*
POST /api/v1/comments/post/{postID}.

Description: Submits a new comment to a post's thread. Submissions that
score as spam are refused outright; everything else is stored together
with its score for the staff audit.

Request:
  - postID: string (UUID)
  - body: createCommentRequest

Response:
  - 201: Comment: Created comment
  - 400: 400: SPAM_REJECTED/Validation: Spam or invalid payload
  - 401: 401: ErrUnauthorized: Login required
  - 404: 404: ErrNotFound: Post not found
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.Param(request, "postID")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), CreateInput{
		PostID: postID,
		UserID: userID,
		Body:   input.Body,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// # Reaction Endpoints

// toggleReactionRequest defines the inbound JSON schema for reaction toggles.
type toggleReactionRequest struct {
	Kind ReactionKind `json:"kind"`
}

/*
POST /api/v1/comments/{id}/reactions.

Description: Toggles the caller's reaction on a comment. Sending the same
kind twice clears it; sending a different kind replaces the previous one.

Request:
  - id: string (UUID)
  - body: toggleReactionRequest (like, helpful, funny)

Response:
  - 200: Comment: Refreshed tallies with the caller's current reaction
  - 400: Validation: Unknown reaction kind
  - 401: 401: ErrUnauthorized: Login required
  - 404: 404: ErrNotFound: Comment not found
*/
func (handler *Handler) toggleReaction(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.Param(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input toggleReactionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.ToggleReaction(request.Context(), commentID, userID, input.Kind)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/comments/{id}.

Description: Hides a comment from the thread. Authors may delete their own
comments; administrators may delete any.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 401: 401: ErrUnauthorized: Login required
  - 403: 403: ErrForbidden: Not the author
  - 404: 404: ErrNotFound: Comment not found
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.Param(request, "id")

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), commentID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Moderation Endpoints

/*
GET /api/v1/comments/flagged.

Description: Staff audit of comments that triggered at least one spam
signal but scored below the rejection threshold.

Request:
  - page: int
  - limit: int

Response:
  - 200: []Comment: Paginated audit list
  - 401: 401: ErrUnauthorized: Login required
  - 403: 403: ErrForbidden: Staff role required
*/
func (handler *Handler) listFlagged(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListFlagged(request.Context(), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

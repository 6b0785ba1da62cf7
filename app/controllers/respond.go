package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"postboard/app/models"
	"postboard/app/repositories"
)

// Client facing messages. 500 bodies never carry the underlying error.
const (
	MsgPostNotFound       = "The post with the specified ID does not exist."
	MsgPostsListFailed    = "The posts information could not be retrieved."
	MsgPostGetFailed      = "The post information could not be retrieved."
	MsgCommentsListFailed = "The comments information could not be retrieved."
	MsgPostSaveFailed     = "There was an error while saving the post to the database"
	MsgCommentSaveFailed  = "There was an error while saving the comment to the database"
	MsgPostUpdateFailed   = "The post information could not be modified."
	MsgPostRemoveFailed   = "The post could not be removed"
	MsgRouteNotFound      = "Not found"
	MsgMethodNotAllowed   = "Method not allowed"
)

const maxBodyBytes = 1 << 20

// apiError is an error response. Each kind of failure uses its own JSON key:
// errorMessage for 400, message for 404, error for 500.
type apiError struct {
	status  int
	key     string
	message string
	err     error
}

func badRequest(message string) *apiError {
	return &apiError{status: http.StatusBadRequest, key: "errorMessage", message: message}
}

func notFound(message string) *apiError {
	return &apiError{status: http.StatusNotFound, key: "message", message: message}
}

func internalError(message string, err error) *apiError {
	return &apiError{status: http.StatusInternalServerError, key: "error", message: message, err: err}
}

// classify maps a service error onto a response. failMessage is used for
// anything that is neither a validation error nor a missing post.
func classify(err error, failMessage string) *apiError {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return badRequest(verr.Message)
	case errors.Is(err, repositories.ErrNotFound):
		return notFound(MsgPostNotFound)
	default:
		return internalError(failMessage, err)
	}
}

func sendJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

func sendError(w http.ResponseWriter, r *http.Request, e *apiError) {
	if e.status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(e.err).
			Int("status", e.status).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg(e.message)
	}
	sendJSON(w, r, e.status, map[string]string{e.key: e.message})
}

// postID reads the {id} path variable. Anything that is not a positive
// integer cannot name a post.
func postID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON body into v. Malformed or missing bodies are
// reported as a validation error with the given message.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, message string) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.NewValidationError(message)
	}
	return nil
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, r, http.StatusNotFound, map[string]string{"message": MsgRouteNotFound})
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, r, http.StatusMethodNotAllowed, map[string]string{"message": MsgMethodNotAllowed})
}

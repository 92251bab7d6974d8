package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
	"github.com/sbilibin2017/recipe-api/internal/validation"
)

// Error messages shared by handlers.
const (
	msgInternal         = "Internal server error"
	msgNotFound         = "Not found."
	msgMalformedBody    = "Malformed request body."
	msgInvalidToken     = "Invalid token."
	msgInvalidLogin     = "Unable to authenticate with provided credentials."
	msgPermissionDenied = "You do not have permission to perform this action."
)

var requestValidator = validation.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeFieldError(w http.ResponseWriter, field, msg string) {
	writeValidationError(w, validation.FieldError(field, msg))
}

func writeValidationError(w http.ResponseWriter, verr *validation.Error) {
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: verr.Message, Fields: verr.Fields})
}

// writeServiceError maps service errors to HTTP responses. Missing and
// foreign resources share the same 404 response.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeFieldError(w, "email", "User with this email already exists.")
	case errors.Is(err, services.ErrLabelNameTaken):
		writeFieldError(w, "name", "A label with this name already exists.")
	case errors.Is(err, services.ErrInvalidImage):
		writeFieldError(w, "image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, msgInvalidLogin)
	case errors.Is(err, services.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, msgPermissionDenied)
	case errors.Is(err, services.ErrRecipeNotFound), errors.Is(err, services.ErrLabelNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	default:
		logger.FromContext(r.Context()).Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeJSON decodes the request body into dst and validates it.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgMalformedBody)
		return false
	}
	if err := requestValidator.Validate(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return false
		}
		logger.FromContext(r.Context()).Errorw("failed to validate request", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter. Invalid ids are answered with 404.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

// currentUser returns the authenticated user or answers 401.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.UserDB, bool) {
	user := middlewares.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return nil, false
	}
	return user, true
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/sellegate/internal/common"
)

type errorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type errorEnvelope struct {
	Status string       `json:"status"`
	Error  errorPayload `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError translates service errors into the uniform error envelope.
// Anything not recognized is a 500 with a generic message so internals do
// not leak to clients.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal"
	message := "internal error"

	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		status, code, message = http.StatusUnauthorized, "unauthenticated", err.Error()
	case errors.Is(err, common.ErrorForbidden):
		status, code, message = http.StatusForbidden, "forbidden", err.Error()
	case errors.Is(err, common.ErrorNotFound):
		status, code, message = http.StatusNotFound, "not_found", err.Error()
	case errors.Is(err, common.ErrorItemAlreadySold),
		errors.Is(err, common.ErrorItemHidden),
		errors.Is(err, common.ErrorAssessmentResolved):
		status, code, message = http.StatusConflict, "invalid_state", err.Error()
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorEmailTaken),
		errors.Is(err, common.ErrorUsernameTaken):
		status, code, message = http.StatusBadRequest, "validation_error", err.Error()
	default:
		s.logger.Error(ctx, err.Error())
	}

	s.writeJSON(w, status, errorEnvelope{
		Status: "error",
		Error:  errorPayload{Message: message, Code: code},
	})
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/stackscope/pkg/errors"
)

const unexpectedMessage = "An unexpected error occurred"

var errMissingURL = apperrors.New(apperrors.ErrCodeInvalidInput, "Please provide a GitHub repository URL")

func errorBody(status int, title, message string, code apperrors.Code) apperrors.Body {
	if code == "" {
		code = apperrors.FromStatus(status)
	}
	return apperrors.Body{Error: title, Message: message, Code: code}
}

// describe maps an error to its status and public body. Upstream causes are
// never exposed; only the coded message is.
func describe(err error) (int, apperrors.Body) {
	var e *apperrors.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, errorBody(http.StatusInternalServerError,
			"Internal server error", unexpectedMessage, apperrors.ErrCodeInternal)
	}

	status := apperrors.HTTPStatus(e.Code)
	switch e.Code {
	case apperrors.ErrCodeInvalidInput:
		title := "Invalid request"
		if errors.Is(err, errMissingURL) {
			title = "Missing URL parameter"
		}
		return status, errorBody(status, title, e.Message, e.Code)
	case apperrors.ErrCodeInvalidURL, apperrors.ErrCodeInvalidPath:
		return status, errorBody(status, "Invalid GitHub URL", e.Message, e.Code)
	case apperrors.ErrCodeNotFound:
		return status, errorBody(status, e.Message, e.Message, e.Code)
	case apperrors.ErrCodeRateLimited:
		return status, errorBody(status, e.Message, "GitHub API rate limit exceeded, try again later", e.Code)
	default:
		return status, errorBody(status, e.Message, unexpectedMessage, e.Code)
	}
}

// writeError logs err with the request ID and writes its public body.
// extend, when non-nil, decorates the body before it is written.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, extend func(apperrors.Body) any) {
	status, body := describe(err)

	lvl := log.WarnLevel
	if status >= 500 {
		lvl = log.ErrorLevel
	}
	s.logger.Log(lvl, "request failed",
		"path", r.URL.Path,
		"code", body.Code,
		"request_id", RequestIDFromContext(r.Context()),
		"err", err,
	)

	var v any = body
	if extend != nil {
		v = extend(body)
	}
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

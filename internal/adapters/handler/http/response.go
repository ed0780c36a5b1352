package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/jobboard/internal/core/domain"
)

const maxBodyBytes = 1 << 20

type envelope map[string]any

// responder writes the JSON envelopes shared by every handler:
// {"success": true, ...} on success and {"success": false, "message": ...}
// on failure.
type responder struct {
	logger *zap.Logger
}

func (rs responder) json(w http.ResponseWriter, status int, body envelope) {
	if body == nil {
		body = envelope{}
	}
	body["success"] = true

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		rs.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (rs responder) error(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)

	if status == http.StatusInternalServerError {
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		}
		var de *domain.DomainError
		if errors.As(err, &de) && len(de.Stack) > 0 {
			fields = append(fields, zap.ByteString("stack", de.Stack))
		}
		rs.logger.Error("request failed", fields...)
	} else {
		rs.logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}

	writeError(w, status, message)
}

// decode reads a JSON body into dst. Unknown fields are ignored.
func (rs responder) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{"success": false, "message": message})
}

// statusFor maps a service error to an HTTP status and a client-safe message.
func statusFor(err error) (int, string) {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, "internal server error"
	}

	switch de.Kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest, de.Message
	case domain.KindUnauthorized:
		return http.StatusUnauthorized, de.Message
	case domain.KindForbidden:
		return http.StatusForbidden, de.Message
	case domain.KindNotFound:
		return http.StatusNotFound, de.Message
	case domain.KindConflict:
		return http.StatusConflict, de.Message
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

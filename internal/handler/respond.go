// Package handler exposes the engines over HTTP. Every response uses the
// same envelope: {"status":"success","data":...} with a "results" count on
// listings, {"status":"fail"|"error","message":...} on failures.
package handler

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"

	"time-control-api/internal/apperr"

	"github.com/sirupsen/logrus"
)

const msgInternal = "Ha ocurrido un error inesperado. Inténtelo de nuevo más tarde."
const msgBadBody = "El cuerpo de la petición no es válido."
const msgBadParam = "Uno de los parámetros de la petición no es válido."

type successEnvelope struct {
	Status  string      `json:"status"`
	Results *int        `json:"results,omitempty"`
	Data    interface{} `json:"data"`
}

type failEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, successEnvelope{Status: "success", Data: data})
}

// writeList wraps a slice payload and carries its length.
func writeList(w http.ResponseWriter, data interface{}) {
	results := reflect.ValueOf(data).Len()
	writeJSON(w, http.StatusOK, successEnvelope{Status: "success", Results: &results, Data: data})
}

// writeError maps taxonomy errors to their status with "fail"; anything else
// is logged and hidden behind a generic 500 "error".
func writeError(w http.ResponseWriter, r *http.Request, logger *logrus.Logger, err error) {
	if appErr, ok := apperr.As(err); ok {
		writeJSON(w, appErr.Status(), failEnvelope{Status: "fail", Message: appErr.Message})
		return
	}

	logger.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).WithError(err).Error("Unhandled error")
	writeJSON(w, http.StatusInternalServerError, failEnvelope{Status: "error", Message: msgInternal})
}

// decode parses a JSON request body into dst.
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.NewValidation(msgBadBody)
	}
	return nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.NewValidation(msgBadParam)
	}
	return uint(id), nil
}

// parseUintQuery returns 0 when the parameter is absent.
func parseUintQuery(r *http.Request, name string) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.NewValidation(msgBadParam)
	}
	return uint(value), nil
}

func parseBoolQuery(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}

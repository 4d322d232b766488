// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

// Package api provides the HTTP surface: chi routing, request decoding,
// and the standardized response envelope.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/scentwell/scentwell/internal/logging"
	"github.com/scentwell/scentwell/internal/models"
)

// Error codes used in API responses.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidationFailed = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeImportError      = "IMPORT_ERROR"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// responseWriter writes envelope responses and tracks query time.
type responseWriter struct {
	w     http.ResponseWriter
	start time.Time
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w: w, start: time.Now()}
}

// Success writes a 200 envelope with data.
func (rw *responseWriter) Success(data interface{}) {
	rw.writeJSON(http.StatusOK, models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: rw.metadata(),
	})
}

// Created writes a 201 envelope with data.
func (rw *responseWriter) Created(data interface{}) {
	rw.writeJSON(http.StatusCreated, models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: rw.metadata(),
	})
}

// Error writes an error envelope with the given status code.
func (rw *responseWriter) Error(statusCode int, code, message string) {
	rw.ErrorPayload(statusCode, &models.APIError{Code: code, Message: message})
}

// ErrorPayload writes an error envelope with a prebuilt error payload.
func (rw *responseWriter) ErrorPayload(statusCode int, apiErr *models.APIError) {
	rw.writeJSON(statusCode, models.APIResponse{
		Status:   "error",
		Metadata: rw.metadata(),
		Error:    apiErr,
	})
}

// BadRequest writes a 400 error.
func (rw *responseWriter) BadRequest(code, message string) {
	rw.Error(http.StatusBadRequest, code, message)
}

// NotFound writes a 404 error.
func (rw *responseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, message)
}

// Conflict writes a 409 error.
func (rw *responseWriter) Conflict(message string) {
	rw.Error(http.StatusConflict, ErrCodeConflict, message)
}

// DatabaseError logs err and writes a generic 500.
func (rw *responseWriter) DatabaseError(err error) {
	logging.Error().Err(err).Msg("database error")
	rw.Error(http.StatusInternalServerError, ErrCodeDatabaseError, "a database error occurred")
}

func (rw *responseWriter) metadata() models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(rw.start).Milliseconds(),
	}
}

func (rw *responseWriter) writeJSON(statusCode int, payload models.APIResponse) {
	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(statusCode)
	if err := json.NewEncoder(rw.w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("failed to encode JSON response")
	}
}

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"contactbook-be/internal/apperrors"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantLogged bool
	}{
		{name: "validation", err: apperrors.Validation("name is required"), wantStatus: http.StatusBadRequest, wantBody: `{"error":"name is required"}`},
		{name: "credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"invalid email or password"}`},
		{name: "unauthenticated", err: apperrors.ErrUnauthenticated, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"unauthorized"}`},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"unauthorized"}`},
		{name: "conflict", err: apperrors.ErrEmailTaken, wantStatus: http.StatusConflict, wantBody: `{"error":"user with this email already exists"}`},
		{name: "not found", err: fmt.Errorf("contact: %w", apperrors.ErrNotFound), wantStatus: http.StatusNotFound, wantBody: `{"error":"not found"}`},
		{name: "internal", err: errors.New("pq: connection reset"), wantStatus: http.StatusInternalServerError, wantBody: `{"error":"internal server error"}`, wantLogged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/contacts", nil)

			respondError(c, zap.New(core), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantLogged, logs.Len() == 1)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-bookstore/internal/service"
)

func TestFromError_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"nil", nil, http.StatusInternalServerError, CodeInternal},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
		{"token_expired", service.ErrTokenExpired, http.StatusUnauthorized, CodeTokenExpired},
		{"invalid_token", service.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized},
		{"login_required", service.ErrLoginRequired, http.StatusUnauthorized, CodeUnauthorized},
		{"account_inactive", service.ErrAccountInactive, http.StatusForbidden, CodeForbidden},
		{"bad_auth_header", service.ErrInvalidAuthHeader, http.StatusBadRequest, CodeBadRequest},
		{"invalid_email", service.ErrInvalidEmail, http.StatusBadRequest, CodeBadRequest},
		{"weak_password", service.ErrWeakPassword, http.StatusBadRequest, CodeBadRequest},
		{"empty_cart", service.ErrEmptyCart, http.StatusBadRequest, CodeBadRequest},
		{"not_found", service.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"email_taken", service.ErrEmailTaken, http.StatusConflict, CodeConflict},
		{"already_exists", service.ErrAlreadyExists, http.StatusConflict, CodeConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, code, _ := FromError(tc.err)
			require.Equal(t, tc.status, status)
			require.Equal(t, tc.code, code)
		})
	}
}

func TestFromError_Wrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("service.auth.Refresh: %w", service.ErrTokenExpired)
	status, code, _ := FromError(wrapped)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, CodeTokenExpired, code)
}

func TestWriteError_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)

	WriteError(rec, req, service.ErrLoginRequired)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "/auth/refresh", resp.Path)
	require.Equal(t, http.StatusUnauthorized, resp.Status)
	require.Equal(t, CodeUnauthorized, resp.Code)
	require.NotEmpty(t, resp.Message)
	require.WithinDuration(t, time.Now().UTC(), resp.Timestamp, 2*time.Second)
	require.Empty(t, resp.Details)
}

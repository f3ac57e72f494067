package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/model/auth"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
	"github.com/archops-lab/dispatchboard/pkg/utils/errutil"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// handleError maps use case sentinel errors to HTTP status codes
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrProjectNotFound),
		errors.Is(err, usecase.ErrLogEntryNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrTemplateNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrEmptyProjectName),
		errors.Is(err, usecase.ErrEmptyLogContent),
		errors.Is(err, usecase.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidToken):
		status = http.StatusUnauthorized
	}
	errutil.HandleHTTP(ctx, w, err, status)
}

// decodeJSON decodes a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}

// authLoginHandler resolves the email to a user and issues session
// cookies. Any password is accepted for a known email.
func authLoginHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		token, user, err := authUC.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "unknown email"})
				return
			}
			handleError(r.Context(), w, err)
			return
		}

		// Set authentication cookies
		tokenIDCookie := &http.Cookie{
			Name:     "token_id",
			Value:    token.ID.String(),
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			Expires:  token.ExpiresAt,
		}

		tokenSecretCookie := &http.Cookie{
			Name:     "token_secret",
			Value:    token.Secret.String(),
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			Expires:  token.ExpiresAt,
		}

		http.SetCookie(w, tokenIDCookie)
		http.SetCookie(w, tokenSecretCookie)

		writeJSON(r.Context(), w, http.StatusOK, toUserResponse(user))
	}
}

// authLogoutHandler revokes the session token and clears cookies
func authLogoutHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Get token ID from cookie
		tokenIDCookie, err := r.Cookie("token_id")
		if err == nil {
			tokenID := auth.TokenID(tokenIDCookie.Value)
			if err := authUC.Logout(r.Context(), tokenID); err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to logout"), http.StatusInternalServerError)
				return
			}
		}

		// Clear authentication cookies
		clearTokenID := &http.Cookie{
			Name:     "token_id",
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		}

		clearTokenSecret := &http.Cookie{
			Name:     "token_secret",
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		}

		http.SetCookie(w, clearTokenID)
		http.SetCookie(w, clearTokenSecret)

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

// authMeHandler returns the authenticated user
func authMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())
		if user == nil {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUserResponse(user))
	}
}

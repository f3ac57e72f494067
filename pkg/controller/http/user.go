package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
)

func listUsersHandler(userUC *usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := userUC.List(r.Context())
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		resp := make([]userResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, toUserResponse(u))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func getUserHandler(userUC *usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.UserID(chi.URLParam(r, "userID"))
		u, err := userUC.Get(r.Context(), id)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUserResponse(u))
	}
}

func refreshPersonaHandler(userUC *usecase.UserUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.UserID(chi.URLParam(r, "userID"))
		u, err := userUC.RefreshPersona(r.Context(), id)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toUserResponse(u))
	}
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
	"github.com/archops-lab/dispatchboard/pkg/utils/errutil"
)

type updateTemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Template    string `json:"template"`
}

func listTemplatesHandler(templateUC *usecase.TemplateUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templates, err := templateUC.List(r.Context())
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		resp := make([]templateResponse, 0, len(templates))
		for _, t := range templates {
			resp = append(resp, toTemplateResponse(t))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func getTemplateHandler(templateUC *usecase.TemplateUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.TemplateID(chi.URLParam(r, "templateID"))
		t, err := templateUC.Get(r.Context(), id)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toTemplateResponse(t))
	}
}

func updateTemplateHandler(templateUC *usecase.TemplateUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.TemplateID(chi.URLParam(r, "templateID"))

		var req updateTemplateRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		t, err := templateUC.Update(r.Context(), id, usecase.UpdateTemplateInput{
			Name:        req.Name,
			Description: req.Description,
			Template:    req.Template,
		})
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toTemplateResponse(t))
	}
}

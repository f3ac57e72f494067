package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/domain/model/auth"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
	"github.com/archops-lab/dispatchboard/pkg/utils/errutil"
)

type registerProjectRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	BusinessUnit string `json:"businessUnit"`
	Manager      string `json:"manager"`
	Description  string `json:"description"`
	Tags         string `json:"tags"`
}

type appendLogRequest struct {
	Date        string              `json:"date"`
	Content     string              `json:"content"`
	Attachments []attachmentRequest `json:"attachments"`
}

type attachmentRequest struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Type string `json:"type"`
}

type editLogRequest struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

type updateMetadataRequest struct {
	CreatedAt   string `json:"createdAt"`
	Tags        string `json:"tags"`
	ArchitectID string `json:"architectId"`
	Stage       string `json:"stage"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type duplicateCheckRequest struct {
	Name string `json:"name"`
}

type duplicateCheckResponse struct {
	Warning string `json:"warning"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// parseDay parses an optional day-granularity date string. An empty
// string yields the zero time.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid date", goerr.V("date", s))
	}
	return t, nil
}

func listProjectsHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := projectUC.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		resp := make([]projectResponse, 0, len(projects))
		for _, p := range projects {
			resp = append(resp, toProjectResponse(p))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func registerProjectHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerProjectRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		p, err := projectUC.Register(r.Context(), usecase.RegisterProjectInput{
			Code:         req.Code,
			Name:         req.Name,
			BusinessUnit: req.BusinessUnit,
			Manager:      req.Manager,
			Description:  req.Description,
			Tags:         req.Tags,
		})
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toProjectResponse(p))
	}
}

func getProjectHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ProjectID(chi.URLParam(r, "projectID"))
		p, err := projectUC.Get(r.Context(), id)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toProjectResponse(p))
	}
}

// appendLogHandler records a history entry authored by the session
// user. The author reference always comes from the session, never from
// the request body.
func appendLogHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ProjectID(chi.URLParam(r, "projectID"))

		var req appendLogRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		date, err := parseDay(req.Date)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		input := usecase.AppendLogInput{
			Date:    date,
			Content: req.Content,
		}
		if user := auth.UserFromContext(r.Context()); user != nil {
			input.AuthorID = user.ID
			input.Author = user.Name
		}
		for _, a := range req.Attachments {
			input.Attachments = append(input.Attachments, model.Attachment{
				Name: a.Name,
				Size: a.Size,
				Type: a.Type,
			})
		}

		p, err := projectUC.AppendLog(r.Context(), id, input)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toProjectResponse(p))
	}
}

func editLogHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ProjectID(chi.URLParam(r, "projectID"))
		logID := types.LogID(chi.URLParam(r, "logID"))

		var req editLogRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		date, err := parseDay(req.Date)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		p, err := projectUC.EditLog(r.Context(), id, logID, usecase.EditLogInput{
			Content: req.Content,
			Date:    date,
		})
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toProjectResponse(p))
	}
}

func togglePauseHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ProjectID(chi.URLParam(r, "projectID"))
		p, err := projectUC.TogglePause(r.Context(), id)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toProjectResponse(p))
	}
}

func updateMetadataHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ProjectID(chi.URLParam(r, "projectID"))

		var req updateMetadataRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		createdAt, err := parseDay(req.CreatedAt)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		stage, err := types.ParseProjectStage(req.Stage)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid stage"), http.StatusBadRequest)
			return
		}

		p, err := projectUC.UpdateMetadata(r.Context(), id, usecase.UpdateMetadataInput{
			CreatedAt:   createdAt,
			Tags:        req.Tags,
			ArchitectID: types.UserID(req.ArchitectID),
			Stage:       stage,
		})
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toProjectResponse(p))
	}
}

func setStatusHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ProjectID(chi.URLParam(r, "projectID"))

		var req setStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		p, err := projectUC.SetStatus(r.Context(), id, types.ProjectStatus(req.Status))
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toProjectResponse(p))
	}
}

func generateSummaryHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ProjectID(chi.URLParam(r, "projectID"))
		summary, err := projectUC.GenerateSummary(r.Context(), id)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, summaryResponse{Summary: summary})
	}
}

func duplicateCheckHandler(projectUC *usecase.ProjectUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req duplicateCheckRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		warning, err := projectUC.CheckDuplicate(r.Context(), req.Name)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, duplicateCheckResponse{Warning: warning})
	}
}

func recommendationsHandler(staffingUC *usecase.StaffingUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ProjectID(chi.URLParam(r, "projectID"))
		recs, err := staffingUC.Recommend(r.Context(), id)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toRecommendationResponses(recs))
	}
}

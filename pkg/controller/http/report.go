package http

import (
	"net/http"
	"time"

	"github.com/archops-lab/dispatchboard/pkg/usecase"
	"github.com/archops-lab/dispatchboard/pkg/utils/errutil"
	"github.com/archops-lab/dispatchboard/pkg/utils/safe"
)

type workflowScanResponse struct {
	Narrative string `json:"narrative"`
}

// weeklyRange resolves the report range from start/end query params,
// defaulting to the current Monday-through-Sunday week.
func weeklyRange(r *http.Request) (time.Time, time.Time, error) {
	start, err := parseDay(r.URL.Query().Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDay(r.URL.Query().Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if start.IsZero() {
		now := time.Now()
		offset := (int(now.Weekday()) + 6) % 7
		start = time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, now.Location())
	}
	if end.IsZero() {
		end = start.AddDate(0, 0, 6)
	}
	return start, end, nil
}

func weeklyReportHandler(reportUC *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := weeklyRange(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		rows, err := reportUC.Weekly(r.Context(), start, end)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toWeeklyRowResponses(rows))
	}
}

func weeklyReportTSVHandler(reportUC *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := weeklyRange(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		tsv, err := reportUC.WeeklyTSV(r.Context(), start, end)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="weekly-report.tsv"`)
		safe.Write(r.Context(), w, []byte(tsv))
	}
}

func statsHandler(reportUC *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := reportUC.Stats(r.Context())
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toStatsResponse(stats))
	}
}

func workflowScanHandler(workflowUC *usecase.WorkflowUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		narrative, err := workflowUC.Scan(r.Context())
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, workflowScanResponse{Narrative: narrative})
	}
}

package http

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/archops-lab/dispatchboard/frontend"
	"github.com/archops-lab/dispatchboard/pkg/domain/types"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
	"github.com/archops-lab/dispatchboard/pkg/utils/logging"
	"github.com/archops-lab/dispatchboard/pkg/utils/safe"
)

type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	noAuthn bool
}

type Options func(*Server)

// WithNoAuthn disables session validation. Requests run as the first
// seeded admin user. Local development only.
func WithNoAuthn(enabled bool) Options {
	return func(s *Server) {
		s.noAuthn = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	// Auth endpoints are reachable without a session
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authLoginHandler(uc.Auth))
		r.Post("/logout", authLogoutHandler(uc.Auth))
		r.With(authMiddleware(s)).Get("/me", authMeHandler())
	})

	// Everything else requires a valid session
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", listProjectsHandler(uc.Project))
			r.Post("/", registerProjectHandler(uc.Project))
			r.Post("/duplicate-check", duplicateCheckHandler(uc.Project))

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", getProjectHandler(uc.Project))
				r.With(requireRole(types.UserRoleAdmin, types.UserRoleManager)).
					Put("/metadata", updateMetadataHandler(uc.Project))
				r.With(requireRole(types.UserRoleAdmin, types.UserRoleManager)).
					Put("/status", setStatusHandler(uc.Project))
				r.Post("/pause", togglePauseHandler(uc.Project))
				r.Post("/logs", appendLogHandler(uc.Project))
				r.Put("/logs/{logID}", editLogHandler(uc.Project))
				r.Post("/summary", generateSummaryHandler(uc.Project))
				r.Get("/recommendations", recommendationsHandler(uc.Staffing))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", listUsersHandler(uc.User))
			r.Get("/{userID}", getUserHandler(uc.User))
			r.With(requireRole(types.UserRoleAdmin, types.UserRoleManager)).
				Post("/{userID}/persona", refreshPersonaHandler(uc.User))
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", listTemplatesHandler(uc.Template))
			r.Get("/{templateID}", getTemplateHandler(uc.Template))
			r.With(requireRole(types.UserRoleAdmin)).
				Put("/{templateID}", updateTemplateHandler(uc.Template))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/weekly", weeklyReportHandler(uc.Report))
			r.Get("/weekly.tsv", weeklyReportTSVHandler(uc.Report))
		})

		r.Get("/stats", statsHandler(uc.Report))

		r.With(requireRole(types.UserRoleAdmin)).
			Post("/workflow/scan", workflowScanHandler(uc.Workflow))
	})

	// Static file serving for SPA (catch-all, must be last)
	staticFS, err := fs.Sub(frontend.StaticFiles, "dist")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bind dist dir for static")
	}

	r.Get("/*", spaHandler(staticFS))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// spaHandler handles SPA routing by serving static files and falling back to index.html
func spaHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/")

		// If the path is empty, serve index.html
		if urlPath == "" {
			urlPath = "index.html"
		}

		// Try to open the file to check if it exists
		if file, err := staticFS.Open(urlPath); err != nil {
			// File not found, serve index.html for SPA routing
			if indexFile, err := staticFS.Open("index.html"); err == nil {
				defer safe.Close(r.Context(), indexFile)
				w.Header().Set("Content-Type", "text/html")
				safe.Copy(r.Context(), w, indexFile)
				return
			}

			// If index.html is also not found, return 404
			http.NotFound(w, r)
			return
		} else {
			// File exists, close it and let fileServer handle it
			safe.Close(r.Context(), file)
		}

		// Serve the requested file using the file server
		fileServer.ServeHTTP(w, r)
	}
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/usecase"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	pinger interfaces.Pinger
}

type Options func(*Server)

// WithPinger makes /health report backend reachability
func WithPinger(p interfaces.Pinger) Options {
	return func(s *Server) {
		s.pinger = p
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)

	r.Route("/buyers", func(r chi.Router) {
		r.Use(authMiddleware(uc.Auth))

		r.Get("/", s.dashboard)
		r.Get("/requirements", s.requirements)

		r.Route("/frameworks/{framework}/requirements/{lot}", func(r chi.Router) {
			r.Post("/create", s.createBrief)

			r.Route("/{briefID}", func(r chi.Router) {
				r.Get("/", s.overview)
				r.Delete("/", s.deleteBrief)
				r.Post("/copy", s.copyBrief)
				r.Get("/edit/{section}/{question}", s.editQuestion)
				r.Post("/edit/{section}/{question}", s.updateQuestion)
				r.Post("/publish", s.publishBrief)
				r.Post("/withdraw", s.withdrawBrief)
				r.Get("/timeline", s.timeline)
				r.Post("/supplier-questions/answer-question", s.addClarificationQuestion)

				r.Get("/responses", s.responsesSummary)
				r.Get("/responses/download", s.downloadResponses)

				r.Post("/award-contract", s.awardOrCancel)
				r.Get("/award", s.awardChoices)
				r.Post("/award", s.awardResponse)
				r.Get("/award/{responseID}/contract-details", s.awardDetails)
				r.Post("/award/{responseID}/contract-details", s.submitAwardDetails)
				r.Post("/cancel", s.cancelBrief)
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			logging.From(r.Context()).Warn("backend unreachable", "error", err.Error())
			writeJSON(r.Context(), w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, statusResponse{Status: "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

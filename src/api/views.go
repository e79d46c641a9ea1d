package api

import (
	"net/http"

	"salesboard/src/api/handlers"
	"salesboard/src/config"
	"salesboard/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	logger  *logrus.Logger
	origins []string
}

func NewServer(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg, db, logger)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		logger:  logger,
		origins: cfg.Service.AllowedOrigins,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(utils.RequestLogger(s.logger))
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler)

	s.Router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, utils.NotFound("route not found: "+r.URL.Path))
	})
	s.Router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, utils.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed: "+r.Method))
	})

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api", func(r chi.Router) {
		r.Get("/initialize", s.Handler.Initialize)
		r.Get("/statistics", s.Handler.GetStatistics)
		r.Get("/bar_chart", s.Handler.GetBarChart)
		r.Get("/pie_chart", s.Handler.GetPieChart)
		r.Get("/final_response", s.Handler.GetFinalResponse)
		r.Get("/report", s.Handler.GetReport)
		r.Get("/seed_runs", s.Handler.GetSeedRuns)
	})
}

// Close releases resources held by the handlers.
func (s *Server) Close() error {
	return s.Handler.Close()
}

func NewHTTPServer(cfg *config.Config, server *Server) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  cfg.Service.ReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout(),
		Handler:      server,
	}
}

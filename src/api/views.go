package api

import (
	"net/http"
	"time"

	"finflow/src/api/handlers"
	"finflow/src/config"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
	Port    string
}

func NewServer(cfg *config.Config) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
		Port:    cfg.Service.Port,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.Handler.Register)
		r.Post("/login", s.Handler.Login)
	})

	s.Router.Route("/api/transactions", func(r chi.Router) {
		r.Get("/", s.Handler.GetTransactions)
		r.Post("/", s.Handler.CreateTransaction)
		r.Delete("/{id}", s.Handler.DeleteTransaction)
	})

	s.Router.Route("/api/assets", func(r chi.Router) {
		r.Get("/", s.Handler.GetAssets)
		r.Post("/", s.Handler.CreateAsset)
		r.Delete("/{id}", s.Handler.DeleteAsset)
	})

	s.Router.Get("/api/prices", s.Handler.GetPrices)
	s.Router.Get("/api/dashboard", s.Handler.GetDashboard)

	s.Router.Route("/api/leaderboard", func(r chi.Router) {
		r.Get("/", s.Handler.GetLeaderboard)
		r.Post("/", s.Handler.SubmitScore)
	})
	s.Router.Post("/api/user/check", s.Handler.CheckNick)

	s.Router.Post("/api/advice", s.Handler.GetAdvice)
	s.Router.Post("/api/valuation", s.Handler.EstimateValue)

	s.Router.Get("/api/export", s.Handler.ExportData)
	s.Router.Post("/api/import", s.Handler.ImportData)
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + server.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}

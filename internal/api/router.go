package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/cooooin/harmony/internal/api/handlers"
	"github.com/cooooin/harmony/internal/auth"
	"github.com/cooooin/harmony/internal/config"
	"github.com/cooooin/harmony/internal/metrics"
	"github.com/cooooin/harmony/internal/middleware"
	"github.com/cooooin/harmony/internal/services"
)

type RouterDeps struct {
	Cfg     config.Config
	Log     *slog.Logger
	TM      *auth.TokenManager
	Persons *services.PersonService
	Objects *services.ObjectService
	Trades  *services.TradeService
	Txns    *services.TransactionService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(d.Log))
	r.Use(middleware.RequestLog(d.Log))
	r.Use(middleware.HTTPMetrics)
	r.Use(middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	ph := &handlers.PersonHandler{Svc: d.Persons}
	oh := &handlers.ObjectHandler{Svc: d.Objects}
	th := &handlers.TradeHandler{Svc: d.Trades}
	xh := &handlers.TransactionHandler{Svc: d.Txns}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())
	r.Get("/ping", handlers.Ping)

	r.Post("/person", ph.Register)
	r.Post("/person/claim", ph.Claim)
	r.Get("/person/{id}", ph.Get)

	am := &middleware.AuthMiddleware{TM: d.TM}
	r.Group(func(r chi.Router) {
		r.Use(am.Handler)

		r.Get("/person", ph.Me)
		r.Put("/person", ph.Update)

		r.Route("/finance/objects", func(r chi.Router) {
			r.Get("/", oh.List)
			r.Post("/", oh.Create)
			r.Put("/{id}", oh.Update)
			r.Delete("/{id}", oh.Delete)
		})

		r.Route("/finance/trades", func(r chi.Router) {
			r.Get("/", th.List)
			r.Post("/", th.Create)
			r.Put("/{id}", th.Update)
			r.Delete("/{id}", th.Delete)

			r.Route("/{tradeID}/transactions", func(r chi.Router) {
				r.Get("/", xh.List)
				r.Post("/", xh.Create)
				r.Put("/{id}", xh.Update)
				r.Delete("/{id}", xh.Delete)
			})
		})
	})

	return r
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/leonid6372/portfolio-service/internal/common/config"
	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/leonid6372/portfolio-service/internal/valuation"
)

type ledgerService interface {
	Buy(ctx context.Context, order *domain.BuyOrder) (*domain.BuyResult, error)
	Sell(ctx context.Context, order *domain.SellOrder) (*domain.SellResult, error)
}

type valuationService interface {
	Valuate(ctx context.Context, ownerID int64) (*valuation.Report, error)
}

type Deps struct {
	Ledger       ledgerService
	Valuation    valuationService
	Transactions domain.TransactionsRepository
	Positions    domain.PositionsRepository
	Sales        domain.SalesRepository
}

type Server struct {
	httpServer *http.Server
	secret     string
	deps       Deps
}

func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		secret: cfg.Auth.TokenSecret,
		deps:   deps,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/api/health", s.handleHealth)

	r.Route("/api/portfolio", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/", s.handleValuation)
		r.Get("/positions", s.handlePositions)
		r.Post("/add", s.handleBuy)
		r.Post("/sell", s.handleSell)
		r.Get("/sales", s.handleSales)
		r.Get("/transactions", s.handleTransactions)
		r.Get("/transactions/print", s.handleTransactionsPrint)
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeMove(ctx context.Context, id string, row, col int) (*entity.Game, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
	QueryCell(ctx context.Context, id string, row, col int) (tictactoe.Mark, error)
	EndGame(ctx context.Context, id string) error

	Results(ctx context.Context, limit int) ([]*entity.Result, error)
	Stats(ctx context.Context) (*entity.Stats, error)
}

type Server struct {
	logger *slog.Logger
	router chi.Router
}

// New - builds the HTTP router. ws is mounted at /ws when not nil.
func New(logger *slog.Logger, uGame gameUseCase, ws http.Handler) *Server {
	log := logger.With("component", "rest")
	handlers := newGameHandlers(log, uGame)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)

	router.Get("/ping", NewPingHandler().PingHandler)
	router.Handle("/metrics", promhttp.Handler())

	if ws != nil {
		router.Handle("/ws", ws)
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))

		r.Post("/games", handlers.createGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", handlers.getGame)
			r.Delete("/", handlers.deleteGame)
			r.Post("/moves", handlers.makeMove)
			r.Post("/restart", handlers.restart)
			r.Get("/cells/{row}/{col}", handlers.queryCell)
		})

		r.Get("/results", handlers.listResults)
		r.Get("/results/stats", handlers.stats)
	})

	return &Server{
		logger: log,
		router: router,
	}
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

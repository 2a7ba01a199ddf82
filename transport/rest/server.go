package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

func NewRouter(handlers *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ping", handlers.PingHandler).Methods(http.MethodGet)
	r.HandleFunc("/games", handlers.CreateGame).Methods(http.MethodPost)
	r.HandleFunc("/games/{gameID}", handlers.GetGame).Methods(http.MethodGet)
	r.HandleFunc("/games/{gameID}", handlers.DeleteGame).Methods(http.MethodDelete)
	r.HandleFunc("/games/{gameID}/turn", handlers.MakeTurn).Methods(http.MethodPost)
	r.HandleFunc("/solve", handlers.Solve).Methods(http.MethodPost)

	return r
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

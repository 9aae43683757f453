// Package api serves the HTTP query endpoints of the serve command.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kilianp07/ridership/api/runs"
	"github.com/kilianp07/ridership/core/runlog"
	"github.com/kilianp07/ridership/infra/logger"
)

// NewMux mounts the query endpoints over store.
func NewMux(store runlog.Store, token string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(runs.Path, runs.NewHandler(store, token))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Serve runs the API on addr until ctx is canceled.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	log := logger.New("api")
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("api shutdown: %v", err)
		}
	}()
	log.Infof("serving api on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

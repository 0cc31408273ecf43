package web

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/frobware/prfilter/collection"
)

const shutdownTimeout = 5 * time.Second

// Serve mounts view on addr until ctx is cancelled. The collection is
// loaded in the background, so early requests see the Loading state.
// On shutdown the view is closed and an unfinished load is discarded.
func Serve(ctx context.Context, addr string, view *collection.View, name string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return serve(ctx, ln, view, name)
}

func serve(ctx context.Context, ln net.Listener, view *collection.View, name string) error {
	defer view.Close()

	handler := NewHandler(ctx, view, name)
	server := &http.Server{
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := view.Load(ctx); err != nil && !errors.Is(err, collection.ErrClosed) {
			log.Printf("initial load: %v", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		return err
	}
	return nil
}

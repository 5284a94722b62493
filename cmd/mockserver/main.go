package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashedin27-max/GCS-Upload/internal/logging"
	"github.com/hashedin27-max/GCS-Upload/internal/mockserver"
)

// serverConfig maps the command line flags onto a mockserver.Config.
// An empty secret is left empty so the router applies its own default.
func serverConfig(secret string, ttl time.Duration, spool string) mockserver.Config {
	return mockserver.Config{
		Secret:   []byte(secret),
		TokenTTL: ttl,
		SpoolDir: spool,
	}
}

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "listen address")
	spool := flag.String("spool", "./spool", "directory for received files")
	secret := flag.String("secret", "", "token signing secret")
	ttl := flag.Duration("ttl", 24*time.Hour, "issued token lifetime")
	flag.Parse()

	log := logging.NewDefault(slog.LevelInfo)

	router := mockserver.NewRouter(serverConfig(*secret, *ttl, *spool), log)

	srv := &http.Server{Addr: *addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(context.Background(), "shutdown", "error", err)
		}
	}()

	log.Info(ctx, "dev backend listening", "addr", *addr, "spool", *spool)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(context.Background(), "server stopped", "error", err)
		os.Exit(1)
	}
}

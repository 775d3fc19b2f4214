package main

import (
	"context"
	"errors"
	"flag"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lvillar/hospreport/server"
)

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "hospreport.yaml", "configuration file")
	_ = fs.Parse(args)

	a, err := newApp(*configPath, true)
	if err != nil {
		return err
	}
	store, err := a.archive(ctx)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &server.Server{
		Source:   a.source,
		Reports:  a.reports,
		Stats:    a.stats,
		Archive:  store,
		Logger:   a.logger,
		MaxBatch: a.cfg.Server.MaxBatch,
	}
	httpServer := &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("server.start", "addr", httpServer.Addr, "archive", a.cfg.Archive.Type)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("server.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

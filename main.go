package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"finflow/src/api"
	"finflow/src/config"
	"finflow/src/scheduler"
)

func main() {
	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	server, err := api.NewServer(cfg)
	if err != nil {
		return nil, err
	}
	httpServer := api.NewHTTPServer(server)

	// Keep the price cache warm; GetSnapshot only hits the feed once the
	// slot has expired, so this never stampedes the upstream.
	refreshTask, err := scheduler.NewScheduledTask("@every 60s", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_, _ = server.Handler.Prices.GetSnapshot(ctx)
	})
	if err != nil {
		return nil, err
	}
	_ = refreshTask

	go func() {
		log.Println("Starting server on port", cfg.Service.Port)

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalln("An error raised while setting up server", err)
			errC <- err
		}
	}()
	return errC, nil
}

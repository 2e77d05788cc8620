// Command voicebridge-web serves the translation pipeline over HTTP:
// browsers upload audio and fetch back synthesized translations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/voicebridge/bootstrap"
	"github.com/kbukum/voicebridge/config"
	"github.com/kbukum/voicebridge/logger"
	"github.com/kbukum/voicebridge/server"
	"github.com/kbukum/voicebridge/sink"
)

func main() {
	os.Exit(run())
}

func run() int {
	configFile := flag.String("config", "", "config file path")
	flag.Parse()

	var loadOpts []config.LoaderOption
	if *configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*configFile))
	}
	cfg, err := config.Load("voicebridge-web", loadOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	audioStore := sink.NewMemorySink()
	app, err := bootstrap.New(ctx, cfg, audioStore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		return 1
	}
	defer app.Shutdown(context.Background())

	srv := server.New(server.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	api := server.NewAPI(app.Orchestrator, app.Languages, audioStore, bootstrap.Version, app.HealthChecks()...)
	api.Register(srv.Engine())

	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return 1
	}

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if err := srv.Stop(context.Background()); err != nil {
		logger.Error("shutdown error", logger.Fields(logger.FieldError, err.Error()))
		return 1
	}
	return 0
}

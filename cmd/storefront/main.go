package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/drwskincare/storefront/config"
	"github.com/drwskincare/storefront/internal/app"
	"github.com/drwskincare/storefront/internal/storefrontapi"
	"github.com/drwskincare/storefront/internal/webserver"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	configFile = pflag.StringP("config", "c", "", "config file path")
	initdb     = pflag.Bool("initdb", false, "drop and recreate the catalog tables, then exit")
	migrate    = pflag.Bool("migrate", false, "migrate the catalog schema, then exit")
	normalize  = pflag.String("normalize", "", "normalize a legacy JSON feed file to stdout, then exit")
	force      = pflag.Bool("force-schema", false, "allow --initdb and --migrate on a database other than sqlite")
)

func main() {
	pflag.Parse()

	if *normalize != "" {
		if err := runNormalize(*normalize, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		zap.S().Errorf("application init failed: %+v", err)
		os.Exit(1)
	}
	defer application.Release()

	switch {
	case *initdb:
		if err := application.InitDb(*force); err != nil {
			zap.S().Errorf("initdb failed: %v", err)
			return
		}
		zap.S().Info("catalog tables recreated")
		return
	case *migrate:
		if err := application.MigrateDB(true, *force); err != nil {
			zap.S().Errorf("migrate failed: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	webserver.Init(application)
	storefrontapi.Init()

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Listen()
	}()

	select {
	case <-ctx.Done():
		zap.S().Info("shutting down")
		if err := webserver.Shutdown(context.Background()); err != nil {
			zap.S().Errorf("web server shutdown: %v", err)
		}
	case err := <-errCh:
		if err != nil {
			zap.S().Errorf("web server stopped: %v", err)
		}
	}
}

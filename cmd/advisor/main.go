package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/OldStager01/attrition-advisor/api"
	"github.com/OldStager01/attrition-advisor/internal/advisor"
	"github.com/OldStager01/attrition-advisor/internal/classifier"
	"github.com/OldStager01/attrition-advisor/internal/events"
	"github.com/OldStager01/attrition-advisor/internal/logger"
	"github.com/OldStager01/attrition-advisor/internal/metrics"
	"github.com/OldStager01/attrition-advisor/pkg/config"
)

// @title Attrition Risk Advisor API
// @version 1.0
// @description Scores employee profiles against a pre-trained attrition classifier and returns risk tiers, HR recommendations and PDF summaries.
// @BasePath /
func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("advisor", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to config file")
	checkModel := flags.Bool("check-model", false, "load the classifier artifact, print its description and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)
	logger.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Mode)

	// The service is useless without a classifier; fail before listening.
	model, err := classifier.LoadFile(cfg.Model.Path)
	if err != nil {
		return fmt.Errorf("failed to load classifier: %w", err)
	}

	info := model.Info()
	logger.WithModel(info.Name, info.Version).
		WithField("kind", info.Kind).
		WithField("source", info.Source).
		Info("Classifier loaded")

	if *checkModel {
		fmt.Fprintf(stdout, "name:     %s\nversion:  %s\nkind:     %s\nfeatures: %s\nclasses:  %s\nsource:   %s\n",
			info.Name, info.Version, info.Kind,
			strings.Join(info.Features, ", "), strings.Join(info.Classes, ", "), info.Source)
		return nil
	}

	metrics.SetModelInfo(info.Name, info.Version, string(info.Kind))

	bus := events.NewEventBus(cfg.Events.BufferSize)
	defer bus.Close()

	server := api.NewServer(cfg, advisor.New(model), bus)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Infof("Attrition advisor listening on port %d", cfg.API.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdownChan:
		logger.Infof("Received signal %v, shutting down", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

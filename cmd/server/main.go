// Package main is the entry point for the interconnecting flights service.
//
//	@title			Interconnecting Flights API
//	@version		1.0.0
//	@description	Finds direct and one-or-more-stop itineraries between two airports on top of the Ryanair routes and schedules API.
//
//	@contact.name	API Support
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/api/v1
//
//	@schemes		http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-search/interconnecting-flights/docs"

	searchhttp "github.com/flight-search/interconnecting-flights/internal/adapter/http"
	"github.com/flight-search/interconnecting-flights/internal/adapter/http/middleware"
	"github.com/flight-search/interconnecting-flights/internal/app"
	"github.com/flight-search/interconnecting-flights/internal/config"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/logger"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	logger.Init(cfg.LoggerConfig())
	log := logger.Global

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Backend).
		Msg("Configuration loaded")

	search, err := app.NewSearch(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize search")
	}
	defer func() {
		if err := search.Close(); err != nil {
			log.Error().Err(err).Msg("Error releasing resources")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)

	handler := searchhttp.NewInterconnectionHandler(search.UseCase, searchhttp.StopLimits{
		Default: cfg.Search.DefaultMaxStops,
		Max:     cfg.Search.MaxStopsLimit,
	})
	searchhttp.RegisterRoutes(e, handler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then drains in-flight requests.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}

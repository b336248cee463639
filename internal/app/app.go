package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alimikegami/point-of-sales/catalog-service/config"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/controller"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/scheduler"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/tracing"
	appmiddleware "github.com/alimikegami/point-of-sales/catalog-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/service"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	Config  *config.Config
	Service service.ProductService
	Server  *echo.Echo

	tracerProvider *trace.TracerProvider
	scheduler      gocron.Scheduler
	stopConsumer   context.CancelFunc
}

// Start serves the catalog API and blocks until the server is stopped.
func (app *App) Start() error {
	if err := app.InitServer(); err != nil {
		return err
	}

	if app.Config.MetricsPort != "" {
		go func() {
			metrics := echo.New()
			metrics.HideBanner = true
			metrics.GET("/metrics", echoprometheus.NewHandler())
			if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Failed to start metrics server")
			}
		}()
	}

	consumerCtx, cancel := context.WithCancel(log.Logger.WithContext(context.Background()))
	app.stopConsumer = cancel
	go app.Service.ConsumeEvent(consumerCtx)

	if err := app.startScheduler(); err != nil {
		return err
	}

	err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// InitServer builds the echo server and registers every route without
// listening.
func (app *App) InitServer() error {
	traceProvider, err := tracing.InitTracing(context.Background(), app.Config.TracingConfig.CollectorHost)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.tracerProvider = traceProvider

	tracer := traceProvider.Tracer(tracing.ServiceName)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	g := e.Group("/api/v1")
	g.Use(appmiddleware.Logger)

	IsLoggedIn := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(app.Config.JWTSecret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Status:  "error",
				Message: "Invalid or expired JWT",
			})
		},
	})

	controller.CreateProductController(g, app.Service, IsLoggedIn)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	app.Server = e

	return nil
}

func (app *App) startScheduler() error {
	interval := app.Config.SchedulerConfig.FeaturedCacheRefreshInterval
	if interval <= 0 {
		return nil
	}

	ctx := log.Logger.WithContext(context.Background())
	s, err := scheduler.CreateIntervalScheduler(interval, "featured-products-cache-refresh", func() {
		sideEffect := app.Service.RefreshFeaturedProductsCache(ctx)
		if sideEffect.Failed() {
			log.Error().Err(sideEffect.Err).Str("component", "FeaturedCacheScheduler").Msg("")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	s.Start()
	app.scheduler = s

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.stopConsumer != nil {
		app.stopConsumer()
	}

	if app.scheduler != nil {
		if err := app.scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown scheduler")
		}
	}

	if app.tracerProvider != nil {
		if err := app.tracerProvider.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}

	if app.Server == nil {
		return nil
	}

	return app.Server.Shutdown(ctx)
}

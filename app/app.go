package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	pprof_gin "github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"

	"github.com/resumecraft/backend/config"
	"github.com/resumecraft/backend/controllers"
	"github.com/resumecraft/backend/middleware"
	"github.com/resumecraft/backend/models"
	"github.com/resumecraft/backend/version"
)

// App is the resumecraft backend: configuration, the gin router and the
// HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	router *gin.Engine

	httpServer *http.Server
}

func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// setup initializes the application components
func (app *App) setup() error {
	if app.cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              app.cfg.Sentry.DSN,
			EnableTracing:    true,
			TracesSampleRate: 0.1,
			Release:          "api@" + version.Version,
		}); err != nil {
			slog.Warn("Sentry initialization failed", "error", err)
		}
	}

	if err := models.ConnectDatabase(app.cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.router = app.createRouter()
	return nil
}

// createRouter sets up middleware and routes for the application
func (app *App) createRouter() *gin.Engine {
	if app.cfg.Log.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(sloggin.New(slog.Default().WithGroup("http")))
	r.Use(middleware.CORSMiddleware())

	if app.cfg.Server.PprofDebugEnabled {
		pprof_gin.Register(r)
	}

	if app.cfg.Sentry.Enabled {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	app.setupRoutes(r)
	return r
}

func (app *App) setupRoutes(r *gin.Engine) {
	// Anonymous, no credential required.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":     version.Version,
			"commit_sha":  version.Meta,
			"build_date":  app.cfg.BuildDate,
			"deployed_at": app.cfg.DeployedAt,
		})
	})

	// Everything below requires an authenticated principal. Credential and
	// identity-store failures are handled entirely by the middleware;
	// handlers never run without a principal.
	api := r.Group("/api")
	api.Use(middleware.GetApiMiddleware(app.cfg.Auth))

	api.GET("/me", controllers.Me)

	api.GET("/resumes", controllers.ListResumes)
	api.POST("/resumes", controllers.CreateResume)
	api.GET("/resumes/:id", controllers.GetResume)
	api.PUT("/resumes/:id", controllers.UpdateResume)
	api.DELETE("/resumes/:id", controllers.DeleteResume)

	api.GET("/resumes/:id/work_experiences", controllers.ListWorkExperiences)
	api.POST("/resumes/:id/work_experiences", controllers.CreateWorkExperience)
	api.PUT("/work_experiences/:id", controllers.UpdateWorkExperience)
	api.DELETE("/work_experiences/:id", controllers.DeleteWorkExperience)

	api.GET("/resumes/:id/educations", controllers.ListEducations)
	api.POST("/resumes/:id/educations", controllers.CreateEducation)
	api.PUT("/educations/:id", controllers.UpdateEducation)
	api.DELETE("/educations/:id", controllers.DeleteEducation)
}

// Serve starts the application server and blocks until shutdown.
func (app *App) Serve() error {
	if err := app.setup(); err != nil {
		return fmt.Errorf("failed to set up application: %w", err)
	}

	slog.Info("Starting resumecraft backend API",
		"version", version.Version,
		"commit", version.Meta,
		"port", app.cfg.Server.Port)

	g := new(errgroup.Group)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenAddr := ":" + cast.ToString(app.cfg.Server.Port)
	app.httpServer = &http.Server{
		Addr:         listenAddr,
		Handler:      app.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g.Go(func() error {
		slog.Info("Server starting", "address", listenAddr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

		select {
		case sig := <-signalCh:
			slog.Info("Received signal", "signal", sig)
			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			slog.Info("Shutting down HTTP server...")
			if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("HTTP server shutdown error", "error", err)
			}
			return nil
		case <-ctx.Done():
			return nil
		}
	})

	return g.Wait()
}

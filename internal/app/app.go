// Package app wires configuration, clients, caches and the HTTP engine into
// runnable binaries. The CLI and the server share the same dependency graph;
// only the outermost surface differs.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/config"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/geocode"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/handler"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/middleware"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/routing"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/service"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/weather"
)

// DBError represents a cache-database error during startup.
type DBError struct {
	Op  string
	Err error
}

func (e *DBError) Error() string {
	return fmt.Sprintf("db error during %q: %v", e.Op, e.Err)
}

func (e *DBError) Unwrap() error { return e.Err }

// Dependencies is the wired dependency graph shared by the CLI and the
// server.
type Dependencies struct {
	Geocoder geocode.Geocoder
	Router   routing.Router
	Planner  *service.Planner

	pool *pgxpool.Pool // nil unless a shared route cache is configured
}

// Build constructs the API clients, picks the route cache backend and wires
// the planner. Call Close when done.
func Build(cfg *config.Config) (*Dependencies, error) {
	d := &Dependencies{}

	// --- Geocoding ---
	geocodeOpts := []geocode.Option{geocode.WithHTTPTimeout(cfg.HTTPTimeout)}
	if cfg.GeocodeURL != "" {
		geocodeOpts = append(geocodeOpts, geocode.WithBaseURL(cfg.GeocodeURL))
	}
	d.Geocoder = geocode.NewCached(geocode.NewClient(cfg.GraphHopperAPIKey, geocodeOpts...))

	// --- Routing ---
	routeOpts := []routing.Option{
		routing.WithLocale(cfg.Locale),
		routing.WithHTTPTimeout(cfg.HTTPTimeout),
	}
	if cfg.RouteURL != "" {
		routeOpts = append(routeOpts, routing.WithBaseURL(cfg.RouteURL))
	}
	routeClient := routing.NewClient(cfg.GraphHopperAPIKey, routeOpts...)

	// Route cache: shared Postgres table when a DSN is configured, otherwise
	// in-process memory.
	var cacheStore routing.CacheStore
	if cfg.RouteCacheDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.RouteCacheDSN)
		if err != nil {
			return nil, &DBError{Op: "connect", Err: err}
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, &DBError{Op: "ping", Err: err}
		}
		store, err := routing.NewPgCacheStore(ctx, pool)
		if err != nil {
			return nil, &DBError{Op: "ensure_schema", Err: err}
		}
		d.pool = pool
		cacheStore = store
		log.Println("route cache: postgres")
	} else {
		cacheStore = routing.NewMemCacheStore()
	}
	d.Router = routing.NewCached(routeClient, cacheStore, routing.WithCacheLogger(log.Printf))

	// --- Weather (optional) ---
	var weatherProvider weather.Provider
	if cfg.WeatherEnabled() {
		weatherOpts := []weather.Option{
			weather.WithLogger(log.Printf),
			weather.WithHTTPTimeout(cfg.HTTPTimeout),
		}
		if cfg.WeatherURL != "" {
			weatherOpts = append(weatherOpts, weather.WithBaseURL(cfg.WeatherURL))
		}
		weatherProvider = weather.NewClient(cfg.OpenWeatherAPIKey, weatherOpts...)
	}

	d.Planner = service.NewPlanner(d.Geocoder, d.Router, weatherProvider)
	return d, nil
}

// Close releases the database pool when one was opened.
func (d *Dependencies) Close() {
	if d.pool != nil {
		d.pool.Close()
		log.Println("route cache pool closed")
	}
}

// App holds the server-level dependencies.
type App struct {
	Deps   *Dependencies
	Router *gin.Engine
	cfg    *config.Config
}

// New builds the dependency graph and configures the HTTP engine with
// routes.
func New(cfg *config.Config) (*App, error) {
	deps, err := Build(cfg)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Timeout(30 * time.Second))

	// Health check.
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := handler.New(deps.Geocoder, deps.Router, deps.Planner)

	api := engine.Group("/api/v1")
	{
		api.GET("/geocode", h.Geocode)
		api.GET("/route", h.GetRoute)
		api.GET("/plan", h.PlanTrip)
	}

	return &App{
		Deps:   deps,
		Router: engine,
		cfg:    cfg,
	}, nil
}

// Shutdown releases application resources.
func (a *App) Shutdown() {
	a.Deps.Close()
}

package routes

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	controller "golang-exercisetracker/controllers"
	"golang-exercisetracker/database"
	"golang-exercisetracker/middleware"
	"golang-exercisetracker/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Store database.Store
	// Archiver is optional.
	Archiver       controller.LogArchiver
	Logger         *slog.Logger
	RequestTimeout time.Duration

	CORSAllowedOrigins []string
	// RateLimitPerMinute limits POSTs under /api per client IP; 0 disables it.
	RateLimitPerMinute int
	RateLimitBurst     int
	// TrustedProxies may set X-Forwarded-For; nil trusts no one.
	TrustedProxies []string
}

func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}

	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		opts.Logger.Warn("ignoring invalid trusted proxies", "error", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLog(opts.Logger))
	router.Use(middleware.Metrics())
	if len(opts.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(opts.CORSAllowedOrigins)))
	}

	router.GET("/", index)
	router.StaticFS("/public", web.Public())
	router.GET("/healthz", controller.Health(opts.Store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var write []gin.HandlerFunc
	if opts.RateLimitPerMinute > 0 {
		write = append(write, middleware.PerMinute(opts.RateLimitPerMinute, opts.RateLimitBurst).Middleware())
	}

	userController := controller.NewUserController(opts.Store, opts.RequestTimeout)
	exerciseController := controller.NewExerciseController(opts.Store, opts.Store, opts.Archiver, opts.RequestTimeout)

	api := router.Group("/api")
	{
		UserRoutes(api, userController, write...)
		ExerciseRoutes(api, exerciseController, write...)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func index(c *gin.Context) {
	page, err := web.Index()
	if err != nil {
		c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

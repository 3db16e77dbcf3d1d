package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/peoplecore/employee-api/docs"
	"github.com/peoplecore/employee-api/internal/api/handler"
	"github.com/peoplecore/employee-api/internal/api/middleware"
	"github.com/peoplecore/employee-api/internal/core/service"
	mongodb "github.com/peoplecore/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/peoplecore/employee-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, rateLimitRPM int64, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("employee_api"))

	// --- Dependencies ---
	repo := mongodb.NewEmployeeRepository(db)
	employeeService := service.NewEmployeeService(repo, log)
	employees := handler.NewEmployeeHandler(employeeService)

	// --- Employee routes (rate limited per client IP) ---
	limiter := redisdb.NewLimiter(rdb, time.Minute)
	g := e.Group("/api/employees", middleware.RateLimit(limiter, rateLimitRPM, log))
	g.POST("", employees.Create)
	g.GET("", employees.List)
	// A trailing slash is an id request with an empty id; it fails the UUID
	// check with 400 rather than silently listing.
	g.GET("/", employees.Get)
	g.GET("/:id", employees.Get)
	g.PUT("/:id", employees.Update)
	g.PATCH("/:id", employees.Patch)
	g.DELETE("/:id", employees.Delete)

	// --- Health probes, metrics, API docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api/docs/*", echoSwagger.WrapHandler)

	return e
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/recipe-api/docs"
	"github.com/sbilibin2017/recipe-api/internal/db"
	"github.com/sbilibin2017/recipe-api/internal/events"
	"github.com/sbilibin2017/recipe-api/internal/handlers"
	"github.com/sbilibin2017/recipe-api/internal/health"
	"github.com/sbilibin2017/recipe-api/internal/jwt"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/services"
	"github.com/sbilibin2017/recipe-api/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title recipe-api API
// @version 1.0.0
// @description Multi-user recipe service with tags, ingredients and images
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

type config struct {
	AppHost     string
	AppPort     string
	LogLevel    string
	MediaRoot   string
	MediaURL    string
	CORSOrigins []string

	DB db.Config

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers []string
	KafkaTopic   string

	GRPCHealthPort string

	JWTSecret string
	JWTExp    time.Duration
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, gRPC, logging, and JWT configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var n int
		if n, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return n
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.MediaRoot = getEnv("APP_MEDIA_ROOT", "media")
	cfg.MediaURL = getEnv("APP_MEDIA_URL", "/media/")
	cfg.CORSOrigins = splitList(getEnv("APP_CORS_ORIGINS", "*"))

	// PostgreSQL config
	cfg.DB = db.Config{
		Host:         getEnv("POSTGRES_HOST", "localhost"),
		Port:         getEnv("POSTGRES_PORT", "5432"),
		User:         getEnv("POSTGRES_USER", "user"),
		Password:     getEnv("POSTGRES_PASSWORD", "password"),
		Name:         getEnv("POSTGRES_DB", "database"),
		MaxOpenConns: getInt("POSTGRES_MAX_OPEN_CONNS", "16"),
		MaxIdleConns: getInt("POSTGRES_MAX_IDLE_CONNS", "8"),
		WaitAttempts: getInt("POSTGRES_WAIT_ATTEMPTS", "30"),
		WaitInterval: time.Duration(getInt("POSTGRES_WAIT_INTERVAL_MS", "1000")) * time.Millisecond,
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getInt("REDIS_PORT", "6379")
	cfg.RedisDB = getInt("REDIS_DB", "0")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisPoolSize = getInt("REDIS_POOL_SIZE", "10")
	cfg.RedisMinIdleConns = getInt("REDIS_MIN_IDLE_CONNS", "2")

	// Kafka config
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "recipe-events")

	// gRPC config
	cfg.GRPCHealthPort = getEnv("GRPC_HEALTH_PORT", "50051")

	// JWT config
	cfg.JWTSecret = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	cfg.JWTExp = time.Duration(getInt("JWT_EXP_SECOND", "86400")) * time.Second

	return cfg, err
}

// splitList splits a comma separated value, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// app holds the services the HTTP router is built from.
type app struct {
	cfg         config
	db          *sqlx.DB
	jwt         *jwt.JWT
	auth        *services.AuthService
	users       *services.UserService
	recipes     *services.RecipeService
	images      *services.ImageService
	tags        *services.LabelService
	ingredients *services.LabelService
	media       *storage.Storage
}

// recipeImageRepository reads recipes and stores their image keys.
type recipeImageRepository struct {
	*repositories.RecipeReadRepository
	*repositories.RecipeWriteRepository
}

// newApp wires repositories and services on top of the open connections.
func newApp(cfg config, sqlxDB *sqlx.DB, rdb *redis.Client, media *storage.Storage, publisher services.EventPublisher) *app {
	txGetter := repositories.TxGetter(middlewares.GetTxFromContext)

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecret), jwt.WithExpiration(cfg.JWTExp))

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(sqlxDB, txGetter)
	userWriteRepo := repositories.NewUserWriteRepository(sqlxDB, txGetter)
	tokenRepo := repositories.NewTokenRepository(rdb)
	tagRepo := repositories.NewTagRepository(sqlxDB, txGetter)
	ingredientRepo := repositories.NewIngredientRepository(sqlxDB, txGetter)
	recipeReadRepo := repositories.NewRecipeReadRepository(sqlxDB, txGetter)
	recipeWriteRepo := repositories.NewRecipeWriteRepository(sqlxDB, txGetter)

	// Side effects run only once the request transaction has committed
	opts := []services.Option{
		services.WithCommitHook(middlewares.OnCommit),
		services.WithEventPublisher(publisher),
	}

	// Initialize services
	return &app{
		cfg:   cfg,
		db:    sqlxDB,
		jwt:   tokens,
		auth:  services.NewAuthService(userReadRepo, userWriteRepo, tokens, tokenRepo),
		users: services.NewUserService(userReadRepo, userWriteRepo, userReadRepo),
		recipes: services.NewRecipeService(
			recipeReadRepo, recipeWriteRepo,
			tagRepo, ingredientRepo,
			services.NewReconciler(tagRepo, ingredientRepo),
			media, opts...,
		),
		images:      services.NewImageService(recipeImageRepository{recipeReadRepo, recipeWriteRepo}, media, opts...),
		tags:        services.NewLabelService(models.LabelTag, tagRepo),
		ingredients: services.NewLabelService(models.LabelIngredient, ingredientRepo),
		media:       media,
	}
}

// newRouter builds the HTTP routes. The API lives under /api/v1, uploaded
// images under the media URL and the OpenAPI UI under /swagger/.
func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.CORSMiddleware(a.cfg.CORSOrigins))
	r.NotFound(handlers.NewNotFoundHandler())
	r.MethodNotAllowed(handlers.NewMethodNotAllowedHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewares.TxMiddleware(a.db))

		// Public routes
		r.Post("/users/create", handlers.NewCreateUserHandler(a.auth))
		r.Post("/users/token", handlers.NewCreateTokenHandler(a.auth))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(a.jwt, a.auth))

			r.Delete("/users/token", handlers.NewRevokeTokenHandler(a.auth))
			r.Get("/users/me", handlers.NewGetMeHandler())
			r.Put("/users/me", handlers.NewUpdateMeHandler(a.users, false))
			r.Patch("/users/me", handlers.NewUpdateMeHandler(a.users, true))
			r.Get("/admin/users", handlers.NewListUsersHandler(a.users))

			r.Get("/recipes", handlers.NewListRecipesHandler(a.recipes))
			r.Post("/recipes", handlers.NewCreateRecipeHandler(a.recipes))
			r.Get("/recipes/{id}", handlers.NewGetRecipeHandler(a.recipes))
			r.Put("/recipes/{id}", handlers.NewUpdateRecipeHandler(a.recipes, false))
			r.Patch("/recipes/{id}", handlers.NewUpdateRecipeHandler(a.recipes, true))
			r.Delete("/recipes/{id}", handlers.NewDeleteRecipeHandler(a.recipes))
			r.Post("/recipes/{id}/upload-image", handlers.NewUploadRecipeImageHandler(a.images))

			mountLabelRoutes(r, "/tags", a.tags)
			mountLabelRoutes(r, "/ingredients", a.ingredients)
		})
	})

	if a.media != nil {
		prefix := "/" + strings.Trim(a.cfg.MediaURL, "/") + "/"
		r.Get(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(a.media.Root()))).ServeHTTP)
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", a.cfg.AppHost, a.cfg.AppPort)),
	))

	return r
}

func mountLabelRoutes(r chi.Router, path string, svc *services.LabelService) {
	r.Get(path, handlers.NewListLabelsHandler(svc))
	r.Post(path, handlers.NewCreateLabelHandler(svc))
	r.Put(path+"/{id}", handlers.NewUpdateLabelHandler(svc, false))
	r.Patch(path+"/{id}", handlers.NewUpdateLabelHandler(svc, true))
	r.Delete(path+"/{id}", handlers.NewDeleteLabelHandler(svc))
}

// run initializes the logger, database, Redis, Kafka, the gRPC health server
// and the HTTP server. It handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// gRPC health reports NOT_SERVING until the database is ready
	healthSrv := health.New()
	grpcLis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.AppHost, cfg.GRPCHealthPort))
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC health: %w", err)
	}
	go func() {
		log.Infof("gRPC health server listening on %s", grpcLis.Addr())
		if err := healthSrv.Serve(grpcLis); err != nil {
			log.Errorw("gRPC health server failed", "error", err)
		}
	}()
	defer healthSrv.Stop()

	// Connect to PostgreSQL
	log.Infow("Connecting to PostgreSQL", "host", cfg.DB.Host, "port", cfg.DB.Port, "db", cfg.DB.Name)
	sqlxDB, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer sqlxDB.Close()

	if err := db.Migrate(ctx, sqlxDB); err != nil {
		return err
	}
	healthSrv.SetServing(true)
	go healthSrv.Watch(ctx, sqlxDB, 10*time.Second)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka publishing is disabled without brokers
	var writer events.KafkaWriter
	if w := events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic); w != nil {
		writer = w
		log.Infow("Publishing recipe events to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	publisher := events.NewKafkaPublisher(writer)
	defer publisher.Close()

	media, err := storage.New(cfg.MediaRoot, cfg.MediaURL)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: newRouter(newApp(cfg, sqlxDB, rdb, media, publisher)),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}

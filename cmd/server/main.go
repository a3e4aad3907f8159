package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pingup/backend/internal/config"
	"pingup/backend/internal/database"
	"pingup/backend/internal/feed"
	"pingup/backend/internal/handler"
	"pingup/backend/internal/hub"
	"pingup/backend/internal/jobs"
	"pingup/backend/internal/logging"
	"pingup/backend/internal/media"
	"pingup/backend/internal/messaging"
	"pingup/backend/internal/notify"
	"pingup/backend/internal/relationship"
	"pingup/backend/internal/relay"
	"pingup/backend/internal/store"
	"pingup/backend/internal/users"
	"pingup/backend/internal/visibility"
	"pingup/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	// Swagger imports
	_ "pingup/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	storySweepInterval = 10 * time.Minute
	shutdownTimeout    = 15 * time.Second
)

// @title           PingUp API
// @version         1.0
// @description     Relationships, direct messages, live delivery and feeds for the PingUp social network.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.IsProd())

	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(cfg, os.Args[2:]); err != nil {
			logger.WithError(err).Fatal("Could not issue token")
		}
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}

// issueToken prints a signed token for a user id, for local testing
// against the API without the identity provider.
func issueToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	ttl := fs.Duration("ttl", jwt.DefaultTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: server token [-ttl 24h] <user-id>")
	}
	if cfg.IsProd() {
		return errors.New("token issuing is disabled in prod")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	token, err := jwt.GenerateToken([]byte(cfg.JWTSecret), fs.Arg(0), *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	st := store.New(db, cfg.StoreTimeout)

	summaries := users.NewResolver(st, cfg.SummaryCacheTTL, logging.Component(logger, "users"))
	defer summaries.Close()

	live := hub.New(logging.Component(logger, "hub"))
	worker := jobs.NewWorker(cfg.JobWorkers, logging.Component(logger, "jobs"))

	var (
		pusher    messaging.Pusher = live
		queue     jobs.Queue
		stopQueue = func() {}
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}

		r := relay.New(live, rdb, logging.Component(logger, "relay"))
		go func() {
			if err := r.Run(ctx); err != nil && ctx.Err() == nil {
				logger.WithError(err).Error("Live relay stopped")
			}
		}()
		pusher = r

		rq := jobs.NewRedisQueue(rdb, worker, logging.Component(logger, "jobs"))
		go rq.Run(ctx)
		queue = rq
		logger.Info("Using Redis for jobs and live relay.")
	} else {
		mq := jobs.NewMemoryQueue(worker)
		queue = mq
		stopQueue = mq.Stop
		logger.Info("REDIS_URL not set, using the in-process job queue.")
	}

	userService := &users.Service{Users: st, Summaries: summaries, Logger: logging.Component(logger, "users")}
	userService.RegisterJobs(worker)

	engine := &relationship.Engine{
		Store:             st,
		Jobs:              queue,
		Summaries:         summaries,
		Logger:            logging.Component(logger, "relationship"),
		DailyRequestLimit: cfg.ConnectionRequestDailyLimit,
	}

	messages := &messaging.Service{
		Messages:  st,
		Live:      pusher,
		Summaries: summaries,
		Logger:    logging.Component(logger, "messaging"),
	}

	feedService := &feed.Service{
		Content:    st,
		Visibility: &visibility.Resolver{Store: st},
		Summaries:  summaries,
		Logger:     logging.Component(logger, "feed"),
	}
	feedService.RegisterJobs(worker)
	go feedService.RunSweeper(ctx, storySweepInterval)

	notifier := &notify.Service{
		Tokens:    st,
		Live:      pusher,
		Summaries: summaries,
		Logger:    logging.Component(logger, "notify"),
	}
	if cfg.PushEnabled() {
		sender, err := notify.NewFCMSender(ctx, cfg.FCMProjectID, cfg.FCMCredentialsFile)
		if err != nil {
			return err
		}
		notifier.Sender = sender
	}
	notifier.RegisterJobs(worker)

	h := &handler.Handler{
		Users:          userService,
		Relationships:  engine,
		Messages:       messages,
		Feed:           feedService,
		Notify:         notifier,
		Live:           live,
		Jobs:           queue,
		Logger:         logging.Component(logger, "http"),
		JWTSecret:      []byte(cfg.JWTSecret),
		WebhookSecret:  cfg.WebhookSecret,
		LiveBufferSize: cfg.LiveBufferSize,
		Heartbeat:      cfg.LiveHeartbeat,
	}
	if cfg.MediaEnabled() {
		mediaStore, err := media.New(ctx, media.Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.MediaPublicURL,
		})
		if err != nil {
			return err
		}
		h.Media = mediaStore
	}

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware(logging.Component(logger, "http")))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	h.Register(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Infof("Server is running on %s", srv.Addr)
		logger.Infof("Swagger UI is available at http://localhost:%s/swagger/index.html", cfg.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down.")
	// Live streams only end once their channel is closed.
	live.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HTTP shutdown incomplete")
	}
	stopQueue()
	worker.Stop()
	return nil
}

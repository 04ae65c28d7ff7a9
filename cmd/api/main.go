package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/perfectlysalon/admin-api/internal/clock"
	"github.com/perfectlysalon/admin-api/internal/config"
	dbpkg "github.com/perfectlysalon/admin-api/internal/db"
	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/mailer"
	"github.com/perfectlysalon/admin-api/internal/middleware"
	"github.com/perfectlysalon/admin-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, realtime events will be dropped", "addr", cfg.RedisAddr, "err", err)
	}

	bus := events.NewBus(rdb, logger)
	sender := mailer.New(cfg)
	clk := clock.System()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sweeper := routes.RegisterRoutes(r, db, cfg, bus, sender, clk, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx)

	logger.Info("server running", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	intconfig "helishuttle/internal/config"
	"helishuttle/internal/db"
	router "helishuttle/internal/http"
	"helishuttle/internal/http/handlers"
	"helishuttle/internal/repositories"
	"helishuttle/internal/services"
	"helishuttle/internal/utils"
)

func main() {
	env := intconfig.LoadEnv()

	logger, err := utils.InitLogger(env.IsProduction())
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	switch {
	case env.GinMode != "":
		gin.SetMode(env.GinMode)
	case env.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := intconfig.ConnectDB(env)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer intconfig.CloseDB()

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureSchema(bootCtx, conn); err != nil {
		cancel()
		logger.Fatal("schema migration failed", zap.Error(err))
	}

	hd := &handlers.Handler{
		Slots:     repositories.SlotRepository{DB: conn},
		Bookings:  repositories.CustomerBookingRepository{DB: conn},
		Admins:    repositories.AdminRepository{DB: conn},
		DenyList:  denyList(bootCtx, env, logger),
		Uploader:  uploader(env, logger),
		JWTSecret: []byte(env.JWTSecret),
		Pinger:    intconfig.PingDB,
		Payments: services.PaymentConfig{
			UPIID:          env.UPIID,
			PayeeName:      env.UPIPayeeName,
			WhatsAppNumber: env.WhatsAppNumber,
			BankAccountNo:  env.BankAccountNo,
			BankIFSC:       env.BankIFSC,
			BankName:       env.BankName,
		},
	}
	if err := hd.AuthService(nil).EnsureSeedAdmin(bootCtx, env.AdminEmail, env.AdminPassword); err != nil {
		cancel()
		logger.Fatal("seeding admin failed", zap.Error(err))
	}
	cancel()

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router.NewRouter(env, hd),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

// denyList uses Redis when REDIS_ADDR is set and reachable.
func denyList(ctx context.Context, env intconfig.Env, logger *zap.Logger) services.TokenDenyList {
	if env.RedisAddr == "" {
		return services.NewMemoryDenyList()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory token deny list", zap.Error(err))
		_ = client.Close()
		return services.NewMemoryDenyList()
	}
	return services.RedisDenyList{Client: client}
}

func uploader(env intconfig.Env, logger *zap.Logger) services.ImageUploader {
	if env.CloudinaryCloudName == "" {
		logger.Warn("cloudinary not configured, identity card uploads disabled")
		return nil
	}
	up, err := services.NewCloudinaryUploader(env.CloudinaryCloudName, env.CloudinaryAPIKey, env.CloudinaryAPISecret)
	if err != nil {
		logger.Warn("cloudinary init failed, identity card uploads disabled", zap.Error(err))
		return nil
	}
	return up
}

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
	"google.golang.org/grpc"

	"github.com/ilya-burinskiy/webapis/internal/app/cache"
	"github.com/ilya-burinskiy/webapis/internal/app/configs"
	"github.com/ilya-burinskiy/webapis/internal/app/handlers"
	pb "github.com/ilya-burinskiy/webapis/internal/app/handlers/grpc"
	"github.com/ilya-burinskiy/webapis/internal/app/logger"
	"github.com/ilya-burinskiy/webapis/internal/app/middlewares"
	"github.com/ilya-burinskiy/webapis/internal/app/services"
	"github.com/ilya-burinskiy/webapis/internal/app/storage"
)

var (
	buildVersion string = "N/A"
	buildDate    string = "N/A"
	buildCommit  string = "N/A"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := configs.Parse()
	if err != nil {
		panic(err)
	}
	if err := logger.Initialize(config.LogLevel); err != nil {
		panic(err)
	}
	showBuildInfo()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	store, dumperDone := configureStorage(ctx, config)
	shortURLCache := configureCache(ctx, config)
	rateLimiter := middlewares.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)
	go rateLimiter.Cleanup(ctx, time.Minute)

	router := handlers.NewRouter(config, store, handlers.Services{
		TimestampResolver: services.NewTimestampResolver(nil),
		URLShortener:      services.NewURLShortener(store, shortURLCache),
		ExerciseTracker:   services.NewExerciseTracker(store, nil),
		IPChecker:         services.NewIPChecker(config.TrustedSubnet),
		RateLimiter:       rateLimiter,
	})

	healthServer := pb.NewHealthServer(store, config.HealthProbeInterval)
	go healthServer.Run(ctx)

	grpcServer, grpcErr := startGRPCServer(config, healthServer)
	httpServer, httpErr := startHTTPServer(config, router)

	select {
	case <-ctx.Done():
		logger.Log.Info("shutting down")
	case err := <-httpErr:
		logger.Log.Error("HTTP server failed", zap.Error(err))
	case err := <-grpcErr:
		logger.Log.Error("gRPC server failed", zap.Error(err))
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Info("failed to shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()

	if dumperDone != nil {
		<-dumperDone
	}
	if err := shortURLCache.Close(); err != nil {
		logger.Log.Info("failed to close cache", zap.Error(err))
	}
	store.Close()
}

func startHTTPServer(config configs.Config, handler http.Handler) (*http.Server, <-chan error) {
	server := &http.Server{
		Handler:           handler,
		Addr:              config.ServerAddress,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		var serveErr error
		if config.UseHTTPS() {
			manager := &autocert.Manager{
				Prompt: autocert.AcceptTOS,
				Cache:  autocert.DirCache("certs"),
			}
			if config.TLSHost != "" {
				manager.HostPolicy = autocert.HostWhitelist(config.TLSHost)
			}
			server.TLSConfig = manager.TLSConfig()
			serveErr = server.ListenAndServeTLS("", "")
		} else {
			serveErr = server.ListenAndServe()
		}

		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	return server, errCh
}

func startGRPCServer(config configs.Config, healthServer *pb.HealthServer) (*grpc.Server, <-chan error) {
	var ipChecker services.IPChecker
	if config.TrustedSubnet != "" {
		ipChecker = services.NewIPChecker(config.TrustedSubnet)
	}
	srv := pb.NewServer(healthServer, ipChecker)

	errCh := make(chan error, 1)
	listen, err := net.Listen("tcp", config.GRPCServerAddress)
	if err != nil {
		errCh <- err
		return srv, errCh
	}

	go func() {
		if err := srv.Serve(listen); err != nil {
			errCh <- err
		}
	}()

	return srv, errCh
}

// configureStorage returns the storage and, for file backed storage, a channel
// closed after the final dump
func configureStorage(ctx context.Context, config configs.Config) (storage.Storage, <-chan struct{}) {
	if config.UseDBStorage() {
		store, err := storage.NewDBStorage(config.DatabaseDSN)
		if err != nil {
			panic(err)
		}
		return store, nil
	}

	if config.UseFileStorage() {
		fs := storage.NewFileStorage(config.FileStoragePath)
		snapshot, err := fs.Snapshot()
		if err != nil {
			panic(err)
		}
		store := storage.NewMapStorage(fs)
		store.Restore(snapshot)
		dumper := services.NewStorageDumper(store, config.DumpInterval)
		return store, dumper.Start(ctx)
	}

	return storage.NewMapStorage(nil), nil
}

func configureCache(ctx context.Context, config configs.Config) cache.Cache {
	if !config.UseRedisCache() {
		return cache.NopCache{}
	}

	redisCache, err := cache.NewRedisCache(ctx, config.RedisURL, config.CacheTTL)
	if err != nil {
		logger.Log.Warn("redis is unavailable, caching disabled", zap.Error(err))
		return cache.NopCache{}
	}

	return redisCache
}

func showBuildInfo() {
	logger.Log.Info("build info", zap.String("build version", buildVersion))
	logger.Log.Info("build info", zap.String("build date", buildDate))
	logger.Log.Info("build info", zap.String("build commit", buildCommit))
}

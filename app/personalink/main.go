package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/superj80820/personalink/config"
	"github.com/superj80820/personalink/domain"
	httpKit "github.com/superj80820/personalink/kit/http"
	httpMiddlewareKit "github.com/superj80820/personalink/kit/http/middleware"
	loggerKit "github.com/superj80820/personalink/kit/logger"
	ormKit "github.com/superj80820/personalink/kit/orm"
	redisKit "github.com/superj80820/personalink/kit/redis"
	traceKit "github.com/superj80820/personalink/kit/trace"
	deliveryHTTP "github.com/superj80820/personalink/link/delivery/http"
	"github.com/superj80820/personalink/link/repository/cache"
	"github.com/superj80820/personalink/link/repository/memory"
	ormRepo "github.com/superj80820/personalink/link/repository/orm"
	redisRepo "github.com/superj80820/personalink/link/repository/redis"
	s3Repo "github.com/superj80820/personalink/link/repository/s3"
	"github.com/superj80820/personalink/link/usecase"
	"go.opentelemetry.io/otel/trace"
)

const (
	SYSTEM_NAME  = "system"
	SERVICE_NAME = "personalink"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logLevel := loggerKit.InfoLevel
	if cfg.IsDevelopment() {
		logLevel = loggerKit.DebugLevel
	}
	logger, err := loggerKit.NewLogger(cfg.LogPath, logLevel, loggerKit.WithRotateLog(100, 3, 28))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var tracer trace.Tracer
	if cfg.EnableTracer {
		var shutdown traceKit.ShutdownFunc
		tracer, shutdown, err = traceKit.CreateTracer(ctx, SERVICE_NAME)
		if err != nil {
			panic(err)
		}
		defer shutdown(context.Background())
	} else {
		tracer = traceKit.CreateNoOpTracer()
	}

	linkRepo, pingLinkRepo, closeLinkRepo, err := createLinkRepo(cfg.Store)
	if err != nil {
		panic(err)
	}
	defer closeLinkRepo()

	s3Client, err := s3Repo.CreateS3Client(ctx, cfg.Blob.Region, cfg.Blob.Endpoint, cfg.Blob.AccessKeyID, cfg.Blob.SecretAccessKey, cfg.Blob.UsePathStyle)
	if err != nil {
		panic(err)
	}
	blobOptions := []s3Repo.Option{
		s3Repo.WithFolder(cfg.Blob.Folder),
		s3Repo.WithAllowedFormats(cfg.Blob.AllowedFormats...),
		s3Repo.WithEndpoint(cfg.Blob.Endpoint, cfg.Blob.UsePathStyle),
	}
	if cfg.Blob.PublicBaseURL != "" {
		blobOptions = append(blobOptions, s3Repo.WithPublicBaseURL(cfg.Blob.PublicBaseURL))
	}
	blobRepo, err := s3Repo.CreateBlobRepo(s3Client, cfg.Blob.Bucket, cfg.Blob.Region, blobOptions...)
	if err != nil {
		panic(err)
	}

	linkService, err := usecase.CreateLinkUseCase(linkRepo, blobRepo, cache.CreateLinkCache(cfg.Cache.Size, cfg.Cache.TTL), logger)
	if err != nil {
		panic(err)
	}

	view, err := deliveryHTTP.CreateView()
	if err != nil {
		panic(err)
	}

	middlewares := []endpoint.Middleware{httpMiddlewareKit.CreateLoggingMiddleware(logger)}
	if cfg.EnableMetric {
		middlewares = append(middlewares, httpMiddlewareKit.CreateMetrics(SYSTEM_NAME, SERVICE_NAME))
	}
	customMiddleware := endpoint.Chain(middlewares[0], middlewares[1:]...)

	r := deliveryHTTP.MakeHandler(
		linkService,
		view,
		deliveryHTTP.HealthCheck(pingLinkRepo),
		cfg.MaxUploadBytes,
		customMiddleware,
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(tracer)),
		httptransport.ServerAfter(httpKit.CustomAfterCtx),
	)
	if cfg.EnableMetric {
		r.Handle("/metrics", promhttp.Handler())
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g := new(run.Group)
	{
		g.Add(func() error {
			logger.Info("server listening", loggerKit.String("addr", httpSrv.Addr), loggerKit.String("store-driver", cfg.Store.Driver))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrap(err, "http server failed")
			}
			return nil
		}, func(err error) {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown http server failed", loggerKit.Error(err))
			}
		})
	}
	{
		g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	}
	if err := g.Run(); err != nil {
		var signalErr run.SignalError
		if errors.As(err, &signalErr) {
			logger.Info("server stopped", loggerKit.String("signal", signalErr.Signal.String()))
			return
		}
		logger.Error("server stopped", loggerKit.Error(err))
	}
}

func createLinkRepo(storeConfig config.StoreConfig) (domain.LinkRepo, func(context.Context) error, func() error, error) {
	switch storeConfig.Driver {
	case config.StoreDriverRedis:
		client, err := redisKit.CreateClient(storeConfig.RedisAddr, storeConfig.RedisPassword, storeConfig.RedisDB)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "create redis client failed")
		}
		return redisRepo.CreateLinkRepo(client), client.Ping, client.Close, nil
	case config.StoreDriverMySQL, config.StoreDriverPostgres, config.StoreDriverSQLite:
		var useDB ormKit.Option
		switch storeConfig.Driver {
		case config.StoreDriverMySQL:
			useDB = ormKit.UseMySQL(storeConfig.DSN)
		case config.StoreDriverPostgres:
			useDB = ormKit.UsePostgres(storeConfig.DSN)
		default:
			useDB = ormKit.UseSQLite(storeConfig.DSN)
		}
		db, err := ormKit.CreateDB(useDB)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "create db failed")
		}
		linkRepo, err := ormRepo.CreateLinkRepo(db)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "create orm link repo failed")
		}
		return linkRepo, db.Ping, db.Close, nil
	case config.StoreDriverMemory:
		return memory.CreateLinkRepo(), nil, func() error { return nil }, nil
	default:
		return nil, nil, nil, errors.Errorf("unknown store driver %q", storeConfig.Driver)
	}
}

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"

	"github.com/xtding233/matchup-backend/internal/api"
	"github.com/xtding233/matchup-backend/internal/calc"
	"github.com/xtding233/matchup-backend/internal/config"
	"github.com/xtding233/matchup-backend/internal/constants"
	"github.com/xtding233/matchup-backend/internal/dataset"
	"github.com/xtding233/matchup-backend/internal/logging"
	"github.com/xtding233/matchup-backend/internal/matchup"
	"github.com/xtding233/matchup-backend/internal/rpc"
)

func main() {
	// .env is optional; real environment variables win over it
	for _, path := range []string{".env", "../.env"} {
		if err := godotenv.Load(path); err == nil {
			logging.Info("loaded env file", logging.Fields{constants.LogFieldPath: path})
			break
		}
	}

	cfg, err := config.Load(os.Getenv(constants.EnvConfigPath), os.Getenv)
	if err != nil {
		logging.Fatal("invalid configuration", err, nil)
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.Fatal("invalid log level", err, nil)
	}

	store, err := dataset.NewStore(dataset.NewLoader(cfg.DataDir, cfg.Generations))
	if err != nil {
		logging.Fatal("failed to load trainer sets", err, logging.Fields{constants.LogFieldPath: cfg.DataDir})
	}
	logging.Info("trainer sets loaded", logging.Fields{constants.LogFieldCount: len(store.Index().Generations())})

	if cfg.ReloadInterval > 0 {
		watcher := dataset.NewFileWatcher(store.Files, cfg.ReloadInterval, func(paths []string) {
			if _, err := store.Reload(); err != nil {
				logging.Error("reload failed, keeping previous sets", err, logging.Fields{constants.LogFieldPaths: paths})
				return
			}
			logging.Info("trainer sets reloaded", logging.Fields{constants.LogFieldPaths: paths})
		})
		watcher.Start()
		defer watcher.Stop()
	}

	engine, err := calc.New()
	if err != nil {
		logging.Fatal("failed to load dex", err, nil)
	}
	svc := matchup.NewService(store, engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var grpcServer *grpc.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logging.Fatal("failed to listen for grpc", err, logging.Fields{constants.LogFieldAddr: cfg.GRPCAddr})
		}
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor))
		rpc.Register(grpcServer, rpc.NewServer(svc))
		go func() {
			logging.Info("grpc server started", logging.Fields{constants.LogFieldAddr: cfg.GRPCAddr})
			if err := grpcServer.Serve(lis); err != nil {
				logging.Error("grpc server stopped", err, nil)
			}
		}()
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(api.NewHandler(svc)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.Info("http server started", logging.Fields{constants.LogFieldAddr: cfg.HTTPAddr})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("failed to start http server", err, nil)
		}
	}()

	<-ctx.Done()
	logging.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("http shutdown failed", err, nil)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
}

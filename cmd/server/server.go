package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-tables/internal/config"
	"github.com/KirkDiggler/rpg-tables/internal/dice"
	"github.com/KirkDiggler/rpg-tables/internal/handlers/api/v1alpha1"
	tablesorch "github.com/KirkDiggler/rpg-tables/internal/orchestrators/tables"
	"github.com/KirkDiggler/rpg-tables/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tables/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-tables/internal/redis"
	lookuptable "github.com/KirkDiggler/rpg-tables/internal/repositories/lookup_table"
	rollsession "github.com/KirkDiggler/rpg-tables/internal/repositories/roll_session"
)

var (
	grpcPort  int
	redisAddr string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the rpg-tables gRPC server. Settings come from RPG_TABLES_* environment variables; flags override them.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides RPG_TABLES_PORT)")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address (overrides RPG_TABLES_REDIS_ADDR)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = grpcPort
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.RedisAddr = redisAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	if err := redisclient.Ping(ctx, redisClient, 5*time.Second); err != nil {
		return fmt.Errorf("redis not reachable at %s: %w", cfg.RedisAddr, err)
	}

	seed := cfg.DiceSeed
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			return fmt.Errorf("failed to seed dice: %w", err)
		}
	}

	service, err := newTableService(cfg, redisClient, dice.NewSeededSource(seed), logger)
	if err != nil {
		return err
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{TableService: service})
	if err != nil {
		return fmt.Errorf("failed to create table handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv, healthServer := newGRPCServer(handler, logger)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("gRPC server starting",
			"port", cfg.Port,
			"redis_addr", cfg.RedisAddr,
			"redis_tls", cfg.RedisTLS,
			"dice_seed", seed,
			"table_store", cfg.TableStore,
		)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(30 * time.Second):
			logger.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			logger.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func newRedisClient(cfg *config.Config) (redisclient.Client, error) {
	client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		PoolSize:        10,
		MinIdleConns:    2,
		ConnMaxIdleTime: cfg.RedisIdleTimeout,
		MaxRetries:      3,
		UseTLS:          cfg.RedisTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return client, nil
}

func newTableService(cfg *config.Config, client redisclient.Client, source *dice.SeededSource, logger *slog.Logger) (tablesorch.Service, error) {
	sessionRepo, err := rollsession.NewRedisRepository(&rollsession.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll session repository: %w", err)
	}

	var tableRepo lookuptable.Repository = lookuptable.NewInMemory()
	if cfg.TableStore == config.TableStoreRedis {
		tableRepo, err = lookuptable.NewRedisRepository(&lookuptable.Config{Client: client})
		if err != nil {
			return nil, fmt.Errorf("failed to create lookup table repository: %w", err)
		}
	}

	service, err := tablesorch.NewOrchestrator(&tablesorch.Config{
		RollSessionRepo: sessionRepo,
		TableRepo:       tableRepo,
		IDGenerator:     idgen.NewUUID("roll"),
		Source:          source,
		SessionTTL:      cfg.SessionTTL,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create table orchestrator: %w", err)
	}

	return service, nil
}

// newGRPCServer builds the server with logging and recovery interceptors and
// registers the table, health and reflection services
func newGRPCServer(handler v1alpha1.TableServiceServer, logger *slog.Logger) (*grpc.Server, *health.Server) {
	logOpts := []grpc_logging.Option{
		grpc_logging.WithLogOnEvents(grpc_logging.FinishCall),
	}
	recoveryOpts := []grpc_recovery.Option{
		grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.ErrorContext(ctx, "recovered from panic", "panic", p)
			return status.Error(codes.Internal, "internal error")
		}),
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger), logOpts...),
			grpc_recovery.UnaryServerInterceptor(recoveryOpts...),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger), logOpts...),
			grpc_recovery.StreamServerInterceptor(recoveryOpts...),
		),
	)

	v1alpha1.RegisterTableServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.TableServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv, healthServer
}

// interceptorLogger adapts slog to the middleware's logger
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

package main

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/rpg-tables/internal/config"
	"github.com/KirkDiggler/rpg-tables/internal/dice"
	"github.com/KirkDiggler/rpg-tables/internal/handlers/api/v1alpha1"
	tablesorch "github.com/KirkDiggler/rpg-tables/internal/orchestrators/tables"
	tablesmock "github.com/KirkDiggler/rpg-tables/internal/orchestrators/tables/mock"
	"github.com/KirkDiggler/rpg-tables/internal/testutils"
)

func dialServer(t *testing.T, srv *grpc.Server) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestNewGRPCServer_HealthAndRecovery(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ctrl := gomock.NewController(t)
	mockService := tablesmock.NewMockService(ctrl)
	mockService.EXPECT().
		ListTables(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *tablesorch.ListTablesInput) (*tablesorch.ListTablesOutput, error) {
			panic("boom")
		})

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{TableService: mockService})
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	srv, _ := newGRPCServer(handler, logger)
	conn := dialServer(t, srv)

	healthResp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: v1alpha1.TableServiceName,
	})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, healthResp.Status)

	_, err = v1alpha1.NewTableServiceClient(conn).ListTables(ctx, &v1alpha1.ListTablesRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, logs.String(), "recovered from panic")
	assert.Contains(t, logs.String(), "finished call")
}

func TestNewTableService(t *testing.T) {
	client, _ := testutils.CreateTestRedisClient(t)

	service, err := newTableService(&config.Config{SessionTTL: time.Minute}, client, dice.NewSeededSource(1), slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	out, err := service.RollDice(context.Background(), &tablesorch.RollDiceInput{
		EntityID: "e",
		Context:  "c",
		Notation: "3d6",
	})
	require.NoError(t, err)
	assert.Equal(t, out.Session.CreatedAt.Add(time.Minute), out.Session.ExpiresAt)
}

func TestNewTableService_TableStore(t *testing.T) {
	testCases := []struct {
		name        string
		store       string
		wantInRedis bool
	}{
		{name: "redis", store: config.TableStoreRedis, wantInRedis: true},
		{name: "memory", store: config.TableStoreMemory, wantInRedis: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, mr := testutils.CreateTestRedisClient(t)
			cfg := &config.Config{SessionTTL: time.Minute, TableStore: tc.store}

			service, err := newTableService(cfg, client, dice.NewSeededSource(1), slog.New(slog.DiscardHandler))
			require.NoError(t, err)

			ctx := context.Background()
			_, err = service.SaveTable(ctx, &tablesorch.SaveTableInput{Table: testutils.CreateTestCompositeTable("factions")})
			require.NoError(t, err)

			out, err := service.ResolveTable(ctx, &tablesorch.ResolveTableInput{TableName: "factions", Roll: 11})
			require.NoError(t, err)
			assert.Equal(t, "Faction: Crown; Attitude: wary; Strength: strong", out.Result.Value)

			assert.Equal(t, tc.wantInRedis, mr.Exists("lookup_table:factions"))
		})
	}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := newRedisClient(&config.Config{RedisAddr: mr.Addr(), RedisIdleTimeout: time.Minute})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))

	_, err = newRedisClient(&config.Config{})
	require.Error(t, err)
}

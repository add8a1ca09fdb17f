package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/rpg-tables/internal/dice"
	"github.com/KirkDiggler/rpg-tables/internal/errors"
	"github.com/KirkDiggler/rpg-tables/internal/handlers/api/v1alpha1"
	tablesorch "github.com/KirkDiggler/rpg-tables/internal/orchestrators/tables"
	"github.com/KirkDiggler/rpg-tables/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tables/internal/pkg/idgen"
	lookuptable "github.com/KirkDiggler/rpg-tables/internal/repositories/lookup_table"
	rollsession "github.com/KirkDiggler/rpg-tables/internal/repositories/roll_session"
	"github.com/KirkDiggler/rpg-tables/internal/testutils"
)

// startServer wires the real stack over miniredis and returns a client
// talking to it through an in-memory listener
func startServer(t *testing.T) v1alpha1.TableServiceClient {
	t.Helper()

	client, _ := testutils.CreateTestRedisClient(t)

	sessionRepo, err := rollsession.NewRedisRepository(&rollsession.Config{
		Client: client,
		Clock:  clock.New(),
	})
	require.NoError(t, err)

	tableRepo, err := lookuptable.NewRedisRepository(&lookuptable.Config{Client: client})
	require.NoError(t, err)

	orch, err := tablesorch.NewOrchestrator(&tablesorch.Config{
		RollSessionRepo: sessionRepo,
		TableRepo:       tableRepo,
		IDGenerator:     idgen.NewSequential("roll"),
		Source:          dice.NewSeededSource(42),
	})
	require.NoError(t, err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{TableService: orch})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	v1alpha1.RegisterTableServiceServer(server, handler)

	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return v1alpha1.NewTableServiceClient(conn)
}

func encounterTable() *v1alpha1.LookupTable {
	return &v1alpha1.LookupTable{
		Name:     "road_encounters",
		Notation: "2d6",
		Columns:  []string{"Encounter", "Number"},
		Rows: []*v1alpha1.TableRow{
			{Range: "", Results: map[string]string{"Encounter": "dragon", "Number": "1"}},
			{Range: "2-5", Results: map[string]string{"Encounter": "bandits", "Number": "2d4"}},
			{Range: "6-8", Results: map[string]string{"Encounter": "-", "Number": "-"}},
			{Range: "9-12", Results: map[string]string{"Encounter": "merchants", "Number": "1d6"}},
		},
	}
}

func TestTableService_EndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := startServer(t)

	saveResp, err := svc.SaveTable(ctx, &v1alpha1.SaveTableRequest{Table: encounterTable()})
	require.NoError(t, err)
	assert.True(t, saveResp.Created)

	listResp, err := svc.ListTables(ctx, &v1alpha1.ListTablesRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"road_encounters"}, listResp.Names)

	resolveResp, err := svc.ResolveTable(ctx, &v1alpha1.ResolveTableRequest{TableName: "road_encounters", Roll: 7})
	require.NoError(t, err)
	assert.Equal(t, "Encounter: nothing; Number: nothing", resolveResp.Result.Value)

	resolveResp, err = svc.ResolveTable(ctx, &v1alpha1.ResolveTableRequest{TableName: "road_encounters", Roll: 1})
	require.NoError(t, err)
	assert.Equal(t, "Encounter: dragon; Number: 1", resolveResp.Result.Value)

	resolveResp, err = svc.ResolveTable(ctx, &v1alpha1.ResolveTableRequest{TableName: "road_encounters", Roll: 3, Column: "Number"})
	require.NoError(t, err)
	assert.Equal(t, "2d4", resolveResp.Result.Value)

	rollResp, err := svc.RollOnTable(ctx, &v1alpha1.RollOnTableRequest{
		EntityID:  "poi_9",
		Context:   "road",
		TableName: "road_encounters",
		Rerolls:   2,
	})
	require.NoError(t, err)
	require.Len(t, rollResp.Results, 3)
	for _, result := range rollResp.Results {
		assert.GreaterOrEqual(t, result.Roll, 2)
		assert.LessOrEqual(t, result.Roll, 12)
	}
	assert.NotZero(t, rollResp.ExpiresAt)

	diceResp, err := svc.RollDice(ctx, &v1alpha1.RollDiceRequest{
		EntityID: "poi_9",
		Context:  "road",
		Notation: "d20",
		Policy:   "disadvantage",
	})
	require.NoError(t, err)
	assert.Equal(t, "1d20dis", diceResp.Roll.Notation)
	assert.Len(t, diceResp.Rolls, 4)

	sessionResp, err := svc.GetRollSession(ctx, &v1alpha1.GetRollSessionRequest{EntityID: "poi_9", Context: "road"})
	require.NoError(t, err)
	assert.Len(t, sessionResp.Rolls, 4)
	assert.Equal(t, "road_encounters", sessionResp.Rolls[0].TableName)

	clearResp, err := svc.ClearRollSession(ctx, &v1alpha1.ClearRollSessionRequest{EntityID: "poi_9", Context: "road"})
	require.NoError(t, err)
	assert.Equal(t, int32(4), clearResp.RollsCleared)

	_, err = svc.DeleteTable(ctx, &v1alpha1.DeleteTableRequest{Name: "road_encounters"})
	require.NoError(t, err)

	_, err = svc.GetTable(ctx, &v1alpha1.GetTableRequest{Name: "road_encounters"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestTableService_ErrorDetails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := startServer(t)

	_, err := svc.SaveTable(ctx, &v1alpha1.SaveTableRequest{Table: encounterTable()})
	require.NoError(t, err)

	_, err = svc.ResolveTable(ctx, &v1alpha1.ResolveTableRequest{TableName: "road_encounters", Roll: 13})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))

	converted := errors.FromGRPCError(err)
	assert.True(t, errors.IsNotFound(converted))
	assert.Equal(t, "13", errors.GetMeta(converted)["roll"])
	assert.Equal(t, "road_encounters", errors.GetMeta(converted)["table"])

	_, err = svc.RollDice(ctx, &v1alpha1.RollDiceRequest{EntityID: "e", Context: "c", Notation: "3d"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "3d", errors.GetMeta(errors.FromGRPCError(err))["notation"])

	bad := encounterTable()
	bad.Rows[2].Range = "6-7-8"
	_, err = svc.SaveTable(ctx, &v1alpha1.SaveTableRequest{Table: bad})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = svc.ResolveTable(ctx, &v1alpha1.ResolveTableRequest{TableName: "road_encounters", Roll: 5, Column: "Loot"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "Loot", errors.GetMeta(errors.FromGRPCError(err))["column"])
}

func TestRegisterTableServiceServer(t *testing.T) {
	srv := grpc.NewServer()
	v1alpha1.RegisterTableServiceServer(srv, nil)

	info, ok := srv.GetServiceInfo()[v1alpha1.TableServiceName]
	require.True(t, ok)
	assert.Len(t, info.Methods, 9)
	assert.Equal(t, "internal/handlers/api/v1alpha1/messages.go", info.Metadata)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-tables/internal/config"
	redisclient "github.com/KirkDiggler/rpg-tables/internal/redis"
	lookuptable "github.com/KirkDiggler/rpg-tables/internal/repositories/lookup_table"
	"github.com/KirkDiggler/rpg-tables/internal/tables"
)

var deleteBroken bool

var checkTablesCmd = &cobra.Command{
	Use:   "check-tables",
	Short: "Scan Redis for lookup tables that no longer validate",
	Long: `Scan every stored lookup table, report ones that fail to decode or validate,
and report index entries that point at missing tables. With --delete the broken
tables are removed and the index is repaired.`,
	RunE: runCheckTables,
}

func init() {
	checkTablesCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address (overrides RPG_TABLES_REDIS_ADDR)")
	checkTablesCmd.Flags().BoolVar(&deleteBroken, "delete", false, "delete broken tables and repair the index")
}

func runCheckTables(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.RedisAddr = redisAddr
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := cmd.Context()
	if err := redisclient.Ping(ctx, client, 5*time.Second); err != nil {
		return fmt.Errorf("redis not reachable at %s: %w", cfg.RedisAddr, err)
	}

	report, err := checkTables(ctx, client)
	if err != nil {
		return err
	}
	report.print(cmd.OutOrStdout())

	if !deleteBroken || report.clean() {
		return nil
	}

	if err := repairTables(ctx, client, report); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "repair complete")
	return nil
}

// tableReport collects the findings of one scan
type tableReport struct {
	checked int

	// broken maps table name to the reason it failed
	broken map[string]string

	// dangling are index entries with no stored table
	dangling []string
}

func (r *tableReport) clean() bool {
	return len(r.broken) == 0 && len(r.dangling) == 0
}

func (r *tableReport) print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "checked %d tables, %d broken, %d dangling index entries\n",
		r.checked, len(r.broken), len(r.dangling))

	names := make([]string, 0, len(r.broken))
	for name := range r.broken {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  broken %s: %s\n", name, r.broken[name])
	}
	for _, name := range r.dangling {
		_, _ = fmt.Fprintf(w, "  dangling %s\n", name)
	}
}

// checkConcurrency bounds parallel table reads during a scan
const checkConcurrency = 8

func checkTables(ctx context.Context, client redisclient.Client) (*tableReport, error) {
	var names []string
	iter := client.Scan(ctx, 0, lookuptable.KeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if key := iter.Val(); key != lookuptable.IndexKey {
			names = append(names, strings.TrimPrefix(key, lookuptable.KeyPrefix))
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan tables: %w", err)
	}

	// reasons[i] is empty when names[i] is healthy
	reasons := make([]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkConcurrency)
	for i, name := range names {
		g.Go(func() error {
			reason, err := checkTable(gctx, client, name)
			if err != nil {
				return err
			}
			reasons[i] = reason
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &tableReport{
		checked: len(names),
		broken:  make(map[string]string),
	}
	stored := make(map[string]bool, len(names))
	for i, name := range names {
		stored[name] = true
		if reasons[i] != "" {
			report.broken[name] = reasons[i]
		}
	}

	indexed, err := client.SMembers(ctx, lookuptable.IndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read table index: %w", err)
	}
	for _, name := range indexed {
		if !stored[name] {
			report.dangling = append(report.dangling, name)
		}
	}
	sort.Strings(report.dangling)

	return report, nil
}

// checkTable returns why the stored table is unusable, or "" when it is fine.
// A key that vanished between scan and read is reported, not failed.
func checkTable(ctx context.Context, client redisclient.Client, name string) (string, error) {
	data, err := client.Get(ctx, lookuptable.TableKey(name)).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return "deleted during scan", nil
		}
		return "", fmt.Errorf("failed to read table %q: %w", name, err)
	}

	var table tables.LookupTable
	if err := json.Unmarshal(data, &table); err != nil {
		return "corrupted json: " + err.Error(), nil
	}
	if table.Name != name {
		return fmt.Sprintf("stored under %q but named %q", name, table.Name), nil
	}
	if err := table.Validate(); err != nil {
		return err.Error(), nil
	}
	return "", nil
}

func repairTables(ctx context.Context, client redisclient.Client, report *tableReport) error {
	pipe := client.TxPipeline()
	for name := range report.broken {
		pipe.Del(ctx, lookuptable.TableKey(name))
		pipe.SRem(ctx, lookuptable.IndexKey, name)
	}
	for _, name := range report.dangling {
		pipe.SRem(ctx, lookuptable.IndexKey, name)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to repair tables: %w", err)
	}
	return nil
}

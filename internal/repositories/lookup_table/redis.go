package lookuptable

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-tables/internal/redis"
	"github.com/KirkDiggler/rpg-tables/internal/tables"
)

const (
	// KeyPrefix starts every table key: lookup_table:{name}
	KeyPrefix = "lookup_table:"

	// IndexKey holds the set of every stored table name
	IndexKey = KeyPrefix + "index"

	errNameEmpty = "table name cannot be empty"
)

// Config holds the dependencies for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

var _ Repository = (*redisRepository)(nil)

// NewRedisRepository creates a Redis-backed lookup table repository
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := input.Table.Validate(); err != nil {
		return nil, err
	}
	if TableKey(input.Table.Name) == IndexKey {
		return nil, errors.InvalidArgumentf("table name %q is reserved", input.Table.Name)
	}

	data, err := json.Marshal(input.Table)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal table")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, TableKey(input.Table.Name), data, 0)
	added := pipe.SAdd(ctx, IndexKey, input.Table.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save table %q", input.Table.Name)
	}

	return &SaveOutput{Created: added.Val() == 1}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	data, err := r.client.Get(ctx, TableKey(input.Name)).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("table %q not found", input.Name).
				WithMeta("table", input.Name)
		}
		return nil, errors.Wrapf(err, "failed to get table %q", input.Name)
	}

	var table tables.LookupTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal table %q", input.Name)
	}

	return &GetOutput{Table: &table}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	names, err := r.client.SMembers(ctx, IndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}

	sort.Strings(names)
	return &ListOutput{Names: names}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, TableKey(input.Name))
	pipe.SRem(ctx, IndexKey, input.Name)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete table %q", input.Name)
	}
	if deleted.Val() == 0 {
		return nil, errors.NotFoundf("table %q not found", input.Name).
			WithMeta("table", input.Name)
	}

	return &DeleteOutput{}, nil
}

// TableKey returns the Redis key of the named table
func TableKey(name string) string {
	return KeyPrefix + name
}

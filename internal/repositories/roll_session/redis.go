package rollsession

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
	"github.com/KirkDiggler/rpg-tables/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-tables/internal/redis"
)

const (
	// Key pattern: roll_session:{entity_id}:{context}
	sessionKeyPrefix = "roll_session:"

	// DefaultTTL applies when CreateInput.TTL is zero
	DefaultTTL = 15 * time.Minute

	errSessionNil     = "session cannot be nil"
	errEntityIDEmpty  = "entity ID cannot be empty"
	errContextEmpty   = "context cannot be empty"
	errSessionExpired = "session has already expired"
)

// Config holds the dependencies for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("client")
	}
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

var _ Repository = (*redisRepository)(nil)

// NewRedisRepository creates a Redis-backed roll session repository
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}
	if input.TTL < 0 {
		return nil, errors.InvalidArgumentf("ttl must not be negative, got %s", input.TTL)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	now := r.clock.Now()
	session := &RollSession{
		EntityID:  input.EntityID,
		Context:   input.Context,
		Rolls:     input.Rolls,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	key := buildKey(input.EntityID, input.Context)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to store session in Redis")
	}

	return &CreateOutput{Session: session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	key := buildKey(input.EntityID, input.Context)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("roll session %s/%s not found", input.EntityID, input.Context).
				WithMeta("entity_id", input.EntityID).
				WithMeta("context", input.Context)
		}
		return nil, errors.Wrap(err, "failed to get session from Redis")
	}

	var session RollSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	if r.clock.Now().After(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("roll session %s/%s has expired", input.EntityID, input.Context).
			WithMeta("entity_id", input.EntityID).
			WithMeta("context", input.Context)
	}

	return &GetOutput{Session: &session}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	var rollsDeleted int32
	got, err := r.Get(ctx, GetInput(input))
	switch {
	case err == nil:
		// nolint:gosec // roll count is always small
		rollsDeleted = int32(len(got.Session.Rolls))
	case !errors.IsNotFound(err):
		return nil, err
	}

	key := buildKey(input.EntityID, input.Context)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{RollsDeleted: rollsDeleted}, nil
}

func (r *redisRepository) Update(ctx context.Context, session *RollSession) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if err := validateKey(session.EntityID, session.Context); err != nil {
		return err
	}

	now := r.clock.Now()
	if !now.Before(session.ExpiresAt) {
		return errors.New(errors.CodeFailedPrecondition, errSessionExpired).
			WithMeta("expires_at", session.ExpiresAt)
	}
	remaining := session.ExpiresAt.Sub(now)

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	key := buildKey(session.EntityID, session.Context)
	if err := r.client.Set(ctx, key, data, remaining).Err(); err != nil {
		return errors.Wrap(err, "failed to update session in Redis")
	}

	return nil
}

func validateKey(entityID, context string) error {
	if entityID == "" {
		return errors.InvalidArgument(errEntityIDEmpty)
	}
	if context == "" {
		return errors.InvalidArgument(errContextEmpty)
	}
	return nil
}

func buildKey(entityID, context string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, entityID, context)
}

// Package rollsession stores rolls grouped by the entity that made them and
// the context they were made in.
package rollsession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollsessionmock github.com/KirkDiggler/rpg-tables/internal/repositories/roll_session Repository

// RollSession is a collection of rolls for one entity in one context
type RollSession struct {
	// EntityID owns the rolls, e.g. "poi_123" or "campaign_7"
	EntityID string `json:"entity_id"`

	// Context groups related rolls, e.g. "settlement_gen" or "encounter_3"
	Context string `json:"context"`

	Rolls []Roll `json:"rolls"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Roll is one recorded roll. Table rolls also carry the resolved result.
type Roll struct {
	RollID string `json:"roll_id"`

	// Notation as rolled, e.g. "4d6dl1"
	Notation string `json:"notation"`
	Policy   string `json:"policy"`

	// Dice are the kept values, ascending
	Dice    []int `json:"dice"`
	Dropped []int `json:"dropped,omitempty"`
	Total   int   `json:"total"`

	Description string `json:"description,omitempty"`

	// TableName and TableResult are set when the roll was made on a table
	TableName   string `json:"table_name,omitempty"`
	TableResult string `json:"table_result,omitempty"`
}

// CreateInput contains parameters for creating a roll session
type CreateInput struct {
	EntityID string
	Context  string
	Rolls    []Roll

	// TTL defaults to 15 minutes when zero
	TTL time.Duration
}

// CreateOutput contains the created session
type CreateOutput struct {
	Session *RollSession
}

// GetInput identifies a roll session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the stored session
type GetOutput struct {
	Session *RollSession
}

// DeleteInput identifies the roll session to remove
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput reports how many rolls went with the session
type DeleteOutput struct {
	RollsDeleted int32
}

// Repository defines storage for roll sessions
type Repository interface {
	// Create stores a new session, replacing any existing one
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get returns the session, or NOT_FOUND when missing or expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Update replaces an existing session, keeping its expiry
	Update(ctx context.Context, session *RollSession) error
}

package tables

import (
	"time"

	"github.com/KirkDiggler/rpg-tables/internal/dice"
	rollsession "github.com/KirkDiggler/rpg-tables/internal/repositories/roll_session"
	"github.com/KirkDiggler/rpg-tables/internal/tables"
)

// RollDiceInput defines the request for rolling dice
type RollDiceInput struct {
	EntityID string
	Context  string

	// Notation is "NdM" or "dM"
	Notation string

	// Policy is "normal", "advantage" or "disadvantage"; empty means normal
	Policy string

	// DropCount dice are discarded after sorting, from the low end when
	// DropFromLow is set and from the high end otherwise
	DropCount   int
	DropFromLow bool

	Description string

	// TTL applies when a new session is created
	TTL time.Duration
}

// RollDiceOutput defines the response for rolling dice
type RollDiceOutput struct {
	Roll    *rollsession.Roll
	Detail  *dice.Result
	Session *rollsession.RollSession
}

// ResolveTableInput defines the request for looking up a known roll
type ResolveTableInput struct {
	TableName string
	Roll      int

	// Column selects a result column. Empty resolves the table's default.
	Column string
}

// ResolveTableOutput defines the response for looking up a known roll
type ResolveTableOutput struct {
	Result *tables.Result
}

// RollOnTableInput defines the request for rolling a table's own notation
type RollOnTableInput struct {
	// EntityID and Context are optional; when both are set the rolls are
	// recorded in that session
	EntityID string
	Context  string

	TableName string

	// Rerolls repeats the lookup on the same table, up to MaxRerolls
	Rerolls int

	TTL time.Duration
}

// RollOnTableOutput holds one result per lookup, first roll first
type RollOnTableOutput struct {
	Results []*tables.Result
	Rolls   []*rollsession.Roll

	// Session is nil when the rolls were not recorded
	Session *rollsession.RollSession
}

// GetRollSessionInput defines the request for getting a roll session
type GetRollSessionInput struct {
	EntityID string
	Context  string
}

// GetRollSessionOutput defines the response for getting a roll session
type GetRollSessionOutput struct {
	Session *rollsession.RollSession
}

// ClearRollSessionInput defines the request for clearing a roll session
type ClearRollSessionInput struct {
	EntityID string
	Context  string
}

// ClearRollSessionOutput defines the response for clearing a roll session
type ClearRollSessionOutput struct {
	RollsDeleted int32
}

// SaveTableInput defines the request for storing a table
type SaveTableInput struct {
	Table *tables.LookupTable
}

// SaveTableOutput defines the response for storing a table
type SaveTableOutput struct {
	Created bool
}

// GetTableInput defines the request for fetching a table
type GetTableInput struct {
	Name string
}

// GetTableOutput defines the response for fetching a table
type GetTableOutput struct {
	Table *tables.LookupTable
}

// ListTablesInput defines the request for listing tables
type ListTablesInput struct{}

// ListTablesOutput defines the response for listing tables
type ListTablesOutput struct {
	Names []string
}

// DeleteTableInput defines the request for deleting a table
type DeleteTableInput struct {
	Name string
}

// DeleteTableOutput defines the response for deleting a table
type DeleteTableOutput struct{}

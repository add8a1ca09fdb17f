// Package tables implements the orchestrator for dice rolls, table lookups
// and the roll sessions that record them
package tables

//go:generate mockgen -destination=mock/mock_service.go -package=tablesmock github.com/KirkDiggler/rpg-tables/internal/orchestrators/tables Service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-tables/internal/dice"
	"github.com/KirkDiggler/rpg-tables/internal/errors"
	"github.com/KirkDiggler/rpg-tables/internal/pkg/idgen"
	lookuptable "github.com/KirkDiggler/rpg-tables/internal/repositories/lookup_table"
	rollsession "github.com/KirkDiggler/rpg-tables/internal/repositories/roll_session"
	"github.com/KirkDiggler/rpg-tables/internal/tables"
)

const (
	// DefaultSessionTTL applies when neither the input nor Config sets a TTL
	DefaultSessionTTL = 15 * time.Minute

	// MaxRerolls bounds RollOnTableInput.Rerolls
	MaxRerolls = 20
)

// Service defines the interface for dice and table operations
type Service interface {
	// Dice
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)

	// Table lookups
	ResolveTable(ctx context.Context, input *ResolveTableInput) (*ResolveTableOutput, error)
	RollOnTable(ctx context.Context, input *RollOnTableInput) (*RollOnTableOutput, error)

	// Table management
	SaveTable(ctx context.Context, input *SaveTableInput) (*SaveTableOutput, error)
	GetTable(ctx context.Context, input *GetTableInput) (*GetTableOutput, error)
	ListTables(ctx context.Context, input *ListTablesInput) (*ListTablesOutput, error)
	DeleteTable(ctx context.Context, input *DeleteTableInput) (*DeleteTableOutput, error)
}

// Config holds the dependencies for the tables orchestrator
type Config struct {
	RollSessionRepo rollsession.Repository
	TableRepo       lookuptable.Repository
	IDGenerator     idgen.Generator

	// Source supplies die faces. Defaults to the toolkit's crypto roller.
	Source toolkitdice.Roller

	// SessionTTL applies to new sessions when the input carries no TTL
	SessionTTL time.Duration

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.RollSessionRepo == nil {
		vb.RequiredField("RollSessionRepo")
	}
	if c.TableRepo == nil {
		vb.RequiredField("TableRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	rollSessionRepo rollsession.Repository
	tableRepo       lookuptable.Repository
	idGen           idgen.Generator
	source          toolkitdice.Roller
	resolver        *tables.Resolver
	sessionTTL      time.Duration
	logger          *slog.Logger
}

// NewOrchestrator creates a new tables orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	source := cfg.Source
	if source == nil {
		source = toolkitdice.DefaultRoller
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sessionTTL := cfg.SessionTTL
	if sessionTTL == 0 {
		sessionTTL = DefaultSessionTTL
	}

	return &orchestrator{
		rollSessionRepo: cfg.RollSessionRepo,
		tableRepo:       cfg.TableRepo,
		idGen:           cfg.IDGenerator,
		source:          source,
		resolver:        tables.NewResolver(&tables.Config{Logger: logger}),
		sessionTTL:      sessionTTL,
		logger:          logger,
	}, nil
}

// RollDice rolls with the requested policy and drop settings and appends the
// roll to the entity's session
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("entity_id", input.EntityID, vb)
	errors.ValidateRequired("context", input.Context, vb)
	errors.ValidateRequired("notation", input.Notation, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	spec, err := dice.ParseNotation(input.Notation)
	if err != nil {
		return nil, err
	}
	policy, err := dice.ParsePolicy(input.Policy)
	if err != nil {
		return nil, err
	}
	spec.Policy = policy
	spec.DropCount = input.DropCount
	spec.DropFromLow = input.DropFromLow

	detail, err := o.roll(spec)
	if err != nil {
		return nil, err
	}

	roll := o.newRoll(detail)
	roll.Description = input.Description

	session, err := o.record(ctx, input.EntityID, input.Context, input.TTL, *roll)
	if err != nil {
		return nil, err
	}

	o.logger.Info("Dice rolled successfully",
		"entity_id", input.EntityID,
		"context", input.Context,
		"notation", roll.Notation,
		"total", roll.Total,
		"roll_id", roll.RollID,
	)

	return &RollDiceOutput{
		Roll:    roll,
		Detail:  detail,
		Session: session,
	}, nil
}

// GetRollSession retrieves an existing roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	getOutput, err := o.rollSessionRepo.Get(ctx, rollsession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get roll session")
	}

	return &GetRollSessionOutput{Session: getOutput.Session}, nil
}

// ClearRollSession removes a roll session
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	deleteOutput, err := o.rollSessionRepo.Delete(ctx, rollsession.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete roll session")
	}

	o.logger.Info("Roll session cleared",
		"entity_id", input.EntityID,
		"context", input.Context,
		"rolls_deleted", deleteOutput.RollsDeleted,
	)

	return &ClearRollSessionOutput{RollsDeleted: deleteOutput.RollsDeleted}, nil
}

// ResolveTable looks up a roll the caller already made
func (o *orchestrator) ResolveTable(ctx context.Context, input *ResolveTableInput) (*ResolveTableOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.TableName == "" {
		return nil, errors.InvalidArgument("table name is required")
	}

	table, err := o.loadTable(ctx, input.TableName)
	if err != nil {
		return nil, err
	}

	var result *tables.Result
	if input.Column != "" {
		result, err = o.resolver.ResolveColumn(table, input.Roll, input.Column)
	} else {
		result, err = o.resolver.ResolveDefault(table, input.Roll)
	}
	if err != nil {
		return nil, err
	}

	return &ResolveTableOutput{Result: result}, nil
}

// RollOnTable rolls the table's notation once plus once per reroll and
// resolves each total
func (o *orchestrator) RollOnTable(ctx context.Context, input *RollOnTableInput) (*RollOnTableOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("table_name", input.TableName, vb)
	if (input.EntityID == "") != (input.Context == "") {
		vb.Field("context", "entity_id and context must be set together")
	}
	if input.Rerolls < 0 || input.Rerolls > MaxRerolls {
		vb.Fieldf("rerolls", "must be between 0 and %d", MaxRerolls)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	table, err := o.loadTable(ctx, input.TableName)
	if err != nil {
		return nil, err
	}

	spec, err := dice.ParseNotation(table.Notation)
	if err != nil {
		return nil, errors.Wrapf(err, "table %q has an invalid roll header", table.Name)
	}

	lookups := input.Rerolls + 1
	results := make([]*tables.Result, 0, lookups)
	rolls := make([]*rollsession.Roll, 0, lookups)
	for i := 0; i < lookups; i++ {
		detail, err := o.roll(spec)
		if err != nil {
			return nil, err
		}

		result, err := o.resolver.ResolveDefault(table, detail.Total)
		if err != nil {
			return nil, err
		}

		roll := o.newRoll(detail)
		roll.TableName = table.Name
		roll.TableResult = result.Value
		if i > 0 {
			roll.Description = fmt.Sprintf("reroll %d on %s", i, table.Name)
		}

		results = append(results, result)
		rolls = append(rolls, roll)
	}

	output := &RollOnTableOutput{
		Results: results,
		Rolls:   rolls,
	}

	if input.EntityID != "" {
		recorded := make([]rollsession.Roll, len(rolls))
		for i, roll := range rolls {
			recorded[i] = *roll
		}

		output.Session, err = o.record(ctx, input.EntityID, input.Context, input.TTL, recorded...)
		if err != nil {
			return nil, err
		}
	}

	o.logger.Info("Rolled on table",
		"table", table.Name,
		"entity_id", input.EntityID,
		"context", input.Context,
		"lookups", lookups,
		"first_roll", results[0].Roll,
		"first_result", results[0].Value,
	)

	return output, nil
}

// SaveTable validates and stores a table
func (o *orchestrator) SaveTable(ctx context.Context, input *SaveTableInput) (*SaveTableOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	saveOutput, err := o.tableRepo.Save(ctx, lookuptable.SaveInput{Table: input.Table})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save table")
	}

	o.logger.Info("Table saved",
		"table", input.Table.Name,
		"rows", len(input.Table.Rows),
		"created", saveOutput.Created,
	)

	return &SaveTableOutput{Created: saveOutput.Created}, nil
}

// GetTable returns a stored table
func (o *orchestrator) GetTable(ctx context.Context, input *GetTableInput) (*GetTableOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("table name is required")
	}

	table, err := o.loadTable(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	return &GetTableOutput{Table: table}, nil
}

// ListTables returns the names of stored tables
func (o *orchestrator) ListTables(ctx context.Context, _ *ListTablesInput) (*ListTablesOutput, error) {
	listOutput, err := o.tableRepo.List(ctx, lookuptable.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}

	return &ListTablesOutput{Names: listOutput.Names}, nil
}

// DeleteTable removes a stored table
func (o *orchestrator) DeleteTable(ctx context.Context, input *DeleteTableInput) (*DeleteTableOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("table name is required")
	}

	if _, err := o.tableRepo.Delete(ctx, lookuptable.DeleteInput{Name: input.Name}); err != nil {
		return nil, errors.Wrap(err, "failed to delete table")
	}

	o.logger.Info("Table deleted", "table", input.Name)

	return &DeleteTableOutput{}, nil
}

func (o *orchestrator) loadTable(ctx context.Context, name string) (*tables.LookupTable, error) {
	getOutput, err := o.tableRepo.Get(ctx, lookuptable.GetInput{Name: name})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load table %q", name)
	}
	return getOutput.Table, nil
}

func (o *orchestrator) roll(spec dice.RollSpec) (*dice.Result, error) {
	roller, err := dice.NewRoller(&dice.Config{
		Spec:   spec,
		Source: o.source,
		Logger: o.logger,
	})
	if err != nil {
		return nil, err
	}

	detail, err := roller.RollDetailed()
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}
	return detail, nil
}

func (o *orchestrator) newRoll(detail *dice.Result) *rollsession.Roll {
	return &rollsession.Roll{
		RollID:   o.idGen.Generate(),
		Notation: detail.Spec.String(),
		Policy:   string(detail.Spec.Policy),
		Dice:     detail.Kept,
		Dropped:  detail.Dropped,
		Total:    detail.Total,
	}
}

// record appends rolls to the entity's session, creating it when missing
func (o *orchestrator) record(ctx context.Context, entityID, rollContext string, ttl time.Duration, rolls ...rollsession.Roll) (*rollsession.RollSession, error) {
	getOutput, err := o.rollSessionRepo.Get(ctx, rollsession.GetInput{
		EntityID: entityID,
		Context:  rollContext,
	})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to check for existing session")
		}

		if ttl == 0 {
			ttl = o.sessionTTL
		}

		createOutput, err := o.rollSessionRepo.Create(ctx, rollsession.CreateInput{
			EntityID: entityID,
			Context:  rollContext,
			Rolls:    rolls,
			TTL:      ttl,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create roll session")
		}
		return createOutput.Session, nil
	}

	session := getOutput.Session
	session.Rolls = append(session.Rolls, rolls...)

	if err := o.rollSessionRepo.Update(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to update roll session")
	}
	return session, nil
}

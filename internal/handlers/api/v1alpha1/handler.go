// Package v1alpha1 serves dice rolls and table lookups over gRPC
package v1alpha1

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
	tablesorch "github.com/KirkDiggler/rpg-tables/internal/orchestrators/tables"
	rollsession "github.com/KirkDiggler/rpg-tables/internal/repositories/roll_session"
	"github.com/KirkDiggler/rpg-tables/internal/tables"
)

// HandlerConfig holds dependencies for the table handler
type HandlerConfig struct {
	TableService tablesorch.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.TableService == nil {
		return errors.InvalidArgument("table service is required")
	}
	return nil
}

// Handler implements TableServiceServer
type Handler struct {
	tableService tablesorch.Service
}

var _ TableServiceServer = (*Handler)(nil)

// NewHandler creates a new table handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{tableService: cfg.TableService}, nil
}

// RollDice rolls dice and stores the result in the entity's session
func (h *Handler) RollDice(ctx context.Context, req *RollDiceRequest) (*RollDiceResponse, error) {
	if req.EntityID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("entity_id is required"))
	}
	if req.Context == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("context is required"))
	}
	if req.Notation == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("notation is required"))
	}
	if req.TTLSeconds < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("ttl_seconds must not be negative"))
	}

	out, err := h.tableService.RollDice(ctx, &tablesorch.RollDiceInput{
		EntityID:    req.EntityID,
		Context:     req.Context,
		Notation:    req.Notation,
		Policy:      req.Policy,
		DropCount:   req.DropCount,
		DropFromLow: req.DropFromLow,
		Description: req.Description,
		TTL:         time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &RollDiceResponse{
		Roll:      convertRoll(out.Roll),
		Rolls:     convertSessionRolls(out.Session),
		ExpiresAt: out.Session.ExpiresAt.Unix(),
	}, nil
}

// GetRollSession retrieves an existing roll session
func (h *Handler) GetRollSession(ctx context.Context, req *GetRollSessionRequest) (*GetRollSessionResponse, error) {
	if req.EntityID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("entity_id is required"))
	}
	if req.Context == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("context is required"))
	}

	out, err := h.tableService.GetRollSession(ctx, &tablesorch.GetRollSessionInput{
		EntityID: req.EntityID,
		Context:  req.Context,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetRollSessionResponse{
		Rolls:     convertSessionRolls(out.Session),
		CreatedAt: out.Session.CreatedAt.Unix(),
		ExpiresAt: out.Session.ExpiresAt.Unix(),
	}, nil
}

// ClearRollSession removes a roll session
func (h *Handler) ClearRollSession(ctx context.Context, req *ClearRollSessionRequest) (*ClearRollSessionResponse, error) {
	if req.EntityID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("entity_id is required"))
	}
	if req.Context == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("context is required"))
	}

	out, err := h.tableService.ClearRollSession(ctx, &tablesorch.ClearRollSessionInput{
		EntityID: req.EntityID,
		Context:  req.Context,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ClearRollSessionResponse{
		Message:      "Roll session cleared successfully",
		RollsCleared: out.RollsDeleted,
	}, nil
}

// ResolveTable looks up a known roll on a stored table
func (h *Handler) ResolveTable(ctx context.Context, req *ResolveTableRequest) (*ResolveTableResponse, error) {
	if req.TableName == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("table_name is required"))
	}

	out, err := h.tableService.ResolveTable(ctx, &tablesorch.ResolveTableInput{
		TableName: req.TableName,
		Roll:      req.Roll,
		Column:    req.Column,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ResolveTableResponse{Result: convertResult(out.Result)}, nil
}

// RollOnTable rolls a stored table's notation and resolves the result
func (h *Handler) RollOnTable(ctx context.Context, req *RollOnTableRequest) (*RollOnTableResponse, error) {
	if req.TableName == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("table_name is required"))
	}
	if req.TTLSeconds < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("ttl_seconds must not be negative"))
	}

	out, err := h.tableService.RollOnTable(ctx, &tablesorch.RollOnTableInput{
		EntityID:  req.EntityID,
		Context:   req.Context,
		TableName: req.TableName,
		Rerolls:   req.Rerolls,
		TTL:       time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &RollOnTableResponse{
		Results: make([]*TableResult, 0, len(out.Results)),
		Rolls:   make([]*DiceRoll, 0, len(out.Rolls)),
	}
	for _, result := range out.Results {
		resp.Results = append(resp.Results, convertResult(result))
	}
	for _, roll := range out.Rolls {
		resp.Rolls = append(resp.Rolls, convertRoll(roll))
	}
	if out.Session != nil {
		resp.ExpiresAt = out.Session.ExpiresAt.Unix()
	}

	return resp, nil
}

// SaveTable stores a lookup table
func (h *Handler) SaveTable(ctx context.Context, req *SaveTableRequest) (*SaveTableResponse, error) {
	if req.Table == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("table is required"))
	}

	table, err := convertTableFromWire(req.Table)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.tableService.SaveTable(ctx, &tablesorch.SaveTableInput{Table: table})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SaveTableResponse{Created: out.Created}, nil
}

// GetTable returns a stored lookup table
func (h *Handler) GetTable(ctx context.Context, req *GetTableRequest) (*GetTableResponse, error) {
	if req.Name == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("name is required"))
	}

	out, err := h.tableService.GetTable(ctx, &tablesorch.GetTableInput{Name: req.Name})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetTableResponse{Table: convertTableToWire(out.Table)}, nil
}

// ListTables returns the names of stored tables
func (h *Handler) ListTables(ctx context.Context, _ *ListTablesRequest) (*ListTablesResponse, error) {
	out, err := h.tableService.ListTables(ctx, &tablesorch.ListTablesInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ListTablesResponse{Names: out.Names}, nil
}

// DeleteTable removes a stored lookup table
func (h *Handler) DeleteTable(ctx context.Context, req *DeleteTableRequest) (*DeleteTableResponse, error) {
	if req.Name == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("name is required"))
	}

	if _, err := h.tableService.DeleteTable(ctx, &tablesorch.DeleteTableInput{Name: req.Name}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DeleteTableResponse{}, nil
}

func convertRoll(roll *rollsession.Roll) *DiceRoll {
	if roll == nil {
		return nil
	}
	return &DiceRoll{
		RollID:      roll.RollID,
		Notation:    roll.Notation,
		Policy:      roll.Policy,
		Dice:        roll.Dice,
		Dropped:     roll.Dropped,
		Total:       roll.Total,
		Description: roll.Description,
		TableName:   roll.TableName,
		TableResult: roll.TableResult,
	}
}

func convertSessionRolls(session *rollsession.RollSession) []*DiceRoll {
	if session == nil {
		return nil
	}
	rolls := make([]*DiceRoll, 0, len(session.Rolls))
	for i := range session.Rolls {
		rolls = append(rolls, convertRoll(&session.Rolls[i]))
	}
	return rolls
}

func convertResult(result *tables.Result) *TableResult {
	if result == nil {
		return nil
	}
	return &TableResult{
		Table:  result.Table,
		Roll:   result.Roll,
		Row:    result.Row,
		Column: result.Column,
		Value:  result.Value,
		Fields: result.Fields,
	}
}

// convertTableFromWire rejects null rows since dropping them would shift
// row indexes
func convertTableFromWire(table *LookupTable) (*tables.LookupTable, error) {
	rows := make([]tables.TableRow, 0, len(table.Rows))
	for i, row := range table.Rows {
		if row == nil {
			return nil, errors.InvalidArgumentf("table row %d is null", i).
				WithMeta("row", i)
		}
		rows = append(rows, tables.TableRow{Range: row.Range, Results: row.Results})
	}
	return &tables.LookupTable{
		Name:     table.Name,
		Notation: table.Notation,
		Columns:  table.Columns,
		Rows:     rows,
	}, nil
}

func convertTableToWire(table *tables.LookupTable) *LookupTable {
	if table == nil {
		return nil
	}
	rows := make([]*TableRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, &TableRow{Range: row.Range, Results: row.Results})
	}
	return &LookupTable{
		Name:     table.Name,
		Notation: table.Notation,
		Columns:  table.Columns,
		Rows:     rows,
	}
}

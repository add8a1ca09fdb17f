package v1alpha1

// DiceRoll is one recorded roll
type DiceRoll struct {
	RollID      string `json:"roll_id"`
	Notation    string `json:"notation"`
	Policy      string `json:"policy"`
	Dice        []int  `json:"dice"`
	Dropped     []int  `json:"dropped,omitempty"`
	Total       int    `json:"total"`
	Description string `json:"description,omitempty"`
	TableName   string `json:"table_name,omitempty"`
	TableResult string `json:"table_result,omitempty"`
}

// TableRow is one row of a lookup table
type TableRow struct {
	Range   string            `json:"range"`
	Results map[string]string `json:"results"`
}

// LookupTable is a lookup table as carried on the wire
type LookupTable struct {
	Name     string      `json:"name"`
	Notation string      `json:"notation"`
	Columns  []string    `json:"columns"`
	Rows     []*TableRow `json:"rows"`
}

// TableResult is the outcome of one lookup
type TableResult struct {
	Table  string            `json:"table"`
	Roll   int               `json:"roll"`
	Row    int               `json:"row"`
	Column string            `json:"column,omitempty"`
	Value  string            `json:"value"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RollDiceRequest rolls dice into an entity's session
type RollDiceRequest struct {
	EntityID    string `json:"entity_id"`
	Context     string `json:"context"`
	Notation    string `json:"notation"`
	Policy      string `json:"policy,omitempty"`
	DropCount   int    `json:"drop_count,omitempty"`
	DropFromLow bool   `json:"drop_from_low,omitempty"`
	Description string `json:"description,omitempty"`
	TTLSeconds  int64  `json:"ttl_seconds,omitempty"`
}

// RollDiceResponse returns the new roll and the whole session
type RollDiceResponse struct {
	Roll      *DiceRoll   `json:"roll"`
	Rolls     []*DiceRoll `json:"rolls"`
	ExpiresAt int64       `json:"expires_at"`
}

// ResolveTableRequest looks up a roll the caller already made
type ResolveTableRequest struct {
	TableName string `json:"table_name"`
	Roll      int    `json:"roll"`
	Column    string `json:"column,omitempty"`
}

// ResolveTableResponse holds the lookup result
type ResolveTableResponse struct {
	Result *TableResult `json:"result"`
}

// RollOnTableRequest rolls a table's own notation
type RollOnTableRequest struct {
	EntityID   string `json:"entity_id,omitempty"`
	Context    string `json:"context,omitempty"`
	TableName  string `json:"table_name"`
	Rerolls    int    `json:"rerolls,omitempty"`
	TTLSeconds int64  `json:"ttl_seconds,omitempty"`
}

// RollOnTableResponse holds one result per lookup
type RollOnTableResponse struct {
	Results []*TableResult `json:"results"`
	Rolls   []*DiceRoll    `json:"rolls"`

	// ExpiresAt is zero when the rolls were not recorded
	ExpiresAt int64 `json:"expires_at,omitempty"`
}

// GetRollSessionRequest identifies a session
type GetRollSessionRequest struct {
	EntityID string `json:"entity_id"`
	Context  string `json:"context"`
}

// GetRollSessionResponse holds the session's rolls
type GetRollSessionResponse struct {
	Rolls     []*DiceRoll `json:"rolls"`
	CreatedAt int64       `json:"created_at"`
	ExpiresAt int64       `json:"expires_at"`
}

// ClearRollSessionRequest identifies the session to clear
type ClearRollSessionRequest struct {
	EntityID string `json:"entity_id"`
	Context  string `json:"context"`
}

// ClearRollSessionResponse reports how many rolls were cleared
type ClearRollSessionResponse struct {
	Message      string `json:"message"`
	RollsCleared int32  `json:"rolls_cleared"`
}

// SaveTableRequest stores a table
type SaveTableRequest struct {
	Table *LookupTable `json:"table"`
}

// SaveTableResponse reports whether the table was new
type SaveTableResponse struct {
	Created bool `json:"created"`
}

// GetTableRequest identifies a table
type GetTableRequest struct {
	Name string `json:"name"`
}

// GetTableResponse holds the stored table
type GetTableResponse struct {
	Table *LookupTable `json:"table"`
}

// ListTablesRequest lists stored tables
type ListTablesRequest struct{}

// ListTablesResponse holds table names in ascending order
type ListTablesResponse struct {
	Names []string `json:"names"`
}

// DeleteTableRequest identifies the table to delete
type DeleteTableRequest struct {
	Name string `json:"name"`
}

// DeleteTableResponse is returned on successful delete
type DeleteTableResponse struct{}

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	engerr "github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/errors"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/observability"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/query/executor"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/query/parser"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/storage"
)

// StatementRequest represents a statement execution request.
type StatementRequest struct {
	SQL string `json:"sql"`
}

// StatementResponse represents the statement execution response.
type StatementResponse struct {
	Columns      []string        `json:"columns,omitempty"`
	Rows         [][]interface{} `json:"rows,omitempty"`
	RowsAffected int             `json:"rows_affected"`
	Message      string          `json:"message,omitempty"`
	RequestID    string          `json:"request_id"`
}

// StatementHandler handles POST /v1/query requests. The engine assumes
// a single caller, so every handler that touches the database shares
// one lock; the HTTP layer is the only concurrent boundary in the
// process. Statements take the write side, read-only endpoints the
// read side.
type StatementHandler struct {
	mu       *sync.RWMutex
	executor *executor.Executor
}

// NewStatementHandler creates a new statement handler.
func NewStatementHandler(exec *executor.Executor, mu *sync.RWMutex) *StatementHandler {
	return &StatementHandler{executor: exec, mu: mu}
}

// ServeHTTP handles the statement HTTP request.
func (h *StatementHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil, requestID)
		return
	}

	var req StatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), "", nil, requestID)
		return
	}
	if req.SQL == "" {
		writeError(w, http.StatusBadRequest, "sql is required", "", nil, requestID)
		return
	}

	stmt, err := parser.Parse(req.SQL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), engerr.GetCode(err), engerr.GetDetails(err), requestID)
		return
	}

	h.mu.Lock()
	result, err := h.executor.Execute(stmt)
	h.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error(), engerr.GetCode(err), engerr.GetDetails(err), requestID)
		return
	}

	grid := result.ValueGrid()
	rows := make([][]interface{}, len(grid))
	for i, cells := range grid {
		out := make([]interface{}, len(cells))
		for j, v := range cells {
			out[j] = v.Native()
		}
		rows[i] = out
	}

	writeJSON(w, http.StatusOK, StatementResponse{
		Columns:      result.Columns,
		Rows:         rows,
		RowsAffected: result.RowsAffected,
		Message:      result.Message,
		RequestID:    requestID,
	})
}

// statusFor maps engine error categories onto HTTP status codes.
func statusFor(err error) int {
	switch engerr.GetCategory(err) {
	case engerr.ErrCategorySyntax, engerr.ErrCategoryType:
		return http.StatusBadRequest
	case engerr.ErrCategoryConstraint:
		return http.StatusConflict
	case engerr.ErrCategorySemantic:
		switch engerr.GetCode(err) {
		case engerr.CodeUnknownTable, engerr.CodeUnknownColumn:
			return http.StatusNotFound
		default:
			return http.StatusBadRequest
		}
	default:
		return http.StatusInternalServerError
	}
}

// TableInfo describes one table for the listing endpoint.
type TableInfo struct {
	Name     string   `json:"name"`
	Columns  []string `json:"columns"`
	RowCount int      `json:"row_count"`
}

// TablesHandler handles GET /v1/tables requests. It reads table state
// under the read side of the shared lock, so a concurrent statement
// never mutates the maps mid-listing.
type TablesHandler struct {
	mu *sync.RWMutex
	db *storage.Database
}

// NewTablesHandler creates a new tables handler.
func NewTablesHandler(db *storage.Database, mu *sync.RWMutex) *TablesHandler {
	return &TablesHandler{db: db, mu: mu}
}

// ServeHTTP handles the table listing HTTP request.
func (h *TablesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil, requestID)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	tables := make([]TableInfo, 0)
	for _, name := range h.db.ListTables() {
		t, err := h.db.GetTable(name)
		if err != nil {
			continue
		}
		tables = append(tables, TableInfo{
			Name:     name,
			Columns:  t.Schema().ColumnNames(),
			RowCount: t.RowCount(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tables":     tables,
		"request_id": requestID,
	})
}

// StatsHandler handles GET /v1/stats requests.
type StatsHandler struct {
	stats *observability.QueryStats
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats *observability.QueryStats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// ServeHTTP handles the stats HTTP request.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil, requestID)
		return
	}
	if h.stats == nil {
		writeError(w, http.StatusNotFound, "statistics are disabled", "", nil, requestID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"top_predicates": h.stats.GetTopPredicates(10),
		"statements":     h.stats.GetStatements(),
		"request_id":     requestID,
	})
}

// NewMux assembles the route table for the web front end. One lock
// covers every handler touching the database; the stats endpoint reads
// only the internally synchronized collector.
func NewMux(exec *executor.Executor, db *storage.Database, stats *observability.QueryStats) *http.ServeMux {
	var mu sync.RWMutex
	wrap := DefaultMiddleware()
	mux := http.NewServeMux()
	mux.Handle("/v1/query", wrap(NewStatementHandler(exec, &mu)))
	mux.Handle("/v1/tables", wrap(NewTablesHandler(db, &mu)))
	mux.Handle("/v1/stats", wrap(NewStatsHandler(stats)))
	return mux
}

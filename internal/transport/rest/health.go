package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/frahmantamala/sistema-extras/internal/receipt"
	"github.com/jmoiron/sqlx"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
)

const dbPingTimeout = 2 * time.Second

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CheckedAt  time.Time      `json:"checked_at"`
	DurationMs int64          `json:"duration_ms"`
}

// ReceiptQueue is the view of the receipt worker pool the health check reads.
type ReceiptQueue interface {
	Stats() receipt.PoolStats
}

type HealthHandler struct {
	db       *sqlx.DB
	receipts ReceiptQueue
}

// NewHealthHandler reports on the database and, when receipts is not nil,
// on the receipt queue.
func NewHealthHandler(db *sqlx.DB, receipts ReceiptQueue) *HealthHandler {
	return &HealthHandler{db: db, receipts: receipts}
}

// Ping only reports that the process is serving.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
}

// Health answers 503 only when the database is unreachable. A full or
// stopped receipt queue degrades the report, since receipts still render
// on first read.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:     HealthHealthy,
		Components: map[string]CheckEntry{"postgres": h.checkDatabase(r.Context())},
	}
	if h.receipts != nil {
		resp.Components["receipts"] = h.checkReceipts()
	}
	for _, entry := range resp.Components {
		resp.Status = worst(resp.Status, entry.Status)
	}
	resp.CheckedAt = time.Now()

	statusCode := http.StatusOK
	if resp.Status == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckEntry {
	ctx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	stats := h.db.Stats()

	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
		Details: map[string]any{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
		},
	}
	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	return entry
}

func (h *HealthHandler) checkReceipts() CheckEntry {
	stats := h.receipts.Stats()
	entry := CheckEntry{
		Status:    HealthHealthy,
		CheckedAt: time.Now(),
		Details: map[string]any{
			"workers":  stats.Workers,
			"queued":   stats.Queued,
			"capacity": stats.Capacity,
		},
	}
	switch {
	case stats.Stopped:
		entry.Status = HealthDegraded
		entry.Message = "receipt workers stopped"
	case stats.Queued >= stats.Capacity:
		entry.Status = HealthDegraded
		entry.Message = "receipt queue full"
	}
	return entry
}

func worst(a, b HealthStatus) HealthStatus {
	rank := map[HealthStatus]int{HealthHealthy: 0, HealthDegraded: 1, HealthUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// Package health reports process and database health for load balancers and orchestrators.
package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Status values reported by the probe.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusReady    = "ready"
	StatusNotReady = "not ready"
	StatusAlive    = "alive"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// ReadinessFailureReason is reported by CheckReadiness regardless of the underlying error.
const ReadinessFailureReason = "Database connection failed"

var processStart = time.Now()

// DB is the part of *sql.DB the probe needs.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Status is the payload returned by every check. It is built fresh on each call.
type Status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    *float64  `json:"uptime,omitempty"` // seconds since process start
	Database  string    `json:"database,omitempty"`
	Error     string    `json:"error,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// UnavailableError means a dependency is down. Status is the body to send back with a 503.
type UnavailableError struct {
	Status Status
}

func (e *UnavailableError) Error() string {
	if e.Status.Error != "" {
		return fmt.Sprintf("service unavailable: %s: %s", e.Status.Status, e.Status.Error)
	}
	return fmt.Sprintf("service unavailable: %s: %s", e.Status.Status, e.Status.Reason)
}

// Probe runs health checks against a shared database pool.
type Probe struct {
	db      DB
	started time.Time
	now     func() time.Time
	logger  zerolog.Logger
}

// New returns a probe over db.
func New(db DB, logger zerolog.Logger) *Probe {
	return &Probe{
		db:      db,
		started: processStart,
		now:     time.Now,
		logger:  logger.With().Str("service", "HealthProbe").Logger(),
	}
}

func (p *Probe) ping(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, "SELECT 1")
	return err
}

// Check verifies the database and reports uptime.
func (p *Probe) Check(ctx context.Context) (*Status, error) {
	now := p.now()
	if err := p.ping(ctx); err != nil {
		p.logger.Error().Err(err).Msg("Health check failed")
		return nil, &UnavailableError{Status: Status{
			Status:    StatusError,
			Timestamp: now,
			Database:  DatabaseDisconnected,
			Error:     err.Error(),
		}}
	}

	uptime := now.Sub(p.started).Seconds()
	if uptime < 0 {
		uptime = 0
	}
	return &Status{
		Status:    StatusOK,
		Timestamp: now,
		Uptime:    &uptime,
		Database:  DatabaseConnected,
	}, nil
}

// CheckReadiness verifies the database. On failure the underlying error text is not exposed.
func (p *Probe) CheckReadiness(ctx context.Context) (*Status, error) {
	now := p.now()
	if err := p.ping(ctx); err != nil {
		p.logger.Error().Err(err).Msg("Readiness check failed")
		return nil, &UnavailableError{Status: Status{
			Status:    StatusNotReady,
			Timestamp: now,
			Reason:    ReadinessFailureReason,
		}}
	}
	return &Status{Status: StatusReady, Timestamp: now}, nil
}

// CheckLiveness only reports that the process is running.
func (p *Probe) CheckLiveness() *Status {
	return &Status{Status: StatusAlive, Timestamp: p.now()}
}

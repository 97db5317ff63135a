package handlers

import (
	"github.com/uptrace/bun"

	"fintrack/observability"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db      *bun.DB
	JWTKey  []byte
	metrics *observability.Metrics
}

// New creates a Handler with the given database connection, JWT signing
// key and metrics.
func New(db *bun.DB, jwtKey []byte, metrics *observability.Metrics) *Handler {
	return &Handler{db: db, JWTKey: jwtKey, metrics: metrics}
}

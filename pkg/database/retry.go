package database

import (
	"errors"
	"strings"

	"github.com/aidmatch/trust-engine/pkg/resilience"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsTransient reports whether a query error may succeed on retry. Missing rows
// and server-side errors other than connection, shutdown and serialization
// failures are permanent.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return true
		case pgErr.Code == "40001", pgErr.Code == "40P01": // serialization failure, deadlock
			return true
		case strings.HasPrefix(pgErr.Code, "57P"): // operator intervention
			return true
		default:
			return false
		}
	}

	return true
}

// ReadRetryConfig is the retry policy for snapshot store reads
func ReadRetryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryableChecker = IsTransient
	return cfg
}

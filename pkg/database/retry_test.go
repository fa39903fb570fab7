package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"no rows", pgx.ErrNoRows, false},
		{"wrapped no rows", fmt.Errorf("get beneficiary: %w", pgx.ErrNoRows), false},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, false},
		{"wrapped syntax error", fmt.Errorf("query: %w", &pgconn.PgError{Code: "42601"}), false},
		{"network error", errors.New("read tcp: connection reset by peer"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err))
		})
	}
}

func TestReadRetryConfig(t *testing.T) {
	cfg := ReadRetryConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.NotNil(t, cfg.RetryableChecker)
	assert.False(t, cfg.RetryableChecker(pgx.ErrNoRows))
}

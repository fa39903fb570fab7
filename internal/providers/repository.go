package providers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aidmatch/trust-engine/internal/trust"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads provider snapshots from the directory database
type Repository struct {
	db *pgxpool.Pool
}

var _ RepositoryInterface = (*Repository)(nil)

// NewRepository creates a new provider directory repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const providerColumns = `
	id, name, trust_score, provider_type, specialization, geographic_focus,
	organization_size, status,
	document_verification, response_time, completion_rate, years_active, fraud_incidents
`

// ListProviders returns every provider in directory order (by id).
// When a row carries raw trust factors the score is recomputed from them.
func (r *Repository) ListProviders(ctx context.Context) ([]Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query providers: %w", err)
	}
	defer rows.Close()

	providers := make([]Provider, 0)
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		providers = append(providers, *p)
	}

	return providers, rows.Err()
}

// GetProvider returns a single provider. pgx.ErrNoRows is returned unwrapped
// so callers can map it to a not-found response.
func (r *Repository) GetProvider(ctx context.Context, id string) (*Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`
	return scanProvider(r.db.QueryRow(ctx, query, id))
}

func scanProvider(row pgx.Row) (*Provider, error) {
	var p Provider
	var name, providerType sql.NullString
	var storedScore sql.NullInt32
	var doc, response, completion, years sql.NullFloat64
	var incidents sql.NullInt32

	err := row.Scan(
		&p.ID,
		&name,
		&storedScore,
		&providerType,
		&p.Specialization,
		&p.GeographicFocus,
		&p.OrganizationSize,
		&p.Status,
		&doc,
		&response,
		&completion,
		&years,
		&incidents,
	)
	if err != nil {
		return nil, err
	}

	p.Name = name.String
	p.Type = ProviderType(providerType.String)

	if doc.Valid && response.Valid && completion.Valid {
		p.TrustScore = trust.ComputeTrustScore(trust.TrustFactors{
			DocumentVerification: doc.Float64,
			ResponseTime:         response.Float64,
			CompletionRate:       completion.Float64,
			YearsActive:          years.Float64,
			FraudIncidents:       int(incidents.Int32),
		})
	} else {
		p.TrustScore = trust.ClampScore(int(storedScore.Int32))
	}

	return &p, nil
}

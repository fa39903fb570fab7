package matching

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads beneficiaries from the beneficiary profile store
type Repository struct {
	db *pgxpool.Pool
}

var _ RepositoryInterface = (*Repository)(nil)

// NewRepository creates a new beneficiary repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetBeneficiary returns a beneficiary by id. pgx.ErrNoRows is returned
// unwrapped when it does not exist.
func (r *Repository) GetBeneficiary(ctx context.Context, id string) (*Beneficiary, error) {
	query := `
		SELECT id, need_category, region, city, urgency_level
		FROM beneficiaries
		WHERE id = $1
	`

	var b Beneficiary
	var city sql.NullString

	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.NeedCategory,
		&b.Location.Region,
		&city,
		&b.UrgencyLevel,
	)
	if err != nil {
		return nil, err
	}

	b.Location.City = city.String
	return &b, nil
}

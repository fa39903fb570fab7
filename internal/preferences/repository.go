package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/aidmatch/trust-engine/internal/providers"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads preference profiles from the beneficiary profile store
type Repository struct {
	db *pgxpool.Pool
}

var _ RepositoryInterface = (*Repository)(nil)

// NewRepository creates a new preferences repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetProfile returns the preference profile of a beneficiary. A beneficiary
// without a stored profile gets an empty one.
func (r *Repository) GetProfile(ctx context.Context, beneficiaryID string) (*Profile, error) {
	query := `
		SELECT positive_ids, negative_ids, preferred_types,
		       preferred_organization_sizes, preferred_specializations, min_trust_score
		FROM preference_profiles
		WHERE beneficiary_id = $1
	`

	var positive, negative, types, sizes, specializations []string
	profile := &Profile{BeneficiaryID: beneficiaryID}

	err := r.db.QueryRow(ctx, query, beneficiaryID).Scan(
		&positive,
		&negative,
		&types,
		&sizes,
		&specializations,
		&profile.MinTrustScore,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preference profile: %w", err)
	}

	// Rebuild through the mutators so a store that violates the
	// positive/negative invariant still yields a consistent profile.
	for _, id := range positive {
		profile.AddPositive(id)
	}
	for _, id := range negative {
		profile.AddNegative(id)
	}
	for _, t := range types {
		profile.PreferredTypes = append(profile.PreferredTypes, providers.ProviderType(t))
	}
	for _, s := range sizes {
		profile.PreferredOrganizationSizes = append(profile.PreferredOrganizationSizes, providers.OrganizationSize(s))
	}
	profile.PreferredSpecializations = specializations

	return profile, nil
}

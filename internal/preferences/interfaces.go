package preferences

import "context"

// RepositoryInterface defines the read operations on the beneficiary profile store
type RepositoryInterface interface {
	GetProfile(ctx context.Context, beneficiaryID string) (*Profile, error)
}
